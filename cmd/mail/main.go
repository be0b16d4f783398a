package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/quackapp/shift-matching/backend/internal/config"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	file    string
	subject string
}

var mailTemplates = map[string]mailTemplate{
	domain.MailTypeResetPassword:  {file: "reset_password_email.html", subject: "Quack - Reset your password"},
	domain.MailTypeJobAccepted:    {file: "job_accepted_email.html", subject: "Quack - A worker accepted your job"},
	domain.MailTypeWorkerApproved: {file: "worker_approved_email.html", subject: "Quack - Your account has been approved"},
}

// buildMessage renders a queued mail message into an email.
func buildMessage(from, templateDir string, body []byte) (*mail.Msg, error) {
	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return nil, fmt.Errorf("decode mail message: %w", err)
	}

	mt, ok := mailTemplates[mailMessage.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mail type %q", mailMessage.Type)
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}

	tmpl, err := template.ParseFiles(filepath.Join(templateDir, mt.file))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	m.Subject(mt.subject)

	return m, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	/**********************************************
	 * Create the mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		log.Error("failed to create mail client", "error", err)
		return
	}
	defer client.Close()

	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		log.Error("failed to connect to SMTP server", "error", err)
		return
	}

	/**********************************************
	 * Connect to RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		log.Error("failed to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Error("failed to open channel", "error", err)
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.Queue,
		true,  // durable
		false, // keep the queue without consumers
		false,
		false,
		nil,
	)
	if err != nil {
		log.Error("failed to declare queue", "error", err)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Error("failed to consume queue", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Warn("delivery channel closed")
					return
				}

				m, err := buildMessage(cfg.Email.SMTP.Username, cfg.Email.TemplateDir, msg.Body)
				if err != nil {
					log.Error("dropping mail message", "error", err)
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSendWithContext(ctx, m); err != nil {
					log.Error("failed to send mail", "error", err)
					_ = msg.Nack(false, true) // requeue
					continue
				}

				log.Info("mail sent", "to", m.GetToString())
				_ = msg.Ack(false)
			}
		}
	}()

	log.Info("waiting for messages (CTRL+C to quit)")
	<-sigChan

	log.Info("shutting down mail worker")
	cancel()
	wg.Wait()
	log.Info("mail worker stopped")
}
