package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quackapp/shift-matching/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishMail puts the message on the mail queue; cmd/mail delivers it.
func (h *Handler) publishMail(ctx context.Context, mail domain.MailMessage) error {
	body, err := json.Marshal(mail)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	); err != nil {
		return err
	}

	h.metrics.mails.WithLabelValues(mail.Type).Inc()
	return nil
}
