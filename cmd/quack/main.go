package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quackapp/shift-matching/backend/internal/client"
	"github.com/quackapp/shift-matching/backend/internal/config"
	"github.com/quackapp/shift-matching/backend/internal/logger"
	"github.com/quackapp/shift-matching/backend/internal/workflow"
)

const usage = `usage: quack <command> [arguments]

commands:
  register company -username U -name N -email E -password P [-package Basic|Pro]
  register worker -name N -email E -password P -company U
  login worker -email E -password P
  login company -username U -password P
  logout
  password forgot -email E
  password reset -email E -otp CODE -new PASSWORD
  availability submit -date YYYY-MM-DD -shift AM|PM
  availability status
  shifts list
  shifts cancel -date YYYY-MM-DD -shift AM|PM [-yes]
  search -shift AM|PM [-date YYYY-MM-DD]
  jobs open | mine | company
  jobs show -id N
  jobs workers -id N
  jobs accept -id N | decline -id N | leave -id N
  jobs create -title T -description D -location L -date YYYY-MM-DD -shift AM|PM -workers N
  jobs delete -id N
  workers pending | approved
  workers approve -id N | decline -id N | deactivate -id N
  messages list
  messages send -text T
`

var errUsage = errors.New("invalid usage")

// app is one invocation of the CLI.
type app struct {
	api     *client.Client
	logger  *slog.Logger
	session *sessionStore
	now     func() time.Time

	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "password":
		return a.password(ctx, rest)
	case "availability":
		return a.availability(ctx, rest)
	case "shifts":
		return a.shifts(ctx, rest)
	case "search":
		return a.search(ctx, rest)
	case "jobs":
		return a.jobs(ctx, rest)
	case "workers":
		return a.workers(ctx, rest)
	case "messages":
		return a.messages(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return errUsage
	}
}

// notify prints n and turns error notices into a failed exit.
func (a *app) notify(n *workflow.Notice) error {
	if n == nil {
		return nil
	}
	if n.IsError() {
		fmt.Fprintf(a.err, "%s: %s\n", n.Title, n.Message)
		return errNoticeShown
	}
	fmt.Fprintf(a.out, "%s: %s\n", n.Title, n.Message)
	return nil
}

var errNoticeShown = errors.New("notice shown")

// failure reports a client error that has no screen of its own.
func (a *app) failure(err error, fallback string) error {
	var vErr *client.ValidationError
	var tErr *client.TransportError
	msg := fallback
	switch {
	case errors.As(err, &vErr):
		msg = vErr.Message
	case errors.As(err, &tErr):
		msg = "Something went wrong. Please try again."
	case client.ServerMessage(err) != "":
		msg = client.ServerMessage(err)
	}
	a.logger.Debug("request failed", "error", err)
	return a.notify(&workflow.Notice{Kind: workflow.NoticeError, Title: "Error", Message: msg})
}

func main() {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stderr, cfg.LogLevel, "console")

	store, err := newSessionStore()
	if err != nil {
		log.Error("failed to locate session file", "error", err)
		os.Exit(1)
	}
	token, err := store.Load()
	if err != nil {
		log.Warn("failed to read saved session", "error", err)
	}

	api := client.New(cfg.BaseURL,
		client.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
		client.WithRateLimit(cfg.MaxRequestsPerSec),
		client.WithSession(token),
	)

	a := &app{
		api:     api,
		logger:  log,
		session: store,
		now:     time.Now,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		err:     os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, errUsage):
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		case errors.Is(err, errNoticeShown):
		default:
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
