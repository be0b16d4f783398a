package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

func (a *app) workers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "pending", "approved":
		var (
			workers []domain.Worker
			err     error
		)
		if args[0] == "pending" {
			workers, err = a.api.PendingWorkers(ctx)
		} else {
			workers, err = a.api.ApprovedWorkers(ctx)
		}
		if err != nil {
			return a.failure(err, "Failed to fetch workers")
		}
		if len(workers) == 0 {
			fmt.Fprintln(a.out, "No workers.")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tJOINED")
		for _, w := range workers {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", w.ID, w.Name, w.Email, w.CreatedAt.Format("2006-01-02"))
		}
		return tw.Flush()
	case "approve", "decline", "deactivate":
		id, err := a.parseID("workers "+args[0], args[1:])
		if err != nil {
			return err
		}
		var msg string
		switch args[0] {
		case "approve":
			msg, err = a.api.ApproveWorker(ctx, id)
		case "decline":
			msg, err = a.api.DeclineWorker(ctx, id)
		default:
			msg, err = a.api.DeactivateWorker(ctx, id)
		}
		if err != nil {
			return a.failure(err, "Something went wrong. Please try again.")
		}
		fmt.Fprintln(a.out, msg)
		return nil
	default:
		return errUsage
	}
}

func (a *app) messages(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "list":
		messages, err := a.api.Messages(ctx)
		if err != nil {
			return a.failure(err, "Failed to fetch messages")
		}
		if len(messages) == 0 {
			fmt.Fprintln(a.out, "No messages yet.")
			return nil
		}
		for _, m := range messages {
			fmt.Fprintf(a.out, "[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.SenderName, m.Body)
		}
		return nil
	case "send":
		fs := flag.NewFlagSet("messages send", flag.ContinueOnError)
		fs.SetOutput(a.err)
		text := fs.String("text", "", "message to post")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}
		if _, err := a.api.SendMessage(ctx, *text); err != nil {
			return a.failure(err, "Failed to send message")
		}
		fmt.Fprintln(a.out, "Message sent")
		return nil
	default:
		return errUsage
	}
}
