package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/quackapp/shift-matching/backend/internal/client"
	"github.com/quackapp/shift-matching/backend/internal/domain"
)

func (a *app) jobs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "open", "mine", "company":
		var (
			jobs []domain.Job
			err  error
		)
		switch args[0] {
		case "open":
			jobs, err = a.api.OpenJobs(ctx)
		case "mine":
			jobs, err = a.api.MyJobs(ctx)
		default:
			jobs, err = a.api.CompanyJobs(ctx)
		}
		if err != nil {
			return a.failure(err, "Failed to fetch jobs")
		}
		return a.printJobs(jobs)
	case "show":
		id, err := a.parseID("jobs show", args[1:])
		if err != nil {
			return err
		}
		job, err := a.api.GetJob(ctx, id)
		if err != nil {
			return a.failure(err, "Failed to fetch job")
		}
		fmt.Fprintf(a.out, "#%d %s\n%s\nWhere: %s\nWhen:  %s %s\nTaken: %d/%d (%s)\n",
			job.ID, job.Title, job.Description, job.Location, job.Date, job.Shift,
			len(job.AcceptedWorkerIDs), job.WorkersRequired, job.Status)
		return nil
	case "accept", "decline", "leave":
		id, err := a.parseID("jobs "+args[0], args[1:])
		if err != nil {
			return err
		}
		var msg string
		switch args[0] {
		case "accept":
			msg, err = a.api.AcceptJob(ctx, id)
		case "decline":
			msg, err = a.api.DeclineJob(ctx, id)
		default:
			msg, err = a.api.RemoveAccepted(ctx, id)
		}
		if err != nil {
			return a.failure(err, "Something went wrong. Please try again.")
		}
		fmt.Fprintln(a.out, msg)
		return nil
	case "workers":
		id, err := a.parseID("jobs workers", args[1:])
		if err != nil {
			return err
		}
		workers, err := a.api.AssignedWorkers(ctx, id)
		if err != nil {
			return a.failure(err, "Failed to fetch assigned workers")
		}
		if len(workers) == 0 {
			fmt.Fprintln(a.out, "Nobody has accepted this job yet.")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, w := range workers {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", w.ID, w.Name, w.Email)
		}
		return tw.Flush()
	case "create":
		return a.createJob(ctx, args[1:])
	case "delete":
		id, err := a.parseID("jobs delete", args[1:])
		if err != nil {
			return err
		}
		if err := a.api.DeleteJob(ctx, id); err != nil {
			return a.failure(err, "Failed to delete job")
		}
		fmt.Fprintln(a.out, "Job deleted")
		return nil
	default:
		return errUsage
	}
}

func (a *app) parseID(name string, args []string) (int64, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.err)
	id := fs.Int64("id", 0, "job or worker ID")
	if err := fs.Parse(args); err != nil || *id <= 0 {
		return 0, errUsage
	}
	return *id, nil
}

func (a *app) createJob(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs create", flag.ContinueOnError)
	fs.SetOutput(a.err)
	title := fs.String("title", "", "job title")
	description := fs.String("description", "", "what the job involves")
	location := fs.String("location", "", "where the job takes place")
	date := fs.String("date", "", "date as YYYY-MM-DD")
	shift := fs.String("shift", "", "AM or PM")
	workers := fs.Int("workers", 1, "number of workers required")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	// unparsable date or shift is left to the client validation message
	day, _ := domain.ParseDay(*date)
	s, _ := domain.ParseShift(*shift)

	job, err := a.api.CreateJob(ctx, client.NewJob{
		Title:           *title,
		Description:     *description,
		Location:        *location,
		Date:            day,
		Shift:           s,
		WorkersRequired: int32(*workers),
	})
	if err != nil {
		return a.failure(err, "Failed to create job")
	}

	fmt.Fprintf(a.out, "Job #%d created for %s %s\n", job.ID, job.Date, job.Shift)
	return nil
}

func (a *app) printJobs(jobs []domain.Job) error {
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSHIFT\tTITLE\tLOCATION\tTAKEN\tSTATUS")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d/%d\t%s\n",
			j.ID, j.Date, j.Shift, j.Title, j.Location, len(j.AcceptedWorkerIDs), j.WorkersRequired, j.Status)
	}
	return tw.Flush()
}
