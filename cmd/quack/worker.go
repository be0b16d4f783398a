package main

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/workflow"
)

type dayShiftArgs struct {
	day   domain.Day
	shift domain.Shift
	yes   bool
}

// parseDayShift reads -date, -shift and -yes. Date and shift may be left
// empty; the screens decide what is required.
func (a *app) parseDayShift(name string, args []string) (dayShiftArgs, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.err)
	date := fs.String("date", "", "date as YYYY-MM-DD")
	shift := fs.String("shift", "", "AM or PM")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return dayShiftArgs{}, errUsage
	}

	parsed := dayShiftArgs{yes: *yes}
	if *date != "" {
		day, err := domain.ParseDay(*date)
		if err != nil {
			return dayShiftArgs{}, a.notify(&workflow.Notice{Kind: workflow.NoticeValidation, Title: "Error", Message: "Please enter a date as YYYY-MM-DD"})
		}
		parsed.day = day
	}
	if *shift != "" {
		s, err := domain.ParseShift(*shift)
		if err != nil {
			return dayShiftArgs{}, a.notify(&workflow.Notice{Kind: workflow.NoticeValidation, Title: "Error", Message: "Shift must be AM or PM"})
		}
		parsed.shift = s
	}

	return parsed, nil
}

func (a *app) availability(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cal := workflow.NewCalendar(a.api, a.logger)
	switch args[0] {
	case "submit":
		in, err := a.parseDayShift("availability submit", args[1:])
		if err != nil {
			return err
		}
		if err := a.notify(cal.Load(ctx)); err != nil {
			return err
		}
		if !in.day.IsZero() {
			cal.SelectDate(in.day)
		}
		cal.SelectShift(in.shift)
		return a.notify(cal.Submit(ctx))
	case "status":
		if err := a.notify(cal.Load(ctx)); err != nil {
			return err
		}
		marked := cal.MarkedDates()
		if len(marked) == 0 {
			fmt.Fprintln(a.out, "No availability submitted yet.")
			return nil
		}
		days := make([]domain.Day, 0, len(marked))
		for day := range marked {
			days = append(days, day)
		}
		slices.Sort(days)
		for _, day := range days {
			fmt.Fprintf(a.out, "%s  %s\n", day, marked[day])
		}
		return nil
	default:
		return errUsage
	}
}

func (a *app) shifts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	screen := workflow.NewMyShifts(a.api, a.logger)
	switch args[0] {
	case "list":
		if err := a.notify(screen.Load(ctx)); err != nil {
			return err
		}
		matches := screen.Matches()
		if len(matches) == 0 {
			fmt.Fprintln(a.out, "No shifts submitted.")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, m := range matches {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Entry.Date, m.Entry.Shift, m.Label())
		}
		return tw.Flush()
	case "cancel":
		in, err := a.parseDayShift("shifts cancel", args[1:])
		if err != nil {
			return err
		}
		if in.day.IsZero() || in.shift == "" {
			return a.notify(&workflow.Notice{Kind: workflow.NoticeValidation, Title: "Error", Message: "Please select a date and a shift"})
		}
		if err := a.notify(screen.Load(ctx)); err != nil {
			return err
		}

		idx := slices.IndexFunc(screen.Entries(), func(e domain.AvailabilityEntry) bool {
			return e.Date == in.day && e.Shift == in.shift
		})
		if idx < 0 {
			return a.notify(&workflow.Notice{Kind: workflow.NoticeError, Title: "Error", Message: "No availability on that date and shift."})
		}

		confirm := screen.RequestCancel(screen.Entries()[idx])
		if !in.yes && !a.ask(confirm) {
			screen.Dismiss()
			fmt.Fprintln(a.out, "Nothing was removed.")
			return nil
		}
		return a.notify(screen.Confirm(ctx))
	default:
		return errUsage
	}
}

// ask shows a confirmation and reads a yes/no answer. Anything but yes is no.
func (a *app) ask(c workflow.Confirmation) bool {
	fmt.Fprintf(a.out, "%s: %s [y/N] ", c.Title, c.Message)
	line, _ := a.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (a *app) search(ctx context.Context, args []string) error {
	in, err := a.parseDayShift("search", args)
	if err != nil {
		return err
	}

	s := workflow.NewAvailabilitySearch(a.api, a.logger, a.now)
	if !in.day.IsZero() {
		s.SelectDate(in.day)
	}
	if in.shift != "" {
		s.SelectShift(in.shift)
	}
	if err := a.notify(s.Search(ctx)); err != nil {
		return err
	}

	results := s.Results()
	if len(results) == 0 {
		return nil
	}
	fmt.Fprintf(a.out, "Available on %s (%s):\n", s.Date(), in.shift)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, w := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", w.ID, w.Name, w.Email)
	}
	return tw.Flush()
}
