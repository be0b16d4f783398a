package workflow

import (
	"context"
	"log/slog"
	"maps"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

// Marking is how a calendar day is drawn.
type Marking int

const (
	Unmarked Marking = iota
	// Tentative is the current selection, not yet submitted.
	Tentative
	// Confirmed has been accepted by the server.
	Confirmed
)

func (m Marking) Color() string {
	switch m {
	case Tentative:
		return "#f3ae0a"
	case Confirmed:
		return "#5cb3ff"
	default:
		return ""
	}
}

func (m Marking) String() string {
	switch m {
	case Tentative:
		return "tentative"
	case Confirmed:
		return "confirmed"
	default:
		return "unmarked"
	}
}

type AvailabilityAPI interface {
	Me(ctx context.Context) (*domain.Worker, error)
	AvailabilityStatus(ctx context.Context, workerID int64) ([]domain.AvailabilityStatus, error)
	UpsertAvailability(ctx context.Context, workerID int64, day domain.Day, shift domain.Shift) error
}

// Calendar is the worker's availability screen.
type Calendar struct {
	api    AvailabilityAPI
	logger *slog.Logger

	workerID      int64
	selectedDate  domain.Day
	selectedShift domain.Shift
	// marking of selectedDate before it was selected
	previous Marking
	marked   map[domain.Day]Marking
}

func NewCalendar(api AvailabilityAPI, logger *slog.Logger) *Calendar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calendar{
		api:    api,
		logger: logger,
		marked: make(map[domain.Day]Marking),
	}
}

// Load is the focus refresh: it resolves the logged-in worker and marks
// every day the server holds availability for.
func (c *Calendar) Load(ctx context.Context) *Notice {
	worker, err := c.api.Me(ctx)
	if err != nil {
		c.logger.Error("failed to fetch logged-in worker", "error", err)
		return errorNotice(err, "Failed to fetch worker details", "Something went wrong. Please try again.")
	}
	c.workerID = worker.ID

	statuses, err := c.api.AvailabilityStatus(ctx, c.workerID)
	if err != nil {
		c.logger.Error("failed to fetch availability", "worker_id", c.workerID, "error", err)
		return errorNotice(err, "Failed to fetch availability", "Something went wrong. Please try again.")
	}

	c.applyStatuses(statuses)
	if !c.selectedDate.IsZero() {
		c.previous = c.marked[c.selectedDate]
		c.marked[c.selectedDate] = Tentative
	}

	return nil
}

// applyStatuses replaces every marking with the server's confirmed days.
func (c *Calendar) applyStatuses(statuses []domain.AvailabilityStatus) {
	marked := make(map[domain.Day]Marking, len(statuses))
	for _, s := range statuses {
		marked[s.Date] = Confirmed
	}
	c.marked = marked
}

// SelectDate makes day the tentative selection and clears the shift. The
// previously selected day, if never submitted, goes back to how it was.
func (c *Calendar) SelectDate(day domain.Day) {
	if !c.selectedDate.IsZero() && c.marked[c.selectedDate] == Tentative {
		c.setMarking(c.selectedDate, c.previous)
	}

	c.previous = c.marked[day]
	c.selectedDate = day
	c.selectedShift = ""
	c.marked[day] = Tentative
}

func (c *Calendar) SelectShift(shift domain.Shift) {
	c.selectedShift = shift
}

// Submit sends the selected (date, shift). Nothing is sent while either is
// missing, and the day stays tentative unless the server accepts it.
func (c *Calendar) Submit(ctx context.Context) *Notice {
	if c.selectedDate.IsZero() {
		return validation("Please select a date")
	}
	if c.selectedShift == "" {
		return validation("Please select a shift")
	}
	if c.workerID == 0 {
		return &Notice{Kind: NoticeError, Title: "Error", Message: "Worker ID not found. Please log in again."}
	}

	if err := c.api.UpsertAvailability(ctx, c.workerID, c.selectedDate, c.selectedShift); err != nil {
		c.logger.Error("failed to update availability",
			"worker_id", c.workerID, "date", c.selectedDate, "shift", c.selectedShift, "error", err)
		return errorNotice(err, "Failed to update availability", "Something went wrong. Please try again.")
	}

	c.logger.Info("availability submitted", "worker_id", c.workerID, "date", c.selectedDate, "shift", c.selectedShift)

	// The accepted day stays confirmed even if the refetch fails or lags.
	if statuses, err := c.api.AvailabilityStatus(ctx, c.workerID); err != nil {
		c.logger.Warn("failed to refetch availability after submit", "worker_id", c.workerID, "error", err)
	} else {
		c.applyStatuses(statuses)
	}
	c.marked[c.selectedDate] = Confirmed
	c.previous = Confirmed

	return &Notice{
		Kind:    NoticeSuccess,
		Title:   "Availability Confirmed",
		Message: "You are marked available on " + c.selectedDate.String() + " (" + c.selectedShift.String() + ").",
	}
}

func (c *Calendar) WorkerID() int64 {
	return c.workerID
}

func (c *Calendar) Selected() (domain.Day, domain.Shift) {
	return c.selectedDate, c.selectedShift
}

func (c *Calendar) Marking(day domain.Day) Marking {
	return c.marked[day]
}

// MarkedDates returns a copy of every marked day.
func (c *Calendar) MarkedDates() map[domain.Day]Marking {
	return maps.Clone(c.marked)
}

func (c *Calendar) setMarking(day domain.Day, m Marking) {
	if m == Unmarked {
		delete(c.marked, day)
		return
	}
	c.marked[day] = m
}
