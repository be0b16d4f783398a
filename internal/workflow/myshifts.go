package workflow

import (
	"context"
	"log/slog"
	"slices"

	"github.com/quackapp/shift-matching/backend/internal/client"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/matching"
	"golang.org/x/sync/errgroup"
)

type ShiftsAPI interface {
	Me(ctx context.Context) (*domain.Worker, error)
	MyShifts(ctx context.Context) ([]domain.AvailabilityEntry, error)
	MyJobs(ctx context.Context) ([]domain.Job, error)
	CancelShift(ctx context.Context, entry domain.AvailabilityEntry) error
}

// MyShifts is the worker's list of submitted shifts, each shown with the
// job that falls on its day.
type MyShifts struct {
	api    ShiftsAPI
	logger *slog.Logger

	workerID int64
	entries  []domain.AvailabilityEntry
	jobs     []domain.Job
	matches  []domain.ShiftMatch
	pending  *domain.AvailabilityEntry
}

func NewMyShifts(api ShiftsAPI, logger *slog.Logger) *MyShifts {
	if logger == nil {
		logger = slog.Default()
	}
	return &MyShifts{api: api, logger: logger}
}

// Load clears the screen and fetches shifts and jobs again, then recomputes
// the shift-to-job linkage.
func (m *MyShifts) Load(ctx context.Context) *Notice {
	m.entries, m.jobs, m.matches = nil, nil, nil

	if m.workerID == 0 {
		worker, err := m.api.Me(ctx)
		if err != nil {
			m.logger.Error("failed to fetch worker", "error", err)
			return errorNotice(err, "Failed to fetch worker details", "Something went wrong.")
		}
		m.workerID = worker.ID
	}

	entries, jobs, err := m.fetch(ctx)
	if err != nil {
		m.logger.Error("failed to fetch shifts and jobs", "worker_id", m.workerID, "error", err)
		return errorNotice(err, "Failed to fetch shifts", "Something went wrong.")
	}

	m.entries = entries
	m.jobs = jobs
	m.matches = matching.Link(entries, jobs)

	return nil
}

// fetch reads shifts and jobs in parallel without touching the screen state.
func (m *MyShifts) fetch(ctx context.Context) ([]domain.AvailabilityEntry, []domain.Job, error) {
	var entries []domain.AvailabilityEntry
	var jobs []domain.Job

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = m.api.MyShifts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = m.api.MyJobs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return entries, jobs, nil
}

func (m *MyShifts) Matches() []domain.ShiftMatch {
	return slices.Clone(m.matches)
}

func (m *MyShifts) Entries() []domain.AvailabilityEntry {
	return slices.Clone(m.entries)
}

// RequestCancel is the first step of removing an entry. Nothing is sent
// until Confirm.
func (m *MyShifts) RequestCancel(entry domain.AvailabilityEntry) Confirmation {
	m.pending = &entry
	return Confirmation{
		Title:   "Confirm Delete",
		Message: "Are you sure you want to remove your availability?",
	}
}

func (m *MyShifts) Pending() *domain.AvailabilityEntry {
	return m.pending
}

func (m *MyShifts) Dismiss() {
	m.pending = nil
}

// Confirm deletes the pending entry, drops it from the list and then
// refetches. A "not found" from the server means the entry is already gone
// and counts as removed. On any other failure the list is left as it was.
// A failed refetch keeps the trimmed list; the removal itself succeeded.
func (m *MyShifts) Confirm(ctx context.Context) *Notice {
	if m.pending == nil {
		return nil
	}
	entry := *m.pending
	m.pending = nil

	if m.workerID == 0 {
		return &Notice{Kind: NoticeError, Title: "Error", Message: "Worker ID not found. Please log in again."}
	}
	entry.WorkerID = m.workerID

	if err := m.api.CancelShift(ctx, entry); err != nil && !client.IsNotFound(err) {
		m.logger.Error("failed to cancel shift", "worker_id", entry.WorkerID, "date", entry.Date, "shift", entry.Shift, "error", err)
		return errorNotice(err, "Failed to remove availability.", "Something went wrong.")
	}

	m.logger.Info("shift cancelled", "worker_id", entry.WorkerID, "date", entry.Date, "shift", entry.Shift)

	m.entries = slices.DeleteFunc(m.entries, func(e domain.AvailabilityEntry) bool {
		return e.Date == entry.Date && e.Shift == entry.Shift
	})
	m.matches = matching.Link(m.entries, m.jobs)

	entries, jobs, err := m.fetch(ctx)
	if err != nil {
		m.logger.Warn("failed to refetch shifts after cancel", "worker_id", entry.WorkerID, "error", err)
	} else {
		m.entries, m.jobs = entries, jobs
		m.matches = matching.Link(entries, jobs)
	}

	return &Notice{Kind: NoticeSuccess, Title: "Success", Message: "Your availability has been removed."}
}
