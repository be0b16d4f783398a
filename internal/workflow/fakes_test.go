package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/quackapp/shift-matching/backend/internal/client"
	"github.com/quackapp/shift-matching/backend/internal/domain"
)

var errNetwork = &client.TransportError{Err: errors.New("connection refused")}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type upsertCall struct {
	workerID int64
	day      domain.Day
	shift    domain.Shift
}

// fakeAPI implements every workflow API interface against in-memory data.
type fakeAPI struct {
	mu sync.Mutex

	worker    *domain.Worker
	meErr     error
	statuses  []domain.AvailabilityStatus
	statusErr   error
	statusCalls int
	upsertErr   error
	upserts   []upsertCall

	workers   []domain.WorkerSummary
	searchErr error
	searches  int

	shifts    []domain.AvailabilityEntry
	shiftsErr error
	jobs      []domain.Job
	jobsErr   error
	cancelErr error
	cancelled []domain.AvailabilityEntry
}

func (f *fakeAPI) Me(ctx context.Context) (*domain.Worker, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.worker, nil
}

func (f *fakeAPI) AvailabilityStatus(ctx context.Context, workerID int64) ([]domain.AvailabilityStatus, error) {
	f.statusCalls++
	return f.statuses, f.statusErr
}

func (f *fakeAPI) UpsertAvailability(ctx context.Context, workerID int64, day domain.Day, shift domain.Shift) error {
	f.upserts = append(f.upserts, upsertCall{workerID, day, shift})
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for i := range f.statuses {
		if f.statuses[i].Date == day {
			if !slices.Contains(f.statuses[i].Shifts, shift) {
				f.statuses[i].Shifts = append(f.statuses[i].Shifts, shift)
			}
			return nil
		}
	}
	f.statuses = append(f.statuses, domain.AvailabilityStatus{Date: day, Shifts: []domain.Shift{shift}})
	return nil
}

func (f *fakeAPI) WorkersByShiftDate(ctx context.Context, day domain.Day, shift domain.Shift) ([]domain.WorkerSummary, error) {
	f.searches++
	return f.workers, f.searchErr
}

func (f *fakeAPI) MyShifts(ctx context.Context) ([]domain.AvailabilityEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AvailabilityEntry(nil), f.shifts...), f.shiftsErr
}

func (f *fakeAPI) MyJobs(ctx context.Context) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Job(nil), f.jobs...), f.jobsErr
}

func (f *fakeAPI) CancelShift(ctx context.Context, entry domain.AvailabilityEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, entry)
	if f.cancelErr != nil {
		return f.cancelErr
	}
	for i, s := range f.shifts {
		if s.Date == entry.Date && s.Shift == entry.Shift {
			f.shifts = append(f.shifts[:i], f.shifts[i+1:]...)
			break
		}
	}
	return nil
}

func apiError(status int, msg string) error {
	return &client.APIError{StatusCode: status, Message: msg}
}

