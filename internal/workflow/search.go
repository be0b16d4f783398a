package workflow

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

type SearchAPI interface {
	WorkersByShiftDate(ctx context.Context, day domain.Day, shift domain.Shift) ([]domain.WorkerSummary, error)
}

// AvailabilitySearch is the company screen that lists workers available on
// a (date, shift). Every search goes to the server.
type AvailabilitySearch struct {
	api    SearchAPI
	logger *slog.Logger
	now    func() time.Time

	date    domain.Day
	shift   domain.Shift
	results []domain.WorkerSummary
}

func NewAvailabilitySearch(api SearchAPI, logger *slog.Logger, now func() time.Time) *AvailabilitySearch {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilitySearch{api: api, logger: logger, now: now}
}

func (s *AvailabilitySearch) SelectDate(day domain.Day) {
	s.date = day
}

func (s *AvailabilitySearch) SelectShift(shift domain.Shift) {
	s.shift = shift
}

// Date is the selected day, today when none was picked.
func (s *AvailabilitySearch) Date() domain.Day {
	if s.date.IsZero() {
		return domain.Today(s.now())
	}
	return s.date
}

// Search replaces the result list. Results of an earlier search are dropped
// before the request goes out, so a failure never leaves them on screen.
func (s *AvailabilitySearch) Search(ctx context.Context) *Notice {
	if s.shift == "" {
		return validation("Please select a shift.")
	}

	s.results = nil
	day := s.Date()

	workers, err := s.api.WorkersByShiftDate(ctx, day, s.shift)
	if err != nil {
		s.logger.Error("failed to fetch workers", "date", day, "shift", s.shift, "error", err)
		return errorNotice(err, "No workers found.", "Failed to fetch workers.")
	}

	s.results = workers
	if len(workers) == 0 {
		return &Notice{
			Kind:    NoticeInfo,
			Title:   "No Workers Found",
			Message: "No workers are available for this shift and date.",
		}
	}

	return nil
}

func (s *AvailabilitySearch) Results() []domain.WorkerSummary {
	return slices.Clone(s.results)
}
