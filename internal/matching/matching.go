// Package matching links a worker's shift entries to the jobs visible to
// them. There is no job-to-shift key on the server, so a job is shown on a
// shift when both fall on the same calendar day.
package matching

import (
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/samber/lo"
)

// Index groups jobs by calendar day, keeping fetch order within a day.
type Index map[domain.Day][]*domain.Job

func NewIndex(jobs []domain.Job) Index {
	idx := make(Index, len(jobs))
	for i := range jobs {
		idx[jobs[i].Date] = append(idx[jobs[i].Date], &jobs[i])
	}
	return idx
}

// First returns the first job fetched for day, or nil.
func (idx Index) First(day domain.Day) *domain.Job {
	if jobs := idx[day]; len(jobs) > 0 {
		return jobs[0]
	}
	return nil
}

// Link returns one match per entry, in entry order. When several jobs share
// the entry's day the first one in fetch order wins.
func Link(entries []domain.AvailabilityEntry, jobs []domain.Job) []domain.ShiftMatch {
	idx := NewIndex(jobs)
	return lo.Map(entries, func(entry domain.AvailabilityEntry, _ int) domain.ShiftMatch {
		return domain.ShiftMatch{
			Entry: entry,
			Job:   idx.First(entry.Date),
		}
	})
}
