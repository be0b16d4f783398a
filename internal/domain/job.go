package domain

import "time"

type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusFilled    JobStatus = "filled"
	JobStatusCancelled JobStatus = "cancelled"
)

type Job struct {
	ID                int64     `json:"id"`
	CompanyID         int64     `json:"companyId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	Date              Day       `json:"date"`
	Shift             Shift     `json:"shift"`
	WorkersRequired   int32     `json:"workersRequired"`
	Status            JobStatus `json:"status"`
	AcceptedWorkerIDs []int64   `json:"acceptedWorkerIds"`
	CreatedAt         time.Time `json:"createdAt"`
	Version           int32     `json:"-"`
}

// Full reports whether every required worker slot has been taken.
func (j *Job) Full() bool {
	return int32(len(j.AcceptedWorkerIDs)) >= j.WorkersRequired
}

// ShiftMatch pairs a shift entry with the job displayed on it. Job is nil
// when no job falls on the entry's day.
type ShiftMatch struct {
	Entry AvailabilityEntry `json:"entry"`
	Job   *Job              `json:"job"`
}

func (m ShiftMatch) Label() string {
	if m.Job == nil {
		return "No job"
	}
	return "Job: " + m.Job.Title
}
