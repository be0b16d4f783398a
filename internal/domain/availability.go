package domain

// AvailabilityEntry is a worker's declaration that they can work a given
// date and shift. At most one entry exists per (WorkerID, Date, Shift).
type AvailabilityEntry struct {
	WorkerID int64 `json:"workerId"`
	Date     Day   `json:"date"`
	Shift    Shift `json:"shift"`
}

// AvailabilityStatus is one calendar marking returned by availability-status.
type AvailabilityStatus struct {
	Date   Day     `json:"date"`
	Shifts []Shift `json:"shifts"`
}

// WorkerSummary is a row of the availability-by-date-and-shift query.
type WorkerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
