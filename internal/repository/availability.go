package repository

import (
	"database/sql"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

// UpsertAvailability stores the entry; resubmitting an existing entry only
// touches updated_at.
func (r *Repository) UpsertAvailability(entry *domain.AvailabilityEntry) error {
	query := `
		INSERT INTO availabilities (worker_id, date, shift)
		VALUES ($1, $2, $3)
		ON CONFLICT (worker_id, date, shift) DO UPDATE SET updated_at = NOW()
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, entry.WorkerID, entry.Date, entry.Shift); err != nil {
		return err
	}

	return nil
}

// DeleteAvailability returns sql.ErrNoRows when there was nothing to delete.
func (r *Repository) DeleteAvailability(entry *domain.AvailabilityEntry) error {
	query := `
		DELETE FROM availabilities WHERE worker_id = $1 AND date = $2 AND shift = $3
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, entry.WorkerID, entry.Date, entry.Shift)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) GetAvailabilityByWorkerID(workerID int64) ([]*domain.AvailabilityEntry, error) {
	query := `
		SELECT date, shift FROM availabilities
		WHERE worker_id = $1
		ORDER BY date, shift
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.AvailabilityEntry, 0)
	for rows.Next() {
		entry := &domain.AvailabilityEntry{WorkerID: workerID}
		if err := rows.Scan(&entry.Date, &entry.Shift); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// GetAvailabilityStatus groups a worker's entries by date.
func (r *Repository) GetAvailabilityStatus(workerID int64) ([]*domain.AvailabilityStatus, error) {
	entries, err := r.GetAvailabilityByWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	// entries are sorted by date, so equal dates are adjacent
	statuses := make([]*domain.AvailabilityStatus, 0)
	for _, entry := range entries {
		if n := len(statuses); n > 0 && statuses[n-1].Date == entry.Date {
			statuses[n-1].Shifts = append(statuses[n-1].Shifts, entry.Shift)
			continue
		}
		statuses = append(statuses, &domain.AvailabilityStatus{
			Date:   entry.Date,
			Shifts: []domain.Shift{entry.Shift},
		})
	}

	return statuses, nil
}

// GetAvailableWorkers lists the active workers of a company available on
// the given date and shift.
func (r *Repository) GetAvailableWorkers(companyID int64, date domain.Day, shift domain.Shift) ([]*domain.WorkerSummary, error) {
	query := `
		SELECT w.id, w.name, w.email
		FROM availabilities a
		JOIN workers w ON w.id = a.worker_id
		WHERE w.company_id = $1 AND a.date = $2 AND a.shift = $3 AND w.is_active
		ORDER BY w.name, w.id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, date, shift)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]*domain.WorkerSummary, 0)
	for rows.Next() {
		worker := &domain.WorkerSummary{}
		if err := rows.Scan(&worker.ID, &worker.Name, &worker.Email); err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}
