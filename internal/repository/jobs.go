package repository

import (
	"database/sql"
	"errors"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

const jobColumns = `
	j.id, j.company_id, j.title, j.description, j.location, j.date, j.shift,
	j.workers_required, j.status, j.created_at, j.version, ja.worker_id
`

// scanJobs folds the LEFT JOIN with job_acceptances back into one job per
// id, keeping the row order of the query.
func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)
	index := make(map[int64]*domain.Job)

	for rows.Next() {
		var job domain.Job
		var workerID sql.NullInt64

		dst := []any{
			&job.ID,
			&job.CompanyID,
			&job.Title,
			&job.Description,
			&job.Location,
			&job.Date,
			&job.Shift,
			&job.WorkersRequired,
			&job.Status,
			&job.CreatedAt,
			&job.Version,
			&workerID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		existing, ok := index[job.ID]
		if !ok {
			job.AcceptedWorkerIDs = make([]int64, 0)
			existing = &job
			index[job.ID] = existing
			jobs = append(jobs, existing)
		}

		if workerID.Valid {
			existing.AcceptedWorkerIDs = append(existing.AcceptedWorkerIDs, workerID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *Repository) queryJobs(where string, args ...any) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs j
		LEFT JOIN job_acceptances ja ON ja.job_id = j.id
		WHERE ` + where + `
		ORDER BY j.date, j.id, ja.created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *Repository) CreateJob(job *domain.Job) error {
	query := `
		INSERT INTO jobs (company_id, title, description, location, date, shift, workers_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{job.CompanyID, job.Title, job.Description, job.Location, job.Date, job.Shift, job.WorkersRequired}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.Status, &job.CreatedAt, &job.Version); err != nil {
		return err
	}
	job.AcceptedWorkerIDs = make([]int64, 0)

	return nil
}

func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	jobs, err := r.queryJobs(`j.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, sql.ErrNoRows
	}

	return jobs[0], nil
}

func (r *Repository) GetJobsByCompanyID(companyID int64) ([]*domain.Job, error) {
	return r.queryJobs(`j.company_id = $1`, companyID)
}

// GetAcceptedJobsByWorkerID returns the jobs the worker has accepted.
func (r *Repository) GetAcceptedJobsByWorkerID(workerID int64) ([]*domain.Job, error) {
	return r.queryJobs(`j.id IN (SELECT job_id FROM job_acceptances WHERE worker_id = $1)`, workerID)
}

// GetOpenJobsForWorker returns the open jobs of the worker's company that
// the worker has neither accepted nor declined.
func (r *Repository) GetOpenJobsForWorker(worker *domain.Worker) ([]*domain.Job, error) {
	where := `
		j.company_id = $1 AND j.status = 'open'
		AND NOT EXISTS (SELECT 1 FROM job_acceptances a WHERE a.job_id = j.id AND a.worker_id = $2)
		AND NOT EXISTS (SELECT 1 FROM job_declines d WHERE d.job_id = j.id AND d.worker_id = $2)
	`
	return r.queryJobs(where, worker.CompanyID, worker.ID)
}

// DeleteJob only deletes jobs owned by companyID; anything else is sql.ErrNoRows.
func (r *Repository) DeleteJob(id, companyID int64) error {
	query := `DELETE FROM jobs WHERE id = $1 AND company_id = $2`

	ctx, cancel := r.queryContext()
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id, companyID)
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

// AcceptJob takes one slot of the job for the worker. Accepting a job the
// worker already holds is a no-op. The job becomes filled with its last slot.
func (r *Repository) AcceptJob(jobID, workerID int64) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var status domain.JobStatus
	var required int32
	query := `SELECT status, workers_required FROM jobs WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, jobID).Scan(&status, &required); err != nil {
		return err
	}

	var accepted bool
	query = `SELECT EXISTS (SELECT 1 FROM job_acceptances WHERE job_id = $1 AND worker_id = $2)`
	if err := tx.QueryRowContext(ctx, query, jobID, workerID).Scan(&accepted); err != nil {
		return err
	}
	if accepted {
		return tx.Commit()
	}

	if status != domain.JobStatusOpen {
		return ErrJobNotOpen
	}

	var taken int32
	query = `SELECT COUNT(*) FROM job_acceptances WHERE job_id = $1`
	if err := tx.QueryRowContext(ctx, query, jobID).Scan(&taken); err != nil {
		return err
	}
	if taken >= required {
		return ErrJobFull
	}

	query = `INSERT INTO job_acceptances (job_id, worker_id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, query, jobID, workerID); err != nil {
		return err
	}

	// drop an earlier decline
	query = `DELETE FROM job_declines WHERE job_id = $1 AND worker_id = $2`
	if _, err := tx.ExecContext(ctx, query, jobID, workerID); err != nil {
		return err
	}

	if taken+1 == required {
		query = `UPDATE jobs SET status = 'filled', version = version + 1 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, query, jobID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeclineJob hides an open job from the worker's list.
func (r *Repository) DeclineJob(jobID, workerID int64) error {
	query := `
		INSERT INTO job_declines (job_id, worker_id)
		SELECT id, $2 FROM jobs WHERE id = $1
		ON CONFLICT (job_id, worker_id) DO NOTHING
		RETURNING job_id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var id int64
	err := r.dbpool.QueryRowContext(ctx, query, jobID, workerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// a repeated decline returns no row; tell it apart from a missing job
		var exists bool
		if err := r.dbpool.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, jobID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
		return nil
	}

	return err
}

// RemoveAcceptedWorker frees the worker's slot; a filled job opens again.
func (r *Repository) RemoveAcceptedWorker(jobID, workerID int64) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM job_acceptances WHERE job_id = $1 AND worker_id = $2`
	result, err := tx.ExecContext(ctx, query, jobID, workerID)
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

	query = `UPDATE jobs SET status = 'open', version = version + 1 WHERE id = $1 AND status = 'filled'`
	if _, err := tx.ExecContext(ctx, query, jobID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetAcceptedWorkers lists the workers holding a slot of the job, in the
// order they accepted it.
func (r *Repository) GetAcceptedWorkers(jobID int64) ([]*domain.WorkerSummary, error) {
	query := `
		SELECT w.id, w.name, w.email
		FROM job_acceptances ja
		JOIN workers w ON w.id = ja.worker_id
		WHERE ja.job_id = $1
		ORDER BY ja.created_at, w.id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, jobID)
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
