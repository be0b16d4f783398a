package repository

import (
	"database/sql"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

func (r *Repository) GetWorkerByID(id int64) (*domain.Worker, error) {
	query := `
		SELECT company_id, name, email, password_hash, is_active, created_at, version
		FROM workers WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	worker := &domain.Worker{
		ID: id,
	}

	dst := []any{&worker.CompanyID, &worker.Name, &worker.Email, &worker.PasswordHash, &worker.IsActive, &worker.CreatedAt, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return worker, nil
}

func (r *Repository) GetWorkerByEmail(email string) (*domain.Worker, error) {
	query := `
		SELECT id, company_id, name, password_hash, is_active, created_at, version
		FROM workers WHERE email = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	worker := &domain.Worker{
		Email: email,
	}

	dst := []any{&worker.ID, &worker.CompanyID, &worker.Name, &worker.PasswordHash, &worker.IsActive, &worker.CreatedAt, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return worker, nil
}

func (r *Repository) CreateWorker(worker *domain.Worker) error {
	query := `
		INSERT INTO workers (company_id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{worker.CompanyID, worker.Name, worker.Email, worker.PasswordHash}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&worker.ID, &worker.IsActive, &worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	return nil
}

// RegisterWorker stores a self-registered worker. The account stays
// inactive until the company approves it.
func (r *Repository) RegisterWorker(worker *domain.Worker) error {
	query := `
		INSERT INTO workers (company_id, name, email, password_hash, is_active)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{worker.CompanyID, worker.Name, worker.Email, worker.PasswordHash}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&worker.ID, &worker.IsActive, &worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	return nil
}

// DeletePendingWorker removes a worker of companyID that was never approved.
// Active workers and workers of other companies yield sql.ErrNoRows.
func (r *Repository) DeletePendingWorker(id, companyID int64) error {
	query := `DELETE FROM workers WHERE id = $1 AND company_id = $2 AND NOT is_active`

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

// UpdateWorker uses optimistic locking on version; a stale worker yields sql.ErrNoRows.
func (r *Repository) UpdateWorker(worker *domain.Worker) error {
	query := `
		UPDATE workers
		SET
			name = $1,
			email = $2,
			password_hash = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{worker.Name, worker.Email, worker.PasswordHash, worker.IsActive, worker.ID, worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&worker.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkersByCompanyID(companyID int64) ([]*domain.Worker, error) {
	query := `
		SELECT id, name, email, password_hash, is_active, created_at, version
		FROM workers WHERE company_id = $1
		ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]*domain.Worker, 0)
	for rows.Next() {
		worker := &domain.Worker{CompanyID: companyID}
		dst := []any{&worker.ID, &worker.Name, &worker.Email, &worker.PasswordHash, &worker.IsActive, &worker.CreatedAt, &worker.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}
