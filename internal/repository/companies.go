package repository

import (
	"github.com/quackapp/shift-matching/backend/internal/domain"
)

func (r *Repository) GetCompanyByID(id int64) (*domain.Company, error) {
	query := `
		SELECT username, name, email, password_hash, package, created_at, version
		FROM companies WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	company := &domain.Company{
		ID: id,
	}

	dst := []any{&company.Username, &company.Name, &company.Email, &company.PasswordHash, &company.Package, &company.CreatedAt, &company.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return company, nil
}

func (r *Repository) GetCompanyByUsername(username string) (*domain.Company, error) {
	query := `
		SELECT id, name, email, password_hash, package, created_at, version
		FROM companies WHERE username = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	company := &domain.Company{
		Username: username,
	}

	dst := []any{&company.ID, &company.Name, &company.Email, &company.PasswordHash, &company.Package, &company.CreatedAt, &company.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return company, nil
}

func (r *Repository) GetCompanyByEmail(email string) (*domain.Company, error) {
	query := `
		SELECT id, username, name, password_hash, package, created_at, version
		FROM companies WHERE email = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	company := &domain.Company{
		Email: email,
	}

	dst := []any{&company.ID, &company.Username, &company.Name, &company.PasswordHash, &company.Package, &company.CreatedAt, &company.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return company, nil
}

func (r *Repository) CreateCompany(company *domain.Company) error {
	query := `
		INSERT INTO companies (username, name, email, password_hash, package)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{company.Username, company.Name, company.Email, company.PasswordHash, company.Package}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&company.ID, &company.CreatedAt, &company.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCompany(company *domain.Company) error {
	query := `
		UPDATE companies
		SET
			name = $1,
			email = $2,
			password_hash = $3,
			package = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{company.Name, company.Email, company.PasswordHash, company.Package, company.ID, company.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&company.Version); err != nil {
		return err
	}

	return nil
}
