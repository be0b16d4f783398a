package repository

import (
	"github.com/quackapp/shift-matching/backend/internal/domain"
)

func (r *Repository) CreateMessage(msg *domain.Message) error {
	query := `
		INSERT INTO messages (company_id, sender_role, sender_id, sender_name, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{msg.CompanyID, msg.SenderRole, msg.SenderID, msg.SenderName, msg.Body}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetMessagesByCompanyID returns the company's board, oldest first.
func (r *Repository) GetMessagesByCompanyID(companyID int64) ([]*domain.Message, error) {
	query := `
		SELECT id, sender_role, sender_id, sender_name, body, created_at
		FROM messages WHERE company_id = $1
		ORDER BY created_at, id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		msg := &domain.Message{CompanyID: companyID}
		dst := []any{&msg.ID, &msg.SenderRole, &msg.SenderID, &msg.SenderName, &msg.Body, &msg.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
