package repository

import (
	"context"
	"fmt"

	"portfolio-resume/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

type ContactsRepo struct {
	pool *pgxpool.Pool
}

func NewContactsRepo(pool *pgxpool.Pool) *ContactsRepo {
	return &ContactsRepo{pool: pool}
}

func (r *ContactsRepo) Save(ctx context.Context, m *domain.ContactMessage) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}
