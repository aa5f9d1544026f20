package pg

import (
	"context"
	"errors"

	"github.com/you/staticman-prhook/internal/domain"
	"github.com/you/staticman-prhook/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.DeliveryLog = (*PGRepo)(nil)

type PGRepo struct {
	pool *pgxpool.Pool
}

func NewPGRepo(pool *pgxpool.Pool) *PGRepo {
	return &PGRepo{pool: pool}
}

// RecordDelivery upserts the outcome of a webhook delivery. A redelivery keeps
// the original receive time.
func (p *PGRepo) RecordDelivery(ctx context.Context, d domain.Delivery) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO webhook_deliveries (id, owner, repo, number, status, error, received_at)
        VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7)
        ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status, error=EXCLUDED.error`,
		d.ID, d.Owner, d.Repo, d.Number, d.Status, d.Error, d.ReceivedAt)
	return err
}

func (p *PGRepo) GetDelivery(ctx context.Context, id string) (domain.Delivery, error) {
	var d domain.Delivery
	var errText *string
	err := p.pool.QueryRow(ctx, `SELECT id, owner, repo, number, status, error, received_at
        FROM webhook_deliveries WHERE id=$1`, id).
		Scan(&d.ID, &d.Owner, &d.Repo, &d.Number, &d.Status, &errText, &d.ReceivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return d, repository.ErrNotFound
		}
		return d, err
	}
	if errText != nil {
		d.Error = *errText
	}
	return d, nil
}
