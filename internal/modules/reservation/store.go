// README: Reservation store backed by PostgreSQL.
package reservation

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO reservations (
			id, created_at, name, phone, category,
			origin, destination, travel_date,
			adults, children, infants, confirmed
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12
		)`,
		e.ID, e.CreatedAt, e.Name, e.Phone, e.Category,
		e.Origin, e.Destination, e.TravelDate,
		e.Adults, e.Children, e.Infants, e.Confirmed,
	)
	return err
}
