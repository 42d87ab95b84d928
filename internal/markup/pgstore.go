package markup

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads markup rules from Postgres. Schema:
//
//	CREATE TABLE markup_rules (
//	    airline_code     TEXT NOT NULL,
//	    caller_role      TEXT NOT NULL,
//	    origin_code      TEXT,
//	    destination_code TEXT,
//	    percent          DOUBLE PRECISION NOT NULL
//	);
//
// A NULL origin/destination pair marks the airline-wide rule.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const lookupQuery = `
SELECT percent
FROM markup_rules
WHERE airline_code = $1
  AND caller_role = $2
  AND origin_code IS NOT DISTINCT FROM $3
  AND destination_code IS NOT DISTINCT FROM $4
LIMIT 1`

func (s *PGStore) Lookup(ctx context.Context, q Query) (float64, bool, error) {
	q = q.normalized()

	var origin, dest any
	if q.Origin != "" {
		origin = q.Origin
	}
	if q.Dest != "" {
		dest = q.Dest
	}

	var percent float64
	err := s.pool.QueryRow(ctx, lookupQuery, q.Airline, string(q.Role), origin, dest).Scan(&percent)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return percent, true, nil
}
