package db

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS routes (
	id               UUID PRIMARY KEY,
	name             TEXT NOT NULL,
	owner_id         TEXT NOT NULL,
	distance_km      DOUBLE PRECISION NOT NULL,
	elevation_gain_m DOUBLE PRECISION NOT NULL DEFAULT 0,
	point_count      INTEGER NOT NULL,
	points           JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS routes_owner_created_idx ON routes (owner_id, created_at DESC);
`

// EnsureSchema creates the tables the services expect when they are missing.
func EnsureSchema(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, schema)
	return err
}
