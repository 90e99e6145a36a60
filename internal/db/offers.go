package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mathieu/applyassist/internal/types"
)

// ListOffers returns the raw offer records from the job_offers table.
// Each row stores one offer as a jsonb payload; records that fail to decode
// are returned as an error because the table is the system's own storage,
// not untrusted input.
func (db *DB) ListOffers(ctx context.Context) ([]types.RawOffer, error) {
	rows, err := db.pool.Query(ctx, `SELECT payload FROM job_offers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var catalog []types.RawOffer
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		var offer types.RawOffer
		if err := json.Unmarshal(payload, &offer); err != nil {
			return nil, fmt.Errorf("failed to decode offer payload: %w", err)
		}
		catalog = append(catalog, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}
	return catalog, nil
}

// SaveOffer inserts or updates one raw offer record keyed by its id field
func (db *DB) SaveOffer(ctx context.Context, id string, offer types.RawOffer) error {
	payload, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("failed to marshal offer: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_offers (id, payload)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET payload = $2, updated_at = NOW()`,
		id, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer %s: %w", id, err)
	}
	return nil
}
