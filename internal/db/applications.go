package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mathieu/applyassist/internal/types"
)

// SaveApplication records a generated letter and returns the new row ID.
// The skill report and the provider trace are stored as jsonb so degraded
// generations stay auditable.
func (db *DB) SaveApplication(ctx context.Context, candidateName, offerID string, letter types.GeneratedLetter) (uuid.UUID, error) {
	report, err := json.Marshal(letter.Report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal skill report: %w", err)
	}
	trace, err := json.Marshal(letter.Trace)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal generation trace: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (candidate_name, offer_id, letter_text, skill_report, generation_trace)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		candidateName, offerID, letter.Text, report, trace,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save application: %w", err)
	}
	return id, nil
}
