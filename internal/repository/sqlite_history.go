package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"LithiumHedge/internal/domain/models"

	"github.com/google/uuid"
)

// Save appends an analysis record and returns its id.
func (s *SQLiteStore) Save(ctx context.Context, userID, analysisType string, inputParams, resultSummary json.RawMessage) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_history (id, user_id, analysis_type, input_params, result_summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, analysisType, string(inputParams), string(resultSummary), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%w: save history: %v", models.ErrPersistence, err)
	}
	return id, nil
}

// List returns the user's records, newest first.
func (s *SQLiteStore) List(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, analysis_type, input_params, result_summary, created_at
		 FROM analysis_history WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list history: %v", models.ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]models.AnalysisRecord, 0, limit)
	for rows.Next() {
		var r models.AnalysisRecord
		var input, summary string
		if err := rows.Scan(&r.ID, &r.UserID, &r.AnalysisType, &input, &summary, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan history: %v", models.ErrPersistence, err)
		}
		r.InputParams = json.RawMessage(input)
		r.ResultSummary = json.RawMessage(summary)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate history: %v", models.ErrPersistence, err)
	}
	return records, nil
}

// Delete removes a record when it belongs to the user.
func (s *SQLiteStore) Delete(ctx context.Context, recordID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM analysis_history WHERE id = ? AND user_id = ?`, recordID, userID)
	if err != nil {
		return false, fmt.Errorf("%w: delete history: %v", models.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: delete history: %v", models.ErrPersistence, err)
	}
	return n > 0, nil
}
