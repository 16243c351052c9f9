package usecase

import (
	"context"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
)

// History lists and deletes a user's saved analyses.
type History struct {
	store repository.HistoryStore
}

// NewHistory wires the history reader.
func NewHistory(store repository.HistoryStore) *History {
	return &History{store: store}
}

// List returns records newest first.
func (h *History) List(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	return h.store.List(ctx, userID, limit)
}

// Delete removes one record owned by the user. Returns false when the
// record does not exist or belongs to someone else.
func (h *History) Delete(ctx context.Context, recordID, userID string) (bool, error) {
	return h.store.Delete(ctx, recordID, userID)
}
