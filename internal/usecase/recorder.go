package usecase

import (
	"context"
	"encoding/json"

	"LithiumHedge/internal/domain/repository"
	applogger "LithiumHedge/pkg/logger"
)

// recorder handles the best-effort side effects shared by the calculators:
// history append and analysis event publish. Failures are logged, never
// returned, so a storage outage cannot fail a calculation.
type recorder struct {
	history repository.HistoryStore
	events  repository.EventPublisher
	metrics repository.Metrics
	logger  *applogger.Logger
}

func (r recorder) record(ctx context.Context, userID, analysisType string, input, result interface{}) {
	if r.metrics != nil {
		r.metrics.RecordCalculation(analysisType)
	}

	if r.events != nil {
		if err := r.events.PublishAnalysis(ctx, userID, analysisType, result); err != nil {
			r.logger.Warn("analysis event publish failed",
				applogger.String("type", analysisType), applogger.Error(err))
		}
	}

	if r.history == nil || userID == "" {
		return
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		r.logger.Warn("history input marshal failed", applogger.Error(err))
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn("history result marshal failed", applogger.Error(err))
		return
	}

	if _, err := r.history.Save(ctx, userID, analysisType, inputJSON, resultJSON); err != nil {
		if r.metrics != nil {
			r.metrics.RecordError("history_save")
		}
		r.logger.Warn("history save failed",
			applogger.String("type", analysisType),
			applogger.String("user_id", userID),
			applogger.Error(err))
	}
}
