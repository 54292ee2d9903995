package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/utils/async"
)

// ReportHandler triggers release document generation over HTTP.
type ReportHandler struct {
	reportUC interfaces.ReportUseCase
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportUC interfaces.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// reportAccepted is the response body for an accepted generation request.
type reportAccepted struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

// Handle accepts a generation request and runs it in the background.
// Generation takes many repository round trips, so the handler responds 202
// immediately; progress and failures go to the log.
func (h *ReportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	requestID := uuid.NewString()
	logger.Info("Accepted report generation request", "request_id", requestID)

	async.Dispatch(ctx, func(ctx context.Context) error {
		_, _, err := h.reportUC.Generate(ctx)
		return err
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(reportAccepted{
		Status:    "accepted",
		RequestID: requestID,
	}); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
