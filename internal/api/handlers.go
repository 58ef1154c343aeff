package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/firm-profiler/internal/export"
	"github.com/sells-group/firm-profiler/internal/profile"
)

type recordInput struct {
	Revenue *float64 `json:"revenue"`
	Colab   *float64 `json:"colab"`
	Lawsuit *float64 `json:"lawsuit"`
}

type classifyRequest struct {
	Records []recordInput      `json:"records"`
	Weights *profile.WeightSet `json:"weights"`
}

type classifyResponse struct {
	RunID   string            `json:"run_id"`
	Count   int               `json:"count"`
	Failed  int               `json:"failed"`
	Weights profile.WeightSet `json:"weights"`
	Results []export.Entry    `json:"results"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.classifier.Rules())
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if s.opts.MaxRecords > 0 && len(req.Records) > s.opts.MaxRecords {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("too many records: %d (max %d)", len(req.Records), s.opts.MaxRecords))
		return
	}

	weights := s.opts.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}
	if err := weights.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if weights.Revenue+weights.Colab+weights.Lawsuit == 0 {
		writeError(w, http.StatusBadRequest, "at least one weight must be nonzero")
		return
	}

	recs := make([]profile.Record, len(req.Records))
	for i, in := range req.Records {
		recs[i] = profile.Record{
			Revenue: valueOf(in.Revenue),
			Colab:   valueOf(in.Colab),
			Lawsuit: valueOf(in.Lawsuit),
		}
	}

	runID := uuid.New().String()
	outcomes := s.classifier.ClassifyBatch(r.Context(), recs, weights)
	if err := r.Context().Err(); err != nil {
		zap.L().Warn("api: classify cancelled", zap.String("run_id", runID), zap.Error(err))
		return
	}

	entries := export.Entries(nil, outcomes)
	failed := 0
	for _, e := range entries {
		if e.Error != "" {
			failed++
		}
	}

	zap.L().Info("api: classified batch",
		zap.String("run_id", runID),
		zap.Int("records", len(recs)),
		zap.Int("failed", failed),
	)

	writeJSON(w, http.StatusOK, classifyResponse{
		RunID:   runID,
		Count:   len(entries),
		Failed:  failed,
		Weights: weights,
		Results: entries,
	})
}

func valueOf(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return profile.Value(*v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
