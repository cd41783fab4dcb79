// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/adgenius/internal/domain/model"
	"github.com/okian/adgenius/pkg/logger"
	"github.com/okian/adgenius/pkg/metrics"
)

// PromptsHandler serves trending prompt searches.
type PromptsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewPromptsHandler creates a new prompts handler.
func NewPromptsHandler(deps Dependencies, l logger.Logger) *PromptsHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &PromptsHandler{deps: deps, logger: l}
}

// HandleTrending handles GET /api/prompts/trending?q=<term>.
func (h *PromptsHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	ctx := r.Context()

	// A repeated q resolves to its last occurrence.
	var q string
	qs, present := r.URL.Query()["q"]
	if present {
		q = qs[len(qs)-1]
	}
	query := h.deps.ResolveQuery(q, present)

	cards, err := h.deps.Trending(ctx, query)
	if err != nil {
		f := classifySearchError(err)
		metrics.RecordErrorByType(f.errorType, getErrorSeverity(f.status))
		h.logger.Error(ctx, "trending search failed",
			logger.String("query", query),
			logger.Int("status", f.status),
			logger.Error(err))
		writeDetail(w, f.status, f.detail)
		return
	}

	if cards == nil {
		cards = []model.PromptCard{}
	}
	h.logger.Info(ctx, "trending search served",
		logger.String("query", query),
		logger.Int("cards", len(cards)))
	writeJSON(w, http.StatusOK, cards)
}
