package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/domain/identifier"
	"workshop/internal/errs"
)

const opsRequestTimeout = 10 * time.Second

type counterReader interface {
	CurrentCounter(ctx context.Context, businessID uint64, kind identifier.Kind) (int64, bool, error)
}

type opsDeps struct {
	Metrics  http.Handler
	Ping     func(ctx context.Context) error
	Counters counterReader
}

// newOpsRouter serves the maintenance process endpoints: prometheus scrape,
// liveness and a read-only counter lookup for operators.
func newOpsRouter(deps opsDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, middleware.Timeout(opsRequestTimeout))

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.Ping != nil {
			if err := deps.Ping(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Counters != nil {
		r.Get("/tenants/{businessID}/counters/{kind}", func(w http.ResponseWriter, req *http.Request) {
			businessID, err := strconv.ParseUint(strings.TrimSpace(chi.URLParam(req, "businessID")), 10, 64)
			if err != nil || businessID == 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "business id must be a positive integer"})
				return
			}
			kind, err := identifier.ParseKind(chi.URLParam(req, "kind"))
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}

			value, found, err := deps.Counters.CurrentCounter(req.Context(), businessID, kind)
			if err != nil {
				logging.Error(
					logging.WithBusiness(req.Context(), businessID),
					"read counter failed",
					slog.String("request_id", middleware.GetReqID(req.Context())),
					slog.Any("err", errs.Loggable(err)),
				)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
				return
			}

			writeJSON(w, http.StatusOK, map[string]any{
				"business_id": businessID,
				"kind":        string(kind),
				"value":       value,
				"issued":      found,
			})
		})
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
