package panel

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewHandler mounts the panel's HTTP surface:
//
//	GET  /actions          list actions
//	POST /actions/{index}  invoke an action (202 Accepted; it runs on the next frame)
//	GET  /status           status snapshot
//
// Parameters:
//   - p: the panel to expose
//   - logger: request logger; nil disables request logging
//
// Returns:
//   - http.Handler: the router
func NewHandler(p Panel, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if logger != nil {
		r.Use(requestLogger(logger))
	}

	r.Get("/actions", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, p.Actions())
	})

	r.Post("/actions/{index}", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := p.Invoke(index); err != nil {
			if errors.Is(err, ErrUnknownAction) {
				writeError(w, http.StatusNotFound, err)
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		action, _ := p.Lookup(index)
		writeJSON(w, http.StatusAccepted, action)
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		status := p.Status()
		if status == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no status source"})
			return
		}
		writeJSON(w, http.StatusOK, status)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("panel request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
