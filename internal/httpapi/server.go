package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voicevoxcore/pkg/types"
	"voicevoxcore/pkg/voicevox"
)

// Service defines the methods required by the HTTP API layer.
// *voicevox.Core satisfies it.
type Service interface {
	State() voicevox.State
	Ready() bool
	Metas() ([]types.SpeakerMeta, error)
	LastErrorMessage() (string, error)
}

var _ Service = (*voicevox.Core)(nil)

// NewMux builds the read-only diagnostics router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	if mw := corsMiddleware(); mw != nil {
		r.Use(mw)
	}
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(svc.State()))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.StatusResponse{State: string(svc.State()), Ready: svc.Ready()})
	})

	r.Get("/metas", func(w http.ResponseWriter, r *http.Request) {
		metas, err := svc.Metas()
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, types.MetasResponse{Speakers: metas})
	})

	r.Get("/styles/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "style id must be an integer")
			return
		}
		metas, err := svc.Metas()
		if err != nil {
			writeError(w, r, err)
			return
		}
		speaker, style, ok := types.FindStyle(metas, id)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "style "+strconv.FormatInt(id, 10)+" not found")
			return
		}
		sid, err := speaker.UUID()
		if err != nil {
			writeJSONError(w, http.StatusBadGateway, "speaker "+speaker.Name+" has a malformed speaker_uuid")
			return
		}
		writeJSON(w, types.StyleResponse{Speaker: speaker.Name, SpeakerUUID: sid, Style: style})
	})

	r.Get("/last-error", func(w http.ResponseWriter, r *http.Request) {
		msg, err := svc.LastErrorMessage()
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, types.LastErrorResponse{Message: msg})
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
