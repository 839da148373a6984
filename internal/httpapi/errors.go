package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"voicevoxcore/pkg/types"
	"voicevoxcore/pkg/voicevox"
)

// statusFor maps binding errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case voicevox.IsMetasUnavailable(err):
		return http.StatusServiceUnavailable
	case voicevox.IsMetasParse(err):
		return http.StatusBadGateway
	case voicevox.IsInvalidState(err):
		return http.StatusConflict
	case voicevox.IsCallFailed(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes it with the mapped status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if zlog != nil {
		z := zlog.Warn().Int("status", status).Str("path", r.URL.Path)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Err(err).Msg("request failed")
	}
	writeJSONError(w, status, err.Error())
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
