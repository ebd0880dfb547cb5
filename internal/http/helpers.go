package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"pousada/internal/log"
	"pousada/internal/middleware/trace"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg, RequestID: trace.GetRequestID(r.Context())})
}

// writeSourceError reports a failed backend read as 502.
func (s *Server) writeSourceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Data source error",
		log.FieldOperation, op,
		log.FieldError, err.Error())
	writeError(w, r, http.StatusBadGateway, "data source unavailable")
}

// extractClientIP prefers the first X-Forwarded-For hop, then X-Real-IP,
// then the connection address without its port.
func extractClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
