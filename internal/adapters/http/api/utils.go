package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// TraceHeader carries the per-request trace id.
const TraceHeader = "X-Trace-ID"

const traceIDLength = 12

type traceKey struct{}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// NewTraceID returns a short random id.
func NewTraceID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:traceIDLength]
}

// TraceID returns the trace id stored in ctx, if any.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

func withTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
		var oe *opError
		if errors.As(err, &oe) {
			msg = oe.message()
		}
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, Trace: TraceID(r.Context())})
}

// decodeJSON reads one JSON document from the body. Unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}
