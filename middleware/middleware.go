// Package middleware validates form submissions at HTTP JSON boundaries.
package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/compiler"
)

// DefaultMaxBodyBytes caps submission bodies unless WithMaxBodyBytes is set.
const DefaultMaxBodyBytes = 1 << 20

// ctxKeySubmission is the context key for a validated submission record.
type ctxKeySubmission struct{}

// ContextWithSubmission attaches a validated record to the context.
func ContextWithSubmission(ctx context.Context, record map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeySubmission{}, record)
}

// SubmissionFromContext retrieves the record stored by Validate.
func SubmissionFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeySubmission{}).(map[string]any)
	return v, ok
}

// IssuePayload is the JSON shape of one issue.
type IssuePayload struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorPayload shapes a validation failure for JSON responses: the first
// message of every failing field plus the full issue list.
func ErrorPayload(err error) map[string]any {
	out := map[string]any{"error": err.Error()}
	var iss bf.Issues
	if se, ok := compiler.AsSubmissionError(err); ok {
		out["error"] = "invalid submission"
		out["fields"] = se.Messages()
		iss = se.Issues()
	} else if found, ok := bf.AsIssues(err); ok {
		iss = found
	}
	if len(iss) > 0 {
		list := make([]IssuePayload, 0, len(iss))
		for _, i := range iss {
			list = append(list, IssuePayload{Path: i.Path.Pointer(), Kind: string(i.Kind), Code: i.Code, Message: i.Message})
		}
		out["issues"] = list
	}
	return out
}

// Option configures Validate.
type Option func(*settings)

type settings struct {
	logger  zerolog.Logger
	metrics *Metrics
	maxBody int64
}

// WithLogger logs rejected submissions at debug level.
func WithLogger(l zerolog.Logger) Option { return func(s *settings) { s.logger = l } }

// WithMetrics records submission outcomes.
func WithMetrics(m *Metrics) Option { return func(s *settings) { s.metrics = m } }

// WithMaxBodyBytes caps the request body size.
func WithMaxBodyBytes(n int64) Option { return func(s *settings) { s.maxBody = n } }

// Validate decodes the JSON request body with the validator returned by
// current, stores the cleaned record in the request context on success, or
// responds 400 with an ErrorPayload. current is called per request so a
// reloaded form takes effect immediately.
func Validate(current func() *compiler.SubmissionValidator, opts ...Option) func(http.Handler) http.Handler {
	s := settings{logger: zerolog.Nop(), maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&s)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
			if err != nil {
				var tooLarge *http.MaxBytesError
				status := http.StatusBadRequest
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				s.observe(ResultMalformed, start)
				WriteJSON(w, status, map[string]any{"error": err.Error()})
				return
			}

			record, err := current().ValidateJSON(data)
			if err != nil {
				result := ResultRejected
				if _, ok := compiler.AsSubmissionError(err); !ok {
					if _, ok := bf.AsIssues(err); !ok {
						result = ResultMalformed
					}
				}
				s.observe(result, start)
				s.logger.Debug().Err(err).Str("path", r.URL.Path).Str("result", result).Msg("submission rejected")
				WriteJSON(w, http.StatusBadRequest, ErrorPayload(err))
				return
			}

			s.observe(ResultAccepted, start)
			next.ServeHTTP(w, r.WithContext(ContextWithSubmission(r.Context(), record)))
		})
	}
}

func (s *settings) observe(result string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.Submissions.WithLabelValues(result).Inc()
	s.metrics.ValidationDuration.Observe(time.Since(start).Seconds())
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
