package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the verified token subject (the account email).
	CtxKeySubject ctxKey = "subject"
)

// SubjectFromContext returns the authenticated subject, or "" if the request
// did not pass through AuthnMiddleware.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
