package ctxutil

import (
	"context"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	jobKey       ctxKey = "job"
	jobRunKey    ctxKey = "job_run"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithJob stores the name of a background job and the id of its current run.
func WithJob(ctx context.Context, name, runID string) context.Context {
	ctx = context.WithValue(ctx, jobKey, name)
	return context.WithValue(ctx, jobRunKey, runID)
}

// JobFromCtx extracts the job name and run id. ok is false outside a job.
func JobFromCtx(ctx context.Context) (name, runID string, ok bool) {
	name, _ = ctx.Value(jobKey).(string)
	runID, _ = ctx.Value(jobRunKey).(string)
	return name, runID, name != ""
}
