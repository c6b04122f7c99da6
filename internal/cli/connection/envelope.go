package connection

import (
	"context"
	"net/http"
)

// Envelope is the {data: T} wrapper of every successful API response.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// Get issues GET path and returns the unwrapped payload.
func Get[T any](ctx context.Context, d Doer, path string) (T, error) {
	return call[T](ctx, d, http.MethodGet, path, nil)
}

// Post issues POST path with body and returns the unwrapped payload.
func Post[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	return call[T](ctx, d, http.MethodPost, path, body)
}

// Patch issues PATCH path with body and returns the unwrapped payload.
func Patch[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	return call[T](ctx, d, http.MethodPatch, path, body)
}

// Delete issues DELETE path. Any response body is discarded.
func Delete(ctx context.Context, d Doer, path string) error {
	return d.Do(ctx, http.MethodDelete, path, nil, nil)
}

func call[T any](ctx context.Context, d Doer, method, path string, body any) (T, error) {
	var env Envelope[T]
	if err := d.Do(ctx, method, path, body, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}
