package apiclient

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoRecord is returned when a create or update succeeds at the HTTP level
// but the response carries no record to reconcile with.
var ErrNoRecord = errors.New("apiclient: response carried no record")

// Resource is one bearer-authenticated backend collection whose records
// travel as W on the wire. Mapping W to the canonical model is left to the
// gateway that owns the Resource.
type Resource[W any] struct {
	Client *Client
	Path   string // e.g. "/admin/projects"
}

// List fetches the whole collection.
func (r Resource[W]) List(ctx context.Context, token string) ([]W, error) {
	env, err := r.Client.Do(ctx, http.MethodGet, r.Path, token, nil)
	if err != nil {
		return nil, err
	}
	items, err := DecodeList[W](env.Data)
	if err != nil {
		return nil, &Error{Method: http.MethodGet, Path: r.Path, Status: http.StatusOK, Err: err}
	}
	return items, nil
}

// Create posts body and returns the record the backend stored.
func (r Resource[W]) Create(ctx context.Context, token string, body any) (W, error) {
	return r.write(ctx, http.MethodPost, r.Path, token, body)
}

// Update puts body to the item and returns the record the backend stored.
func (r Resource[W]) Update(ctx context.Context, token, id string, body any) (W, error) {
	return r.write(ctx, http.MethodPut, ItemPath(r.Path, id), token, body)
}

// Patch sends a partial update. Backends are inconsistent about echoing the
// record for PATCH, so ok reports whether one came back.
func (r Resource[W]) Patch(ctx context.Context, token, id string, body any) (W, bool, error) {
	var zero W
	path := ItemPath(r.Path, id)
	env, err := r.Client.Do(ctx, http.MethodPatch, path, token, body)
	if err != nil {
		return zero, false, err
	}
	item, ok, err := DecodeItem[W](env.Data)
	if err != nil {
		// The change was applied; an undecodable echo is not fatal.
		r.Client.Log.Debug("ignoring undecodable PATCH response")
		return zero, false, nil
	}
	return item, ok, nil
}

// Delete removes the item.
func (r Resource[W]) Delete(ctx context.Context, token, id string) error {
	_, err := r.Client.Do(ctx, http.MethodDelete, ItemPath(r.Path, id), token, nil)
	return err
}

func (r Resource[W]) write(ctx context.Context, method, path, token string, body any) (W, error) {
	var zero W
	env, err := r.Client.Do(ctx, method, path, token, body)
	if err != nil {
		return zero, err
	}
	item, ok, err := DecodeItem[W](env.Data)
	if err != nil {
		return zero, &Error{Method: method, Path: path, Status: http.StatusOK, Err: err}
	}
	if !ok {
		return zero, &Error{Method: method, Path: path, Status: http.StatusOK, Err: ErrNoRecord}
	}
	return item, nil
}

