package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
)

// EntityClient drives the catalog's list, upsert and delete endpoints.
type EntityClient struct {
	client *Client
}

func NewEntityClient(client *Client) *EntityClient {
	return &EntityClient{client: client}
}

// List returns the backend's payload for the resource verbatim.
func (e *EntityClient) List(ctx context.Context, resource string) (json.RawMessage, error) {
	r, err := domain.LookupResource(resource)
	if err != nil {
		return nil, err
	}
	var out json.RawMessage
	if err := e.client.Send(ctx, http.MethodGet, r.ListPath, nil, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", resource, err)
	}
	return out, nil
}

// Save stamps audit fields onto entity through enricher and upserts it.
func (e *EntityClient) Save(ctx context.Context, resource string, entity domain.Entity, enricher ports.Enricher) (json.RawMessage, error) {
	r, err := domain.LookupResource(resource)
	if err != nil {
		return nil, err
	}
	entity = enricher.Enrich(entity)

	var out json.RawMessage
	if err := e.client.Send(ctx, http.MethodPost, r.UpsertPath, entity, &out); err != nil {
		return nil, fmt.Errorf("save %s: %w", resource, err)
	}
	return out, nil
}

// Delete removes the record with id.
func (e *EntityClient) Delete(ctx context.Context, resource, id string) error {
	r, err := domain.LookupResource(resource)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("delete %s: id is required", resource)
	}

	path := r.DeletePath + "/" + url.PathEscape(id)
	if r.DeleteParam != "" {
		path = r.DeletePath + "?" + url.Values{r.DeleteParam: {id}}.Encode()
	}
	if err := e.client.Send(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}
	return nil
}
