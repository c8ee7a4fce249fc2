package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/core/ports"
)

// maxEntityBytes caps a single upsert payload.
const maxEntityBytes = 1 << 20

type entityGateway interface {
	List(ctx context.Context, resource string) (json.RawMessage, error)
	Save(ctx context.Context, resource string, entity domain.Entity, enricher ports.Enricher) (json.RawMessage, error)
	Delete(ctx context.Context, resource, id string) error
}

// EnricherFactory builds an audit enricher bound to the current operator.
type EnricherFactory func(ctx context.Context) ports.Enricher

type EntityHandler struct {
	entities    entityGateway
	newEnricher EnricherFactory
}

func NewEntityHandler(entities entityGateway, newEnricher EnricherFactory) *EntityHandler {
	return &EntityHandler{entities: entities, newEnricher: newEnricher}
}

// List returns every record of a resource.
//
// @Summary      List entities
// @Tags         entities
// @Produce      json
// @Param        resource  path  string  true  "Resource name"
// @Success      200
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /admin/api/entities/{resource} [get]
func (h *EntityHandler) List(c echo.Context) error {
	out, err := h.entities.List(c.Request().Context(), c.Param("resource"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, orEmpty(out))
}

// Save inserts or updates a record after stamping audit fields.
//
// @Summary      Save entity
// @Tags         entities
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "Resource name"
// @Success      200
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/api/entities/{resource} [post]
func (h *EntityHandler) Save(c echo.Context) error {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxEntityBytes)
	var entity domain.Entity
	if err := json.NewDecoder(body).Decode(&entity); err != nil || entity == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	ctx := c.Request().Context()
	out, err := h.entities.Save(ctx, c.Param("resource"), entity, h.newEnricher(ctx))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, orEmpty(out))
}

// Delete removes a record.
//
// @Summary      Delete entity
// @Tags         entities
// @Param        resource  path  string  true  "Resource name"
// @Param        id        path  string  true  "Record id"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Router       /admin/api/entities/{resource}/{id} [delete]
func (h *EntityHandler) Delete(c echo.Context) error {
	if err := h.entities.Delete(c.Request().Context(), c.Param("resource"), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func orEmpty(b json.RawMessage) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}
