package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mytime/console/internal/core/domain"
	"github.com/mytime/console/internal/pkg/clock"
	"github.com/mytime/console/internal/pkg/metrics"
)

// AuditEnricher stamps creation and modification metadata onto outgoing
// entity payloads. The actor is captured once when the enricher is built.
type AuditEnricher struct {
	actor any
	clock clock.Clock
}

func NewAuditEnricher(actorID string, clk clock.Clock) *AuditEnricher {
	if clk == nil {
		clk = clock.Real()
	}
	return &AuditEnricher{actor: numericActor(actorID), clock: clk}
}

type currentUserReader interface {
	CurrentUser(ctx context.Context) *domain.CurrentUser
}

// AuditEnricherFor builds an enricher for whoever is logged in right now.
// Without a session the actor is nil.
func AuditEnricherFor(ctx context.Context, account currentUserReader, clk clock.Clock) *AuditEnricher {
	var id string
	if u := account.CurrentUser(ctx); u != nil {
		id = u.ID
	}
	return NewAuditEnricher(id, clk)
}

// Actor is the numeric actor id, or nil.
func (e *AuditEnricher) Actor() any { return e.actor }

// Enrich mutates entity in place and returns it. CreatedOn and CreatedBy are
// only filled when falsy; ModifiedOn and ModifiedBy are always overwritten;
// IsActive defaults to true only when the key is absent.
func (e *AuditEnricher) Enrich(entity domain.Entity) domain.Entity {
	if entity == nil {
		entity = domain.Entity{}
	}
	now := e.clock.Now().UTC()

	kind := "update"
	if isFalsy(entity[domain.FieldCreatedOn]) {
		entity[domain.FieldCreatedOn] = now
		kind = "create"
	}
	if isFalsy(entity[domain.FieldCreatedBy]) {
		entity[domain.FieldCreatedBy] = e.actor
	} else {
		entity[domain.FieldCreatedBy] = numericValue(entity[domain.FieldCreatedBy])
	}
	entity[domain.FieldModifiedOn] = now
	entity[domain.FieldModifiedBy] = e.actor
	if _, ok := entity[domain.FieldIsActive]; !ok {
		entity[domain.FieldIsActive] = true
	}

	metrics.AuditEnrichmentsTotal.WithLabelValues(kind).Inc()
	return entity
}

// numericActor parses an id into an int64 or float64. Anything else is nil.
func numericActor(id string) any {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(id, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return nil
}

func numericValue(v any) any {
	switch t := v.(type) {
	case string:
		return numericActor(t)
	case json.Number:
		return numericActor(t.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return t
	default:
		return nil
	}
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case time.Time:
		return t.IsZero()
	case json.Number:
		f, err := t.Float64()
		return err != nil || f == 0
	case int:
		return t == 0
	case int8:
		return t == 0
	case int16:
		return t == 0
	case int32:
		return t == 0
	case int64:
		return t == 0
	case uint:
		return t == 0
	case uint8:
		return t == 0
	case uint16:
		return t == 0
	case uint32:
		return t == 0
	case uint64:
		return t == 0
	case float32:
		return t == 0 || math.IsNaN(float64(t))
	case float64:
		return t == 0 || math.IsNaN(t)
	}
	return false
}
