// Package resource implements create, read, update, delete and list for every
// stored entity on top of a database.Collection, enforcing uniqueness scopes
// and partial-update rules uniformly.
package resource

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultSortColumn = "created_at"

// Scope is a set of columns whose combined value must be unique.
type Scope[T any] struct {
	Columns []string
	// Values returns the record's current value for every column in Columns.
	Values func(doc *T) map[string]any
}

// Spec configures an Engine for one entity.
type Spec[T any] struct {
	Entity       string
	Scopes       []Scope[T]
	Sortable     []string
	DefaultLimit int
	MaxLimit     int
	// OnCreate runs before uniqueness checks and insertion.
	OnCreate func(doc *T, now time.Time) error
	// OnUpdate may add derived columns to patch. current is the stored record.
	OnUpdate func(current *T, patch database.Patch, now time.Time) error
}

// Engine is the shared write path for one entity collection.
type Engine[T any, P interface {
	*T
	models.Document
}] struct {
	col  *database.Collection[T]
	spec Spec[T]
	now  func() time.Time
}

func NewEngine[T any, P interface {
	*T
	models.Document
}](col *database.Collection[T], spec Spec[T]) *Engine[T, P] {
	return &Engine[T, P]{
		col:  col,
		spec: spec,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine[T, P]) Entity() string {
	return e.spec.Entity
}

// Create checks every uniqueness scope, assigns id and timestamps, and stores doc.
func (e *Engine[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	now := e.now()
	if e.spec.OnCreate != nil {
		if err := e.spec.OnCreate(doc, now); err != nil {
			return nil, err
		}
	}

	for _, scope := range e.spec.Scopes {
		if err := e.checkScope(ctx, scope, scope.Values(doc), uuid.Nil); err != nil {
			return nil, err
		}
	}

	P(doc).Stamp(now)
	if err := e.col.Insert(ctx, doc); err != nil {
		return nil, e.wrap("create", err)
	}
	return doc, nil
}

// Get returns the record with id.
func (e *Engine[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return e.FindOne(ctx, database.ByID(id))
}

// FindOne returns the first record matching filter.
func (e *Engine[T, P]) FindOne(ctx context.Context, filter database.Filter) (*T, error) {
	doc, err := e.col.FindOne(ctx, filter)
	if err != nil {
		return nil, e.wrap("get", err)
	}
	return doc, nil
}

// Update applies a partial update to the record with id and returns the
// record as stored afterwards. Nil values in patch are dropped.
func (e *Engine[T, P]) Update(ctx context.Context, id uuid.UUID, patch database.Patch) (*T, error) {
	patch = compact(patch)
	if len(patch) == 0 {
		return nil, errs.NewEmptyPatchError()
	}

	touched := e.touchedScopes(patch)
	var current *T
	if len(touched) > 0 || e.spec.OnUpdate != nil {
		var err error
		if current, err = e.Get(ctx, id); err != nil {
			return nil, err
		}
	}

	for _, scope := range touched {
		merged := scope.Values(current)
		for _, column := range scope.Columns {
			if v, ok := patch[column]; ok {
				merged[column] = v
			}
		}
		if err := e.checkScope(ctx, scope, merged, id); err != nil {
			return nil, err
		}
	}

	now := e.now()
	patch["updated_at"] = now
	if e.spec.OnUpdate != nil {
		if err := e.spec.OnUpdate(current, patch, now); err != nil {
			return nil, err
		}
	}

	affected, err := e.col.Update(ctx, database.ByID(id), patch)
	if err != nil {
		return nil, e.wrap("update", err)
	}
	if affected == 0 {
		exists, err := e.col.Exists(ctx, database.ByID(id))
		if err != nil {
			return nil, e.wrap("update", err)
		}
		if !exists {
			return nil, errs.NewNotFound(e.spec.Entity)
		}
	}
	return e.Get(ctx, id)
}

// Increment adds one to column and returns the updated record.
func (e *Engine[T, P]) Increment(ctx context.Context, id uuid.UUID, column string) (*T, error) {
	affected, err := e.col.Increment(ctx, database.ByID(id), column, 1)
	if err != nil {
		return nil, e.wrap("update", err)
	}
	if affected == 0 {
		return nil, errs.NewNotFound(e.spec.Entity)
	}
	return e.Get(ctx, id)
}

// Delete removes the record with id.
func (e *Engine[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := e.col.Delete(ctx, database.ByID(id))
	if err != nil {
		return e.wrap("delete", err)
	}
	if deleted == 0 {
		return errs.NewNotFound(e.spec.Entity)
	}
	return nil
}

// ListParams selects one page of records. A zero Limit selects the
// entity's default page size.
type ListParams struct {
	Filter    database.Filter
	SortBy    string
	SortOrder string
	Skip      int
	Limit     int
}

// Page is one page of a list along with the number of matching records.
type Page[T any] struct {
	Items []T
	Total int64
}

// List returns one page of records matching params.Filter.
func (e *Engine[T, P]) List(ctx context.Context, params ListParams) (Page[T], error) {
	opts, err := e.findOptions(params)
	if err != nil {
		return Page[T]{}, err
	}

	var page Page[T]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := e.col.Find(gctx, params.Filter, opts)
		page.Items = items
		return err
	})
	g.Go(func() error {
		total, err := e.col.Count(gctx, params.Filter)
		page.Total = total
		return err
	})
	if err := g.Wait(); err != nil {
		return Page[T]{}, e.wrap("list", err)
	}
	return page, nil
}

func (e *Engine[T, P]) findOptions(params ListParams) (database.FindOptions, error) {
	limit := params.Limit
	if limit == 0 {
		limit = e.spec.DefaultLimit
	}
	if limit < 1 || (e.spec.MaxLimit > 0 && limit > e.spec.MaxLimit) {
		return database.FindOptions{}, errs.NewInvalidFieldError("limit",
			fmt.Sprintf("must be between 1 and %d", e.spec.MaxLimit))
	}
	if params.Skip < 0 {
		return database.FindOptions{}, errs.NewInvalidFieldError("skip", "must not be negative")
	}

	sort := database.Sort{Column: defaultSortColumn, Desc: true}
	if slices.Contains(e.spec.Sortable, params.SortBy) {
		desc, err := parseSortOrder(params.SortOrder)
		if err != nil {
			return database.FindOptions{}, err
		}
		sort = database.Sort{Column: params.SortBy, Desc: desc}
	}

	return database.FindOptions{
		Sort:  []database.Sort{sort},
		Skip:  params.Skip,
		Limit: limit,
	}, nil
}

// parseSortOrder accepts asc/desc as well as 1/-1. Descending is the default.
func parseSortOrder(order string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "desc", "-1":
		return true, nil
	case "asc", "1":
		return false, nil
	}
	return false, errs.NewInvalidEnumError("sort_order", order, []string{"asc", "desc", "1", "-1"})
}

func (e *Engine[T, P]) touchedScopes(patch database.Patch) []Scope[T] {
	var touched []Scope[T]
	for _, scope := range e.spec.Scopes {
		if slices.ContainsFunc(scope.Columns, patch.Has) {
			touched = append(touched, scope)
		}
	}
	return touched
}

// checkScope fails with Conflict when another record already holds values.
// exclude is the record being updated, or uuid.Nil on create.
func (e *Engine[T, P]) checkScope(ctx context.Context, scope Scope[T], values map[string]any, exclude uuid.UUID) error {
	filter := make(database.Filter, 0, len(scope.Columns)+1)
	for _, column := range scope.Columns {
		filter = append(filter, database.Eq(column, values[column]))
	}
	if exclude != uuid.Nil {
		filter = append(filter, database.Ne("id", exclude))
	}

	exists, err := e.col.Exists(ctx, filter)
	if err != nil {
		return e.wrap("check", err)
	}
	if exists {
		return errs.NewAlreadyExists(e.spec.Entity, describeScope(scope.Columns, values))
	}
	return nil
}

func describeScope(columns []string, values map[string]any) string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("%s '%v'", column, values[column])
	}
	return strings.Join(parts, " and ")
}

func (e *Engine[T, P]) wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(e.spec.Entity)
	}
	return errs.NewDatabaseError(op, e.spec.Entity, err)
}

func compact(patch database.Patch) database.Patch {
	out := make(database.Patch, len(patch))
	for k, v := range patch {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
