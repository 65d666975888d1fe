package database

import (
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type op int

const (
	opEq op = iota
	opNe
	opHas
)

// Cond is a single predicate on one column.
type Cond struct {
	Column string
	op     op
	Value  any
}

// Eq matches rows whose column equals value.
func Eq(column string, value any) Cond {
	return Cond{Column: column, op: opEq, Value: value}
}

// Ne matches rows whose column differs from value.
func Ne(column string, value any) Cond {
	return Cond{Column: column, op: opNe, Value: value}
}

// Has matches rows whose JSON array column contains value.
func Has(column string, value string) Cond {
	return Cond{Column: column, op: opHas, Value: value}
}

// Filter is a conjunction of conditions. The empty filter matches everything.
type Filter []Cond

// ByID matches the single document with the given id.
func ByID(id any) Filter {
	return Filter{Eq("id", id)}
}

// And returns a new filter with conds appended.
func (f Filter) And(conds ...Cond) Filter {
	out := make(Filter, 0, len(f)+len(conds))
	out = append(out, f...)
	return append(out, conds...)
}

func (f Filter) apply(db *gorm.DB) *gorm.DB {
	for _, c := range f {
		col := clause.Column{Name: c.Column}
		switch c.op {
		case opEq:
			db = db.Where(clause.Eq{Column: col, Value: c.Value})
		case opNe:
			db = db.Where(clause.Neq{Column: col, Value: c.Value})
		case opHas:
			db = applyHas(db, c.Column, c.Value.(string))
		}
	}
	return db
}

// applyHas builds a JSON array membership test for the connected dialect.
func applyHas(db *gorm.DB, column, value string) *gorm.DB {
	quoted := db.Statement.Quote(column)
	switch db.Dialector.Name() {
	case "postgres":
		needle, _ := json.Marshal([]string{value})
		return db.Where(quoted+" @> ?::jsonb", string(needle))
	default:
		return db.Where("EXISTS (SELECT 1 FROM json_each("+quoted+") WHERE json_each.value = ?)", value)
	}
}

// Sort orders results by one column.
type Sort struct {
	Column string
	Desc   bool
}

// FindOptions controls ordering and pagination of Find. A zero Limit means no limit.
type FindOptions struct {
	Sort  []Sort
	Skip  int
	Limit int
}

func (o FindOptions) apply(db *gorm.DB) *gorm.DB {
	for _, s := range o.Sort {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	if len(o.Sort) > 0 {
		// Stable pages when sort keys tie.
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	if o.Skip > 0 {
		db = db.Offset(o.Skip)
	}
	if o.Limit > 0 {
		db = db.Limit(o.Limit)
	}
	return db
}

// Patch is a sparse set of column assignments.
type Patch map[string]any

// Has reports whether the patch assigns column.
func (p Patch) Has(column string) bool {
	_, ok := p[column]
	return ok
}
