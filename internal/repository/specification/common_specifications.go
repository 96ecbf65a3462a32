package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}

// TimeRange keeps rows whose Field is in [From, To). A zero bound is open.
type TimeRange struct {
	Field string
	From  time.Time
	To    time.Time
}

func (s TimeRange) Apply(db *gorm.DB) *gorm.DB {
	if !s.From.IsZero() {
		db = db.Where(fmt.Sprintf("%s >= ?", s.Field), s.From)
	}
	if !s.To.IsZero() {
		db = db.Where(fmt.Sprintf("%s < ?", s.Field), s.To)
	}
	return db
}

// Preload eager-loads relations. Soft-deleted listings are still loaded so history stays readable.
type Preload struct {
	Relations []string
}

func (s Preload) Apply(db *gorm.DB) *gorm.DB {
	for _, rel := range s.Relations {
		if rel == "Milk" {
			db = db.Preload(rel, func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
			continue
		}
		db = db.Preload(rel)
	}
	return db
}

func With(relations ...string) Specification {
	return Preload{Relations: relations}
}

// ForUpdate takes a row lock; only meaningful inside a transaction.
type ForUpdate struct{}

func (s ForUpdate) Apply(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
