package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches after soft-delete filtering.
	ErrNotFound = errors.New("record not found")
	// ErrOverlap is returned when the database-level overlap guard rejects a write.
	ErrOverlap = errors.New("overlapping reservation")
)

// SoftDeleteFilter returns a scope that hides soft-deleted rows unless
// includeDeleted is set. It must be applied to every read of a soft-deletable table.
func SoftDeleteFilter(includeDeleted bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeDeleted {
			return db
		}
		return db.Where("deleted = ?", false)
	}
}
