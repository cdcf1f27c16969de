package model

import "time"

// SoftDelete is embedded by every persisted entity. Rows are never removed;
// default reads skip rows with Deleted set.
type SoftDelete struct {
	Deleted   bool       `gorm:"not null;default:false;index"`
	DeletedAt *time.Time
}

// MarkDeleted flags the entity as deleted at the given instant.
func (s *SoftDelete) MarkDeleted(now time.Time) {
	at := now.UTC()
	s.Deleted = true
	s.DeletedAt = &at
}
