// Package domain defines the persistence model for todos. The type is
// mapped with GORM and forms the core data layer of the todo application.
package domain

import "time"

// Todo represents a single task. Each todo carries a store-assigned UUID
// identifier and a title that is expected to be unique across the
// collection (checked at creation time, not enforced by a constraint).
//
// Fields:
//   - ID: stable UUID primary key (char(36)); immutable after creation.
//   - Title: human-readable task title; never empty after a successful
//     create or update.
//   - CreatedAt / UpdatedAt: timestamps managed by the repository (UTC).
//
// Deletion is physical: there is no soft-delete marker, a removed todo
// leaves no row behind.
type Todo struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Title     string    `json:"title"     gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Todo.
func (Todo) TableName() string { return "todos" }
