// Package repository provides read-only access to the course catalog and the
// role requirement table.
package repository

import "github.com/okian/upskill/internal/domain/model"

// Store exposes the reference data the engine plans against. Implementations
// are immutable after construction and safe for concurrent use.
type Store interface {
	// Courses returns the catalog in catalog order.
	Courses() []model.Course
	// Course returns one course. Returns ErrNotFound if the id is unknown.
	Course(id string) (model.Course, error)
	// Roles returns every role requirement in catalog order.
	Roles() []model.RoleRequirement
	// Role matches name case-insensitively.
	Role(name string) (model.RoleRequirement, bool)
}
