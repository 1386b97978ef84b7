package employee

import "time"

type Employee struct {
	ID                string
	OrganizationID    string
	FullName          string
	PositionTitle     string
	HasRegisteredFace bool
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
