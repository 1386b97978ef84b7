package organization

import "time"

type Organization struct {
	ID         string
	Name       string
	CameraCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
