package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrCameraCodeNotFound   = errors.New("camera code not found")
)
