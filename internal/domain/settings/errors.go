package settings

import "errors"

var ErrSettingsNotFound = errors.New("organization settings not found")
