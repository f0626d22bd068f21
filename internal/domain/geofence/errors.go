package geofence

import "errors"

var (
	ErrOfficeNotFound  = errors.New("office location not found")
	ErrOfficeNameTaken = errors.New("an office location with this name already exists")
)
