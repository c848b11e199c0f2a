package registry

import "errors"

var (
	ErrInvalidHouseID     = errors.New("invalid house id")
	ErrMissingField       = errors.New("missing required field")
	ErrPartitionNotFound  = errors.New("partition not found")
	ErrPhotoStoreDisabled = errors.New("photo store not configured")
)
