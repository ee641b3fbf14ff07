package pending

import (
	"errors"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUpload             = errors.New("attachment upload failed")
	ErrRemoteWrite        = errors.New("remote write failed")
	ErrStorageUnavailable = errors.New("local store unavailable")
	ErrScopeUnresolved    = errors.New("company scope unresolved")
	ErrNotFound           = errors.New("pending record not found")
)
