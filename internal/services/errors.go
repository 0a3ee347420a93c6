package services

import "errors"

// ErrDatasetUnavailable reports that the raw delivery log could not be
// read or normalized. Handlers map it to a 503 response.
var ErrDatasetUnavailable = errors.New("dataset unavailable")
