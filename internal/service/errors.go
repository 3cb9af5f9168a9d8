package service

import "errors"

// ErrInvalidPickup rejects a checkout whose pickup slot is malformed,
// in the past, or outside the serving hours.
var ErrInvalidPickup = errors.New("invalid pickup slot")
