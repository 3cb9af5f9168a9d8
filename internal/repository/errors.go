package repository

import "errors"

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrLineNotFound = errors.New("item not found in cart")
	// ErrLineExists means a conditional push found the line already in
	// the cart; the caller increments it instead.
	ErrLineExists          = errors.New("item already in cart")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrMenuNotFound        = errors.New("menu not found")

	// ErrCartAlreadyReserved means the unique cart_id index rejected a
	// second reservation for the same cart.
	ErrCartAlreadyReserved = errors.New("cart already has a reservation")
	// ErrDuplicateCode means the generated confirmation code collided;
	// the caller regenerates and retries.
	ErrDuplicateCode = errors.New("reservation code already exists")
)

// StorageError wraps an underlying store failure (network, permission,
// timeout) so callers can tell an I/O fault apart from a missing document.
// Operations that fail with it are safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
