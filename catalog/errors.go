package catalog

import (
	"errors"
	"fmt"

	"github.com/hupe1980/runbits/blobstore"
)

var (
	// ErrInvalidName is returned for names outside [A-Za-z0-9._/-]+, names
	// containing "..", and names starting with "/".
	ErrInvalidName = errors.New("invalid bitset name")

	// ErrNotFound is returned when no bitset is stored under a name. It
	// wraps blobstore.ErrNotFound.
	ErrNotFound = fmt.Errorf("bitset not found: %w", blobstore.ErrNotFound)
)

// OpError records the catalog operation and name that failed.
type OpError struct {
	Op   string
	Name string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("catalog: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, blobstore.ErrNotFound) && !errors.Is(err, ErrNotFound) {
		err = fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return &OpError{Op: op, Name: name, Err: err}
}
