package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStorageFailure is matched by every error returned from a store read or write.
var ErrStorageFailure = errors.New("storage failure")

type StorageError struct {
	Op   string
	Keys []string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s [%s]: %v", e.Op, strings.Join(e.Keys, ","), e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

func wrap(op string, keys []string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Keys: keys, Err: err}
}
