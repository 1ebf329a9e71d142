package usecase

import (
	"errors"
	"fmt"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
)

// retryOnConflict runs a read-modify-write attempt and repeats it once when
// the write lost an optimistic concurrency race.
func retryOnConflict[T any](attempt func() (T, error)) (T, error) {
	result, err := attempt()
	if errors.Is(err, domainErrors.ErrConcurrentModification) {
		return attempt()
	}
	return result, err
}

// persistenceFailure marks a failed write as a persistence error. Version
// conflicts and vanished orders keep their own kind.
func persistenceFailure(err error) error {
	if err == nil ||
		errors.Is(err, domainErrors.ErrConcurrentModification) ||
		errors.Is(err, domainErrors.ErrOrderNotFound) ||
		errors.Is(err, domainErrors.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", domainErrors.ErrPersistence, err)
}
