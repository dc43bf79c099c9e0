package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrWishNotFound indicates that the requested wish does not exist for
	// the calling owner. Lookups never reveal whether the id exists under a
	// different owner.
	ErrWishNotFound = fmt.Errorf("%w: wish", ErrNotFound)

	// ErrDuplicateID indicates that the owner already has a wish with the
	// given id.
	ErrDuplicateID = fmt.Errorf("%w: wish id", ErrDuplicate)

	// ErrInvalidSortKey is returned when a sort key is not one of the
	// recognized values.
	ErrInvalidSortKey = errors.New("invalid sort key")
)
