// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidWish is the root error for every wish schema violation. Specific
// violations wrap it so callers can classify with errors.Is while logs keep
// the field-level detail.
var ErrInvalidWish = errors.New("invalid wish")

// Field-specific validation errors.
var (
	// ErrWishIDRequired is returned when the id field is missing or not an integer.
	ErrWishIDRequired = fmt.Errorf("%w: id must be an integer", ErrInvalidWish)

	// ErrWishTitleLength is returned when the title is missing, empty, or
	// longer than 50 characters.
	ErrWishTitleLength = fmt.Errorf("%w: title must be 1-50 characters", ErrInvalidWish)

	// ErrWishLinkLength is returned when the link exceeds 200 characters.
	ErrWishLinkLength = fmt.Errorf("%w: link must be at most 200 characters", ErrInvalidWish)

	// ErrWishNotesLength is returned when the notes exceed 500 characters.
	ErrWishNotesLength = fmt.Errorf("%w: notes must be at most 500 characters", ErrInvalidWish)

	// ErrWishCategoryLength is returned when the category exceeds 30 characters.
	ErrWishCategoryLength = fmt.Errorf("%w: category must be at most 30 characters", ErrInvalidWish)

	// ErrWishPriceInvalid is returned when the price estimate is not a
	// non-negative decimal with at most 2 fractional digits and 12 digits total.
	ErrWishPriceInvalid = fmt.Errorf(
		"%w: price_estimate must be a non-negative decimal with at most 2 fractional digits",
		ErrInvalidWish,
	)
)
