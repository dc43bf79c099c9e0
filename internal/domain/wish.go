package domain

import (
	"fmt"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Wish represents a single wishlist record owned by an authenticated user.
// The price estimate is carried as an exact decimal end to end; it never
// passes through binary floating point.
type Wish struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Link     *string          `json:"link"`
	Price    *decimal.Decimal `json:"price_estimate"`
	Notes    *string          `json:"notes"`
	Category *string          `json:"category"`
	Owner    string           `json:"owner"`
}

// wishFields is the closed set of keys accepted on input. Anything else is a
// schema violation, not something to silently drop.
var wishFields = map[string]struct{}{
	"id":             {},
	"title":          {},
	"link":           {},
	"price_estimate": {},
	"notes":          {},
	"category":       {},
	"owner":          {},
}

// MaxPriceFractionDigits bounds the scale of a price estimate.
const MaxPriceFractionDigits = 2

// MaxPriceDigits bounds the total number of significant digits in a price estimate.
const MaxPriceDigits = 12

// ParseWish validates raw (a decoded JSON object with numbers as json.Number)
// against the wish schema and returns the resulting record. The owner is
// always the caller's identity; a client-supplied owner field is accepted as
// a key but its value is discarded.
func ParseWish(raw map[string]any, owner string) (Wish, error) {
	for k := range raw {
		if _, ok := wishFields[k]; !ok {
			return Wish{}, fmt.Errorf("%w: unknown field %q", ErrInvalidWish, k)
		}
	}

	w := Wish{Owner: owner}

	id, err := parseWishID(raw["id"])
	if err != nil {
		return Wish{}, err
	}
	w.ID = id

	title, ok := raw["title"].(string)
	if !ok {
		return Wish{}, ErrWishTitleLength
	}
	w.Title = title

	if w.Link, err = optionalString(raw, "link", 200, ErrWishLinkLength); err != nil {
		return Wish{}, err
	}
	if w.Notes, err = optionalString(raw, "notes", 500, ErrWishNotesLength); err != nil {
		return Wish{}, err
	}
	if w.Category, err = optionalString(raw, "category", 30, ErrWishCategoryLength); err != nil {
		return Wish{}, err
	}

	if v, present := raw["price_estimate"]; present && v != nil {
		price, err := parseWishPrice(v)
		if err != nil {
			return Wish{}, err
		}
		w.Price = &price
	}

	if v, present := raw["owner"]; present && v != nil {
		if _, ok := v.(string); !ok {
			return Wish{}, fmt.Errorf("%w: owner must be a string", ErrInvalidWish)
		}
	}

	if err := w.Validate(); err != nil {
		return Wish{}, err
	}
	return w, nil
}

// Validate checks the field constraints on an already-typed Wish.
func (w *Wish) Validate() error {
	if n := utf8.RuneCountInString(w.Title); n < 1 || n > 50 {
		return ErrWishTitleLength
	}
	if w.Link != nil && utf8.RuneCountInString(*w.Link) > 200 {
		return ErrWishLinkLength
	}
	if w.Notes != nil && utf8.RuneCountInString(*w.Notes) > 500 {
		return ErrWishNotesLength
	}
	if w.Category != nil && utf8.RuneCountInString(*w.Category) > 30 {
		return ErrWishCategoryLength
	}
	if w.Price != nil {
		if err := validatePrice(*w.Price); err != nil {
			return err
		}
	}
	return nil
}

// PriceOrZero returns the price estimate, treating a missing price as zero.
// Used by sorting and the metrics summary.
func (w *Wish) PriceOrZero() decimal.Decimal {
	if w.Price == nil {
		return decimal.Zero
	}
	return *w.Price
}

// wishJSON is the wire form of a Wish. The price is rendered through
// PriceLiteral so its scale survives serialization.
type wishJSON struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Link     *string `json:"link"`
	Price    *string `json:"price_estimate"`
	Notes    *string `json:"notes"`
	Category *string `json:"category"`
	Owner    string  `json:"owner"`
}

// MarshalJSON renders the wish with the price as a decimal string carrying
// its original scale: an input of 0.10 comes back as "0.10", not "0.1".
func (w Wish) MarshalJSON() ([]byte, error) {
	out := wishJSON{
		ID:       w.ID,
		Title:    w.Title,
		Link:     w.Link,
		Notes:    w.Notes,
		Category: w.Category,
		Owner:    w.Owner,
	}
	if w.Price != nil {
		lit := PriceLiteral(*w.Price)
		out.Price = &lit
	}
	return json.Marshal(out)
}

// PriceLiteral formats a price estimate without trimming trailing zeros.
func PriceLiteral(price decimal.Decimal) string {
	if price.Exponent() < 0 {
		return price.StringFixed(-price.Exponent())
	}
	return price.String()
}

// optionalString extracts a nullable string field, enforcing its maximum
// length in characters.
func optionalString(raw map[string]any, key string, maxLen int, lenErr error) (*string, error) {
	v, present := raw[key]
	if !present || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidWish, key)
	}
	if utf8.RuneCountInString(s) > maxLen {
		return nil, lenErr
	}
	return &s, nil
}

func parseWishID(v any) (int64, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, ErrWishIDRequired
	}
	id, err := num.Int64()
	if err != nil {
		return 0, ErrWishIDRequired
	}
	return id, nil
}

// parseWishPrice accepts a JSON number (preserved as json.Number) or a numeric
// string, mirroring the lax decimal intake of the import format.
func parseWishPrice(v any) (decimal.Decimal, error) {
	var lit string
	switch t := v.(type) {
	case json.Number:
		lit = t.String()
	case string:
		lit = t
	default:
		return decimal.Decimal{}, ErrWishPriceInvalid
	}

	price, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Decimal{}, ErrWishPriceInvalid
	}
	if err := validatePrice(price); err != nil {
		return decimal.Decimal{}, err
	}
	return price, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrWishPriceInvalid
	}
	if price.Exponent() < -MaxPriceFractionDigits {
		return ErrWishPriceInvalid
	}
	if price.NumDigits() > MaxPriceDigits {
		return ErrWishPriceInvalid
	}
	return nil
}
