package book

import "errors"

var (
	// ErrMalformedOrder is returned when a place request carries a zero
	// price or zero quantity.
	ErrMalformedOrder = errors.New("book: zero price or quantity")

	// ErrDuplicateID is returned when a place request reuses the id of
	// an order already resting in the book. The source this engine is
	// modeled on leaves this undefined (the second insert silently
	// orphans the first order's cancel-index entry); this book rejects
	// it instead.
	ErrDuplicateID = errors.New("book: duplicate order id")
)
