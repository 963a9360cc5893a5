// Package testsupport holds the order-building and trade-recording
// helpers used by the book test suite.
package testsupport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticefx/orderbook/internal/book"
)

// Place submits a well-formed limit order and fails the test immediately
// if the book rejects it.
func Place(t *testing.T, b *book.Book, id uint64, side book.Side, qty, price uint64) {
	t.Helper()
	_, err := b.Place(book.PlaceInput{ID: id, Side: side, Qty: qty, Price: price})
	require.NoError(t, err)
}

// RecordingObserver returns a trade observer that appends every trade it
// sees, in emission order, to trades.
func RecordingObserver(trades *[]book.Trade) func(book.Trade) {
	return func(tr book.Trade) {
		*trades = append(*trades, tr)
	}
}
