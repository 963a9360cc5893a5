package book_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefx/orderbook/internal/book"
	"github.com/latticefx/orderbook/internal/testsupport"
)

func TestPlace_SingleRestingOrder(t *testing.T) {
	b := book.New()
	testsupport.Place(t, b, 1, book.Buy, 1000, 100)

	assert.Equal(t, []book.Order{{ID: 1, Side: book.Buy, Price: 100, Qty: 1000, Sequence: 1}}, b.Bids())
	assert.Empty(t, b.Asks())
}

func TestPlace_NonCrossingPair(t *testing.T) {
	b := book.New()
	testsupport.Place(t, b, 1, book.Buy, 1000, 100)
	testsupport.Place(t, b, 2, book.Sell, 100, 1000)

	assert.Len(t, b.Bids(), 1)
	assert.Len(t, b.Asks(), 1)
	assert.Equal(t, uint64(1), b.Bids()[0].ID)
	assert.Equal(t, uint64(2), b.Asks()[0].ID)
}

func TestPlace_EqualQtyFullCrossAtEqualPrice(t *testing.T) {
	b := book.New()
	var trades []book.Trade
	b.SetTradeObserver(testsupport.RecordingObserver(&trades))

	testsupport.Place(t, b, 1, book.Buy, 1000, 100)
	testsupport.Place(t, b, 2, book.Sell, 1000, 100)

	assert.Empty(t, b.Bids())
	assert.Empty(t, b.Asks())
	assert.Equal(t, []book.Trade{{InitiatorID: 2, RestingID: 1, Qty: 1000, Price: 100}}, trades)
}

func TestPlace_PriceImprovementFullCross(t *testing.T) {
	b := book.New()
	var trades []book.Trade
	b.SetTradeObserver(testsupport.RecordingObserver(&trades))

	testsupport.Place(t, b, 1, book.Buy, 1000, 1000)
	testsupport.Place(t, b, 2, book.Sell, 1000, 100)

	assert.Empty(t, b.Bids())
	assert.Empty(t, b.Asks())
	assert.Equal(t, []book.Trade{{InitiatorID: 2, RestingID: 1, Qty: 1000, Price: 1000}}, trades)
}

func TestPlace_PartialFillInitiatorRemainderRests(t *testing.T) {
	b := book.New()
	var trades []book.Trade
	b.SetTradeObserver(testsupport.RecordingObserver(&trades))

	testsupport.Place(t, b, 1, book.Buy, 10000, 100)
	testsupport.Place(t, b, 2, book.Sell, 1000, 100)

	assert.Equal(t, []book.Order{{ID: 1, Side: book.Buy, Price: 100, Qty: 9000, Sequence: 1}}, b.Bids())
	assert.Empty(t, b.Asks())
	assert.Equal(t, []book.Trade{{InitiatorID: 2, RestingID: 1, Qty: 1000, Price: 100}}, trades)
}

func TestPlace_MultiLevelSweep(t *testing.T) {
	b := book.New()
	var trades []book.Trade
	b.SetTradeObserver(testsupport.RecordingObserver(&trades))

	testsupport.Place(t, b, 1, book.Buy, 100, 100)
	testsupport.Place(t, b, 2, book.Buy, 200, 200)
	testsupport.Place(t, b, 3, book.Buy, 300, 300)

	testsupport.Place(t, b, 4, book.Sell, 100, 50)
	assert.Equal(t, []book.Trade{{InitiatorID: 4, RestingID: 3, Qty: 100, Price: 300}}, trades)
	assert.Equal(t, []book.Order{
		{ID: 3, Side: book.Buy, Price: 300, Qty: 200, Sequence: 3},
		{ID: 2, Side: book.Buy, Price: 200, Qty: 200, Sequence: 2},
		{ID: 1, Side: book.Buy, Price: 100, Qty: 100, Sequence: 1},
	}, b.Bids())

	trades = nil
	testsupport.Place(t, b, 5, book.Sell, 250, 50)
	assert.Equal(t, []book.Trade{
		{InitiatorID: 5, RestingID: 3, Qty: 200, Price: 300},
		{InitiatorID: 5, RestingID: 2, Qty: 50, Price: 200},
	}, trades)
	assert.Equal(t, []book.Order{
		{ID: 2, Side: book.Buy, Price: 200, Qty: 150, Sequence: 2},
		{ID: 1, Side: book.Buy, Price: 100, Qty: 100, Sequence: 1},
	}, b.Bids())

	trades = nil
	testsupport.Place(t, b, 6, book.Sell, 300, 50)
	assert.Equal(t, []book.Trade{
		{InitiatorID: 6, RestingID: 2, Qty: 150, Price: 200},
		{InitiatorID: 6, RestingID: 1, Qty: 100, Price: 100},
	}, trades)
	assert.Empty(t, b.Bids())
	assert.Equal(t, []book.Order{{ID: 6, Side: book.Sell, Price: 50, Qty: 50, Sequence: 6}}, b.Asks())
}

func TestCancel_Resting(t *testing.T) {
	b := book.New()
	testsupport.Place(t, b, 1, book.Buy, 1000, 100)

	ok := b.Cancel(1)
	assert.True(t, ok)
	assert.Empty(t, b.Bids())
	assert.Empty(t, b.Asks())
}

func TestCancel_Unknown(t *testing.T) {
	b := book.New()
	assert.False(t, b.Cancel(999))
}

func TestCancel_Idempotent(t *testing.T) {
	b := book.New()
	testsupport.Place(t, b, 1, book.Buy, 1000, 100)

	assert.True(t, b.Cancel(1))
	assert.False(t, b.Cancel(1))
	assert.Empty(t, b.Bids())
}

func TestPlace_RejectsZeroPriceOrQty(t *testing.T) {
	b := book.New()

	_, err := b.Place(book.PlaceInput{ID: 1, Side: book.Buy, Qty: 0, Price: 100})
	assert.ErrorIs(t, err, book.ErrMalformedOrder)

	_, err = b.Place(book.PlaceInput{ID: 2, Side: book.Buy, Qty: 100, Price: 0})
	assert.ErrorIs(t, err, book.ErrMalformedOrder)
}

func TestPlace_RejectsDuplicateID(t *testing.T) {
	b := book.New()
	testsupport.Place(t, b, 1, book.Buy, 100, 100)

	_, err := b.Place(book.PlaceInput{ID: 1, Side: book.Sell, Qty: 50, Price: 90})
	assert.True(t, errors.Is(err, book.ErrDuplicateID))
}

func TestPlace_FIFOAtPriceLevel(t *testing.T) {
	b := book.New()
	var trades []book.Trade
	b.SetTradeObserver(testsupport.RecordingObserver(&trades))

	testsupport.Place(t, b, 1, book.Buy, 100, 100)
	testsupport.Place(t, b, 2, book.Buy, 100, 100)
	testsupport.Place(t, b, 3, book.Buy, 100, 100)

	testsupport.Place(t, b, 4, book.Sell, 250, 100)

	require.Len(t, trades, 3)
	assert.Equal(t, uint64(1), trades[0].RestingID)
	assert.Equal(t, uint64(2), trades[1].RestingID)
	assert.Equal(t, uint64(3), trades[2].RestingID)
	assert.Equal(t, uint64(100), trades[0].Qty)
	assert.Equal(t, uint64(100), trades[1].Qty)
	assert.Equal(t, uint64(50), trades[2].Qty)
}

func TestPlace_NonCrossingPostState(t *testing.T) {
	b := book.New()

	testsupport.Place(t, b, 1, book.Buy, 100, 90)
	testsupport.Place(t, b, 2, book.Sell, 100, 110)
	testsupport.Place(t, b, 3, book.Buy, 50, 95)
	testsupport.Place(t, b, 4, book.Sell, 50, 105)

	bids, asks := b.Bids(), b.Asks()
	if len(bids) > 0 && len(asks) > 0 {
		assert.Less(t, bids[0].Price, asks[0].Price)
	}
}
