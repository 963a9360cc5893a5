// Package book implements a single-instrument, price-time priority
// limit order book and its crossing (matching) kernel.
//
// A Book owns two side books (bids and asks) and a cancel index keyed
// by order id. Place inserts an order and, if it crosses the opposite
// side, walks that side in price-time order emitting trades until
// either the new order or the opposing liquidity is exhausted. Cancel
// removes a resting order and never matches.
//
// A Book is not safe for concurrent use; callers that need concurrent
// producers must serialize calls onto a single goroutine (see
// internal/net for one way to do that).
package book

import "fmt"

// Book is a single-instrument limit order book.
type Book struct {
	bids     *sideBook
	asks     *sideBook
	index    map[uint64]*Order
	sequence uint64
	observer func(Trade)
}

// New returns an empty book with a no-op trade observer.
func New() *Book {
	return &Book{
		bids:     newSideBook(Buy),
		asks:     newSideBook(Sell),
		index:    make(map[uint64]*Order),
		observer: func(Trade) {},
	}
}

// SetTradeObserver replaces the single trade callback. It is invoked
// synchronously, once per emitted trade, in emission order, after both
// orders' quantities have been decremented for that fill. Passing nil
// restores the no-op observer.
func (b *Book) SetTradeObserver(f func(Trade)) {
	if f == nil {
		f = func(Trade) {}
	}
	b.observer = f
}

// Place validates and accepts a new order, crosses it against resting
// liquidity if its price allows, and returns the order's (possibly
// caller-supplied) id.
//
// The new order is located throughout matching by the handle returned
// from the side-book insert, never by re-reading front() — the side
// book's front is only guaranteed to be the initiator when its price
// strictly dominates every other resting order on its own side, and
// anchoring by handle keeps that assumption from becoming a bug if
// this kernel is ever reused outside the insert-then-match path.
func (b *Book) Place(in PlaceInput) (uint64, error) {
	if in.Price == 0 || in.Qty == 0 {
		return 0, fmt.Errorf("%w: id=%d price=%d qty=%d", ErrMalformedOrder, in.ID, in.Price, in.Qty)
	}
	if _, exists := b.index[in.ID]; exists {
		return 0, fmt.Errorf("%w: id=%d", ErrDuplicateID, in.ID)
	}

	b.sequence++
	order := &Order{
		ID:       in.ID,
		Side:     in.Side,
		Price:    in.Price,
		Qty:      in.Qty,
		Sequence: b.sequence,
	}

	own := b.sideBookFor(order.Side)
	handle := own.insert(order)
	b.index[order.ID] = order

	if bidPrice, bidOk := b.bids.frontPrice(); bidOk {
		if askPrice, askOk := b.asks.frontPrice(); askOk && bidPrice >= askPrice {
			b.match(handle)
		}
	}

	return order.ID, nil
}

// Cancel removes a resting order by id. It reports true iff the id was
// resting and has now been removed; an unknown id is a non-fatal,
// reported-but-ignored condition. Cancel never emits trades and never
// triggers matching.
func (b *Book) Cancel(id uint64) bool {
	order, ok := b.index[id]
	if !ok {
		return false
	}
	b.sideBookFor(order.Side).erase(order)
	delete(b.index, id)
	return true
}

// Bids returns resting buy orders in (price desc, sequence asc) order.
func (b *Book) Bids() []Order {
	return b.bids.items()
}

// Asks returns resting sell orders in (price asc, sequence asc) order.
func (b *Book) Asks() []Order {
	return b.asks.items()
}

func (b *Book) sideBookFor(s Side) *sideBook {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

func oppositeSide(s Side) Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// match repeatedly crosses initiator against the best order on the
// opposite side, emitting a trade per fill, until the initiator is
// exhausted or the top of the opposite book no longer crosses. Any
// initiator quantity left over rests; none left means the initiator
// is removed from its own side book before returning.
func (b *Book) match(initiator *Order) {
	own := b.sideBookFor(initiator.Side)
	opp := b.sideBookFor(oppositeSide(initiator.Side))

	for initiator.Qty > 0 {
		resting, ok := opp.front()
		if !ok || !crosses(initiator, resting) {
			break
		}

		qty := min(initiator.Qty, resting.Qty)
		initiator.Qty -= qty
		resting.Qty -= qty

		b.observer(Trade{
			InitiatorID: initiator.ID,
			RestingID:   resting.ID,
			Qty:         qty,
			Price:       resting.Price,
		})

		if resting.Qty == 0 {
			delete(b.index, resting.ID)
			opp.eraseFront()
		}
	}

	if initiator.Qty == 0 {
		delete(b.index, initiator.ID)
		own.erase(initiator)
	}
}

// crosses reports whether initiator is willing to trade against
// resting at resting's price.
func crosses(initiator, resting *Order) bool {
	if initiator.Side == Buy {
		return initiator.Price >= resting.Price
	}
	return initiator.Price <= resting.Price
}
