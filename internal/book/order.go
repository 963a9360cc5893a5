package book

import "fmt"

// Side identifies which side of the book an order rests on.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Order is a resting or in-flight limit order. Price and Qty are in
// caller-defined minor units; Qty is mutated in place as fills are
// applied during matching.
type Order struct {
	ID       uint64
	Side     Side
	Price    uint64
	Qty      uint64
	Sequence uint64
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id=%d side=%s price=%d qty=%d seq=%d}",
		o.ID, o.Side, o.Price, o.Qty, o.Sequence)
}

// PlaceInput carries the caller-supplied fields of a new order. Sequence
// is assigned by the book at acceptance time and is never caller-set.
type PlaceInput struct {
	ID    uint64
	Side  Side
	Price uint64
	Qty   uint64
}

// Trade is an immutable record of one fill. Price is always the resting
// order's price: the resting side advertised it and queued first, so
// price improvement accrues to the initiator.
type Trade struct {
	InitiatorID uint64
	RestingID   uint64
	Qty         uint64
	Price       uint64
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade{initiator=%d resting=%d qty=%d price=%d}",
		t.InitiatorID, t.RestingID, t.Qty, t.Price)
}
