package book

import "github.com/tidwall/btree"

// priceLevel is one FIFO queue of resting orders at a single price.
// Orders are appended on insert and popped from the front on a fill,
// so index 0 is always the earliest (lowest-sequence) order at the
// level.
type priceLevel struct {
	price  uint64
	orders []*Order
}

// sideBook is the price-time ordered collection of resting orders for
// one side of the book: a btree of price levels, each level a FIFO
// slice of orders. This is a map of price->ordered-queue, preferred
// here over a single (price,sequence)-keyed tree because the matching
// loop repeatedly needs to pop or fully drain the whole front level,
// which this layout does without walking individual orders one key at
// a time.
type sideBook struct {
	side Side
	tree *btree.BTreeG[*priceLevel]
}

func newSideBook(side Side) *sideBook {
	less := func(a, b *priceLevel) bool { return a.price < b.price }
	if side == Buy {
		less = func(a, b *priceLevel) bool { return a.price > b.price }
	}
	return &sideBook{side: side, tree: btree.NewBTreeG(less)}
}

// insert adds o to its price level, creating the level if necessary.
// The returned *Order is the handle the caller anchors on; it stays
// valid (and mutable in place) regardless of later inserts or erases
// at other price levels.
func (sb *sideBook) insert(o *Order) *Order {
	if lvl, ok := sb.tree.Get(&priceLevel{price: o.Price}); ok {
		lvl.orders = append(lvl.orders, o)
		return o
	}
	sb.tree.Set(&priceLevel{price: o.Price, orders: []*Order{o}})
	return o
}

// front returns the best order on this side: the front of the
// best-priced level's FIFO queue.
func (sb *sideBook) front() (*Order, bool) {
	lvl, ok := sb.tree.Min()
	if !ok {
		return nil, false
	}
	return lvl.orders[0], true
}

func (sb *sideBook) frontPrice() (uint64, bool) {
	lvl, ok := sb.tree.Min()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// eraseFront removes the best order from the book (the one returned by
// front). It is the hot path taken by the matching loop once a resting
// order is fully filled.
func (sb *sideBook) eraseFront() {
	lvl, ok := sb.tree.Min()
	if !ok {
		return
	}
	lvl.orders = lvl.orders[1:]
	if len(lvl.orders) == 0 {
		sb.tree.Delete(&priceLevel{price: lvl.price})
	}
}

// erase removes a specific resting order, wherever it sits in its
// level's FIFO queue (used by cancel, which may target an order that
// isn't at the front). Order of the remaining resting orders at the
// level is preserved.
func (sb *sideBook) erase(o *Order) {
	lvl, ok := sb.tree.Get(&priceLevel{price: o.Price})
	if !ok {
		return
	}
	for i, resting := range lvl.orders {
		if resting.ID == o.ID {
			lvl.orders = append(lvl.orders[:i], lvl.orders[i+1:]...)
			break
		}
	}
	if len(lvl.orders) == 0 {
		sb.tree.Delete(&priceLevel{price: lvl.price})
	}
}

// items returns every resting order on this side in strict (price,
// sequence) order, best first.
func (sb *sideBook) items() []Order {
	var out []Order
	sb.tree.Scan(func(lvl *priceLevel) bool {
		for _, o := range lvl.orders {
			out = append(out, *o)
		}
		return true
	})
	return out
}
