// Package driver wires the file-based event feed to a book, logging
// every placement, cancel, rejection, and trade as it happens. It is a
// thin collaborator the book never imports.
package driver

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/latticefx/orderbook/internal/book"
	"github.com/latticefx/orderbook/internal/feed"
)

// Run reads events from r and applies them to b until EOF or the first
// malformed line, logging as it goes through log. A malformed line is
// fatal: the error is returned and the caller is expected to exit
// non-zero. Unknown-cancel and duplicate-id are non-fatal and only
// logged.
func Run(b *book.Book, r io.Reader, log zerolog.Logger) error {
	b.SetTradeObserver(func(t book.Trade) {
		log.Info().
			Uint64("initiator_id", t.InitiatorID).
			Uint64("resting_id", t.RestingID).
			Uint64("qty", t.Qty).
			Uint64("price", t.Price).
			Msg("trade")
	})

	parser := feed.NewParser(r)
	for parser.Scan() {
		ev := parser.Event()
		switch ev.Action {
		case feed.ActionPlace:
			applyPlace(b, ev, log)
		case feed.ActionCancel:
			applyCancel(b, ev, log)
		}
	}

	if err := parser.Err(); err != nil {
		return fmt.Errorf("driver: %w", err)
	}
	return nil
}

func applyPlace(b *book.Book, ev feed.Event, log zerolog.Logger) {
	_, err := b.Place(book.PlaceInput{ID: ev.ID, Side: ev.Side, Qty: ev.Qty, Price: ev.Price})
	if err != nil {
		log.Error().Err(err).Uint64("id", ev.ID).Msg("place rejected")
		return
	}
	log.Debug().
		Uint64("id", ev.ID).
		Str("side", ev.Side.String()).
		Uint64("qty", ev.Qty).
		Uint64("price", ev.Price).
		Msg("order placed")
}

func applyCancel(b *book.Book, ev feed.Event, log zerolog.Logger) {
	if ok := b.Cancel(ev.ID); !ok {
		log.Warn().Uint64("id", ev.ID).Msg("cancel: order not found")
		return
	}
	log.Debug().Uint64("id", ev.ID).Msg("order canceled")
}
