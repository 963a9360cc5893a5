// Package feed parses the line-delimited order event format consumed
// by the file-driven CLI: one event per line, comma-separated
// "<action>,<id>,<side>,<qty>,<price>" fields, action in {A,X} and
// side in {B,S}. Blank lines are skipped; anything else that fails to
// parse is reported through Err.
package feed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/latticefx/orderbook/internal/book"
)

// Action distinguishes a place event from a cancel event.
type Action int

const (
	ActionPlace Action = iota
	ActionCancel
)

// Event is one parsed line of the input feed. Side, Qty, and Price are
// only meaningful for ActionPlace; ActionCancel only needs ID.
type Event struct {
	Action Action
	ID     uint64
	Side   book.Side
	Qty    uint64
	Price  uint64
}

// Parser lazily scans events off an io.Reader, one per call to Scan,
// in the style of bufio.Scanner: loop while Scan() returns true, read
// Event() inside the loop, then check Err() once the loop ends.
type Parser struct {
	scanner *bufio.Scanner
	current Event
	err     error
}

// NewParser wraps r for lazy line-at-a-time parsing.
func NewParser(r io.Reader) *Parser {
	return &Parser{scanner: bufio.NewScanner(r)}
}

// Scan advances to the next well-formed event. It returns false at EOF
// or on the first malformed line; in the latter case Err returns the
// parse failure.
func (p *Parser) Scan() bool {
	if p.err != nil {
		return false
	}
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" {
			continue
		}
		ev, err := parseLine(line)
		if err != nil {
			p.err = err
			return false
		}
		p.current = ev
		return true
	}
	p.err = p.scanner.Err()
	return false
}

// Event returns the event produced by the most recent successful Scan.
func (p *Parser) Event() Event { return p.current }

// Err returns the first parse or read error encountered, or nil if
// Scan ran to a clean EOF.
func (p *Parser) Err() error { return p.err }

func parseLine(line string) (Event, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		return Event{}, fmt.Errorf("feed: malformed line %q: expected 5 fields, got %d", line, len(fields))
	}

	var ev Event
	switch strings.TrimSpace(fields[0]) {
	case "A":
		ev.Action = ActionPlace
	case "X":
		ev.Action = ActionCancel
	default:
		return Event{}, fmt.Errorf("feed: malformed line %q: unknown action %q", line, fields[0])
	}

	id, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("feed: malformed line %q: bad id: %w", line, err)
	}
	ev.ID = id

	switch strings.TrimSpace(fields[2]) {
	case "B":
		ev.Side = book.Buy
	case "S":
		ev.Side = book.Sell
	default:
		return Event{}, fmt.Errorf("feed: malformed line %q: unknown side %q", line, fields[2])
	}

	qty, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("feed: malformed line %q: bad qty: %w", line, err)
	}
	ev.Qty = qty

	price, err := strconv.ParseUint(strings.TrimSpace(fields[4]), 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("feed: malformed line %q: bad price: %w", line, err)
	}
	ev.Price = price

	return ev, nil
}
