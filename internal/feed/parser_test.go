package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefx/orderbook/internal/book"
)

func scanAll(t *testing.T, input string) ([]Event, error) {
	t.Helper()
	p := NewParser(strings.NewReader(input))
	var events []Event
	for p.Scan() {
		events = append(events, p.Event())
	}
	return events, p.Err()
}

func TestParser_SkipsBlankLines(t *testing.T) {
	events, err := scanAll(t, "\nA,1,B,1000,100\n\n\nX,1,B,0,0\n")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, Event{Action: ActionPlace, ID: 1, Side: book.Buy, Qty: 1000, Price: 100}, events[0])
	assert.Equal(t, Event{Action: ActionCancel, ID: 1, Side: book.Buy, Qty: 0, Price: 0}, events[1])
}

func TestParser_NoTrailingNewlineRequired(t *testing.T) {
	events, err := scanAll(t, "A,1,S,50,1000")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(50), events[0].Qty)
}

func TestParser_MalformedActionIsFatal(t *testing.T) {
	events, err := scanAll(t, "A,1,B,1000,100\nQ,2,B,1,1\nA,3,B,1,1\n")
	require.Error(t, err)
	// The malformed line stops the scan; later well-formed lines are
	// never reached.
	assert.Len(t, events, 1)
}

func TestParser_MalformedFieldCountIsFatal(t *testing.T) {
	_, err := scanAll(t, "A,1,B,1000\n")
	assert.Error(t, err)
}

func TestParser_NonDigitWhereDigitExpected(t *testing.T) {
	_, err := scanAll(t, "A,notanumber,B,1000,100\n")
	assert.Error(t, err)
}

func TestParser_UnknownSide(t *testing.T) {
	_, err := scanAll(t, "A,1,Z,1000,100\n")
	assert.Error(t, err)
}
