// Command orderbookctl is the file-driven CLI: one positional
// argument, the path to a line-delimited order event file. It prints
// the final book state to stdout and logs placements/cancels/trades
// to stderr as it runs.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/latticefx/orderbook/internal/book"
	"github.com/latticefx/orderbook/internal/driver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: orderbookctl <input-file>")
		return 1
	}
	path := args[0]

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "orderbookctl: %v\n", err)
		return 1
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orderbookctl: %v\n", err)
		return 1
	}
	defer f.Close()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	b := book.New()
	if err := driver.Run(b, f, log); err != nil {
		fmt.Fprintf(os.Stderr, "orderbookctl: %v\n", err)
		return 1
	}

	printBook(b)
	return 0
}

// printBook renders the final resting state, grouped by price level,
// asks above bids.
func printBook(b *book.Book) {
	fmt.Println("=================")
	fmt.Println("ASK")
	printSide(b.Asks())
	fmt.Println("-----------------")
	fmt.Println("BID")
	printSide(b.Bids())
	fmt.Println("=================")
}

func printSide(orders []book.Order) {
	var prevPrice uint64
	open := false
	for _, o := range orders {
		if !open || o.Price != prevPrice {
			if open {
				fmt.Println()
			}
			fmt.Printf("%d:", o.Price)
			open = true
		}
		fmt.Printf(" %d", o.Qty)
		prevPrice = o.Price
	}
	if open {
		fmt.Println()
	}
}
