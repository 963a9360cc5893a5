// Command orderbookcli submits a single place or cancel request to an
// orderbookd server over its TCP wire protocol.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/latticefx/orderbook/internal/book"
	netadapter "github.com/latticefx/orderbook/internal/net"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "address of the orderbookd server")
	action := flag.String("action", "place", "place | cancel")
	sideStr := flag.String("side", "buy", "buy | sell (place only)")
	qty := flag.Uint64("qty", 0, "order quantity (place only)")
	price := flag.Uint64("price", 0, "limit price (place only)")
	id := flag.Uint64("id", 0, "order id (place: 0 lets the server assign one; cancel: required)")
	flag.Parse()

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orderbookcli: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	frame, err := buildFrame(*action, *sideStr, *qty, *price, *id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orderbookcli: %v\n", err)
		os.Exit(1)
	}

	if _, err := conn.Write(frame); err != nil {
		fmt.Fprintf(os.Stderr, "orderbookcli: %v\n", err)
		os.Exit(1)
	}
}

func buildFrame(action, sideStr string, qty, price, id uint64) ([]byte, error) {
	switch action {
	case "place":
		side := book.Buy
		if strings.EqualFold(sideStr, "sell") {
			side = book.Sell
		}
		return netadapter.EncodeNewOrder(netadapter.NewOrderMessage{Side: side, Qty: qty, Price: price, ID: id}), nil
	case "cancel":
		if id == 0 {
			return nil, fmt.Errorf("-id is required for cancel")
		}
		return netadapter.EncodeCancelOrder(netadapter.CancelOrderMessage{ID: id}), nil
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}
