// Command orderbookd is the supplemental TCP front end: it exposes a
// single Book over the wire protocol in internal/net so that multiple
// producers can submit orders concurrently. The engine itself stays
// single-threaded; the server only serializes access to it.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/latticefx/orderbook/internal/book"
	netadapter "github.com/latticefx/orderbook/internal/net"
)

func main() {
	address := flag.String("address", "0.0.0.0", "listen address")
	port := flag.Int("port", 9001, "listen port")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := book.New()
	srv := netadapter.NewServer(*address, *port, b)

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
