package net

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/latticefx/orderbook/internal/book"
)

const (
	maxFrameSize   = 4 * 1024
	defaultWorkers = 10
	readTimeout    = 5 * time.Second
)

// Server is a TCP front end over a Book. It accepts any number of
// concurrent connections but funnels every decoded message through a
// single consuming goroutine that owns the Book exclusively, so the
// matching kernel itself never runs concurrently — only the network
// I/O does.
type Server struct {
	address string
	port    int
	book    *book.Book
	pool    *workerPool
	inbox   chan Message
}

// NewServer returns a server that will place/cancel orders against b
// once Run is called. b's trade observer is replaced by Run.
func NewServer(address string, port int, b *book.Book) *Server {
	return &Server{
		address: address,
		port:    port,
		book:    b,
		pool:    newWorkerPool(defaultWorkers),
		inbox:   make(chan Message, 1),
	}
}

// Run accepts connections and serves them until ctx is canceled. It
// blocks until the accept loop exits.
func (s *Server) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return fmt.Errorf("net: listen: %w", err)
	}
	defer listener.Close()
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.pool.run(t, s.handleConnection)
	t.Go(func() error { return s.consume(t) })

	log.Info().Str("address", listener.Addr().String()).Msg("orderbook server listening")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				log.Error().Err(err).Msg("accept failed")
				continue
			}
			s.pool.addTask(conn)
		}
	}
}

// consume is the only goroutine that ever touches s.book.
func (s *Server) consume(t *tomb.Tomb) error {
	s.book.SetTradeObserver(func(tr book.Trade) {
		log.Info().
			Uint64("initiator_id", tr.InitiatorID).
			Uint64("resting_id", tr.RestingID).
			Uint64("qty", tr.Qty).
			Uint64("price", tr.Price).
			Msg("trade")
	})

	for {
		select {
		case <-t.Dying():
			return nil
		case msg := <-s.inbox:
			s.dispatch(msg)
		}
	}
}

func (s *Server) dispatch(msg Message) {
	switch m := msg.(type) {
	case NewOrderMessage:
		id := m.ID
		if id == 0 {
			id = newOrderID()
		}
		if _, err := s.book.Place(book.PlaceInput{ID: id, Side: m.Side, Qty: m.Qty, Price: m.Price}); err != nil {
			log.Error().Err(err).Uint64("id", id).Msg("place rejected")
		}
	case CancelOrderMessage:
		if ok := s.book.Cancel(m.ID); !ok {
			log.Warn().Uint64("id", m.ID).Msg("cancel: order not found")
		}
	case HeartbeatMessage:
		// no-op
	}
}

// newOrderID mints an order id for network submissions that don't
// supply their own, from the low 64 bits of a random UUIDv4.
func newOrderID() uint64 {
	id := uuid.New()
	v := binary.BigEndian.Uint64(id[8:16])
	if v == 0 {
		v = 1
	}
	return v
}

// handleConnection reads one frame, decodes it, forwards it to
// consume, and requeues the connection for its next frame. Any read or
// decode failure drops the connection; this method never returns a
// non-nil error for connection-local problems, only for task
// misrouting, so one bad client cannot bring down the worker pool.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return fmt.Errorf("net: unexpected task type %T", task)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		conn.Close()
		return nil
	}

	buf := make([]byte, maxFrameSize)
	n, err := conn.Read(buf)
	if err != nil {
		if err != io.EOF {
			log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("connection closed")
		}
		conn.Close()
		return nil
	}

	msg, err := ParseMessage(buf[:n])
	if err != nil {
		log.Error().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("malformed frame")
		conn.Close()
		return nil
	}

	select {
	case <-t.Dying():
		conn.Close()
		return nil
	case s.inbox <- msg:
	}

	s.pool.addTask(conn)
	return nil
}
