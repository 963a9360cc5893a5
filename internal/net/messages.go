// Package net is a supplemental TCP front end for the book: a small
// binary framed protocol plus a worker pool and tomb-supervised
// accept loop that let multiple connections submit orders
// concurrently while the book itself stays single-goroutine-owned.
package net

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/latticefx/orderbook/internal/book"
)

// MessageType identifies the kind of frame on the wire.
type MessageType uint16

const (
	Heartbeat MessageType = iota
	NewOrder
	CancelOrder
)

var (
	ErrMessageTooShort    = errors.New("net: message too short")
	ErrUnknownMessageType = errors.New("net: unknown message type")
)

const (
	headerLen          = 2
	newOrderBodyLen    = 1 + 8 + 8 + 8 // side, qty, price, id
	cancelOrderBodyLen = 8             // id
)

// Message is any decoded frame.
type Message interface {
	Type() MessageType
}

// NewOrderMessage submits a new limit order. ID of 0 asks the server
// to mint one.
type NewOrderMessage struct {
	Side  book.Side
	Qty   uint64
	Price uint64
	ID    uint64
}

func (NewOrderMessage) Type() MessageType { return NewOrder }

// CancelOrderMessage cancels a resting order by id.
type CancelOrderMessage struct {
	ID uint64
}

func (CancelOrderMessage) Type() MessageType { return CancelOrder }

// HeartbeatMessage keeps an otherwise idle connection's read deadline
// from expiring.
type HeartbeatMessage struct{}

func (HeartbeatMessage) Type() MessageType { return Heartbeat }

// ParseMessage decodes a single frame read off the wire: a 2-byte
// big-endian MessageType header followed by a type-specific body.
func ParseMessage(raw []byte) (Message, error) {
	if len(raw) < headerLen {
		return nil, ErrMessageTooShort
	}
	typ := MessageType(binary.BigEndian.Uint16(raw[0:2]))
	body := raw[headerLen:]

	switch typ {
	case Heartbeat:
		return HeartbeatMessage{}, nil
	case NewOrder:
		if len(body) < newOrderBodyLen {
			return nil, fmt.Errorf("%w: new order", ErrMessageTooShort)
		}
		side := book.Buy
		if body[0] == 1 {
			side = book.Sell
		}
		return NewOrderMessage{
			Side:  side,
			Qty:   binary.BigEndian.Uint64(body[1:9]),
			Price: binary.BigEndian.Uint64(body[9:17]),
			ID:    binary.BigEndian.Uint64(body[17:25]),
		}, nil
	case CancelOrder:
		if len(body) < cancelOrderBodyLen {
			return nil, fmt.Errorf("%w: cancel order", ErrMessageTooShort)
		}
		return CancelOrderMessage{ID: binary.BigEndian.Uint64(body[0:8])}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessageType, typ)
	}
}

// EncodeNewOrder serializes a NewOrderMessage for a submitting client.
func EncodeNewOrder(m NewOrderMessage) []byte {
	buf := make([]byte, headerLen+newOrderBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(NewOrder))
	if m.Side == book.Sell {
		buf[2] = 1
	}
	binary.BigEndian.PutUint64(buf[3:11], m.Qty)
	binary.BigEndian.PutUint64(buf[11:19], m.Price)
	binary.BigEndian.PutUint64(buf[19:27], m.ID)
	return buf
}

// EncodeCancelOrder serializes a CancelOrderMessage for a submitting
// client.
func EncodeCancelOrder(m CancelOrderMessage) []byte {
	buf := make([]byte, headerLen+cancelOrderBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(CancelOrder))
	binary.BigEndian.PutUint64(buf[2:10], m.ID)
	return buf
}

// EncodeHeartbeat serializes a HeartbeatMessage.
func EncodeHeartbeat() []byte {
	buf := make([]byte, headerLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(Heartbeat))
	return buf
}
