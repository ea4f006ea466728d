package types

import (
	"errors"
	"fmt"
	"reflect"
)

type EventTypes string

func (e EventTypes) String() string {
	return string(e)
}

const (
	EventNewMiningRound EventTypes = "PhalaModule.NewMiningRound"
)

// ErrMalformedEvent is returned when an event of a known type carries a payload
// that can't be interpreted. Callers treat it as "no signal" for that event.
var ErrMalformedEvent = errors.New("malformed event payload")

// ChainEvent is a decoded entry of System.Events at some block.
type ChainEvent struct {
	Pallet string
	Name   string
	Fields []any
}

func (e ChainEvent) Type() EventTypes {
	return EventTypes(e.Pallet + "." + e.Name)
}

// RoundNumber extracts the round carried by a NewMiningRound event.
func (e ChainEvent) RoundNumber() (uint32, error) {
	if e.Type() != EventNewMiningRound {
		return 0, fmt.Errorf("unexpected event type %s", e.Type())
	}
	if len(e.Fields) == 0 {
		return 0, fmt.Errorf("%w: %s has no fields", ErrMalformedEvent, e.Type())
	}

	round, ok := toUint64(e.Fields[0])
	if !ok {
		return 0, fmt.Errorf("%w: %s round field has type %T", ErrMalformedEvent, e.Type(), e.Fields[0])
	}
	if round > uint64(^uint32(0)) {
		return 0, fmt.Errorf("%w: round %d overflows u32", ErrMalformedEvent, round)
	}

	return uint32(round), nil
}

// toUint64 accepts the unsigned integer shapes the event decoder produces,
// including named types whose underlying kind is an unsigned integer.
func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case interface{ Uint64() uint64 }:
		return n.Uint64(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	}

	return 0, false
}
