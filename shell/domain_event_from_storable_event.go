package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents reservationstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent reservationstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.ReservationCreatedEventType:
		return unmarshalReservationCreated(storableEvent.PayloadJSON)

	case core.BookReturnedEventType:
		return unmarshalBookReturned(storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalReservationCreated(payload []byte) (core.DomainEvent, error) {
	event := new(core.ReservationCreated)
	if err := jsoniter.ConfigFastest.Unmarshal(payload, event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *event, nil
}

func unmarshalBookReturned(payload []byte) (core.DomainEvent, error) {
	event := new(core.BookReturned)
	if err := jsoniter.ConfigFastest.Unmarshal(payload, event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *event, nil
}
