package reservationhistory

import (
	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/shell"
)

// ProjectHistory decodes the journal entries of a reservation into a History.
// It fails on the first entry whose payload or metadata cannot be decoded.
func ProjectHistory(reservationID core.ReservationID, storableEvents reservationstore.StorableEvents) (History, error) {
	entries := make([]Entry, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		event, err := shell.DomainEventFrom(storableEvent)
		if err != nil {
			return History{}, err
		}

		metadata, err := shell.EventMetadataFrom(storableEvent)
		if err != nil {
			return History{}, err
		}

		entries = append(entries, Entry{
			SequenceNumber: storableEvent.SequenceNumber,
			EventType:      storableEvent.EventType,
			OccurredAt:     storableEvent.OccurredAt,
			Event:          event,
			CorrelationID:  metadata.CorrelationID,
		})
	}

	return History{
		ReservationID: reservationID,
		Entries:       entries,
		Count:         len(entries),
	}, nil
}
