package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/postgresengine/internal/adapters"
)

const (
	colSequenceNumber = "sequence_number"
	colReservationID  = "reservation_id"
	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"

	castTimestamp = "?::timestamp with time zone"
	castJsonb     = "?::jsonb"

	operationAppendEvents = "journal.append"
	operationQueryEvents  = "journal.query"
)

// eventJournal implements shell.EventJournal on the reservation_events table.
type eventJournal struct {
	runner runner
}

// Append inserts all events with one statement, in the given order.
func (j eventJournal) Append(ctx context.Context, events ...reservationstore.StorableEvent) error {
	if len(events) == 0 {
		return nil
	}

	insert := buildAppendEventsQuery(events)

	if _, err := j.runner.exec(ctx, operationAppendEvents, insert); err != nil {
		return err
	}

	j.runner.observer.recordValue(ctx, metricEventsAppended, float64(len(events)), map[string]string{
		labelOperation: operationAppendEvents,
		labelStatus:    statusSuccess,
	})
	j.runner.observer.logInfo(ctx, "events appended", "event_count", len(events), "event_type", events[0].EventType)

	return nil
}

func buildAppendEventsQuery(events []reservationstore.StorableEvent) *goqu.InsertDataset {
	rows := make([]any, 0, len(events))
	for _, event := range events {
		rows = append(rows, goqu.Record{
			colReservationID: event.ReservationID,
			colEventType:     event.EventType,
			colOccurredAt:    goqu.L(castTimestamp, event.OccurredAt),
			colPayload:       goqu.L(castJsonb, string(event.PayloadJSON)),
			colMetadata:      goqu.L(castJsonb, string(event.MetadataJSON)),
		})
	}

	return dialect.Insert(tableReservationEvents).Rows(rows...)
}

// QueryByReservationID returns the events of one reservation in journal order.
func (j eventJournal) QueryByReservationID(
	ctx context.Context,
	reservationID core.ReservationID,
) (reservationstore.StorableEvents, error) {

	query := dialect.
		From(tableReservationEvents).
		Select(colSequenceNumber, colReservationID, colEventType, colOccurredAt, colPayload, colMetadata).
		Where(goqu.C(colReservationID).Eq(reservationID)).
		Order(goqu.C(colSequenceNumber).Asc())

	events := make(reservationstore.StorableEvents, 0)

	err := j.runner.query(ctx, operationQueryEvents, query, func(rows adapters.DBRows) error {
		var (
			sequenceNumber int64
			id             int64
			eventType      string
			occurredAt     time.Time
			payload        []byte
			metadata       []byte
		)

		if scanErr := rows.Scan(&sequenceNumber, &id, &eventType, &occurredAt, &payload, &metadata); scanErr != nil {
			return scanFailed(scanErr)
		}

		event, buildErr := reservationstore.BuildStorableEvent(id, eventType, core.ToOccurredAt(occurredAt), payload, metadata)
		if buildErr != nil {
			return mappingFailed(buildErr)
		}

		events = append(events, event.WithSequenceNumber(uint(sequenceNumber))) //nolint:gosec // bigserial is positive

		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}
