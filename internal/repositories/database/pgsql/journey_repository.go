package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	"github.com/railsathi/railsathi_backend/internal/models"
	"github.com/railsathi/railsathi_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJourneyRepository struct {
	BaseRepository
}

// newPgxJourneyRepository creates a new repository for saved-journey data.
func newPgxJourneyRepository(pool *pgxpool.Pool) portsrepo.JourneyRepositoryWithTx {
	return &PgxJourneyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.JourneyRepositoryWithTx = (*PgxJourneyRepository)(nil)

const journeyColumns = `
	journey_id, device_id, pnr, train_number, train_name,
	from_station, to_station, boarding_point, reservation_upto,
	source_date, destination_date, journey_class, quota, coach_position,
	arrival_time, departure_time, expected_platform,
	ticket_fare, booking_fare, chart_prepared, passengers,
	last_checked, saved_at`

func scanJourney(row pgx.Row) (models.Journey, error) {
	var m models.Journey
	err := row.Scan(
		&m.JourneyID, &m.DeviceID, &m.PNR, &m.TrainNumber, &m.TrainName,
		&m.FromStation, &m.ToStation, &m.BoardingPoint, &m.ReservationUpto,
		&m.SourceDate, &m.DestinationDate, &m.JourneyClass, &m.Quota, &m.CoachPosition,
		&m.ArrivalTime, &m.DepartureTime, &m.ExpectedPlatform,
		&m.TicketFare, &m.BookingFare, &m.ChartPrepared, &m.Passengers,
		&m.LastChecked, &m.SavedAt,
	)
	return m, err
}

// ListJourneys returns a device's saved journeys, most-recent-first by
// creation time. Ordering by the immutable saved_at is what keeps an updated
// record at its original list position.
func (r *PgxJourneyRepository) ListJourneys(ctx context.Context, deviceID string) ([]domain.JourneyRecord, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE device_id = $1 ORDER BY saved_at DESC, journey_id DESC;`

	rows, err := r.Pool.Query(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()

	modelJourneys, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Journey, error) {
		return scanJourney(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journeys: %w", err)
	}

	records := make([]domain.JourneyRecord, 0, len(modelJourneys))
	for _, m := range modelJourneys {
		record, err := mapping.ToDomainJourney(m)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// FindJourneyByID retrieves one saved journey by its synthetic ID.
func (r *PgxJourneyRepository) FindJourneyByID(ctx context.Context, deviceID, journeyID string) (*domain.JourneyRecord, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE device_id = $1 AND journey_id = $2;`

	m, err := scanJourney(r.Pool.QueryRow(ctx, query, deviceID, journeyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journey %s: %w", journeyID, err)
	}

	record, err := mapping.ToDomainJourney(m)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindJourneyByPNR retrieves one saved journey by its PNR.
func (r *PgxJourneyRepository) FindJourneyByPNR(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE device_id = $1 AND pnr = $2;`

	m, err := scanJourney(r.Pool.QueryRow(ctx, query, deviceID, pnr))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journey by pnr %s: %w", pnr, err)
	}

	record, err := mapping.ToDomainJourney(m)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// InsertJourney persists a brand-new record.
func (r *PgxJourneyRepository) InsertJourney(ctx context.Context, record domain.JourneyRecord) error {
	m, err := mapping.ToModelJourney(record)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO journeys (` + journeyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.JourneyID, m.DeviceID, m.PNR, m.TrainNumber, m.TrainName,
		m.FromStation, m.ToStation, m.BoardingPoint, m.ReservationUpto,
		m.SourceDate, m.DestinationDate, m.JourneyClass, m.Quota, m.CoachPosition,
		m.ArrivalTime, m.DepartureTime, m.ExpectedPlatform,
		m.TicketFare, m.BookingFare, m.ChartPrepared, m.Passengers,
		m.LastChecked, m.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journey %s: %w", m.JourneyID, err)
	}
	return nil
}

// ReplaceJourney overwrites every stored field except journey_id, device_id
// and saved_at. The immutable columns are what keep the record's identity
// and list position stable across saves and refreshes.
func (r *PgxJourneyRepository) ReplaceJourney(ctx context.Context, record domain.JourneyRecord) error {
	m, err := mapping.ToModelJourney(record)
	if err != nil {
		return err
	}

	query := `
		UPDATE journeys SET
			pnr = $3, train_number = $4, train_name = $5,
			from_station = $6, to_station = $7, boarding_point = $8, reservation_upto = $9,
			source_date = $10, destination_date = $11, journey_class = $12, quota = $13, coach_position = $14,
			arrival_time = $15, departure_time = $16, expected_platform = $17,
			ticket_fare = $18, booking_fare = $19, chart_prepared = $20, passengers = $21,
			last_checked = $22
		WHERE device_id = $1 AND journey_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DeviceID, m.JourneyID, m.PNR, m.TrainNumber, m.TrainName,
		m.FromStation, m.ToStation, m.BoardingPoint, m.ReservationUpto,
		m.SourceDate, m.DestinationDate, m.JourneyClass, m.Quota, m.CoachPosition,
		m.ArrivalTime, m.DepartureTime, m.ExpectedPlatform,
		m.TicketFare, m.BookingFare, m.ChartPrepared, m.Passengers,
		m.LastChecked,
	)
	if err != nil {
		return fmt.Errorf("failed to replace journey %s: %w", m.JourneyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteJourney removes the record and clears the device's next-journey
// marker in the same transaction when the marker references the deleted
// record's PNR, so the marker can never dangle.
func (r *PgxJourneyRepository) DeleteJourney(ctx context.Context, deviceID, journeyID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	var pnr string
	err = tx.QueryRow(ctx, `SELECT pnr FROM journeys WHERE device_id = $1 AND journey_id = $2 FOR UPDATE;`, deviceID, journeyID).Scan(&pnr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load journey %s for delete: %w", journeyID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journeys WHERE device_id = $1 AND journey_id = $2;`, deviceID, journeyID); err != nil {
		return fmt.Errorf("failed to delete journey %s: %w", journeyID, err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM device_kv_store WHERE device_id = $1 AND key = $2 AND value->>'pnr' = $3;`,
		deviceID, portsrepo.KeyNextJourney, pnr,
	)
	if err != nil {
		return fmt.Errorf("failed to clear next-journey marker for pnr %s: %w", pnr, err)
	}

	return r.Commit(ctx, tx)
}
