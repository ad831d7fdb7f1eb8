package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quadra/infras/otel"
	"quadra/infras/postgres"
	"quadra/internal/domains/reservation/model"
	"quadra/shared/constant"
	gDto "quadra/shared/dto"
	"quadra/shared/logger"
	gRepo "quadra/shared/repository"
	"quadra/shared/timezone"
)

// ErrSlotFull reports that the conditional occupancy increment found the slot
// at capacity.
var ErrSlotFull = errors.New("slot capacity exhausted")

const incrementOccupancyQuery = `
	INSERT INTO slot_occupancy (court_id, booking_date, start_time, occupancy, capacity)
	VALUES ($1, $2, $3, 1, $4)
	ON CONFLICT (court_id, booking_date, start_time)
	DO UPDATE SET occupancy = slot_occupancy.occupancy + 1
	WHERE slot_occupancy.occupancy < slot_occupancy.capacity`

const decrementOccupancyQuery = `
	UPDATE slot_occupancy
	SET occupancy = GREATEST(occupancy - 1, 0)
	WHERE court_id = $1 AND booking_date = $2 AND start_time = $3`

const flipStatusQuery = `
	UPDATE reservations
	SET status = $1, modified_at = $2, modified_by = $3
	WHERE id = $4 AND status = $5
	RETURNING court_id, booking_date, start_time`

type Reservation interface {
	CreateConfirmed(ctx context.Context, model model.Reservation, capacity int) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	FlipStatus(ctx context.Context, id, fromStatus, toStatus, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateConfirmed inserts a confirmed reservation and takes one unit of slot
// capacity in the same transaction. The increment is conditional: when the
// slot is already at capacity no row is touched and ErrSlotFull is returned,
// so two concurrent bookings can never oversell a slot.
func (repo *repositoryImpl) CreateConfirmed(ctx context.Context, res model.Reservation, capacity int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateConfirmed")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (reservation): %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, incrementOccupancyQuery, res.CourtID, res.BookingDate, res.StartTime, capacity)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to increment slot occupancy: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read occupancy increment result: %w", err)
	}

	if affected == 0 {
		return ErrSlotFull
	}

	if err = repo.InsertTx(ctx, tx, res); err != nil {
		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

// FlipStatus transitions a reservation from one status to another and, when
// the reservation leaves confirmed, releases its slot capacity in the same
// transaction. Returns false without error when no row matched, which makes
// cancel idempotent.
func (repo *repositoryImpl) FlipStatus(ctx context.Context, id, fromStatus, toStatus, user string) (flipped bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FlipStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to begin transaction (reservation): %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var courtID, bookingDate, startTime string

	row := tx.QueryRowxContext(ctx, flipStatusQuery, toStatus, timezone.Now(), user, id, fromStatus)
	if err = row.Scan(&courtID, &bookingDate, &startTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = tx.Rollback()

			return false, nil
		}

		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to update reservation status: %w", err)
	}

	if fromStatus == model.StatusConfirmed && toStatus != model.StatusConfirmed {
		if _, err = tx.ExecContext(ctx, decrementOccupancyQuery, courtID, bookingDate, startTime); err != nil {
			logger.ErrorWithStack(err)

			return false, fmt.Errorf("failed to decrement slot occupancy: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to commit status change: %w", err)
	}

	return true, nil
}
