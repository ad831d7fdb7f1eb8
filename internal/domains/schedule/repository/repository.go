package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"quadra/infras/otel"
	"quadra/infras/postgres"
	"quadra/internal/domains/schedule/model"
	gDto "quadra/shared/dto"
	gRepo "quadra/shared/repository"
)

type Occupancy interface {
	Counts(ctx context.Context, courtID, date string) (map[string]int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.SlotOccupancy]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Occupancy {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SlotOccupancy](model.OccupancyEntityName, model.OccupancyTableName, model.FieldCourtID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Counts returns the occupancy per start time for one court and date. Slots
// with no row yet are simply absent from the map.
func (repo *repositoryImpl) Counts(ctx context.Context, courtID, date string) (map[string]int, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCourtID,
				Value:    courtID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.OccupancyTableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.OccupancyTableName,
			},
		},
	}

	rows, err := repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.StartTime] = row.Occupancy
	}

	return counts, nil
}
