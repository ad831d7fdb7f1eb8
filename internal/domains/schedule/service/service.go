package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"quadra/config"
	"quadra/infras/otel"
	courtModel "quadra/internal/domains/court/model"
	courtRepository "quadra/internal/domains/court/repository"
	"quadra/internal/domains/schedule/model/dto"
	"quadra/internal/domains/schedule/repository"
	"quadra/shared"
	"quadra/shared/cache"
	"quadra/shared/constant"
	"quadra/shared/failure"
)

const (
	// CacheAvailability is the key prefix for cached slot grids. Reservation
	// writes invalidate it.
	CacheAvailability = "availability:get"

	defaultSlotCapacity   = 10
	defaultWarnLoadFactor = 0.7
)

type Schedule interface {
	GetAvailability(ctx context.Context, courtID, date string) (dto.GetAvailabilityResponse, error)
}

type serviceImpl struct {
	occupancyRepo repository.Occupancy
	courtRepo     courtRepository.Court
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(occupancyRepo repository.Occupancy, courtRepo courtRepository.Court, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		occupancyRepo: occupancyRepo,
		courtRepo:     courtRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

func (s *serviceImpl) GetAvailability(ctx context.Context, courtID, date string) (res dto.GetAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if courtID == constant.Empty {
		return res, failure.BadRequestFromString("court id is required") //nolint:wrapcheck
	}

	if _, err = time.Parse(constant.BookingDateFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must be in dd/mm/yyyy format") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(CacheAvailability, courtID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	court, err := s.courtRepo.Get(ctx, shared.FilterByID(courtID, courtModel.FieldID, courtModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get court")

		return res, fmt.Errorf("failed to get court: %w", err)
	}

	if court.ID == constant.Empty {
		return res, failure.NotFound("court not found") //nolint:wrapcheck
	}

	// Occupancy reads fail open: an unreadable counter renders the slot as
	// empty rather than erroring the whole grid.
	counts, err := s.occupancyRepo.Counts(ctx, courtID, date)
	if err != nil {
		log.Error().Err(err).Str("courtID", courtID).Str("date", date).Msg("failed to get occupancy counts, treating slots as empty")

		counts = map[string]int{}
		err = nil
	}

	res.FromTemplate(courtID, date, counts, s.slotCapacity(), s.warnLoadFactor())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) slotCapacity() int {
	if s.cfg.Booking.SlotCapacity > 0 {
		return s.cfg.Booking.SlotCapacity
	}

	return defaultSlotCapacity
}

func (s *serviceImpl) warnLoadFactor() float64 {
	if s.cfg.Booking.WarnLoadFactor > 0 {
		return s.cfg.Booking.WarnLoadFactor
	}

	return defaultWarnLoadFactor
}
