package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"quadra/config"
	"quadra/infras/kafka"
	"quadra/infras/otel"
	courtModel "quadra/internal/domains/court/model"
	courtRepository "quadra/internal/domains/court/repository"
	"quadra/internal/domains/reservation/model"
	"quadra/internal/domains/reservation/model/dto"
	"quadra/internal/domains/reservation/repository"
	scheduleModel "quadra/internal/domains/schedule/model"
	scheduleService "quadra/internal/domains/schedule/service"
	userModel "quadra/internal/domains/user/model"
	userRepository "quadra/internal/domains/user/repository"
	"quadra/shared"
	"quadra/shared/cache"
	"quadra/shared/constant"
	gDto "quadra/shared/dto"
	"quadra/shared/failure"
	"quadra/shared/timezone"
)

const (
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	// fallbackUserName stamps a reservation when the owner's profile cannot
	// be read at creation time. The booking still goes through.
	fallbackUserName = "Usuário"

	defaultSlotCapacity        = 10
	defaultOperationTimeoutSec = 10
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	ListForPrincipal(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	Cancel(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
}

type serviceImpl struct {
	repo      repository.Reservation
	courtRepo courtRepository.Court
	userRepo  userRepository.User
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
}

func New(repo repository.Reservation, courtRepo courtRepository.Court, userRepo userRepository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafkaClient kafka.Client) Reservation {
	return &serviceImpl{
		repo:      repo,
		courtRepo: courtRepo,
		userRepo:  userRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		kafka:     kafkaClient,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	if _, err = time.Parse(constant.BookingDateFormat, req.BookingDate); err != nil {
		return res, failure.BadRequestFromString("booking date must be in dd/mm/yyyy format") //nolint:wrapcheck
	}

	if scheduleModel.PeriodFor(req.StartTime) == scheduleModel.PeriodOther {
		return res, failure.BadRequestFromString("start time is outside the booking grid") //nolint:wrapcheck
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout())
	defer cancel()

	userName, err := s.resolveUserName(ctx, userID)
	if err != nil {
		return res, err
	}

	court, err := s.courtRepo.Get(ctx, shared.FilterByID(req.CourtID, courtModel.FieldID, courtModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get court")

		return res, s.mapCollaboratorError(err, "failed to get court")
	}

	if court.ID == constant.Empty || !court.Active {
		return res, failure.NotFound("court not found") //nolint:wrapcheck
	}

	reservation := req.ToModel(userID, userName, court.Name, s.cfg.Booking.DefaultDuration)

	if err = s.repo.CreateConfirmed(ctx, reservation, s.slotCapacity()); err != nil {
		if errors.Is(err, repository.ErrSlotFull) {
			return res, failure.Conflict("slot is fully booked") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, s.mapCollaboratorError(err, "failed to create reservation")
	}

	res.FromModel(reservation)

	s.publishEvent(ctx, dto.EventReservationCreated, reservation)
	s.invalidateReservationCaches(ctx, reservation)

	return res, nil
}

// ListForPrincipal lists the caller's reservations, newest first, excluding
// cancelled ones. A read failure degrades to an empty list instead of an
// error so the listing screen always renders.
func (s *serviceImpl) ListForPrincipal(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForPrincipal")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	if params.SortBy == constant.Empty {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCancelled,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to list reservations, returning empty list")

		res.FromModels(nil, 0, params.Limit)

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations, using page size")

		total = len(models)
		err = nil
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

// Cancel flips a confirmed reservation to cancelled and releases its slot.
// Cancelling a missing or already cancelled reservation succeeds, so retries
// are harmless. Only the owner (or an admin) may cancel.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout())
	defer cancel()

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return s.mapCollaboratorError(err, "failed to get reservation")
	}

	if reservation.ID == constant.Empty || reservation.Status == model.StatusCancelled {
		return nil
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if reservation.UserID != userID && role != constant.RoleAdmin {
		return failure.Forbidden("not the reservation owner") //nolint:wrapcheck
	}

	if reservation.Status == model.StatusRejected {
		return failure.Conflict("reservation is in a terminal status") //nolint:wrapcheck
	}

	flipped, err := s.repo.FlipStatus(ctx, id, model.StatusConfirmed, model.StatusCancelled, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return s.mapCollaboratorError(err, "failed to cancel reservation")
	}

	// A concurrent cancel already flipped it, which is the outcome the
	// caller asked for.
	if flipped {
		reservation.Status = model.StatusCancelled

		s.publishEvent(ctx, dto.EventReservationCancelled, reservation)
	}

	s.invalidateReservationCaches(ctx, reservation)

	return nil
}

// UpdateStatus applies an administrative transition, e.g. rejecting a
// confirmed reservation. Terminal statuses never change again.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout())
	defer cancel()

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return s.mapCollaboratorError(err, "failed to get reservation")
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	if reservation.Status == req.Status {
		return nil
	}

	if model.IsTerminalStatus(reservation.Status) {
		return failure.Conflict("reservation is in a terminal status") //nolint:wrapcheck
	}

	flipped, err := s.repo.FlipStatus(ctx, id, reservation.Status, req.Status, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return s.mapCollaboratorError(err, "failed to update reservation status")
	}

	if !flipped {
		return failure.Conflict("reservation status changed concurrently") //nolint:wrapcheck
	}

	reservation.Status = req.Status

	s.publishEvent(ctx, dto.EventReservationStatusChanged, reservation)
	s.invalidateReservationCaches(ctx, reservation)

	return nil
}

// resolveUserName resolves the display name to stamp on a reservation. An
// unreadable profile falls back to a placeholder; a missing user is a real
// authentication failure.
func (s *serviceImpl) resolveUserName(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return constant.Empty, failure.Timeout("profile lookup timed out") //nolint:wrapcheck
		}

		log.Error().Err(err).Str("userID", userID).Msg("failed to resolve user name, using fallback")

		return fallbackUserName, nil
	}

	if user.ID == constant.Empty {
		return constant.Empty, failure.Unauthorized("user is not registered") //nolint:wrapcheck
	}

	if user.FullName == constant.Empty {
		return fallbackUserName, nil
	}

	return user.FullName, nil
}

func (s *serviceImpl) mapCollaboratorError(err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return failure.Timeout(msg + ": operation timed out") //nolint:wrapcheck
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, reservation model.Reservation) {
	if !s.cfg.Booking.PublishEvents {
		return
	}

	event := dto.ReservationEvent{
		EventType:     eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		CourtID:       reservation.CourtID,
		BookingDate:   reservation.BookingDate,
		StartTime:     reservation.StartTime,
		Status:        reservation.Status,
		OccurredAt:    timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{Key: reservation.ID, Value: event}
		if err := s.kafka.SendMessages(c, s.cfg.Booking.EventsTopic, msg); err != nil {
			log.Error().Err(err).Str("eventType", eventType).Msg("failed to publish reservation event")
		}
	}()
}

func (s *serviceImpl) invalidateReservationCaches(ctx context.Context, reservation model.Reservation) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)

		availabilityKey := shared.BuildCacheKey(scheduleService.CacheAvailability, reservation.CourtID, reservation.BookingDate)
		if err := s.cache.Delete(c, availabilityKey); err != nil {
			log.Error().Err(err).Msg("failed to invalidate availability cache")
		}
	}()
}

func (s *serviceImpl) operationTimeout() time.Duration {
	secs := s.cfg.Booking.OperationTimeoutSecs
	if secs <= 0 {
		secs = defaultOperationTimeoutSec
	}

	return time.Duration(secs) * time.Second
}

func (s *serviceImpl) slotCapacity() int {
	if s.cfg.Booking.SlotCapacity > 0 {
		return s.cfg.Booking.SlotCapacity
	}

	return defaultSlotCapacity
}
