package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quadra/config"
	kafkaMocks "quadra/infras/kafka/mocks"
	"quadra/infras/otel/mocks"
	courtMocks "quadra/internal/domains/court/mocks"
	courtModel "quadra/internal/domains/court/model"
	reservationMocks "quadra/internal/domains/reservation/mocks"
	"quadra/internal/domains/reservation/model"
	"quadra/internal/domains/reservation/model/dto"
	"quadra/internal/domains/reservation/repository"
	"quadra/internal/domains/reservation/service"
	userMocks "quadra/internal/domains/user/mocks"
	userModel "quadra/internal/domains/user/model"
	cacheMocks "quadra/shared/cache/mocks"
	"quadra/shared/constant"
	gDto "quadra/shared/dto"
	"quadra/shared/failure"
)

type reservationServiceFixture struct {
	svc       service.Reservation
	repo      *reservationMocks.MockReservation
	courtRepo *courtMocks.MockCourt
	userRepo  *userMocks.MockUser
	cache     *cacheMocks.MockRedisCache
	kafka     *kafkaMocks.MockClient
}

func newReservationServiceFixture(ctrl *gomock.Controller) *reservationServiceFixture {
	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.SlotCapacity = 10
	cfg.Booking.WarnLoadFactor = 0.7
	cfg.Booking.OperationTimeoutSecs = 10
	cfg.Booking.DefaultDuration = "1 hora"
	cfg.Booking.EventsTopic = "reservation-events"
	cfg.Booking.PublishEvents = true

	// Event publishing and cache invalidation run on goroutines after the
	// call returns.
	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "reservation-events", gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return &reservationServiceFixture{
		svc:       service.New(mockRepo, mockCourtRepo, mockUserRepo, cfg, mockCache, mockOtel, mockKafka),
		repo:      mockRepo,
		courtRepo: mockCourtRepo,
		userRepo:  mockUserRepo,
		cache:     mockCache,
		kafka:     mockKafka,
	}
}

func authenticatedContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReservationServiceFixture(ctrl)

	court := courtModel.Court{ID: "court-1", Name: "Quadra de Futsal", Active: true}
	owner := userModel.User{ID: "user-1", FullName: "Ana Souza"}

	validReq := dto.CreateReservationRequest{
		CourtID:     "court-1",
		BookingDate: "10/05/2025",
		StartTime:   "15:00",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.ReservationResponse)
	}{
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			req:       validReq,
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "malformed booking date",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			req: dto.CreateReservationRequest{
				CourtID:     "court-1",
				BookingDate: "2025-05-10",
				StartTime:   "15:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "start time outside the grid",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			req: dto.CreateReservationRequest{
				CourtID:     "court-1",
				BookingDate: "10/05/2025",
				StartTime:   "23:30",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "court not found",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			req:  validReq,
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owner, nil)

				f.courtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courtModel.Court{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "user no longer registered",
			ctx:  authenticatedContext("ghost-user", constant.RoleUser),
			req:  validReq,
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "slot fully booked",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			req:  validReq,
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owner, nil)

				f.courtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(court, nil)

				f.repo.EXPECT().
					CreateConfirmed(gomock.Any(), gomock.Any(), 10).
					Return(repository.ErrSlotFull)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "successful booking",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			req:  validReq,
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owner, nil)

				f.courtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(court, nil)

				f.repo.EXPECT().
					CreateConfirmed(gomock.Any(), gomock.Any(), 10).
					DoAndReturn(func(_ context.Context, res model.Reservation, _ int) error {
						assert.Equal(t, "user-1", res.UserID)
						assert.Equal(t, "Ana Souza", res.UserName)
						assert.Equal(t, "Quadra de Futsal", res.CourtName)
						assert.Equal(t, "1 hora", res.Duration)
						assert.Equal(t, model.StatusConfirmed, res.Status)

						return nil
					})
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusConfirmed, res.Status)
				assert.Equal(t, "Quadra de Futsal", res.CourtName)
				assert.Equal(t, "10/05/2025", res.BookingDate)
				assert.Equal(t, "15:00", res.StartTime)
			},
		},
		{
			name: "profile lookup failure falls back to placeholder name",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			req:  validReq,
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("connection refused"))

				f.courtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(court, nil)

				f.repo.EXPECT().
					CreateConfirmed(gomock.Any(), gomock.Any(), 10).
					Return(nil)
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				assert.Equal(t, "Usuário", res.UserName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReservationServiceFixture(ctrl)

	confirmed := model.Reservation{
		ID:          "res-1",
		UserID:      "user-1",
		CourtID:     "court-1",
		BookingDate: "10/05/2025",
		StartTime:   "15:00",
		Status:      model.StatusConfirmed,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			id:        "res-1",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "missing reservation succeeds",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			id:   "missing",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
		},
		{
			name: "already cancelled succeeds",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			id:   "res-1",
			setupMock: func() {
				cancelled := confirmed
				cancelled.Status = model.StatusCancelled

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
		},
		{
			name: "not the owner",
			ctx:  authenticatedContext("user-2", constant.RoleUser),
			id:   "res-1",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "admin may cancel another user's reservation",
			ctx:  authenticatedContext("admin-1", constant.RoleAdmin),
			id:   "res-1",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				f.repo.EXPECT().
					FlipStatus(gomock.Any(), "res-1", model.StatusConfirmed, model.StatusCancelled, "admin-1").
					Return(true, nil)
			},
		},
		{
			name: "rejected reservation cannot be cancelled",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			id:   "res-1",
			setupMock: func() {
				rejected := confirmed
				rejected.Status = model.StatusRejected

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rejected, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "owner cancels",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			id:   "res-1",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				f.repo.EXPECT().
					FlipStatus(gomock.Any(), "res-1", model.StatusConfirmed, model.StatusCancelled, "user-1").
					Return(true, nil)
			},
		},
		{
			name: "concurrent cancel already won",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			id:   "res-1",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				f.repo.EXPECT().
					FlipStatus(gomock.Any(), "res-1", model.StatusConfirmed, model.StatusCancelled, "user-1").
					Return(false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Cancel(tt.ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestReservationService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReservationServiceFixture(ctrl)

	confirmed := model.Reservation{
		ID:          "res-1",
		UserID:      "user-1",
		CourtID:     "court-1",
		BookingDate: "10/05/2025",
		StartTime:   "15:00",
		Status:      model.StatusConfirmed,
	}

	ctx := authenticatedContext("admin-1", constant.RoleAdmin)

	tests := []struct {
		name      string
		req       dto.UpdateStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "reservation not found",
			req:  dto.UpdateStatusRequest{Status: model.StatusRejected},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "same status is a no-op",
			req:  dto.UpdateStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)
			},
		},
		{
			name: "terminal status never changes",
			req:  dto.UpdateStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				cancelled := confirmed
				cancelled.Status = model.StatusCancelled

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "reject a confirmed reservation",
			req:  dto.UpdateStatusRequest{Status: model.StatusRejected},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				f.repo.EXPECT().
					FlipStatus(gomock.Any(), "res-1", model.StatusConfirmed, model.StatusRejected, "admin-1").
					Return(true, nil)
			},
		},
		{
			name: "lost the race",
			req:  dto.UpdateStatusRequest{Status: model.StatusRejected},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				f.repo.EXPECT().
					FlipStatus(gomock.Any(), "res-1", model.StatusConfirmed, model.StatusRejected, "admin-1").
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.UpdateStatus(ctx, tt.req, "res-1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestReservationService_ListForPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReservationServiceFixture(ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	reservations := []model.Reservation{
		{ID: "res-2", UserID: "user-1", Status: model.StatusConfirmed, StartTime: "16:00"},
		{ID: "res-1", UserID: "user-1", Status: model.StatusRejected, StartTime: "15:00"},
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.GetReservationsResponse)
	}{
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "read failure degrades to empty list",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetAll(gomock.Any(), params, gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			check: func(t *testing.T, res dto.GetReservationsResponse) {
				assert.Empty(t, res.Reservations)
				assert.Zero(t, res.TotalData)
			},
		},
		{
			name: "lists own reservations including rejected",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetAll(gomock.Any(), params, gomock.Any()).
					Return(reservations, nil)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.GetReservationsResponse) {
				assert.Len(t, res.Reservations, 2)
				assert.Equal(t, 2, res.TotalData)
				assert.Equal(t, model.StatusRejected, res.Reservations[1].Status)
			},
		},
		{
			name: "cache hit skips repository",
			ctx:  authenticatedContext("user-1", constant.RoleUser),
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.ListForPrincipal(tt.ctx, params)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}
