package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quadra/config"
	"quadra/infras/otel/mocks"
	courtMocks "quadra/internal/domains/court/mocks"
	courtModel "quadra/internal/domains/court/model"
	scheduleMocks "quadra/internal/domains/schedule/mocks"
	"quadra/internal/domains/schedule/model/dto"
	"quadra/internal/domains/schedule/service"
	cacheMocks "quadra/shared/cache/mocks"
	"quadra/shared/failure"
)

func TestScheduleService_GetAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOccupancy := scheduleMocks.NewMockOccupancy(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.SlotCapacity = 10
	cfg.Booking.WarnLoadFactor = 0.7

	svc := service.New(mockOccupancy, mockCourtRepo, cfg, mockCache, mockOtel)

	court := courtModel.Court{ID: "court-1", Name: "Quadra de Futsal", Active: true}

	tests := []struct {
		name      string
		courtID   string
		date      string
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.GetAvailabilityResponse)
	}{
		{
			name:      "empty court id",
			courtID:   "",
			date:      "10/05/2025",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed date",
			courtID:   "court-1",
			date:      "2025-05-10",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:    "court not found",
			courtID: "missing-court",
			date:    "10/05/2025",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courtModel.Court{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:    "full grid with occupancy counts",
			courtID: "court-1",
			date:    "10/05/2025",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(court, nil)

				mockOccupancy.EXPECT().
					Counts(gomock.Any(), "court-1", "10/05/2025").
					Return(map[string]int{
						"08:00": 5,
						"14:00": 8,
						"15:00": 10,
					}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.GetAvailabilityResponse) {
				assert.Len(t, res.Slots, 16)

				slots := make(map[string]dto.SlotResponse, len(res.Slots))
				for _, slot := range res.Slots {
					slots[slot.StartTime] = slot
				}

				assert.True(t, slots["08:00"].Available)
				assert.InDelta(t, 0.5, slots["08:00"].LoadFraction, 0.0001)
				assert.False(t, slots["08:00"].NearCapacity)

				assert.True(t, slots["14:00"].Available)
				assert.InDelta(t, 0.8, slots["14:00"].LoadFraction, 0.0001)
				assert.True(t, slots["14:00"].NearCapacity)

				assert.False(t, slots["15:00"].Available)
				assert.InDelta(t, 1.0, slots["15:00"].LoadFraction, 0.0001)
				assert.False(t, slots["15:00"].NearCapacity)

				assert.True(t, slots["07:00"].Available)
				assert.Zero(t, slots["07:00"].Occupancy)
			},
		},
		{
			name:    "occupancy lookup failure renders empty grid",
			courtID: "court-1",
			date:    "10/05/2025",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(court, nil)

				mockOccupancy.EXPECT().
					Counts(gomock.Any(), "court-1", "10/05/2025").
					Return(nil, errors.New("connection refused"))

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.GetAvailabilityResponse) {
				assert.Len(t, res.Slots, 16)

				for _, slot := range res.Slots {
					assert.True(t, slot.Available, "slot %s must be open when occupancy is unknown", slot.StartTime)
					assert.Zero(t, slot.Occupancy)
					assert.Zero(t, slot.LoadFraction)
				}
			},
		},
		{
			name:    "cache hit skips repositories",
			courtID: "court-1",
			date:    "10/05/2025",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAvailability(context.Background(), tt.courtID, tt.date)

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
