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
	"quadra/internal/domains/court/model"
	"quadra/internal/domains/court/model/dto"
	"quadra/internal/domains/court/service"
	cacheMocks "quadra/shared/cache/mocks"
	"quadra/shared/constant"
	gDto "quadra/shared/dto"
	"quadra/shared/failure"
)

type courtServiceFixture struct {
	repo  *courtMocks.MockCourt
	cache *cacheMocks.MockRedisCache
	svc   service.Court
}

func newCourtServiceFixture(ctrl *gomock.Controller) *courtServiceFixture {
	f := &courtServiceFixture{
		repo:  courtMocks.NewMockCourt(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// cache writes and invalidations run on detached goroutines
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestCourtService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCourtServiceFixture(ctrl)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	tests := []struct {
		name      string
		req       dto.CreateCourtRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "success",
			req:  dto.CreateCourtRequest{Name: "Quadra de Futsal"},
			setupMock: func() {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, court model.Court) error {
						assert.Equal(t, "Quadra de Futsal", court.Name)
						assert.True(t, court.Active)
						assert.Equal(t, "admin-1", court.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "insert failure",
			req:  dto.CreateCourtRequest{Name: "Quadra de Futsal"},
			setupMock: func() {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCourtService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCourtServiceFixture(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.CourtResponse)
	}{
		{
			name: "success",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Court{ID: "court-1", Name: "Quadra de Futsal", Active: true}, nil)
			},
			check: func(t *testing.T, res dto.CourtResponse) {
				assert.Equal(t, "court-1", res.ID)
				assert.Equal(t, "Quadra de Futsal", res.Name)
				assert.True(t, res.Active)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Court{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "cache hit skips repository",
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

			res, err := f.svc.Get(context.Background(), "court-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestCourtService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCourtServiceFixture(ctrl)

	req := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("success", func(t *testing.T) {
		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		f.repo.EXPECT().
			GetAll(gomock.Any(), req, gomock.Any()).
			Return([]model.Court{
				{ID: "court-1", Name: "Quadra de Futsal", Active: true},
				{ID: "court-2", Name: "Quadra de Basquete", Active: true},
			}, nil)

		res, err := f.svc.GetAll(context.Background(), req, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Courts, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
	})

	t.Run("repository failure", func(t *testing.T) {
		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		f.repo.EXPECT().
			GetAll(gomock.Any(), req, gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, err := f.svc.GetAll(context.Background(), req, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestCourtService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCourtServiceFixture(ctrl)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	inactive := false

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Court{ID: "court-1", Name: "Quadra de Futsal", Active: true}, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &inactive, fields["active"])
						assert.Equal(t, "admin-1", fields["modified_by"])

						return nil
					})
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Court{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Update(ctx, dto.UpdateCourtRequest{Active: &inactive}, "court-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCourtService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCourtServiceFixture(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func() {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(context.Background(), "court-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
