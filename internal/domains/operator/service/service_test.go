package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"solireserve/infras/otel/mocks"
	operatorMocks "solireserve/internal/domains/operator/mocks"
	"solireserve/internal/domains/operator/model"
	"solireserve/internal/domains/operator/model/dto"
	"solireserve/internal/domains/operator/service"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"
)

func setup(t *testing.T) (*operatorMocks.MockOperator, service.Operator) {
	ctrl := gomock.NewController(t)
	repo := operatorMocks.NewMockOperator(ctrl)

	return repo, service.New(repo, mocks.NewOtel())
}

func TestCreate(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	req := dto.CreateOperatorRequest{Name: "Samu Social", Organisation: "SIAO 13", Email: "contact@siao13.example.org"}

	tests := []struct {
		name     string
		repoErr  error
		wantCode int
	}{
		{name: "success"},
		{
			name:     "duplicate email",
			repoErr:  fmt.Errorf("insert: %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}),
			wantCode: http.StatusConflict,
		},
		{
			name:     "repository failure",
			repoErr:  errors.New("db down"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := setup(t)

			repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, op model.Operator) error {
				assert.Equal(t, "Samu Social", op.Name)
				assert.True(t, op.Active)

				return tt.repoErr
			})

			err := svc.Create(ctx, req)

			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestGetAll(t *testing.T) {
	repo, svc := setup(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Operator{{ID: "op-1", Name: "Samu Social"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.Operators, 1)
	assert.Equal(t, "op-1", res.Operators[0].ID)
	assert.Equal(t, 1, res.TotalPage)
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Operator{ID: "op-1", Organisation: "SIAO 13"}, nil)

		res, err := svc.Get(context.Background(), "op-1")

		require.NoError(t, err)
		assert.Equal(t, "SIAO 13", res.Organisation)
	})

	t.Run("not found", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Operator{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUpdate(t *testing.T) {
	repo, svc := setup(t)
	inactive := false

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, fields[model.FieldActive])

			return nil
		})

	require.NoError(t, svc.Update(context.Background(), dto.UpdateOperatorRequest{Active: &inactive}, "op-1"))
}

func TestDelete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(context.Background(), "missing")))
	})

	t.Run("referenced by conventions", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		assert.Equal(t, http.StatusConflict, failure.GetCode(svc.Delete(context.Background(), "op-1")))
	})

	t.Run("success", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), "op-1"))
	})
}
