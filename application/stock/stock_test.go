package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appstock "github.com/muhammadheryan/telecom-distribution/application/stock"
	"github.com/muhammadheryan/telecom-distribution/constant"
	redismocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/redis"
	stockmocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/stock"
	txmocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/tx"
	rabbitmocks "github.com/muhammadheryan/telecom-distribution/mocks/thirdparty/rabbitmq"
	"github.com/muhammadheryan/telecom-distribution/model"
	cerr "github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	distributor = model.Principal{ID: 1, Name: "Dist", Role: constant.RoleDistributor}
	agent       = model.Principal{ID: 2, Name: "Agent", Role: constant.RoleAgent}
)

func assertErrCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

// runTx executes the callback the way the real repository does.
func runTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(&sqlx.Tx{})
}

func TestStockApp_List(t *testing.T) {
	owner := uint64(2)

	tests := []struct {
		name     string
		actor    model.Principal
		mockCall func(repo *stockmocks.StockRepository)
		want     int
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:  "distributor lists every owner",
			actor: distributor,
			mockCall: func(repo *stockmocks.StockRepository) {
				repo.On("List", mock.Anything, (*uint64)(nil)).Return([]model.StockRecord{
					{OwnerID: 2, ProductType: constant.ProductTypeSIM, Quantity: 10},
					{OwnerID: 3, ProductType: constant.ProductTypeFiber, Quantity: 4},
				}, nil).Once()
			},
			want: 2,
		},
		{
			name:  "agent lists own records",
			actor: agent,
			mockCall: func(repo *stockmocks.StockRepository) {
				repo.On("List", mock.Anything, &owner).Return([]model.StockRecord{
					{OwnerID: 2, ProductType: constant.ProductTypeSIM, Quantity: 10},
				}, nil).Once()
			},
			want: 1,
		},
		{
			name:  "repository failure",
			actor: agent,
			mockCall: func(repo *stockmocks.StockRepository) {
				repo.On("List", mock.Anything, &owner).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name:     "unknown role",
			actor:    model.Principal{ID: 9, Role: "guest"},
			mockCall: func(repo *stockmocks.StockRepository) {},
			wantErr:  true,
			errCode:  constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := stockmocks.NewStockRepository(t)
			tt.mockCall(repo)
			app := appstock.NewStockApp(txmocks.NewTxRepository(t), repo, redismocks.NewRedisRepository(t), nil, nil)

			got, err := app.List(context.Background(), tt.actor)
			if (err != nil) != tt.wantErr {
				t.Fatalf("List() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			assert.Len(t, got, tt.want)
		})
	}
}

func TestStockApp_Reset(t *testing.T) {
	type fields struct {
		txRepo    *txmocks.TxRepository
		stockRepo *stockmocks.StockRepository
		redisRepo *redismocks.RedisRepository
		publisher *rabbitmocks.EventPublisher
	}

	tests := []struct {
		name     string
		actor    model.Principal
		req      *model.ResetStockRequest
		mockCall func(f fields)
		want     int64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:  "success",
			actor: distributor,
			req:   &model.ResetStockRequest{Confirm: true},
			mockCall: func(f fields) {
				f.txRepo.On("RunInTx", mock.Anything, mock.Anything).Return(runTx).Once()
				f.stockRepo.On("ResetAllTx", mock.Anything, mock.Anything, uint64(1)).Return(int64(3), nil).Once()
				f.redisRepo.On("InvalidateAllStats", mock.Anything).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, mock.MatchedBy(func(evt model.RequestEvent) bool {
					return evt.Type == constant.EventStockReset && evt.ActorID == 1
				})).Return(nil).Once()
			},
			want: 3,
		},
		{
			name:  "success: cache and broker failures are not fatal",
			actor: distributor,
			req:   &model.ResetStockRequest{Confirm: true},
			mockCall: func(f fields) {
				f.txRepo.On("RunInTx", mock.Anything, mock.Anything).Return(runTx).Once()
				f.stockRepo.On("ResetAllTx", mock.Anything, mock.Anything, uint64(1)).Return(int64(0), nil).Once()
				f.redisRepo.On("InvalidateAllStats", mock.Anything).Return(errors.New("redis down")).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			want: 0,
		},
		{
			name:     "error: not confirmed",
			actor:    distributor,
			req:      &model.ResetStockRequest{Confirm: false},
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name:     "error: missing body",
			actor:    distributor,
			req:      nil,
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name:     "error: agent cannot reset",
			actor:    agent,
			req:      &model.ResetStockRequest{Confirm: true},
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrForbidden,
		},
		{
			name:  "error: reset rolled back",
			actor: distributor,
			req:   &model.ResetStockRequest{Confirm: true},
			mockCall: func(f fields) {
				f.txRepo.On("RunInTx", mock.Anything, mock.Anything).Return(runTx).Once()
				f.stockRepo.On("ResetAllTx", mock.Anything, mock.Anything, uint64(1)).Return(int64(0), errors.New("lock wait timeout")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				txRepo:    txmocks.NewTxRepository(t),
				stockRepo: stockmocks.NewStockRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
				publisher: rabbitmocks.NewEventPublisher(t),
			}
			tt.mockCall(f)
			app := appstock.NewStockApp(f.txRepo, f.stockRepo, f.redisRepo, f.publisher, nil)

			got, err := app.Reset(context.Background(), tt.actor, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Reset() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			assert.Equal(t, tt.want, got.RecordsReset)
		})
	}
}

func TestStockApp_Reset_RecordsMetrics(t *testing.T) {
	m := metrics.New("test")
	txRepo := txmocks.NewTxRepository(t)
	stockRepo := stockmocks.NewStockRepository(t)
	redisRepo := redismocks.NewRedisRepository(t)

	txRepo.On("RunInTx", mock.Anything, mock.Anything).Return(runTx).Once()
	stockRepo.On("ResetAllTx", mock.Anything, mock.Anything, uint64(1)).Return(int64(5), nil).Once()
	redisRepo.On("InvalidateAllStats", mock.Anything).Return(nil).Once()

	app := appstock.NewStockApp(txRepo, stockRepo, redisRepo, nil, m)
	_, err := app.Reset(context.Background(), distributor, &model.ResetStockRequest{Confirm: true})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StockResets))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.StockRecordsReset))
}

func TestStockApp_Transactions(t *testing.T) {
	owner := uint64(2)

	t.Run("agent sees movements touching it", func(t *testing.T) {
		repo := stockmocks.NewStockRepository(t)
		repo.On("ListTransactions", mock.Anything, &owner).Return([]model.StockTransaction{
			{ID: 1, ToOwnerID: &owner, ProductType: constant.ProductTypeSIM, Quantity: 5, Kind: constant.StockTransactionTransfer},
		}, nil).Once()
		app := appstock.NewStockApp(txmocks.NewTxRepository(t), repo, redismocks.NewRedisRepository(t), nil, nil)

		got, err := app.Transactions(context.Background(), agent)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("distributor sees all", func(t *testing.T) {
		repo := stockmocks.NewStockRepository(t)
		repo.On("ListTransactions", mock.Anything, (*uint64)(nil)).Return([]model.StockTransaction{}, nil).Once()
		app := appstock.NewStockApp(txmocks.NewTxRepository(t), repo, redismocks.NewRedisRepository(t), nil, nil)

		got, err := app.Transactions(context.Background(), distributor)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := stockmocks.NewStockRepository(t)
		repo.On("ListTransactions", mock.Anything, (*uint64)(nil)).Return(nil, errors.New("db error")).Once()
		app := appstock.NewStockApp(txmocks.NewTxRepository(t), repo, redismocks.NewRedisRepository(t), nil, nil)

		_, err := app.Transactions(context.Background(), distributor)
		assertErrCode(t, err, constant.ErrInternal)
	})
}
