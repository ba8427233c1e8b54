package stock

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	redisrepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	stockrepo "github.com/muhammadheryan/telecom-distribution/repository/stock"
	txrepo "github.com/muhammadheryan/telecom-distribution/repository/tx"
	"github.com/muhammadheryan/telecom-distribution/thirdparty/rabbitmq"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"go.uber.org/zap"
)

type StockApp interface {
	List(ctx context.Context, actor model.Principal) ([]model.StockRecord, error)
	Reset(ctx context.Context, actor model.Principal, req *model.ResetStockRequest) (*model.ResetStockResponse, error)
	Transactions(ctx context.Context, actor model.Principal) ([]model.StockTransaction, error)
}

type stockAppImpl struct {
	txRepo    txrepo.TxRepository
	stockRepo stockrepo.StockRepository
	redisRepo redisrepo.Repository
	publisher rabbitmq.EventPublisher
	metrics   *metrics.Metrics
}

func NewStockApp(
	txRepo txrepo.TxRepository,
	stockRepo stockrepo.StockRepository,
	redisRepo redisrepo.Repository,
	publisher rabbitmq.EventPublisher,
	m *metrics.Metrics,
) StockApp {
	return &stockAppImpl{
		txRepo:    txRepo,
		stockRepo: stockRepo,
		redisRepo: redisRepo,
		publisher: publisher,
		metrics:   m,
	}
}

// ownerScope is nil for the distributor, who sees every ledger record.
func ownerScope(actor model.Principal) *uint64 {
	if actor.Role == constant.RoleDistributor {
		return nil
	}
	id := actor.ID
	return &id
}

func (s *stockAppImpl) List(ctx context.Context, actor model.Principal) ([]model.StockRecord, error) {
	if !actor.Role.Valid() {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	records, err := s.stockRepo.List(ctx, ownerScope(actor))
	if err != nil {
		logger.Error("[ListStock] err stockRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return records, nil
}

// Reset zeroes every stock record in one transaction.
func (s *stockAppImpl) Reset(ctx context.Context, actor model.Principal, req *model.ResetStockRequest) (*model.ResetStockResponse, error) {
	if actor.Role != constant.RoleDistributor {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrForbidden, "only the distributor can reset stock")
	}
	if req == nil || !req.Confirm {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "reset must be confirmed")
	}

	var records int64
	err := s.txRepo.RunInTx(ctx, func(tx *sqlx.Tx) error {
		n, err := s.stockRepo.ResetAllTx(ctx, tx, actor.ID)
		if err != nil {
			return err
		}
		records = n
		return nil
	})
	if err != nil {
		logger.Error("[ResetStock] err stockRepo.ResetAllTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.metrics.RecordStockReset(records)
	logger.Info("[ResetStock] stock reset", zap.Uint64("actor_id", actor.ID), zap.Int64("records", records))

	if err := s.redisRepo.InvalidateAllStats(ctx); err != nil {
		logger.Warn("[ResetStock] invalidate stats", zap.String("error", err.Error()))
	}
	if s.publisher != nil {
		evt := model.RequestEvent{
			Type:       constant.EventStockReset,
			ActorID:    actor.ID,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishRequestEvent(ctx, evt); err != nil {
			logger.Error("[ResetStock] publish event", zap.String("error", err.Error()))
		}
	}

	return &model.ResetStockResponse{RecordsReset: records}, nil
}

func (s *stockAppImpl) Transactions(ctx context.Context, actor model.Principal) ([]model.StockTransaction, error) {
	if !actor.Role.Valid() {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	txs, err := s.stockRepo.ListTransactions(ctx, ownerScope(actor))
	if err != nil {
		logger.Error("[ListStockTransactions] err stockRepo.ListTransactions", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return txs, nil
}
