package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadheryan/telecom-distribution/application/visibility"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	productrepo "github.com/muhammadheryan/telecom-distribution/repository/product"
	redisrepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	requestrepo "github.com/muhammadheryan/telecom-distribution/repository/request"
	stockrepo "github.com/muhammadheryan/telecom-distribution/repository/stock"
	userrepo "github.com/muhammadheryan/telecom-distribution/repository/user"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardApp interface {
	Stats(ctx context.Context, actor model.Principal) (any, error)
	View(ctx context.Context, actor model.Principal) (*model.DashboardView, error)
}

type dashboardAppImpl struct {
	requestRepo requestrepo.RequestRepository
	stockRepo   stockrepo.StockRepository
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	redisRepo   redisrepo.Repository
	statsTTL    time.Duration
	metrics     *metrics.Metrics
}

func NewDashboardApp(
	requestRepo requestrepo.RequestRepository,
	stockRepo stockrepo.StockRepository,
	productRepo productrepo.ProductRepository,
	userRepo userrepo.UserRepository,
	redisRepo redisrepo.Repository,
	statsTTL time.Duration,
	m *metrics.Metrics,
) DashboardApp {
	return &dashboardAppImpl{
		requestRepo: requestRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		redisRepo:   redisRepo,
		statsTTL:    statsTTL,
		metrics:     m,
	}
}

// Stats serves the role's counters from the per-user cache, computing and
// storing them on a miss. A cache outage degrades to computing every time.
func (s *dashboardAppImpl) Stats(ctx context.Context, actor model.Principal) (any, error) {
	view, err := visibility.For(actor)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	cached, err := s.redisRepo.GetStats(ctx, actor.ID)
	if err != nil {
		logger.Warn("[DashboardStats] err redisRepo.GetStats", zap.String("error", err.Error()))
	}
	if len(cached) > 0 {
		s.metrics.RecordStatsCache(true)
		return json.RawMessage(cached), nil
	}
	s.metrics.RecordStatsCache(false)

	snap, err := s.snapshot(ctx, view, actor)
	if err != nil {
		return nil, err
	}
	stats := view.Stats(snap)

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.redisRepo.SetStats(ctx, actor.ID, payload, s.statsTTL); err != nil {
			logger.Warn("[DashboardStats] err redisRepo.SetStats", zap.String("error", err.Error()))
		}
	}
	return stats, nil
}

func (s *dashboardAppImpl) View(ctx context.Context, actor model.Principal) (*model.DashboardView, error) {
	view, err := visibility.For(actor)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	snap, err := s.snapshot(ctx, view, actor)
	if err != nil {
		return nil, err
	}

	res := &model.DashboardView{
		User:         actor,
		Stats:        view.Stats(snap),
		Capabilities: view.Capabilities(),
		Requests:     visibility.Rows(view, actor, snap.Requests),
	}
	if view.Role() == constant.RoleAgent {
		res.Stock = visibility.StockView(actor.ID, snap.Stock)
	}
	return res, nil
}

// snapshot loads what the role's view needs in parallel.
func (s *dashboardAppImpl) snapshot(ctx context.Context, view visibility.View, actor model.Principal) (visibility.Snapshot, error) {
	var snap visibility.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scope := view.Scope()
		requests, err := s.requestRepo.List(gctx, &scope)
		if err != nil {
			logger.Error("[Dashboard] err requestRepo.List", zap.String("error", err.Error()))
			return err
		}
		snap.Requests = requests
		return nil
	})

	switch view.Role() {
	case constant.RoleDistributor:
		g.Go(func() error {
			n, err := s.productRepo.Count(gctx)
			if err != nil {
				logger.Error("[Dashboard] err productRepo.Count", zap.String("error", err.Error()))
				return err
			}
			snap.TotalProducts = n
			return nil
		})
		g.Go(func() error {
			n, err := s.userRepo.CountByRole(gctx, constant.RoleAgent)
			if err != nil {
				logger.Error("[Dashboard] err userRepo.CountByRole", zap.String("error", err.Error()))
				return err
			}
			snap.TotalAgents = n
			return nil
		})
	case constant.RoleAgent:
		g.Go(func() error {
			owner := actor.ID
			records, err := s.stockRepo.List(gctx, &owner)
			if err != nil {
				logger.Error("[Dashboard] err stockRepo.List", zap.String("error", err.Error()))
				return err
			}
			snap.Stock = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return visibility.Snapshot{}, errors.SetCustomError(constant.ErrInternal)
	}
	return snap, nil
}
