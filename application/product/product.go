package product

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/muhammadheryan/telecom-distribution/application/dashboard"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	productRepo "github.com/muhammadheryan/telecom-distribution/repository/product"
	redisrepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	userrepo "github.com/muhammadheryan/telecom-distribution/repository/user"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"go.uber.org/zap"
)

type ProductApp interface {
	Create(ctx context.Context, actor model.Principal, req *model.CreateProductRequest) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}

type productAppImpl struct {
	productRepo productRepo.ProductRepository
	userRepo    userrepo.UserRepository
	redisRepo   redisrepo.Repository
}

func NewProductApp(productRepo productRepo.ProductRepository, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository) ProductApp {
	return &productAppImpl{
		productRepo: productRepo,
		userRepo:    userRepo,
		redisRepo:   redisRepo,
	}
}

// Create adds a catalog entry. Only distributors own the catalog.
func (s *productAppImpl) Create(ctx context.Context, actor model.Principal, req *model.CreateProductRequest) (*model.Product, error) {
	if actor.Role != constant.RoleDistributor {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrForbidden, "only distributors can create products")
	}
	if !req.Type.Valid() {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "type must be one of SIM, Mobile, Fiber")
	}
	if req.Price.IsNegative() {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "price must not be negative")
	}

	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		logger.Error("[CreateProduct] error productRepo.ExistsByCode", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if exists {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "product code already exists")
	}

	created, err := s.productRepo.Create(ctx, &model.Product{
		Type:         req.Type,
		Code:         req.Code,
		SerialNumber: req.SerialNumber,
		Price:        req.Price.Round(2),
		CreatedBy:    actor.ID,
		CreatedAt:    time.Now().UTC(),
	})
	if stderrors.Is(err, productRepo.ErrDuplicateCode) {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "product code already exists")
	}
	if err != nil {
		logger.Error("[CreateProduct] error productRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// total_products on every distributor dashboard
	if err := dashboard.InvalidateStats(ctx, s.userRepo, s.redisRepo); err != nil {
		logger.Warn("[CreateProduct] invalidate stats", zap.String("error", err.Error()))
	}
	return created, nil
}

func (s *productAppImpl) List(ctx context.Context) ([]model.Product, error) {
	items, err := s.productRepo.List(ctx)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}
