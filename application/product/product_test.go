package product_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	appproduct "github.com/muhammadheryan/telecom-distribution/application/product"
	"github.com/muhammadheryan/telecom-distribution/constant"
	productmocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/product"
	redismocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/redis"
	usermocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/user"
	"github.com/muhammadheryan/telecom-distribution/model"
	productrepo "github.com/muhammadheryan/telecom-distribution/repository/product"
	cerr "github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var distributor = model.Principal{ID: 1, Name: "Dist", Role: constant.RoleDistributor}

func TestProductApp_Create(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
		userRepo    *usermocks.UserRepository
		redisRepo   *redismocks.RedisRepository
	}
	newFields := func() fields {
		return fields{
			productRepo: productmocks.NewProductRepository(t),
			userRepo:    usermocks.NewUserRepository(t),
			redisRepo:   redismocks.NewRedisRepository(t),
		}
	}
	distributorFilter := &model.UserListFilter{Role: constant.RoleDistributor}
	type args struct {
		ctx   context.Context
		actor model.Principal
		req   *model.CreateProductRequest
	}
	validReq := &model.CreateProductRequest{
		Type:         constant.ProductTypeMobile,
		Code:         "MOB-01",
		SerialNumber: "SN-77",
		Price:        decimal.RequireFromString("199.999"),
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: distributor creates product",
			fields: newFields(),
			args:   args{ctx: context.Background(), actor: distributor, req: validReq},
			mockCall: func(f fields) {
				f.productRepo.On("ExistsByCode", mock.Anything, "MOB-01").Return(false, nil).Once()
				f.productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
					return p.CreatedBy == 1 && p.Price.Equal(decimal.RequireFromString("200.00")) && !p.CreatedAt.IsZero()
				})).Return(&model.Product{ID: 9, Code: "MOB-01", Type: constant.ProductTypeMobile}, nil).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).
					Return([]model.UserEntity{{ID: 1, Role: constant.RoleDistributor}, {ID: 6, Role: constant.RoleDistributor}}, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(1), uint64(6)).Return(nil).Once()
			},
		},
		{
			name:   "success: stats cache outage does not fail creation",
			fields: newFields(),
			args:   args{ctx: context.Background(), actor: distributor, req: validReq},
			mockCall: func(f fields) {
				f.productRepo.On("ExistsByCode", mock.Anything, "MOB-01").Return(false, nil).Once()
				f.productRepo.On("Create", mock.Anything, mock.Anything).
					Return(&model.Product{ID: 9, Code: "MOB-01", Type: constant.ProductTypeMobile}, nil).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return([]model.UserEntity{{ID: 1}}, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(1)).Return(errors.New("redis down")).Once()
			},
		},
		{
			name:    "error: agent cannot create products",
			fields:  newFields(),
			args:    args{ctx: context.Background(), actor: model.Principal{ID: 2, Role: constant.RoleAgent}, req: validReq},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:   "error: negative price",
			fields: newFields(),
			args: args{ctx: context.Background(), actor: distributor, req: &model.CreateProductRequest{
				Type: constant.ProductTypeSIM, Code: "S", SerialNumber: "N", Price: decimal.NewFromInt(-1),
			}},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: unknown type",
			fields: newFields(),
			args: args{ctx: context.Background(), actor: distributor, req: &model.CreateProductRequest{
				Type: "Router", Code: "R", SerialNumber: "N",
			}},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: code already exists",
			fields: newFields(),
			args:   args{ctx: context.Background(), actor: distributor, req: validReq},
			mockCall: func(f fields) {
				f.productRepo.On("ExistsByCode", mock.Anything, "MOB-01").Return(true, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: duplicate detected on insert",
			fields: newFields(),
			args:   args{ctx: context.Background(), actor: distributor, req: validReq},
			mockCall: func(f fields) {
				f.productRepo.On("ExistsByCode", mock.Anything, "MOB-01").Return(false, nil).Once()
				f.productRepo.On("Create", mock.Anything, mock.Anything).Return(nil, productrepo.ErrDuplicateCode).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: repository failure",
			fields: newFields(),
			args:   args{ctx: context.Background(), actor: distributor, req: validReq},
			mockCall: func(f fields) {
				f.productRepo.On("ExistsByCode", mock.Anything, "MOB-01").Return(false, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appproduct.NewProductApp(tt.fields.productRepo, tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Create(tt.args.ctx, tt.args.actor, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.ID != 9 {
				t.Fatalf("Create() = %+v", got)
			}
		})
	}
}

func TestProductApp_List(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		want     []model.Product
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: list products",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything).Return([]model.Product{{ID: 1, Code: "SIM-1"}}, nil).Once()
			},
			want: []model.Product{{ID: 1, Code: "SIM-1"}},
		},
		{
			name:   "error: repository List returns error",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.mockCall(tt.fields)
			app := appproduct.NewProductApp(tt.fields.productRepo, nil, nil)

			got, err := app.List(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("List() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("List() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
