package request_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	apprequest "github.com/muhammadheryan/telecom-distribution/application/request"
	"github.com/muhammadheryan/telecom-distribution/constant"
	redismocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/redis"
	requestmocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/request"
	stockmocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/stock"
	txmocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/tx"
	usermocks "github.com/muhammadheryan/telecom-distribution/mocks/repository/user"
	rabbitmocks "github.com/muhammadheryan/telecom-distribution/mocks/thirdparty/rabbitmq"
	"github.com/muhammadheryan/telecom-distribution/model"
	requestrepo "github.com/muhammadheryan/telecom-distribution/repository/request"
	cerr "github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/stretchr/testify/mock"
)

var (
	distributor = model.Principal{ID: 1, Name: "Dist", Role: constant.RoleDistributor}
	agentA      = model.Principal{ID: 2, Name: "Agent A", Role: constant.RoleAgent}
	agentB      = model.Principal{ID: 3, Name: "Agent B", Role: constant.RoleAgent}
	retailerR   = model.Principal{ID: 4, Name: "Retailer R", Role: constant.RoleRetailer}
)

var (
	distributorFilter = &model.UserListFilter{Role: constant.RoleDistributor}
	distributors      = []model.UserEntity{{ID: 1, Name: "Dist", Role: constant.RoleDistributor}}
)

func ptr(v uint64) *uint64 { return &v }

type fields struct {
	txRepo      *txmocks.TxRepository
	requestRepo *requestmocks.RequestRepository
	userRepo    *usermocks.UserRepository
	stockRepo   *stockmocks.StockRepository
	redisRepo   *redismocks.RedisRepository
	publisher   *rabbitmocks.EventPublisher
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:      txmocks.NewTxRepository(t),
		requestRepo: requestmocks.NewRequestRepository(t),
		userRepo:    usermocks.NewUserRepository(t),
		stockRepo:   stockmocks.NewStockRepository(t),
		redisRepo:   redismocks.NewRedisRepository(t),
		publisher:   rabbitmocks.NewEventPublisher(t),
	}
}

func (f fields) app() apprequest.RequestApp {
	return apprequest.NewRequestApp(f.txRepo, f.requestRepo, f.userRepo, f.stockRepo, f.redisRepo, f.publisher, nil)
}

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

func eventOf(evtType constant.EventType) interface{} {
	return mock.MatchedBy(func(evt model.RequestEvent) bool { return evt.Type == evtType })
}

func TestRequestApp_Create(t *testing.T) {
	retailerEntity := &model.UserEntity{ID: 4, Name: "Retailer R", Role: constant.RoleRetailer, ParentID: ptr(1)}
	agentEntity := &model.UserEntity{ID: 2, Name: "Agent A", Role: constant.RoleAgent, ParentID: ptr(1)}

	tests := []struct {
		name      string
		requester model.Principal
		input     *model.CreateRequestInput
		mockCall  func(f fields)
		wantTo    uint64
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name:      "success: retailer requests from available agent",
			requester: retailerR,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 5, Reason: "weekly restock", TargetID: ptr(2)},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 4}).Return(retailerEntity, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 2}).Return(agentEntity, nil).Once()
				f.requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.ProductRequest) bool {
					return r.Status == constant.RequestStatusPending &&
						r.RequesterID == 4 &&
						r.RequesterRole == constant.RoleRetailer &&
						r.TargetID != nil && *r.TargetID == 2 &&
						r.Quantity == 5 &&
						strings.HasPrefix(r.OrderID, "ORD-") && len(r.OrderID) == 12
				})).Return(func(_ context.Context, r *model.ProductRequest) (*model.ProductRequest, error) {
					r.ID = 10
					return r, nil
				}).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(4), uint64(2), uint64(1)).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, eventOf(constant.EventRequestCreated)).Return(nil).Once()
			},
			wantTo: 2,
		},
		{
			name:      "success: agent request goes to its distributor and ignores target_id",
			requester: agentA,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeMobile, Quantity: 3, Reason: "low", TargetID: ptr(99)},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 2}).Return(agentEntity, nil).Once()
				f.requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.ProductRequest) bool {
					return r.TargetID != nil && *r.TargetID == 1
				})).Return(func(_ context.Context, r *model.ProductRequest) (*model.ProductRequest, error) {
					r.ID = 11
					return r, nil
				}).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(2), uint64(1)).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, eventOf(constant.EventRequestCreated)).Return(nil).Once()
			},
			wantTo: 1,
		},
		{
			name:      "success: unparented agent falls back to first distributor",
			requester: agentB,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeFiber, Quantity: 1, Reason: "new site"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 3}).Return(&model.UserEntity{ID: 3, Name: "Agent B", Role: constant.RoleAgent}, nil).Once()
				f.userRepo.On("FirstByRole", mock.Anything, constant.RoleDistributor).Return(&model.UserEntity{ID: 1, Role: constant.RoleDistributor}, nil).Once()
				f.requestRepo.On("Create", mock.Anything, mock.Anything).Return(func(_ context.Context, r *model.ProductRequest) (*model.ProductRequest, error) {
					r.ID = 12
					return r, nil
				}).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(3), uint64(1)).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			wantTo: 1,
		},
		{
			name:      "error: retailer without target",
			requester: retailerR,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 5, Reason: "restock"},
			wantErr:   true,
			errCode:   constant.ErrInvalidRequest,
		},
		{
			name:      "error: retailer picks agent of another distributor",
			requester: retailerR,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 5, Reason: "restock", TargetID: ptr(3)},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 4}).Return(retailerEntity, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 3}).Return(&model.UserEntity{ID: 3, Role: constant.RoleAgent, ParentID: ptr(8)}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:      "error: retailer targets a non-agent",
			requester: retailerR,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 5, Reason: "restock", TargetID: ptr(1)},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 4}).Return(retailerEntity, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(&model.UserEntity{ID: 1, Role: constant.RoleDistributor}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:      "error: zero quantity",
			requester: agentA,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 0, Reason: "restock"},
			wantErr:   true,
			errCode:   constant.ErrInvalidRequest,
		},
		{
			name:      "error: negative quantity",
			requester: retailerR,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: -2, Reason: "restock", TargetID: ptr(2)},
			wantErr:   true,
			errCode:   constant.ErrInvalidRequest,
		},
		{
			name:      "error: blank reason",
			requester: agentA,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 1, Reason: "   "},
			wantErr:   true,
			errCode:   constant.ErrInvalidRequest,
		},
		{
			name:      "error: distributor cannot request",
			requester: distributor,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 1, Reason: "x"},
			wantErr:   true,
			errCode:   constant.ErrForbidden,
		},
		{
			name:      "error: repository Create fails",
			requester: agentA,
			input:     &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 1, Reason: "x"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 2}).Return(agentEntity, nil).Once()
				f.requestRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().Create(context.Background(), tt.requester, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Status != constant.RequestStatusPending {
				t.Fatalf("Create() status = %s, want pending", got.Status)
			}
			if got.TargetID == nil || *got.TargetID != tt.wantTo {
				t.Fatalf("Create() target = %v, want %d", got.TargetID, tt.wantTo)
			}
		})
	}
}

func TestRequestApp_Create_WithoutPublisher(t *testing.T) {
	f := newFields(t)
	f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 2}).Return(&model.UserEntity{ID: 2, Role: constant.RoleAgent, ParentID: ptr(1)}, nil).Once()
	f.requestRepo.On("Create", mock.Anything, mock.Anything).Return(&model.ProductRequest{ID: 1, RequesterID: 2, TargetID: ptr(1), Status: constant.RequestStatusPending}, nil).Once()
	f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
	f.redisRepo.On("InvalidateStats", mock.Anything, uint64(2), uint64(1)).Return(errors.New("redis down")).Once()

	app := apprequest.NewRequestApp(f.txRepo, f.requestRepo, f.userRepo, f.stockRepo, f.redisRepo, nil, nil)
	if _, err := app.Create(context.Background(), agentA, &model.CreateRequestInput{ProductType: constant.ProductTypeSIM, Quantity: 1, Reason: "x"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func retailerRequest(status constant.RequestStatus) *model.ProductRequest {
	return &model.ProductRequest{
		ID:            10,
		OrderID:       "ORD-AAAA0001",
		RequesterID:   4,
		RequesterRole: constant.RoleRetailer,
		TargetID:      ptr(2),
		ProductType:   constant.ProductTypeSIM,
		Quantity:      5,
		Status:        status,
	}
}

func agentRequest(status constant.RequestStatus) *model.ProductRequest {
	return &model.ProductRequest{
		ID:            20,
		OrderID:       "ORD-BBBB0002",
		RequesterID:   2,
		RequesterRole: constant.RoleAgent,
		TargetID:      ptr(1),
		ProductType:   constant.ProductTypeMobile,
		Quantity:      3,
		Status:        status,
	}
}

type transitionCase struct {
	name     string
	actor    model.Principal
	id       uint64
	mockCall func(f fields, tx *sqlx.Tx)
	want     constant.RequestStatus
	wantErr  bool
	errCode  constant.ErrorType
}

func runTransitions(t *testing.T, op string, tests []transitionCase,
	call func(app apprequest.RequestApp, actor model.Principal, id uint64) (*model.ProductRequest, error)) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			if tt.wantErr {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			} else {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
			}
			tt.mockCall(f, tx)

			got, err := call(f.app(), tt.actor, tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("%s() error = %v, wantErr %v", op, err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Status != tt.want {
				t.Fatalf("%s() status = %s, want %s", op, got.Status, tt.want)
			}
		})
	}
}

func TestRequestApp_Approve(t *testing.T) {
	tests := []transitionCase{
		{
			name:  "success: target approves pending request",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusPending), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(10), constant.RequestStatusPending, constant.RequestStatusApproved).Return(nil).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(4), uint64(2), uint64(1)).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, eventOf(constant.EventRequestApproved)).Return(nil).Once()
			},
			want: constant.RequestStatusApproved,
		},
		{
			name:  "error: requester cannot approve own request",
			actor: retailerR,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusPending), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:  "error: non-target is forbidden regardless of status",
			actor: agentB,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusFulfilled), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:  "error: already approved",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusApproved), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidState,
		},
		{
			name:  "error: rejected request",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusRejected), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidState,
		},
		{
			name:  "error: lost compare-and-swap race",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusPending), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(10), constant.RequestStatusPending, constant.RequestStatusApproved).Return(requestrepo.ErrStaleStatus).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidState,
		},
		{
			name:  "error: request not found",
			actor: agentA,
			id:    404,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(404)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:  "error: repository failure",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	runTransitions(t, "Approve", tests, func(app apprequest.RequestApp, actor model.Principal, id uint64) (*model.ProductRequest, error) {
		return app.Approve(context.Background(), actor, id)
	})
}

func TestRequestApp_Fulfill(t *testing.T) {
	tests := []transitionCase{
		{
			name:  "success: agent fulfills retailer request from own stock",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusApproved), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(10), constant.RequestStatusApproved, constant.RequestStatusFulfilled).Return(nil).Once()
				f.stockRepo.On("ApplyMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.FromOwnerID != nil && *m.FromOwnerID == 2 &&
						m.ToOwnerID == nil &&
						m.RequestID == 10 && m.Quantity == 5 && m.ProductType == constant.ProductTypeSIM
				})).Return(nil).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(4), uint64(2), uint64(1)).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, eventOf(constant.EventRequestFulfilled)).Return(nil).Once()
			},
			want: constant.RequestStatusFulfilled,
		},
		{
			name:  "success: distributor fulfills agent request and credits the agent",
			actor: distributor,
			id:    20,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(20)).Return(agentRequest(constant.RequestStatusApproved), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(20), constant.RequestStatusApproved, constant.RequestStatusFulfilled).Return(nil).Once()
				f.stockRepo.On("ApplyMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.FromOwnerID == nil &&
						m.ToOwnerID != nil && *m.ToOwnerID == 2 &&
						m.Quantity == 3 && m.ProductType == constant.ProductTypeMobile
				})).Return(nil).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(2), uint64(1)).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, eventOf(constant.EventRequestFulfilled)).Return(nil).Once()
			},
			want: constant.RequestStatusFulfilled,
		},
		{
			name:  "error: fulfill pending request",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusPending), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidState,
		},
		{
			name:  "error: fulfill already fulfilled request",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusFulfilled), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidState,
		},
		{
			name:  "error: non-target cannot fulfill",
			actor: distributor,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusApproved), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:  "error: agent lacks stock",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusApproved), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(10), constant.RequestStatusApproved, constant.RequestStatusFulfilled).Return(nil).Once()
				f.stockRepo.On("ApplyMovementTx", mock.Anything, tx, mock.Anything).Return(cerr.SetCustomError(constant.ErrInsufficientStock)).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name:  "error: ledger write fails",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusApproved), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(10), constant.RequestStatusApproved, constant.RequestStatusFulfilled).Return(nil).Once()
				f.stockRepo.On("ApplyMovementTx", mock.Anything, tx, mock.Anything).Return(errors.New("deadlock")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	runTransitions(t, "Fulfill", tests, func(app apprequest.RequestApp, actor model.Principal, id uint64) (*model.ProductRequest, error) {
		return app.Fulfill(context.Background(), actor, id)
	})
}

func TestRequestApp_Reject(t *testing.T) {
	tests := []transitionCase{
		{
			name:  "success: target rejects pending request",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusPending), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(10), constant.RequestStatusPending, constant.RequestStatusRejected).Return(nil).Once()
				f.userRepo.On("List", mock.Anything, distributorFilter).Return(distributors, nil).Once()
				f.redisRepo.On("InvalidateStats", mock.Anything, uint64(4), uint64(2), uint64(1)).Return(nil).Once()
				f.publisher.On("PublishRequestEvent", mock.Anything, eventOf(constant.EventRequestRejected)).Return(nil).Once()
			},
			want: constant.RequestStatusRejected,
		},
		{
			name:  "error: approved request cannot be rejected",
			actor: agentA,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusApproved), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidState,
		},
		{
			name:  "error: requester cannot reject",
			actor: retailerR,
			id:    10,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.requestRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(10)).Return(retailerRequest(constant.RequestStatusPending), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
	}
	runTransitions(t, "Reject", tests, func(app apprequest.RequestApp, actor model.Principal, id uint64) (*model.ProductRequest, error) {
		return app.Reject(context.Background(), actor, id)
	})
}

func TestRequestApp_List(t *testing.T) {
	t.Run("agent gets participant scope and row actions", func(t *testing.T) {
		f := newFields(t)
		f.requestRepo.On("List", mock.Anything, &model.RequestFilter{ParticipantID: 2}).
			Return([]model.ProductRequest{*retailerRequest(constant.RequestStatusPending), *agentRequest(constant.RequestStatusPending)}, nil).Once()

		rows, err := f.app().List(context.Background(), agentA)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("List() len = %d, want 2", len(rows))
		}
		if len(rows[0].Actions) != 1 || rows[0].Actions[0] != constant.ActionApprove {
			t.Fatalf("List() actions on incoming request = %v", rows[0].Actions)
		}
		if len(rows[1].Actions) != 0 {
			t.Fatalf("List() actions on own request = %v", rows[1].Actions)
		}
	})

	t.Run("retailer gets requester scope", func(t *testing.T) {
		f := newFields(t)
		f.requestRepo.On("List", mock.Anything, &model.RequestFilter{RequesterID: 4}).
			Return([]model.ProductRequest{*retailerRequest(constant.RequestStatusApproved)}, nil).Once()

		rows, err := f.app().List(context.Background(), retailerR)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(rows) != 1 || len(rows[0].Actions) != 0 {
			t.Fatalf("List() = %+v", rows)
		}
	})

	t.Run("error: repository failure", func(t *testing.T) {
		f := newFields(t)
		f.requestRepo.On("List", mock.Anything, &model.RequestFilter{}).Return(nil, errors.New("db error")).Once()

		_, err := f.app().List(context.Background(), distributor)
		assertErrCode(t, err, constant.ErrInternal)
	})

	t.Run("error: unknown role", func(t *testing.T) {
		f := newFields(t)
		_, err := f.app().List(context.Background(), model.Principal{ID: 9, Role: "auditor"})
		assertErrCode(t, err, constant.ErrForbidden)
	})
}

func TestRequestApp_Get(t *testing.T) {
	tests := []struct {
		name    string
		actor   model.Principal
		stored  *model.ProductRequest
		wantErr bool
		errCode constant.ErrorType
	}{
		{name: "requester sees own request", actor: retailerR, stored: retailerRequest(constant.RequestStatusPending)},
		{name: "target sees request with approve action", actor: agentA, stored: retailerRequest(constant.RequestStatusPending)},
		{name: "distributor sees any request", actor: distributor, stored: retailerRequest(constant.RequestStatusPending)},
		{name: "other agent gets not found", actor: agentB, stored: retailerRequest(constant.RequestStatusPending), wantErr: true, errCode: constant.ErrNotFound},
		{name: "missing request", actor: agentA, stored: nil, wantErr: true, errCode: constant.ErrNotFound},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			f.requestRepo.On("GetByID", mock.Anything, uint64(10)).Return(tt.stored, nil).Once()

			got, err := f.app().Get(context.Background(), tt.actor, 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Get() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.ID != 10 {
				t.Fatalf("Get() = %+v", got)
			}
		})
	}
}
