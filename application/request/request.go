package request

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/telecom-distribution/application/dashboard"
	"github.com/muhammadheryan/telecom-distribution/application/user"
	"github.com/muhammadheryan/telecom-distribution/application/visibility"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	redisrepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	requestrepo "github.com/muhammadheryan/telecom-distribution/repository/request"
	stockrepo "github.com/muhammadheryan/telecom-distribution/repository/stock"
	txrepo "github.com/muhammadheryan/telecom-distribution/repository/tx"
	userrepo "github.com/muhammadheryan/telecom-distribution/repository/user"
	"github.com/muhammadheryan/telecom-distribution/thirdparty/rabbitmq"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"go.uber.org/zap"
)

type RequestApp interface {
	Create(ctx context.Context, requester model.Principal, input *model.CreateRequestInput) (*model.ProductRequest, error)
	Approve(ctx context.Context, actor model.Principal, id uint64) (*model.ProductRequest, error)
	Fulfill(ctx context.Context, actor model.Principal, id uint64) (*model.ProductRequest, error)
	Reject(ctx context.Context, actor model.Principal, id uint64) (*model.ProductRequest, error)
	List(ctx context.Context, actor model.Principal) ([]model.RequestRow, error)
	Get(ctx context.Context, actor model.Principal, id uint64) (*model.RequestRow, error)
}

type requestAppImpl struct {
	txRepo      txrepo.TxRepository
	requestRepo requestrepo.RequestRepository
	userRepo    userrepo.UserRepository
	stockRepo   stockrepo.StockRepository
	redisRepo   redisrepo.Repository
	publisher   rabbitmq.EventPublisher
	metrics     *metrics.Metrics
}

func NewRequestApp(
	txRepo txrepo.TxRepository,
	requestRepo requestrepo.RequestRepository,
	userRepo userrepo.UserRepository,
	stockRepo stockrepo.StockRepository,
	redisRepo redisrepo.Repository,
	publisher rabbitmq.EventPublisher,
	m *metrics.Metrics,
) RequestApp {
	return &requestAppImpl{
		txRepo:      txRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		stockRepo:   stockRepo,
		redisRepo:   redisRepo,
		publisher:   publisher,
		metrics:     m,
	}
}

func (s *requestAppImpl) Create(ctx context.Context, requester model.Principal, input *model.CreateRequestInput) (*model.ProductRequest, error) {
	if requester.Role != constant.RoleAgent && requester.Role != constant.RoleRetailer {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrForbidden, "only agents and retailers can request products")
	}
	if input.Quantity <= 0 {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "quantity must be greater than 0")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "reason is required")
	}
	if !input.ProductType.Valid() {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "product_type must be one of SIM, Mobile, Fiber")
	}
	if requester.Role == constant.RoleRetailer && (input.TargetID == nil || *input.TargetID == 0) {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "target_id is required: select an agent")
	}

	self, err := s.userRepo.Get(ctx, &model.UserFilter{ID: requester.ID})
	if err != nil {
		logger.Error("[CreateRequest] err userRepo.Get requester", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if self == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	var targetID uint64
	switch requester.Role {
	case constant.RoleRetailer:
		targetID, err = s.retailerTarget(ctx, self, input.TargetID)
	case constant.RoleAgent:
		targetID, err = s.agentTarget(ctx, self)
	}
	if err != nil {
		return nil, err
	}

	req := &model.ProductRequest{
		OrderID:       newOrderID(),
		RequesterID:   requester.ID,
		RequesterName: self.Name,
		RequesterRole: requester.Role,
		TargetID:      &targetID,
		ProductType:   input.ProductType,
		Quantity:      input.Quantity,
		Reason:        strings.TrimSpace(input.Reason),
		Status:        constant.RequestStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		logger.Error("[CreateRequest] err requestRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.metrics.RecordRequestCreated(string(requester.Role))
	s.afterChange(ctx, "[CreateRequest]", created, requester.ID)
	return created, nil
}

// retailerTarget checks the chosen agent against the retailer's available agents.
func (s *requestAppImpl) retailerTarget(ctx context.Context, retailer *model.UserEntity, targetID *uint64) (uint64, error) {
	agent, err := s.userRepo.Get(ctx, &model.UserFilter{ID: *targetID})
	if err != nil {
		logger.Error("[CreateRequest] err userRepo.Get target", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if !user.AgentAvailableTo(agent, retailer) {
		return 0, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "selected agent is not available")
	}
	return agent.ID, nil
}

// agentTarget resolves an agent's request to its own distributor, or to the
// first distributor when the agent was not provisioned by one.
func (s *requestAppImpl) agentTarget(ctx context.Context, agent *model.UserEntity) (uint64, error) {
	if agent.ParentID != nil {
		return *agent.ParentID, nil
	}

	distributor, err := s.userRepo.FirstByRole(ctx, constant.RoleDistributor)
	if err != nil {
		logger.Error("[CreateRequest] err userRepo.FirstByRole", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if distributor == nil {
		return 0, errors.SetCustomErrorWithDetail(constant.ErrNotFound, "no distributor available to receive the request")
	}
	return distributor.ID, nil
}

func (s *requestAppImpl) Approve(ctx context.Context, actor model.Principal, id uint64) (*model.ProductRequest, error) {
	return s.transition(ctx, "[ApproveRequest]", actor, id, constant.ActionApprove)
}

// Fulfill completes an approved request and moves the stock in the same transaction.
func (s *requestAppImpl) Fulfill(ctx context.Context, actor model.Principal, id uint64) (*model.ProductRequest, error) {
	return s.transition(ctx, "[FulfillRequest]", actor, id, constant.ActionFulfill)
}

func (s *requestAppImpl) Reject(ctx context.Context, actor model.Principal, id uint64) (*model.ProductRequest, error) {
	return s.transition(ctx, "[RejectRequest]", actor, id, constant.ActionReject)
}

func (s *requestAppImpl) transition(ctx context.Context, op string, actor model.Principal, id uint64, action constant.RequestAction) (*model.ProductRequest, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error(op+" begin tx", zap.String("error", err.Error()))
		s.metrics.RecordTransition(string(action), "error")
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	req, err := s.requestRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		logger.Error(op+" get request for update", zap.String("error", err.Error()))
		s.metrics.RecordTransition(string(action), "error")
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if req == nil {
		s.metrics.RecordTransition(string(action), "not_found")
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	from := req.Status
	to, err := visibility.CheckTransition(actor, req, action)
	if err != nil {
		return nil, s.refuse(op, action, req, actor, err)
	}

	if err := s.requestRepo.UpdateStatusTx(ctx, tx, id, from, to); err != nil {
		if stderrors.Is(err, requestrepo.ErrStaleStatus) {
			logger.Info(op+" status changed concurrently", zap.Uint64("request_id", id), zap.String("expected", string(from)))
			s.metrics.RecordTransition(string(action), "invalid_state")
			return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidState, "request was modified by someone else, reload and try again")
		}
		logger.Error(op+" update status", zap.String("error", err.Error()))
		s.metrics.RecordTransition(string(action), "error")
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if action == constant.ActionFulfill {
		movement := movementFor(actor, req)
		if err := s.stockRepo.ApplyMovementTx(ctx, tx, movement); err != nil {
			if stderrors.Is(err, errors.SetCustomError(constant.ErrInsufficientStock)) {
				logger.Info(op+" insufficient stock",
					zap.Uint64("owner_id", actor.ID),
					zap.String("product_type", string(req.ProductType)),
					zap.Int64("need", req.Quantity),
				)
				s.metrics.RecordTransition(string(action), "insufficient_stock")
				return nil, errors.SetCustomErrorWithDetail(constant.ErrInsufficientStock,
					fmt.Sprintf("not enough %s stock to fulfill %d units", req.ProductType, req.Quantity))
			}
			logger.Error(op+" apply stock movement", zap.String("error", err.Error()))
			s.metrics.RecordTransition(string(action), "error")
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error(op+" commit tx", zap.String("error", err.Error()))
		s.metrics.RecordTransition(string(action), "error")
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	now := time.Now().UTC()
	req.Status = to
	req.UpdatedAt = &now

	s.metrics.RecordTransition(string(action), "success")
	logger.Info(op+" request transitioned",
		zap.Uint64("request_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Uint64("actor_id", actor.ID),
	)
	s.afterChange(ctx, op, req, actor.ID)
	return req, nil
}

func (s *requestAppImpl) refuse(op string, action constant.RequestAction, req *model.ProductRequest, actor model.Principal, err error) error {
	switch {
	case stderrors.Is(err, visibility.ErrNotTarget):
		s.metrics.RecordTransition(string(action), "forbidden")
		logger.Info(op+" actor is not the target", zap.Uint64("request_id", req.ID), zap.Uint64("actor_id", actor.ID))
		return errors.SetCustomErrorWithDetail(constant.ErrForbidden, fmt.Sprintf("only the request's target can %s it", action))
	case stderrors.Is(err, visibility.ErrInvalidStatus):
		s.metrics.RecordTransition(string(action), "invalid_state")
		from, _, _ := constant.Transition(action)
		return errors.SetCustomErrorWithDetail(constant.ErrInvalidState,
			fmt.Sprintf("cannot %s a request that is %s (must be %s)", action, req.Status, from))
	default:
		s.metrics.RecordTransition(string(action), "error")
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
}

// movementFor decides the ledger effect of fulfilling req. The distributor tier
// is unlimited so it is never debited; retailers hold no records so they are
// never credited. Agents are debited when they fulfil and credited when a
// distributor fulfils for them.
func movementFor(actor model.Principal, req *model.ProductRequest) *model.StockMovement {
	m := &model.StockMovement{
		RequestID:   req.ID,
		ProductType: req.ProductType,
		Quantity:    req.Quantity,
		CreatedBy:   actor.ID,
	}
	if actor.Role == constant.RoleAgent {
		from := actor.ID
		m.FromOwnerID = &from
	}
	if req.RequesterRole == constant.RoleAgent {
		to := req.RequesterID
		m.ToOwnerID = &to
	}
	return m
}

func (s *requestAppImpl) List(ctx context.Context, actor model.Principal) ([]model.RequestRow, error) {
	view, err := visibility.For(actor)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	scope := view.Scope()
	requests, err := s.requestRepo.List(ctx, &scope)
	if err != nil {
		logger.Error("[ListRequests] err requestRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return visibility.Rows(view, actor, requests), nil
}

func (s *requestAppImpl) Get(ctx context.Context, actor model.Principal, id uint64) (*model.RequestRow, error) {
	view, err := visibility.For(actor)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetRequest] err requestRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	// invisible requests are reported as missing
	if req == nil || !view.Visible(req) {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return &model.RequestRow{ProductRequest: *req, Actions: visibility.Actions(actor, req)}, nil
}

// afterChange drops cached stats of both parties and of every distributor,
// then announces the new status. Failures here are logged only; the change
// itself is already committed.
func (s *requestAppImpl) afterChange(ctx context.Context, op string, req *model.ProductRequest, actorID uint64) {
	affected := []uint64{req.RequesterID}
	if req.TargetID != nil {
		affected = append(affected, *req.TargetID)
	}
	if err := dashboard.InvalidateStats(ctx, s.userRepo, s.redisRepo, affected...); err != nil {
		logger.Warn(op+" invalidate stats", zap.String("error", err.Error()))
	}

	if s.publisher == nil {
		return
	}
	evt := model.RequestEvent{
		Type:        constant.EventForStatus[req.Status],
		RequestID:   req.ID,
		OrderID:     req.OrderID,
		RequesterID: req.RequesterID,
		TargetID:    req.TargetID,
		ActorID:     actorID,
		ProductType: req.ProductType,
		Quantity:    req.Quantity,
		Status:      req.Status,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishRequestEvent(ctx, evt); err != nil {
		logger.Error(op+" publish event", zap.String("type", string(evt.Type)), zap.String("error", err.Error()))
	}
}

// newOrderID returns a short display token such as ORD-1A2B3C4D.
func newOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:8])
}
