package transport

import (
	"context"
	"net/http"

	"github.com/muhammadheryan/telecom-distribution/model"
)

// ListRequests handler
// @Summary Visible product requests
// @Description Requests the caller may see, each with the row actions the caller may take
// @Tags Product Requests
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.RequestRow
// @Router /api/product-requests [get]
func (s *RestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.RequestApp.List(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateRequest handler
// @Summary Create product request
// @Description Agents request from their distributor; retailers must pick one of their available agents
// @Tags Product Requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateRequestInput true "Create Request"
// @Success 201 {object} model.ProductRequest
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/product-requests [post]
func (s *RestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CreateRequestInput
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.RequestApp.Create(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// GetRequest handler
// @Summary Get product request
// @Tags Product Requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} model.RequestRow
// @Failure 404 {object} model.ErrorResponse
// @Router /api/product-requests/{id} [get]
func (s *RestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.RequestApp.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

type transitionFunc func(ctx context.Context, actor model.Principal, id uint64) (*model.ProductRequest, error)

func (s *RestHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := fn(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApproveRequest handler
// @Summary Approve a pending request
// @Tags Product Requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} model.ProductRequest
// @Failure 403 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/product-requests/{id}/approve [put]
func (s *RestHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.RequestApp.Approve)
}

// FulfillRequest handler
// @Summary Fulfill an approved request
// @Description Moves stock in the same transaction as the status change
// @Tags Product Requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} model.ProductRequest
// @Failure 403 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/product-requests/{id}/fulfill [put]
func (s *RestHandler) FulfillRequest(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.RequestApp.Fulfill)
}

// RejectRequest handler
// @Summary Reject a pending request
// @Tags Product Requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} model.ProductRequest
// @Failure 403 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/product-requests/{id}/reject [put]
func (s *RestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.RequestApp.Reject)
}
