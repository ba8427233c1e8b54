package transport

import (
	"net/http"

	"github.com/muhammadheryan/telecom-distribution/model"
)

// ListStock handler
// @Summary Stock records
// @Description Distributor sees every owner; others see their own records
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.StockRecord
// @Router /api/stock [get]
func (s *RestHandler) ListStock(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.StockApp.List(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListStockTransactions handler
// @Summary Stock movement history
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.StockTransaction
// @Router /api/stock/transactions [get]
func (s *RestHandler) ListStockTransactions(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.StockApp.Transactions(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ResetStock handler
// @Summary Reset all stock
// @Description Distributor only; body must be {"confirm": true}
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.ResetStockRequest true "Confirmation"
// @Success 200 {object} model.ResetStockResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/stock/reset [post]
func (s *RestHandler) ResetStock(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ResetStockRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.StockApp.Reset(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
