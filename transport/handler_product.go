package transport

import (
	"net/http"

	"github.com/muhammadheryan/telecom-distribution/model"
)

// ListProducts handler
// @Summary List products
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Product
// @Router /api/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Description Distributor only
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateProductRequest true "Create Product Request"
// @Success 201 {object} model.Product
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CreateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.Create(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}
