package model

import (
	"time"

	"github.com/muhammadheryan/telecom-distribution/constant"
)

// ProductRequest is a quantity request for a product type moving through the approval lifecycle.
type ProductRequest struct {
	ID            uint64                 `db:"id" json:"id"`
	OrderID       string                 `db:"order_id" json:"order_id"`
	RequesterID   uint64                 `db:"requester_id" json:"requester_id"`
	RequesterName string                 `db:"requester_name" json:"requester_name"`
	RequesterRole constant.Role          `db:"requester_role" json:"requester_role"`
	TargetID      *uint64                `db:"target_id" json:"target_id"`
	ProductType   constant.ProductType   `db:"product_type" json:"product_type"`
	Quantity      int64                  `db:"quantity" json:"quantity"`
	Reason        string                 `db:"reason" json:"reason"`
	Status        constant.RequestStatus `db:"status" json:"status"`
	CreatedAt     time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time             `db:"updated_at" json:"updated_at,omitempty"`
}

// TargetedAt reports whether userID is the request's fulfiller.
func (r *ProductRequest) TargetedAt(userID uint64) bool {
	return r.TargetID != nil && *r.TargetID == userID
}

type CreateRequestInput struct {
	ProductType constant.ProductType `json:"product_type" validate:"required,oneof=SIM Mobile Fiber"`
	Quantity    int64                `json:"quantity" validate:"gt=0"`
	Reason      string               `json:"reason" validate:"required"`
	TargetID    *uint64              `json:"target_id,omitempty"`
}

// RequestFilter narrows a request listing. Zero values mean "no constraint";
// ParticipantID matches either side of the request.
type RequestFilter struct {
	RequesterID   uint64
	ParticipantID uint64
}

// RequestRow is a request with the actions the viewer may take on it.
type RequestRow struct {
	ProductRequest
	Actions []constant.RequestAction `json:"actions"`
}
