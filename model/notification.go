package model

import (
	"time"

	"github.com/muhammadheryan/telecom-distribution/constant"
)

// RequestEvent is published on every lifecycle change and on stock reset.
type RequestEvent struct {
	Type        constant.EventType     `json:"type"`
	RequestID   uint64                 `json:"request_id,omitempty"`
	OrderID     string                 `json:"order_id,omitempty"`
	RequesterID uint64                 `json:"requester_id,omitempty"`
	TargetID    *uint64                `json:"target_id,omitempty"`
	ActorID     uint64                 `json:"actor_id"`
	ProductType constant.ProductType   `json:"product_type,omitempty"`
	Quantity    int64                  `json:"quantity,omitempty"`
	Status      constant.RequestStatus `json:"status,omitempty"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

type Notification struct {
	ID        string                 `json:"id"`
	UserID    uint64                 `json:"user_id"`
	Event     constant.EventType     `json:"event"`
	RequestID uint64                 `json:"request_id,omitempty"`
	OrderID   string                 `json:"order_id,omitempty"`
	Status    constant.RequestStatus `json:"status,omitempty"`
	Message   string                 `json:"message"`
	CreatedAt time.Time              `json:"created_at"`
}
