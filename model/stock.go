package model

import (
	"time"

	"github.com/muhammadheryan/telecom-distribution/constant"
)

type StockRecord struct {
	OwnerID     uint64               `db:"owner_id" json:"owner_id"`
	OwnerName   string               `db:"owner_name" json:"owner_name,omitempty"`
	ProductType constant.ProductType `db:"product_type" json:"product_type"`
	Quantity    int64                `db:"quantity" json:"quantity"`
	UpdatedAt   *time.Time           `db:"updated_at" json:"updated_at,omitempty"`
}

// StockMovement moves quantity from one owner to another. A nil side is outside the ledger
// (the distributor tier is unlimited, retailers hold no records).
type StockMovement struct {
	RequestID   uint64
	FromOwnerID *uint64
	ToOwnerID   *uint64
	ProductType constant.ProductType
	Quantity    int64
	CreatedBy   uint64
}

type StockTransaction struct {
	ID          uint64                        `db:"id" json:"id"`
	RequestID   *uint64                       `db:"request_id" json:"request_id,omitempty"`
	FromOwnerID *uint64                       `db:"from_owner_id" json:"from_owner_id,omitempty"`
	ToOwnerID   *uint64                       `db:"to_owner_id" json:"to_owner_id,omitempty"`
	ProductType constant.ProductType          `db:"product_type" json:"product_type"`
	Quantity    int64                         `db:"quantity" json:"quantity"`
	Kind        constant.StockTransactionKind `db:"kind" json:"kind"`
	CreatedBy   uint64                        `db:"created_by" json:"created_by"`
	CreatedAt   time.Time                     `db:"created_at" json:"created_at"`
}

type ResetStockRequest struct {
	Confirm bool `json:"confirm"`
}

type ResetStockResponse struct {
	RecordsReset int64 `json:"records_reset"`
}

// StockLine is one cell of the fixed SIM/Mobile/Fiber stock panel.
type StockLine struct {
	ProductType constant.ProductType `json:"product_type"`
	Quantity    int64                `json:"quantity"`
}
