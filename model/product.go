package model

import (
	"time"

	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uint64               `db:"id" json:"id"`
	Type         constant.ProductType `db:"type" json:"type"`
	Code         string               `db:"code" json:"code"`
	SerialNumber string               `db:"serial_number" json:"serial_number"`
	Price        decimal.Decimal      `db:"price" json:"price"`
	CreatedBy    uint64               `db:"created_by" json:"created_by"`
	CreatedAt    time.Time            `db:"created_at" json:"created_at"`
}

type CreateProductRequest struct {
	Type         constant.ProductType `json:"type" validate:"required,oneof=SIM Mobile Fiber"`
	Code         string               `json:"code" validate:"required"`
	SerialNumber string               `json:"serial_number" validate:"required"`
	Price        decimal.Decimal      `json:"price"`
}
