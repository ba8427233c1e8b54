package model

import "github.com/muhammadheryan/telecom-distribution/constant"

type DistributorStats struct {
	TotalProducts   int64 `json:"total_products"`
	PendingRequests int64 `json:"pending_requests"`
	TotalAgents     int64 `json:"total_agents"`
}

type AgentStats struct {
	CurrentStock      map[constant.ProductType]int64 `json:"current_stock"`
	CurrentStockTotal int64                          `json:"current_stock_total"`
	MyRequests        int64                          `json:"my_requests"`
	RetailerRequests  int64                          `json:"retailer_requests"`
}

type RetailerStats struct {
	TotalRequests     int64 `json:"total_requests"`
	PendingRequests   int64 `json:"pending_requests"`
	FulfilledRequests int64 `json:"fulfilled_requests"`
}

// Capability is a top-level dashboard action offered to a role.
type Capability string

const (
	CapabilityCreateProduct  Capability = "create_product"
	CapabilityCreateUser     Capability = "create_user"
	CapabilityResetStock     Capability = "reset_stock"
	CapabilityRequestProduct Capability = "request_product"
)

type DashboardView struct {
	User         Principal    `json:"user"`
	Stats        any          `json:"stats"`
	Capabilities []Capability `json:"capabilities"`
	Requests     []RequestRow `json:"requests"`
	Stock        []StockLine  `json:"stock,omitempty"`
}
