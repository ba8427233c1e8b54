// Package visibility decides, without any I/O, what a principal may see and do:
// which requests are visible, which row actions are eligible, which aggregate
// counters apply and what the stock panel shows. Every role is one variant of View,
// selected by For.
package visibility

import (
	"errors"

	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
)

var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrNotTarget     = errors.New("actor is not the request target")
	ErrInvalidStatus = errors.New("request status does not allow this action")
	ErrUnknownAction = errors.New("unknown request action")
)

// rowActions are the actions a dashboard row may offer. Reject is a valid transition
// but is never offered as a row action.
var rowActions = []constant.RequestAction{constant.ActionApprove, constant.ActionFulfill}

// Snapshot is the data the statistics are derived from.
type Snapshot struct {
	Requests      []model.ProductRequest
	Stock         []model.StockRecord
	TotalProducts int64
	TotalAgents   int64
}

type View interface {
	Role() constant.Role
	// Scope narrows the repository query; Visible is the authoritative check.
	Scope() model.RequestFilter
	Visible(r *model.ProductRequest) bool
	Stats(s Snapshot) any
	Capabilities() []model.Capability
}

// For dispatches a principal to its role variant.
func For(p model.Principal) (View, error) {
	switch p.Role {
	case constant.RoleDistributor:
		return distributorView{p: p}, nil
	case constant.RoleAgent:
		return agentView{p: p}, nil
	case constant.RoleRetailer:
		return retailerView{p: p}, nil
	}
	return nil, ErrUnknownRole
}

// CheckTransition validates that p may apply action to r and returns the target status.
// The actor check comes first so a non-target is refused regardless of status.
func CheckTransition(p model.Principal, r *model.ProductRequest, action constant.RequestAction) (constant.RequestStatus, error) {
	from, to, ok := constant.Transition(action)
	if !ok {
		return "", ErrUnknownAction
	}
	if !r.TargetedAt(p.ID) {
		return "", ErrNotTarget
	}
	if r.Status != from {
		return "", ErrInvalidStatus
	}
	return to, nil
}

// Actions lists the row actions p may take on r.
func Actions(p model.Principal, r *model.ProductRequest) []constant.RequestAction {
	out := make([]constant.RequestAction, 0, 1)
	for _, a := range rowActions {
		if _, err := CheckTransition(p, r, a); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// Rows keeps the requests visible to v and annotates each with its eligible actions.
func Rows(v View, p model.Principal, requests []model.ProductRequest) []model.RequestRow {
	rows := make([]model.RequestRow, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		if !v.Visible(r) {
			continue
		}
		rows = append(rows, model.RequestRow{ProductRequest: *r, Actions: Actions(p, r)})
	}
	return rows
}

// StockView returns the owner's quantity for each fixed product type; a missing
// record is a zero quantity.
func StockView(ownerID uint64, records []model.StockRecord) []model.StockLine {
	byType := StockByType(ownerID, records)
	lines := make([]model.StockLine, 0, len(constant.ProductTypes))
	for _, t := range constant.ProductTypes {
		lines = append(lines, model.StockLine{ProductType: t, Quantity: byType[t]})
	}
	return lines
}

func StockByType(ownerID uint64, records []model.StockRecord) map[constant.ProductType]int64 {
	out := make(map[constant.ProductType]int64, len(constant.ProductTypes))
	for _, t := range constant.ProductTypes {
		out[t] = 0
	}
	for _, rec := range records {
		if rec.OwnerID == ownerID {
			out[rec.ProductType] += rec.Quantity
		}
	}
	return out
}

type distributorView struct{ p model.Principal }

func (distributorView) Role() constant.Role                  { return constant.RoleDistributor }
func (distributorView) Scope() model.RequestFilter           { return model.RequestFilter{} }
func (distributorView) Visible(_ *model.ProductRequest) bool { return true }

func (distributorView) Stats(s Snapshot) any {
	stats := model.DistributorStats{TotalProducts: s.TotalProducts, TotalAgents: s.TotalAgents}
	for _, r := range s.Requests {
		if r.Status == constant.RequestStatusPending {
			stats.PendingRequests++
		}
	}
	return stats
}

func (distributorView) Capabilities() []model.Capability {
	return []model.Capability{model.CapabilityCreateProduct, model.CapabilityCreateUser, model.CapabilityResetStock}
}

type agentView struct{ p model.Principal }

func (agentView) Role() constant.Role { return constant.RoleAgent }

func (v agentView) Scope() model.RequestFilter {
	return model.RequestFilter{ParticipantID: v.p.ID}
}

func (v agentView) Visible(r *model.ProductRequest) bool {
	return r.RequesterID == v.p.ID || r.TargetedAt(v.p.ID)
}

func (v agentView) Stats(s Snapshot) any {
	stock := StockByType(v.p.ID, s.Stock)
	stats := model.AgentStats{CurrentStock: stock}
	for _, q := range stock {
		stats.CurrentStockTotal += q
	}
	for i := range s.Requests {
		r := &s.Requests[i]
		if r.RequesterID == v.p.ID && !r.Status.IsTerminal() {
			stats.MyRequests++
		}
		if r.TargetedAt(v.p.ID) && r.RequesterRole == constant.RoleRetailer {
			stats.RetailerRequests++
		}
	}
	return stats
}

func (agentView) Capabilities() []model.Capability {
	return []model.Capability{model.CapabilityRequestProduct}
}

type retailerView struct{ p model.Principal }

func (retailerView) Role() constant.Role { return constant.RoleRetailer }

func (v retailerView) Scope() model.RequestFilter {
	return model.RequestFilter{RequesterID: v.p.ID}
}

func (v retailerView) Visible(r *model.ProductRequest) bool {
	return r.RequesterID == v.p.ID
}

func (v retailerView) Stats(s Snapshot) any {
	var stats model.RetailerStats
	for _, r := range s.Requests {
		if r.RequesterID != v.p.ID {
			continue
		}
		stats.TotalRequests++
		switch r.Status {
		case constant.RequestStatusPending:
			stats.PendingRequests++
		case constant.RequestStatusFulfilled:
			stats.FulfilledRequests++
		}
	}
	return stats
}

func (retailerView) Capabilities() []model.Capability {
	return []model.Capability{model.CapabilityRequestProduct}
}
