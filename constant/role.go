package constant

type Role string

const (
	RoleDistributor Role = "distributor"
	RoleAgent       Role = "agent"
	RoleRetailer    Role = "retailer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDistributor, RoleAgent, RoleRetailer:
		return true
	}
	return false
}

// CanFulfill reports whether the role may be the target of a request.
func (r Role) CanFulfill() bool {
	return r == RoleDistributor || r == RoleAgent
}
