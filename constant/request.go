package constant

// RequestStatus is the lifecycle state of a product request.
//
//	pending --approve--> approved --fulfill--> fulfilled
//	pending --reject---> rejected
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusRejected  RequestStatus = "rejected"
)

// IsTerminal reports whether no further transition is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusFulfilled || s == RequestStatusRejected
}

// RequestAction is an operation a principal may invoke on a request row.
type RequestAction string

const (
	ActionApprove RequestAction = "approve"
	ActionFulfill RequestAction = "fulfill"
	ActionReject  RequestAction = "reject"
)

// transitions holds the only legal moves of the request state machine.
var transitions = map[RequestAction]struct {
	From RequestStatus
	To   RequestStatus
}{
	ActionApprove: {From: RequestStatusPending, To: RequestStatusApproved},
	ActionFulfill: {From: RequestStatusApproved, To: RequestStatusFulfilled},
	ActionReject:  {From: RequestStatusPending, To: RequestStatusRejected},
}

// Transition returns the source and destination status for an action.
func Transition(action RequestAction) (from, to RequestStatus, ok bool) {
	t, ok := transitions[action]
	return t.From, t.To, ok
}
