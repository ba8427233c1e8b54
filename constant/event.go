package constant

type EventType string

const (
	EventRequestCreated   EventType = "product_request.created"
	EventRequestApproved  EventType = "product_request.approved"
	EventRequestFulfilled EventType = "product_request.fulfilled"
	EventRequestRejected  EventType = "product_request.rejected"
	EventStockReset       EventType = "stock.reset"
)

// EventForStatus maps a post-transition status to the event announcing it.
var EventForStatus = map[RequestStatus]EventType{
	RequestStatusPending:   EventRequestCreated,
	RequestStatusApproved:  EventRequestApproved,
	RequestStatusFulfilled: EventRequestFulfilled,
	RequestStatusRejected:  EventRequestRejected,
}
