package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrForbidden
	ErrInvalidState
	ErrInsufficientStock
	ErrUnavailable
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:           "success",
	ErrInternal:          "error internal",
	ErrNotFound:          "data not found",
	ErrInvalidRequest:    "invalid request",
	ErrUnauthorize:       "unauthorize request",
	ErrCredentialExists:  "email or phone already exists",
	ErrInvalidPassword:   "password invalid",
	ErrForbidden:         "action not allowed for this user",
	ErrInvalidState:      "request is not in a valid status for this action",
	ErrInsufficientStock: "insufficient stock",
	ErrUnavailable:       "service temporarily unavailable",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:           http.StatusOK,
	ErrInternal:          http.StatusInternalServerError,
	ErrNotFound:          http.StatusNotFound,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrUnauthorize:       http.StatusUnauthorized,
	ErrCredentialExists:  http.StatusBadRequest,
	ErrInvalidPassword:   http.StatusBadRequest,
	ErrForbidden:         http.StatusForbidden,
	ErrInvalidState:      http.StatusConflict,
	ErrInsufficientStock: http.StatusConflict,
	ErrUnavailable:       http.StatusServiceUnavailable,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:           "0000",
	ErrInternal:          "0001",
	ErrNotFound:          "0002",
	ErrInvalidRequest:    "0003",
	ErrUnauthorize:       "0004",
	ErrCredentialExists:  "0005",
	ErrInvalidPassword:   "0006",
	ErrForbidden:         "0007",
	ErrInvalidState:      "0008",
	ErrInsufficientStock: "0009",
	ErrUnavailable:       "0010",
}
