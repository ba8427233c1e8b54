package model

// ErrorResponse is the body of every failed API call. Detail is shown to the user verbatim.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LabelsResponse struct {
	Language string            `json:"language"`
	Labels   map[string]string `json:"labels"`
}
