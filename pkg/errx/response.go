package errx

// Response is the JSON body returned to HTTP clients
type Response struct {
	Error     string         `json:"error"`
	Code      string         `json:"code"`
	Type      string         `json:"type"`
	Status    int            `json:"status"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     string         `json:"underlying_error,omitempty"`
}

// ToResponse renders any error as a Response. Causes are only included
// when debug is set.
func ToResponse(err error, requestID string, debug bool) Response {
	var e *Error
	if !As(err, &e) {
		e = Wrap(err, "Internal server error", TypeInternal)
	}

	resp := Response{
		Error:     e.Message,
		Code:      e.Code,
		Type:      e.Type.String(),
		Status:    e.HTTPStatus,
		RequestID: requestID,
	}
	if len(e.Details) > 0 {
		resp.Details = e.Details
	}
	if debug && e.Err != nil {
		resp.Cause = e.Err.Error()
	}
	return resp
}
