package shared

import (
	"errors"
	"fmt"
)

// RequestError is used when we want a specific error message and StatusCode.
// sane defaults are listed below. For routes that need custom error messages,
// a request error can be generated and a handler expects the router to return
// the exact message inside the request error msg
//
// Error codes should be bubbled where the RequestError msg is expected to be
// returned to the user. If the user should see a generic error message but
// the error chain should include more detail for logging purposes, then a generic
// error should be added that provides context
type RequestError struct {
	StatusCode int
	Err        error
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status %d: err %v", r.StatusCode, r.Err)
}

var (
	ErrMissingAuth   = &RequestError{Err: errors.New("missing authorization header"), StatusCode: 401}
	ErrInvalidFormat = &RequestError{Err: errors.New("invalid authentication format"), StatusCode: 401}
	ErrInvalidKeyLen = &RequestError{Err: errors.New("invalid API key length"), StatusCode: 401}
	ErrUnauthorized  = &RequestError{Err: errors.New("unauthorized"), StatusCode: 401}

	ErrInvalidFields  = &RequestError{Err: errors.New("invalid fields"), StatusCode: 403}
	ErrInvalidRequest = &RequestError{Err: errors.New("invalid request body"), StatusCode: 400}
	ErrUnknownIntent  = &RequestError{Err: errors.New("unknown tool intent"), StatusCode: 400}

	ErrInsufficientCredits = &RequestError{Err: errors.New("insufficient credits"), StatusCode: 403}
	ErrGenerationFailed    = &RequestError{Err: errors.New("generation failed, try again"), StatusCode: 403}
	ErrRefundFailed        = &RequestError{Err: errors.New("something went wrong refunding your credits"), StatusCode: 403}
	ErrPersistFailed       = &RequestError{Err: errors.New("something went wrong"), StatusCode: 403}

	ErrInternalServerError = &RequestError{Err: errors.New("internal server error"), StatusCode: 500}
	ErrBadRequest          = &RequestError{Err: errors.New("bad request"), StatusCode: 400}
	ErrNotFound            = &RequestError{Err: errors.New("not found"), StatusCode: 404}
	ErrForbidden           = &RequestError{Err: errors.New("forbidden"), StatusCode: 403}
	ErrEmailExists         = &RequestError{Err: errors.New("email already registered"), StatusCode: 409}

	ErrNoObjectGenerated      = &ProviderError{Msg: "no structured object produced", Code: "no_object_generated"}
	ErrFailedProviderReq      = &ProviderError{Msg: "failed to send http request to provider", Code: "provider_http_err"}
	ErrFailedProviderFromCode = &ProviderError{Msg: "provider responded with non-200", Code: "provider_http_status_err"}
	ErrFailedReadingResponse  = &ProviderError{Msg: "failed to read provider response", Code: "provider_response_err"}
	ErrProviderContext        = &ProviderError{Msg: "provider context canceled", Code: "provider_context_err"}
)

// ProviderError tags failures of the generation provider so metrics and the
// refund path can distinguish them from local faults.
type ProviderError struct {
	Msg  string
	Code string
}

func (p *ProviderError) Error() string {
	return p.String()
}

func (p *ProviderError) String() string {
	return p.Msg
}
