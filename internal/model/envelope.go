package model

// Response is the envelope every backend call resolves to. Exactly one of
// Data and Error is set, consistent with Success.
type Response[T any] struct {
	Success bool      `json:"success"`
	Data    *T        `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// Empty is the payload of endpoints that only acknowledge.
type Empty struct {
	Message string `json:"message,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: &data}
}

// Fail wraps err in a failed envelope.
func Fail[T any](err APIError) Response[T] {
	return Response[T]{Success: false, Error: &err}
}

// NetworkFailure is the envelope synthesized when the transport fails or the
// body does not conform to the envelope contract.
func NetworkFailure[T any]() Response[T] {
	return Fail[T](APIError{Code: CodeNetworkError, Message: NetworkErrorMessage})
}

// Normalize enforces the envelope invariant on a decoded payload. It reports
// false when the payload cannot be repaired (a failure without an error).
func (r *Response[T]) Normalize() bool {
	if r.Success {
		r.Error = nil
		if r.Data == nil {
			r.Data = new(T)
		}
		return true
	}
	r.Data = nil
	return r.Error != nil
}

// Value returns the payload and whether the call succeeded.
func (r Response[T]) Value() (T, bool) {
	if !r.Success || r.Data == nil {
		var zero T
		return zero, false
	}
	return *r.Data, true
}
