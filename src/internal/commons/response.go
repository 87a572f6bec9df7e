package commons

import "strings"

// Response is the envelope every service returns and every endpoint writes.
// Code is empty on success and holds an ErrorKind otherwise.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{Success: true, Message: message, Data: &data}
}

// ErrorResponse is used at the HTTP edge where no service error exists yet.
func ErrorResponse[T any](message string, errs ...string) Response[T] {
	return Response[T]{Message: message, Errors: errs}
}

// FailureResponse builds an unsuccessful envelope coded with the kind of err.
// Validation failures are split into one entry per violated rule.
func FailureResponse[T any](message string, err error) Response[T] {
	resp := Response[T]{Message: message}
	if err == nil {
		return resp
	}

	kind := KindOf(err)
	resp.Code = string(kind)
	resp.Errors = []string{err.Error()}

	if kind == KindValidation {
		detail := strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
		if detail != err.Error() {
			resp.Errors = strings.Split(detail, "; ")
		}
	}
	return resp
}
