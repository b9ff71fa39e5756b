package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrDecode     = errors.New("decode error")
	ErrUpload     = errors.New("upload error")
	ErrOverwrite  = errors.New("overwrite error")
	ErrDatabase   = errors.New("database error")
	ErrAuth       = errors.New("unauthorized")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrUpstream   = errors.New("upstream error")
)

// AppError carries one of the sentinel kinds above plus a message that is
// safe to return to the caller.
type AppError struct {
	Kind    error
	Message string
	Err     error // underlying cause, may be nil
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is lets errors.Is match on the kind as well as the wrapped cause.
func (e *AppError) Is(target error) bool {
	return target == e.Kind
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: cause}
}

func Decode(cause error) *AppError {
	return New(ErrDecode, "payload is not valid base64", cause)
}

func Upload(bucket string, cause error) *AppError {
	return New(ErrUpload, fmt.Sprintf("failed to upload object to bucket %s", bucket), cause)
}

func Overwrite(url string, cause error) *AppError {
	return New(ErrOverwrite, fmt.Sprintf("failed to overwrite object %s", url), cause)
}

func Database(op string, cause error) *AppError {
	return New(ErrDatabase, op, cause)
}

func Unauthorized(message string) *AppError {
	return New(ErrAuth, message, nil)
}

func NotFound(resource, id string) *AppError {
	return New(ErrNotFound, fmt.Sprintf("%s %s not found", resource, id), nil)
}

func Validation(message string) *AppError {
	return New(ErrValidation, message, nil)
}

func Conflict(message string) *AppError {
	return New(ErrConflict, message, nil)
}

func Upstream(provider string, cause error) *AppError {
	return New(ErrUpstream, fmt.Sprintf("%s request failed", provider), cause)
}
