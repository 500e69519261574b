// Package errors defines the coded errors shared by the bracket core, the
// CLI and the render service.
//
// Every failure that crosses a package boundary carries a [Code]. The core
// raises three of them: [ErrCodeInvalidInput] for a malformed team list,
// [ErrCodeInvalidStructure] for picks missing expected fields and
// [ErrCodeNoPicks] for a render request without picks. The remaining codes
// belong to the surrounding layers.
//
// Codes decide how a failure is reported. [IsClientError] separates caller
// mistakes from system faults, and [HTTPStatus] picks the response status:
//
//	if err := b.ClearFrom(round, match); err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidStructure, err, "pick %d:%d", round, match)
//	}
//	w.WriteHeader(errors.HTTPStatus(err))
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"     // malformed team list or CLI argument
	ErrCodeInvalidStructure Code = "INVALID_STRUCTURE" // picks with missing fields or out-of-range coordinates
	ErrCodeNoPicks          Code = "NO_PICKS"          // render request without picks
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidVizType   Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeUnsupported      Code = "UNSUPPORTED"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
)

// codeInfo records how each code is reported. Unknown codes are internal.
var codeInfo = map[Code]struct {
	status int
	client bool
}{
	ErrCodeInvalidInput:     {http.StatusBadRequest, true},
	ErrCodeInvalidStructure: {http.StatusBadRequest, true},
	ErrCodeNoPicks:          {http.StatusBadRequest, true},
	ErrCodeInvalidFormat:    {http.StatusBadRequest, true},
	ErrCodeInvalidVizType:   {http.StatusBadRequest, true},
	ErrCodeInvalidConfig:    {http.StatusInternalServerError, false},
	ErrCodeFileNotFound:     {http.StatusNotFound, false},
	ErrCodeUnsupported:      {http.StatusNotImplemented, false},
	ErrCodeInternal:         {http.StatusInternalServerError, false},
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match a bare code template such as &Error{Code: c}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Cause == nil && t.Code == e.Code
}

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return codeInfo[GetCode(err)].client
}

// HTTPStatus maps err to a response status. Uncoded errors are 500.
func HTTPStatus(err error) int {
	if info, ok := codeInfo[GetCode(err)]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}
