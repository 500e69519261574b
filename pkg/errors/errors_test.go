package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	plain := New(ErrCodeInvalidInput, "teams[%d]: not a string", 3)
	assert.Equal(t, ErrCodeInvalidInput, plain.Code)
	assert.Equal(t, "teams[3]: not a string", plain.Message)
	assert.Equal(t, "INVALID_INPUT: teams[3]: not a string", plain.Error())

	cause := errors.New("unexpected end of JSON input")
	wrapped := Wrap(ErrCodeInvalidStructure, cause, "decode picks")
	assert.Equal(t, "INVALID_STRUCTURE: decode picks: unexpected end of JSON input", wrapped.Error())
	assert.Same(t, cause, errors.Unwrap(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestCodeTemplateMatching(t *testing.T) {
	err := fmt.Errorf("render: %w", New(ErrCodeNoPicks, "no picks provided"))

	assert.ErrorIs(t, err, &Error{Code: ErrCodeNoPicks})
	assert.NotErrorIs(t, err, &Error{Code: ErrCodeInvalidInput})
	assert.NotErrorIs(t, err, &Error{Code: ErrCodeNoPicks, Message: "other"})
}

func TestClassification(t *testing.T) {
	inner := New(ErrCodeInvalidInput, "inner")

	tests := []struct {
		name   string
		err    error
		code   Code
		client bool
		status int
		msg    string
	}{
		{"invalid input", New(ErrCodeInvalidInput, "bad team"), ErrCodeInvalidInput, true, http.StatusBadRequest, "bad team"},
		{"invalid structure", New(ErrCodeInvalidStructure, "x"), ErrCodeInvalidStructure, true, http.StatusBadRequest, "x"},
		{"no picks", New(ErrCodeNoPicks, "No picks provided"), ErrCodeNoPicks, true, http.StatusBadRequest, "No picks provided"},
		{"bad format", New(ErrCodeInvalidFormat, "gif"), ErrCodeInvalidFormat, true, http.StatusBadRequest, "gif"},
		{"missing file", New(ErrCodeFileNotFound, "teams.json"), ErrCodeFileNotFound, false, http.StatusNotFound, "teams.json"},
		{"unsupported", New(ErrCodeUnsupported, "x"), ErrCodeUnsupported, false, http.StatusNotImplemented, "x"},
		{"internal", New(ErrCodeInternal, "x"), ErrCodeInternal, false, http.StatusInternalServerError, "x"},
		{"fmt wrapped", fmt.Errorf("build: %w", New(ErrCodeInvalidStructure, "y")), ErrCodeInvalidStructure, true, http.StatusBadRequest, "y"},
		{"outer code wins", Wrap(ErrCodeInternal, inner, "outer"), ErrCodeInternal, false, http.StatusInternalServerError, "outer"},
		{"uncoded", errors.New("disk full"), "", false, http.StatusInternalServerError, "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetCode(tt.err))
			assert.True(t, Is(tt.err, tt.code))
			assert.False(t, Is(tt.err, ErrCodeInvalidVizType))
			assert.Equal(t, tt.client, IsClientError(tt.err))
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			assert.Equal(t, tt.msg, UserMessage(tt.err))
		})
	}
}

func TestNilError(t *testing.T) {
	assert.False(t, Is(nil, ErrCodeInvalidInput))
	assert.Empty(t, GetCode(nil))
	assert.False(t, IsClientError(nil))
}
