package gwerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(KeyNotFound, "")

	assert.Equal(t, KeyNotFound, err.Kind)
	assert.Equal(t, http.StatusForbidden, err.Status())
	assert.Nil(t, err.Unwrap())
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(RegistryUnavailable, cause, "")

	assert.Equal(t, RegistryUnavailable, err.Kind)
	assert.Equal(t, http.StatusInternalServerError, err.Status())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorDetailNotDerivedFromCause(t *testing.T) {
	cause := errors.New("raw internal detail that must never reach a client")
	err := Wrap(InvalidEnvelope, cause, "malformed component list")

	assert.Equal(t, "malformed component list", err.Detail)
	assert.NotContains(t, err.Detail, "raw internal detail")
}

func TestErrorStringWithoutCauseOrDetail(t *testing.T) {
	err := New(Replay, "")
	assert.Equal(t, "gwerror: REPLAY", err.Error())
}

func TestErrorStringWithDetailOnly(t *testing.T) {
	err := New(UnsupportedAlgorithm, "hmac-sha256")
	assert.Equal(t, "gwerror: UNSUPPORTED_ALGORITHM: hmac-sha256", err.Error())
}
