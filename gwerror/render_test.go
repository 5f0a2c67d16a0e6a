package gwerror

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("sets status and generic body", func(t *testing.T) {
		w := httptest.NewRecorder()
		Render(w, New(SignatureRequired, ""))

		assert.Equal(t, 403, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

		body := w.Body.String()
		assert.Contains(t, body, "Signature Required")
		assert.Contains(t, body, "This resource requires a signed request.")
	})

	t.Run("escapes a hostile detail field", func(t *testing.T) {
		w := httptest.NewRecorder()
		Render(w, New(UnsupportedAlgorithm, `<script>alert(1)</script>`))

		body := w.Body.String()
		assert.NotContains(t, body, "<script>")
		assert.Contains(t, body, "&lt;script&gt;")
	})

	t.Run("omits detail line when empty", func(t *testing.T) {
		w := httptest.NewRecorder()
		Render(w, New(KeyNotFound, ""))

		assert.NotContains(t, w.Body.String(), "Details:")
	})

	t.Run("never echoes a cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := Wrap(RegistryUnavailable, assertCause(t), "")
		Render(w, err)

		assert.NotContains(t, w.Body.String(), "dial tcp")
	})
}

func assertCause(t *testing.T) error {
	t.Helper()
	return &testCauseError{}
}

type testCauseError struct{}

func (e *testCauseError) Error() string { return "dial tcp 10.0.0.5:443: connect: connection refused" }

func TestRenderStatusMatchesKind(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, New(UnsupportedAlgorithm, ""))
	require.Equal(t, 400, w.Code)
}
