package gwerror

import (
	"log"
	"net/http"
	"strings"
)

// Field is a single key/value pair in a log line. Value is sanitised by
// Log before it is written, so callers may pass raw request- or
// upstream-sourced strings directly.
type Field struct {
	Key   string
	Value string
}

// F constructs a Field, a small convenience for call sites building a
// field list inline.
func F(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Log writes one sanitised line to logger describing a single pipeline
// step: the step name, the request method and path, and any additional
// fields, in the order given. Every field value is passed through
// Sanitize, so that no request- or upstream-sourced string can inject
// control characters into the log or grow a log line without bound.
func Log(logger *log.Logger, step string, r *http.Request, fields ...Field) {
	var b strings.Builder

	b.WriteString("step=")
	b.WriteString(step)
	b.WriteString(" method=")
	b.WriteString(Sanitize(r.Method))
	b.WriteString(" path=")
	b.WriteString(Sanitize(r.URL.Path))

	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(Sanitize(f.Value))
	}

	logger.Println(b.String())
}

// LogError writes a pipeline-step failure: the same fields as Log, plus the
// error's Kind and, if set, its Detail. The underlying cause (if any) is
// included for operator diagnosis; it is never shown to the client (see
// Render).
func LogError(logger *log.Logger, step string, r *http.Request, err *Error, fields ...Field) {
	all := append(append([]Field{}, fields...), F("kind", string(err.Kind)))

	if err.Detail != "" {
		all = append(all, F("detail", err.Detail))
	}

	if err.cause != nil {
		all = append(all, F("cause", err.cause.Error()))
	}

	Log(logger, step, r, all...)
}
