package gwerror

import "strings"

// maxSanitizedLen bounds how long a single sanitised log field may be.
const maxSanitizedLen = 200

// Sanitize strips ASCII control characters (including CR/LF) from s and
// truncates the result to maxSanitizedLen bytes, so that no request- or
// upstream-sourced string can forge additional log lines or blow out log
// storage.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}

		b.WriteRune(r)
	}

	out := b.String()
	if len(out) > maxSanitizedLen {
		out = out[:maxSanitizedLen]
	}

	return out
}
