package logging

import "strings"

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

var sensitiveKeys = map[string]bool{
	"password":    true,
	"derived_key": true,
	"secret":      true,
	"plaintext":   true,
}

// redact returns args with the values of sensitive keys replaced. Keys are
// matched case-insensitively; args itself is not modified.
func redact(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok || !sensitiveKeys[strings.ToLower(k)] {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i+1] = Redacted
	}
	if out == nil {
		return args
	}
	return out
}
