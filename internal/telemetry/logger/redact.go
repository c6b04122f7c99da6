package logger

import (
	"log/slog"
	"slices"
	"strings"
)

const (
	bearerPrefix = "Bearer "
	// jwtPrefix is base64url for `{"`, the start of every JWT header.
	jwtPrefix = "eyJ"

	redactedValue = "***REDACTED***"
)

// sensitiveKeyParts are substrings of attribute keys whose values are
// never logged.
var sensitiveKeyParts = []string{
	"auth",
	"bearer",
	"credential",
	"key",
	"password",
	"secret",
	"token",
}

// redactSensitive is the handler's ReplaceAttr. A value that looks like a
// credential is partially masked whatever its key. A non-empty string
// under a sensitive key is replaced outright.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		v := a.Value.String()
		switch {
		case IsSensitiveValue(v):
			return slog.String(a.Key, RedactString(v))
		case v != "" && IsSensitiveKey(a.Key):
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			out = append(out, redactSensitive(ga))
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// RedactString masks a bearer header value or a JWT, leaving enough of
// either end to tell tokens apart. Other strings are returned unchanged.
func RedactString(v string) string {
	if rest, ok := strings.CutPrefix(v, bearerPrefix); ok {
		if looksLikeJWT(rest) {
			return bearerPrefix + maskValue(rest, jwtPrefix)
		}
		return bearerPrefix + maskValue(rest, "")
	}
	if looksLikeJWT(v) {
		return maskValue(v, jwtPrefix)
	}
	return v
}

// maskValue keeps prefix plus three runes from each end of the remainder.
// Values too short to mask that way become prefix + "***".
func maskValue(v, prefix string) string {
	body := v[len(prefix):]
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}

// IsSensitiveKey reports whether an attribute key names a secret.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	return slices.ContainsFunc(sensitiveKeyParts, func(part string) bool {
		return strings.Contains(k, part)
	})
}

// IsSensitiveValue reports whether v is a bearer header or a JWT.
func IsSensitiveValue(v string) bool {
	return strings.HasPrefix(v, bearerPrefix) || looksLikeJWT(v)
}

func looksLikeJWT(s string) bool {
	return strings.HasPrefix(s, jwtPrefix) && strings.Count(s, ".") == 2
}
