// Package imageurl classifies image URLs before they are persisted into
// merchandising records that are served across environments.
package imageurl

import (
	"net/url"
	"strings"
)

// Verdict is the result of classifying an image URL. The classifier only
// names what the value is; callers decide whether a bad value is
// substituted or rejected.
type Verdict int

const (
	// Valid is an absolute non-loopback URL, safe to persist.
	Valid Verdict = iota
	// RelativePath is a filesystem-relative or host-relative path
	// (e.g. "./pic.png", "../a.jpg", "/src/assets/2.jpeg").
	RelativePath
	// LoopbackHost is an absolute URL pointing at localhost or 127.0.0.1,
	// which only resolves on the machine that wrote it.
	LoopbackHost
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case RelativePath:
		return "relative-path"
	case LoopbackHost:
		return "loopback-host"
	default:
		return "unknown"
	}
}

// Classify inspects a raw image URL. An empty string classifies as
// RelativePath; callers should treat "absent" separately before calling.
func Classify(raw string) Verdict {
	if raw == "" || strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
		return RelativePath
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return RelativePath
	}
	host := strings.ToLower(u.Hostname())
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return LoopbackHost
	}
	return Valid
}
