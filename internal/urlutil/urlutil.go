package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// JoinPath parses the base URL and appends each of the path segments to it.
// The segments are path-escaped, so a slash inside a segment does not
// introduce a new path level. Any query string in the base URL is kept.
func JoinPath(base string, segments ...string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("URL is missing scheme: %q", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("URL is missing host: %q", base)
	}
	var pathBuilder strings.Builder
	var rawPathBuilder strings.Builder
	if u.Path != "" {
		pathBuilder.WriteString(strings.TrimSuffix(u.Path, "/"))
		rawPathBuilder.WriteString(strings.TrimSuffix(u.EscapedPath(), "/"))
	}
	for _, segment := range segments {
		pathBuilder.WriteByte('/')
		rawPathBuilder.WriteByte('/')
		pathBuilder.WriteString(segment)
		rawPathBuilder.WriteString(url.PathEscape(segment))
	}
	u.Path = pathBuilder.String()
	u.RawPath = rawPathBuilder.String()
	return u, nil
}
