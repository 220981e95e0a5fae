package util

import "strings"

// ShortHostname strips the port and domain components from a fully-qualified
// host string, leaving the short display name.
func ShortHostname(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if i := strings.IndexByte(host, '.'); i >= 0 {
		host = host[:i]
	}
	return host
}
