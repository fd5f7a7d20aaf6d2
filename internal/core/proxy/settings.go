package proxy

import (
	"fmt"
	"net/url"
)

// Settings contains the optional egress proxy configuration for outbound
// HTTP requests.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// HasProxy returns true if the proxy is enabled and configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// HostPort returns the proxy host:port string (e.g., "http://proxy.internal:3128").
func (p Settings) HostPort() string {
	if !p.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", p.Hostname, p.Port)
}

// FullURL returns the full proxy URL with credentials when present.
func (p Settings) FullURL() string {
	if !p.HasProxy() {
		return ""
	}
	if p.Username != "" && p.Password != "" {
		return fmt.Sprintf("http://%s@%s:%d", url.UserPassword(p.Username, p.Password).String(), p.Hostname, p.Port)
	}
	return p.HostPort()
}

// URL parses the full proxy URL for use with http.Transport.Proxy.
// Returns nil when no proxy is configured.
func (p Settings) URL() (*url.URL, error) {
	if !p.HasProxy() {
		return nil, nil
	}
	u, err := url.Parse(p.FullURL())
	if err != nil {
		return nil, fmt.Errorf("invalid proxy configuration: %w", err)
	}
	return u, nil
}
