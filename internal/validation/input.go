package validation

import (
	"net"
	"net/url"
	"strings"
)

// Input length caps.
const (
	MaxTopicLength        = 500
	MaxRequirementsLength = 2000
	MaxAPIKeyLength       = 200
	MaxAutopilotPosts     = 10
)

// metadataHostnames are cloud metadata endpoints blocked by name.
var metadataHostnames = map[string]bool{
	"metadata.google.internal": true,
	"metadata.google.com":      true,
	"metadata":                 true,
	"instance-data":            true,
}

// BlogURL validates and normalizes a caller-supplied blog URL, rejecting
// SSRF targets. A missing scheme defaults to https. Returns the normalized
// URL or a URLError.
func BlogURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &URLError{URL: raw, Message: "URL is empty"}
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &URLError{URL: raw, Message: "malformed URL"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &URLError{URL: raw, Message: "scheme must be http or https"}
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "" {
		return "", &URLError{URL: raw, Message: "missing hostname"}
	}

	if hostname == "localhost" || hostname == "localhost.localdomain" || strings.HasSuffix(hostname, ".localhost") {
		return "", &URLError{URL: raw, Message: "access to localhost is not allowed"}
	}
	if metadataHostnames[hostname] {
		return "", &URLError{URL: raw, Message: "access to metadata endpoints is not allowed"}
	}

	// A literal IP is screened directly; hostnames are resolved so DNS
	// cannot smuggle in a blocked address.
	if ip := net.ParseIP(hostname); ip != nil {
		if msg := screenIP(ip); msg != "" {
			return "", &URLError{URL: raw, Message: msg}
		}
		return raw, nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return "", &URLError{URL: raw, Message: "cannot resolve hostname"}
	}
	for _, ip := range ips {
		if msg := screenIP(ip); msg != "" {
			return "", &URLError{URL: raw, Message: msg}
		}
	}

	return raw, nil
}

// screenIP returns a rejection message for addresses that must never be
// fetched, or "" when the address is acceptable.
func screenIP(ip net.IP) string {
	switch {
	case ip.IsLoopback():
		return "access to loopback addresses is not allowed"
	case ip.IsPrivate():
		return "access to private network ranges is not allowed"
	case ip.Equal(net.IPv4(169, 254, 169, 254)):
		return "access to cloud metadata endpoints is not allowed"
	case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return "access to link-local addresses is not allowed"
	case ip.IsMulticast():
		return "access to multicast addresses is not allowed"
	case ip.IsUnspecified():
		return "access to unspecified addresses is not allowed"
	}
	if v4 := ip.To4(); v4 != nil && v4[0] == 0 {
		return "access to this address range is not allowed"
	}
	return ""
}

// Topic validates the topic field against its cap.
func Topic(topic string) error {
	if topic == "" {
		return &Error{Message: "topic is required"}
	}
	if len(topic) > MaxTopicLength {
		return &LengthError{Field: "topic", Max: MaxTopicLength, Got: len(topic)}
	}
	return nil
}

// Requirements validates the free-text requirements field against its cap.
func Requirements(requirements string) error {
	if len(requirements) > MaxRequirementsLength {
		return &LengthError{Field: "requirements", Max: MaxRequirementsLength, Got: len(requirements)}
	}
	return nil
}

// APIKey validates an API key against its cap.
func APIKey(key string) error {
	if key == "" {
		return &Error{Message: "API key is required"}
	}
	if len(key) > MaxAPIKeyLength {
		return &LengthError{Field: "api key", Max: MaxAPIKeyLength, Got: len(key)}
	}
	return nil
}

// AutopilotCount validates a batch size for autopilot runs.
func AutopilotCount(n int) error {
	if n < 1 {
		return &Error{Message: "autopilot post count must be at least 1"}
	}
	if n > MaxAutopilotPosts {
		return &Error{Message: "autopilot post count exceeds maximum"}
	}
	return nil
}
