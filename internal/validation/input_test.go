package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogURL_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantMsg string
	}{
		{"empty", "", "empty"},
		{"whitespace only", "   ", "empty"},
		{"bad scheme", "ftp://example.com", "scheme"},
		{"localhost", "http://localhost/blog", "localhost"},
		{"localhost subdomain", "https://app.localhost", "localhost"},
		{"localhost fqdn", "https://localhost.localdomain", "localhost"},
		{"metadata hostname", "http://metadata.google.internal/computeMetadata", "metadata"},
		{"bare metadata", "http://metadata/", "metadata"},
		{"instance data", "http://instance-data/latest", "metadata"},
		{"loopback ip", "http://127.0.0.1:8080/", "loopback"},
		{"loopback ipv6", "http://[::1]/", "loopback"},
		{"private 10", "http://10.0.0.5/", "private"},
		{"private 172", "http://172.16.1.1/", "private"},
		{"private 192", "http://192.168.1.1/", "private"},
		{"cloud metadata ip", "http://169.254.169.254/latest/meta-data/", "metadata"},
		{"link local", "http://169.254.1.1/", "link-local"},
		{"multicast", "http://239.1.1.1/", "multicast"},
		{"unspecified", "http://0.0.0.0/", "unspecified"},
		{"zero net", "http://0.1.2.3/", "not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BlogURL(tt.url)
			require.Error(t, err)

			var urlErr *URLError
			require.ErrorAs(t, err, &urlErr)
			assert.Contains(t, urlErr.Message, tt.wantMsg)
		})
	}
}

func TestBlogURL_AcceptsPublicIP(t *testing.T) {
	got, err := BlogURL("https://8.8.8.8/blog")
	require.NoError(t, err)
	assert.Equal(t, "https://8.8.8.8/blog", got)
}

func TestBlogURL_DefaultsToHTTPS(t *testing.T) {
	got, err := BlogURL("8.8.8.8/blog")
	require.NoError(t, err)
	assert.Equal(t, "https://8.8.8.8/blog", got)
}

func TestTopic(t *testing.T) {
	assert.Error(t, Topic(""))
	assert.NoError(t, Topic("Electric bikes in the US"))
	assert.NoError(t, Topic(strings.Repeat("a", MaxTopicLength)))

	err := Topic(strings.Repeat("a", MaxTopicLength+1))
	var lenErr *LengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, "topic", lenErr.Field)
	assert.Equal(t, MaxTopicLength, lenErr.Max)
}

func TestRequirements(t *testing.T) {
	assert.NoError(t, Requirements(""))
	assert.NoError(t, Requirements(strings.Repeat("r", MaxRequirementsLength)))
	assert.Error(t, Requirements(strings.Repeat("r", MaxRequirementsLength+1)))
}

func TestAPIKey(t *testing.T) {
	assert.Error(t, APIKey(""))
	assert.NoError(t, APIKey(strings.Repeat("k", MaxAPIKeyLength)))
	assert.Error(t, APIKey(strings.Repeat("k", MaxAPIKeyLength+1)))
}

func TestAutopilotCount(t *testing.T) {
	assert.Error(t, AutopilotCount(0))
	assert.NoError(t, AutopilotCount(1))
	assert.NoError(t, AutopilotCount(MaxAutopilotPosts))
	assert.Error(t, AutopilotCount(MaxAutopilotPosts+1))
}
