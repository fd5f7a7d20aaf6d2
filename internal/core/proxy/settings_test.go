package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettings_HasProxy verifies the enabled/configured combinations.
func TestSettings_HasProxy(t *testing.T) {
	assert.False(t, Settings{}.HasProxy())
	assert.False(t, Settings{Enabled: true}.HasProxy())
	assert.False(t, Settings{Enabled: true, Hostname: "proxy.internal"}.HasProxy())
	assert.True(t, Settings{Enabled: true, Hostname: "proxy.internal", Port: 3128}.HasProxy())
}

// TestSettings_FullURL verifies credential handling in the proxy URL.
func TestSettings_FullURL(t *testing.T) {
	s := Settings{Enabled: true, Hostname: "proxy.internal", Port: 3128}
	assert.Equal(t, "http://proxy.internal:3128", s.FullURL())

	s.Username = "user"
	s.Password = "p@ss"
	u, err := s.URL()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "proxy.internal:3128", u.Host)
	assert.Equal(t, "user", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
}

// TestSettings_URL_Disabled verifies that a disabled proxy yields a nil URL.
func TestSettings_URL_Disabled(t *testing.T) {
	u, err := Settings{}.URL()
	require.NoError(t, err)
	assert.Nil(t, u)
}
