package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUserIP(t *testing.T) {
	req, err := http.NewRequest("GET", "/posts", nil)
	require.NoError(t, err)

	req.RemoteAddr = "83.12.53.65:2145"
	ip, err := ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "83.12.53.65", ip)

	req.Header.Set("X-Real-Ip", "111.12.56.65:8080")
	ip, err = ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "111.12.56.65", ip)

	req.Header.Set("X-Real-Ip", "127.0.0.1:3000")
	ip, err = ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "localhost", ip)

	req.Header.Set("X-Real-Ip", "not-an-ip")
	_, err = ReadUserIP(req)
	require.Error(t, err)
}
