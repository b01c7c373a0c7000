package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:51234"
	assert.Equal(t, "203.0.113.9", RealClientIP(r))

	r.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", RealClientIP(r))

	r.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", RealClientIP(r))
}
