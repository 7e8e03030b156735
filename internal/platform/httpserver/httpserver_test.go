package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLeavesRoomForRequestTimeout(t *testing.T) {
	srv := New(":8080", http.NotFoundHandler(), 30*time.Second)

	assert.Equal(t, ":8080", srv.Addr)
	assert.Greater(t, srv.WriteTimeout, 30*time.Second)
	assert.NotZero(t, srv.ReadHeaderTimeout)
}
