package push

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.uber.org/zap"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       Result
	}{
		{"created", http.StatusCreated, Delivered},
		{"ok", http.StatusOK, Delivered},
		{"gone", http.StatusGone, Gone},
		{"not found", http.StatusNotFound, Gone},
		{"too many requests", http.StatusTooManyRequests, TransientError},
		{"bad gateway", http.StatusBadGateway, TransientError},
		{"internal error", http.StatusInternalServerError, TransientError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.statusCode))
		})
	}
}

func TestNewSender_MissingKeys(t *testing.T) {
	logger := zap.NewNop()

	assert.False(t, NewSender(nil, logger).Enabled())
	assert.False(t, NewSender(&Config{}, logger).Enabled())
	assert.False(t, NewSender(&Config{VAPIDPublicKey: "pub"}, logger).Enabled())

	s := NewSender(&Config{VAPIDPublicKey: "pub", VAPIDPrivateKey: "priv"}, logger)
	assert.True(t, s.Enabled())
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "delivered", Delivered.String())
	assert.Equal(t, "gone", Gone.String())
	assert.Equal(t, "transient_error", TransientError.String())
}
