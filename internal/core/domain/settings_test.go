package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_AreValid(t *testing.T) {
	s := DefaultSettings()

	assert.NoError(t, s.Validate())
	assert.Equal(t, 30, s.Search.Number)
	assert.Equal(t, []string{"active"}, s.Search.CustomerStatuses)
	assert.Equal(t, []string{"publish"}, s.Search.DownloadStatuses)
	assert.Equal(t, "USD", s.Currency.Default)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero page size", func(s *Settings) { s.Search.Number = 0 }},
		{"unknown storage", func(s *Settings) { s.Storage.Backend = "postgres" }},
		{"unknown cache", func(s *Settings) { s.Cache.Backend = "memcached" }},
		{"redis without address", func(s *Settings) { s.Cache.Backend = CacheRedis }},
		{"negative rate", func(s *Settings) { s.MCP.RateLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestSettings_Validate_RedisWithAddress(t *testing.T) {
	s := DefaultSettings()
	s.Cache.Backend = CacheRedis
	s.Cache.RedisAddr = "localhost:6379"

	assert.NoError(t, s.Validate())
}
