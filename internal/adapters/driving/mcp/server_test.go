package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing search helper returns error", func(t *testing.T) {
		ports, _, _, _, _ := testPorts()
		ports.Discounts = nil

		server, err := NewServer(ports)

		require.ErrorIs(t, err, ErrMissingSearchService)
		assert.Nil(t, server)
	})

	t.Run("missing field service returns error", func(t *testing.T) {
		ports, _, _, _, _ := testPorts()
		ports.Fields = nil

		_, err := NewServer(ports)

		require.ErrorIs(t, err, ErrMissingFieldService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports, _, _, _, _ := testPorts()

		server, err := NewServer(ports, WithThrottle(NewThrottle(5, 5)))

		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSearchService)

	ports, _, _, _, _ := testPorts()
	assert.NoError(t, ports.Validate())
}
