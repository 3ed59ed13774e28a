package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil merge service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports, "test")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingMergeService)
	})

	t.Run("empty version defaults to dev", func(t *testing.T) {
		server, err := NewServer(&Ports{Merge: &mockMergeService{}}, "")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Merge: &mockMergeService{},
		}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil merge service returns error", func(t *testing.T) {
		ports := &Ports{Inspect: &mockInspectService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingMergeService)
	})

	t.Run("merge only is valid", func(t *testing.T) {
		ports := &Ports{
			Merge: &mockMergeService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Merge:   &mockMergeService{},
			Inspect: &mockInspectService{},
			History: &mockHistoryService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}
