package aicatalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel_ContextSize(t *testing.T) {
	m, err := NewModel("p1", "deepseek-chat", "", "llm", nil, map[string]interface{}{"context_size": float64(64000)})
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", m.Name)
	assert.Equal(t, 64000, m.ContextSize)
	assert.Equal(t, 64000, m.Config["maxContext"])
	assert.NotNil(t, m.Features)

	_, err = NewModel("", "x", "", "", nil, nil)
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("openai", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name)
	assert.True(t, p.IsBuiltIn)
	assert.False(t, p.IsActive)

	_, err = NewProvider("", "x", "", nil)
	assert.Error(t, err)
}
