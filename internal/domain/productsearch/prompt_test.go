package productsearch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptTemplate_BuildEmbedsPayloadVerbatim(t *testing.T) {
	payload := []byte(`{"items":[{"name":"KALLAX","price":{"value":49.99,"currency":"EUR"}}]}`)

	messages := DefaultPromptTemplate().Build(payload)

	require.Len(t, messages, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: "You are a helpful IKEA product assistant."}, messages[0])
	assert.Equal(t,
		"You are an IKEA shopping assistant. Reformat the following product search results into a clear, user-friendly response:\n"+string(payload),
		messages[1].Content)
}

func TestLoadPromptTemplate(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		tmpl, err := LoadPromptTemplate("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPromptTemplate(), tmpl)
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.yml")
		require.NoError(t, os.WriteFile(path, []byte("system: |\n  You help people furnish small flats.\n"), 0o600))

		tmpl, err := LoadPromptTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, "You help people furnish small flats.", tmpl.System)
		assert.Equal(t, DefaultInstruction, tmpl.Instruction)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPromptTemplate(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.yml")
		require.NoError(t, os.WriteFile(path, []byte("system: [unterminated"), 0o600))

		_, err := LoadPromptTemplate(path)
		assert.Error(t, err)
	})
}
