package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfiles(t *testing.T) {
	t.Parallel()

	t.Run("loads bot and default profiles", func(t *testing.T) {
		t.Parallel()

		table, err := yaml.LoadProfiles(strings.NewReader(`
default:
  categories: [Article]
bots:
  gptbot:
    categories: [Recipe]
    attributes: [recipeIngredient]
`))

		require.NoError(t, err)
		p := table.Profile(waio.BotGPTBot)
		assert.Equal(t, []string{"Recipe"}, p.Categories)
		assert.Equal(t, []string{"recipeIngredient"}, p.Attributes)
		assert.InDelta(t, 1.0, p.HeuristicPenalty, 1e-9)
		assert.Equal(t, []string{"Article"}, table.Profile(waio.BotClaudeBot).Categories)
	})

	t.Run("loaded categories drive the modifier", func(t *testing.T) {
		t.Parallel()

		table, err := yaml.LoadProfiles(strings.NewReader(`
bots:
  GPTBot:
    categories: [Recipe]
`))
		require.NoError(t, err)

		found := []waio.Attr{{Name: waio.AttrEntityType, Value: "Recipe"}}
		m, err := table.Modifier(waio.BotGPTBot, waio.ModeTheory, found)

		require.NoError(t, err)
		assert.InDelta(t, 1.2*1.4, m, 1e-9)
	})

	t.Run("empty document yields the built-in table", func(t *testing.T) {
		t.Parallel()

		table, err := yaml.LoadProfiles(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, waio.DefaultProfileTable().Profile(waio.BotBingbot), table.Profile(waio.BotBingbot))
	})

	t.Run("rejects unknown bots", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadProfiles(strings.NewReader("bots:\n  NopeBot: {}\n"))

		assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadProfiles(strings.NewReader("bots:\n  GPTBot:\n    weights: [1]\n"))

		assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
	})

	t.Run("rejects the same bot twice in different case", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadProfiles(strings.NewReader("bots:\n  GPTBot: {}\n  gptbot: {}\n"))

		assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
	})
}

func TestLoadProfilesFile(t *testing.T) {
	t.Parallel()

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bots:\n  ClaudeBot:\n    categories: [HowTo]\n"), 0o644))

		table, err := yaml.LoadProfilesFile(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"HowTo"}, table.Profile(waio.BotClaudeBot).Categories)
	})

	t.Run("missing file is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadProfilesFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, waio.ENOTFOUND, waio.ErrorCode(err))
	})
}
