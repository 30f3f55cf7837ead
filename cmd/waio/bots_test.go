package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/waio"
	main "github.com/fwojciec/waio/cmd/waio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists every bot with its strategy", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		require.NoError(t, (&main.BotsCmd{}).Run(deps))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		assert.Len(t, lines, len(waio.Bots()))
		assert.Contains(t, lines[0], "GPTBot")
		assert.Contains(t, stdout.String(), "JavaScript-enabled crawler")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		require.NoError(t, (&main.BotsCmd{JSON: true}).Run(deps))

		var got []waio.BotConfig
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, waio.Bots(), got)
	})
}
