package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/rulesbot/cmd/rulesbot"
	"github.com/fwojciec/rulesbot/mock"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sites serves canned pages by URL; anything else fails.
func sites(t *testing.T, pages map[string]string) *mock.Fetcher {
	t.Helper()
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if body, ok := pages[url]; ok {
				return body, nil
			}
			return "", errors.New("HTTP 404 for " + url)
		},
		CloseFn: func() error { return nil },
	}
}

func inventory(t *testing.T) string {
	t.Helper()

	var body bytes.Buffer
	zw := zlib.NewWriter(&body)
	_, err := zw.Write([]byte(strings.Join([]string{
		"telethon.events.NewMessage py:class 1 modules/events.html#$ -",
		"telethon.TelegramClient py:class 1 modules/client.html#$ -",
		"telethon.client.messages.MessageMethods.send_message py:method 1 modules/client.html#$ -",
	}, "\n")))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return "# Sphinx inventory version 2\n" +
		"# Project: Telethon\n" +
		"# Version: 1.36\n" +
		"# The remainder of this file is compressed using zlib.\n" +
		body.String()
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rulesbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestMain_Run_Docs(t *testing.T) {
	t.Parallel()

	t.Run("loads the inventory and prints matches", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = sites(t, map[string]string{
			"https://docs.example.com/objects.inv": inventory(t),
		})
		cfg := writeConfig(t, "docs_url: https://docs.example.com/\n")

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", cfg, "docs", "NewMessage", "-n", "1"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "[events.NewMessage](https://docs.example.com/modules/events.html#telethon.events.NewMessage) class\n", stdout.String())
	})

	t.Run("fails when the inventory cannot be loaded", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = sites(t, nil)
		cfg := writeConfig(t, "docs_url: https://docs.example.com/\n")

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", cfg, "docs", "NewMessage"}, &bytes.Buffer{}, stderr)

		require.ErrorContains(t, err, "failed to load inventory")
		assert.Contains(t, stderr.String(), "Hint:")
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = sites(t, nil)
		cfg := writeConfig(t, "docs_url: no-trailing-slash\n")

		err := m.Run(context.Background(), []string{"--config", cfg, "docs", "NewMessage"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.ErrorContains(t, err, "docs_url")
	})
}

func TestMain_Run_Replace(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Fetcher = sites(t, map[string]string{
		"https://docs.example.com/objects.inv": inventory(t),
	})
	cfg := writeConfig(t, "docs_url: https://docs.example.com/\n")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"--config", cfg, "replace", "use +TelegramClient+"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "use [TelegramClient](https://docs.example.com/modules/client.html#telethon.TelegramClient)\n", stdout.String())
}

func TestMain_Run_Refs(t *testing.T) {
	t.Parallel()

	t.Run("resolves references from stdin and prints metrics", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Stdin = strings.NewReader("see #42 and #42 again")
		m.Fetcher = sites(t, map[string]string{
			"https://github.com/LonamiWebs/Telethon/issues/42": "<html><head><title>Login fails · Issue #42 · LonamiWebs/Telethon · GitHub</title></head><body></body></html>",
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"refs", "--metrics"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "[Issue #42: Login fails](https://github.com/LonamiWebs/Telethon/issues/42)\n", stdout.String())
		assert.Contains(t, stderr.String(), `rulesbot_title_fetch_total{outcome="ok"} 1`)
		assert.Contains(t, stderr.String(), "rulesbot_metadata_cache_entries 1")
	})

	t.Run("uses the configured repository", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = sites(t, map[string]string{
			"https://git.example.com/team/app/issues/7": "<title>Crash on start · Issue #7 · team/app</title>",
		})
		cfg := writeConfig(t, "github_url: https://git.example.com/\ndefault_repo: team/app\n")

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", cfg, "refs", "GH-7"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "[Issue #7: Crash on start](https://git.example.com/team/app/issues/7)\n", stdout.String())
	})
}
