package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipshelf/internal/history"
)

func TestPrintEntriesTable(t *testing.T) {
	var buf bytes.Buffer
	entries := []history.Entry{
		{ID: "2", Content: "line one\nline two", ContentType: history.ContentTypeText},
		{ID: "10", Content: "a\tb", ContentType: history.ContentTypeText},
	}
	require.NoError(t, printEntries(&buf, entries, false))

	assert.Equal(t, "ID  CONTENT\n2   line one line two\n10  a b\n", buf.String())
}

func TestPrintEntriesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printEntries(&buf, nil, true))
	assert.JSONEq(t, "[]", buf.String())

	buf.Reset()
	entries := []history.Entry{{ID: "1", Content: "hi", ContentType: history.ContentTypeText}}
	require.NoError(t, printEntries(&buf, entries, true))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]string{{"id": "1", "content": "hi", "content_type": "text"}}, got)
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "a b c d e", singleLine("a\r\nb\nc\rd\te"))
	assert.Equal(t, "plain", singleLine("plain"))
}

func TestNewServiceRejectsBadConfig(t *testing.T) {
	t.Run("search target", func(t *testing.T) {
		v := viper.New()
		v.Set("search-target", "everything")
		v.Set("copy-providers", []string{"xclip"})
		_, _, err := newService(v)
		require.Error(t, err)
	})

	t.Run("provider", func(t *testing.T) {
		v := viper.New()
		v.Set("search-target", "list")
		v.Set("copy-providers", []string{"pbcopy"})
		_, _, err := newService(v)
		require.Error(t, err)
	})

	t.Run("ok", func(t *testing.T) {
		v := viper.New()
		v.Set("search-target", "preview")
		v.Set("copy-providers", []string{"wl-copy", "xclip"})
		v.Set("cliphist", "cliphist")
		svc, chain, err := newService(v)
		require.NoError(t, err)
		assert.NotNil(t, svc)
		assert.Equal(t, []string{"wl-copy", "xclip"}, chain.Names())
	})
}

func TestCommandsForFallsBackToLocal(t *testing.T) {
	v := viper.New()
	v.Set("socket", filepath.Join(t.TempDir(), "none.sock"))
	v.Set("search-target", "list")
	v.Set("copy-providers", []string{"xclip"})

	_, backend, err := commandsFor(v)
	require.NoError(t, err)
	assert.Equal(t, backendLocal, backend)
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "clipshelf dev\n", buf.String())
}

func TestCopyProvidersFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLIPSHELF_COPY_PROVIDERS", "xclip, wl-copy,")

	v := viper.New()
	cmd := &cobra.Command{Use: "list"}
	addClientFlags(cmd)
	require.NoError(t, bindViper(cmd, v))

	_, chain, err := newService(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"xclip", "wl-copy"}, chain.Names())
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"flag values", []string{"wl-copy", "xclip"}, []string{"wl-copy", "xclip"}},
		{"comma joined", []string{"wl-copy,xclip,native"}, []string{"wl-copy", "xclip", "native"}},
		{"blanks dropped", []string{" xclip ,", ""}, []string{"xclip"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.in))
		})
	}
}

func TestWriteStatus(t *testing.T) {
	t.Run("local table", func(t *testing.T) {
		var buf bytes.Buffer
		report := statusReport{Cliphist: true, Backend: backendLocal, Providers: []string{"wl-copy", "xclip"}}
		require.NoError(t, writeStatus(&buf, report, false))
		assert.Equal(t, "Cliphist:   available\nBackend:    local\nProviders:  wl-copy, xclip\n", buf.String())
	})

	t.Run("daemon json omits providers", func(t *testing.T) {
		var buf bytes.Buffer
		report := statusReport{Cliphist: false, Backend: "daemon (/run/clipshelf.sock)"}
		require.NoError(t, writeStatus(&buf, report, true))
		assert.JSONEq(t, `{"cliphist_available":false,"backend":"daemon (/run/clipshelf.sock)"}`, buf.String())
	})
}
