package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkin/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() { addr, upstrURL, resource = "", "", "" })

	cfg := &config.Config{}
	cfg.Server.RunAddress = ":8080"
	cfg.Upstream.BaseURL = "https://example.com"
	cfg.Upstream.Resource = "record"

	addr = ":9000"
	resource = "soldier"
	applyFlags(cfg)

	assert.Equal(t, ":9000", cfg.Server.RunAddress)
	assert.Equal(t, "https://example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "soldier", cfg.Upstream.Resource)
}

func TestRecordGet_UsesUpstreamFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(func() { addr, upstrURL, resource = "", "", "" })

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"name":"Dana","status":"pending"}`))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"record", "get", "12345", "--upstream", srv.URL, "--resource", "soldier", "-o", "json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "/soldier/12345", gotPath)

	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "12345", body["id"])
	assert.Equal(t, "Dana", body["name"])
	assert.Equal(t, true, body["actionable"])
}
