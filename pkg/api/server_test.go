package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staveline/staveline/pkg/pipeline"
)

const testScore = `
title = "Menuet"

[[measure]]
treble = ["G4:4", "A4:8", "B4:8"]
bass = ["G2:2"]
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil)
	srv := httptest.NewServer(NewServer(runner, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestEngraveSVG(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/engrave", "application/toml", strings.NewReader(testScore))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "<svg"), "body should be an SVG document")
	assert.Contains(t, string(body), "Menuet")
}

func TestEngraveMultipleFormats(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/engrave?format=svg,json", "application/toml", strings.NewReader(testScore))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var envelope engraveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, 1, envelope.Measures)
	assert.Equal(t, 4, envelope.Notes)
	assert.NotEmpty(t, envelope.ScoreHash)
	assert.Contains(t, envelope.Artifacts, "svg")
	assert.Contains(t, envelope.Artifacts, "json")
}

func TestEngraveJSONFormat(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/engrave?format=json", "application/toml", strings.NewReader(testScore))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var layout map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&layout))
	assert.Contains(t, layout, "heads")
	assert.Contains(t, layout, "staff_lines")
}

func TestEngraveBadScore(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/engrave", "application/toml", strings.NewReader(`[[measure]]`+"\n"+`treble = ["Z9:4"]`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "INVALID_NOTE", string(e.Code))
	assert.NotEmpty(t, e.Error)
}

func TestEngraveBadFormat(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/engrave?format=gif", "application/toml", strings.NewReader(testScore))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEngraveBadGeometry(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/engrave?width=tall", "application/toml", strings.NewReader(testScore))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEngraveEmptyBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/engrave", "application/toml", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
