package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/store"
)

const pieJSON = `{
  "name": "share",
  "chart": {"type": "pie", "width": 120, "height": 120},
  "data": [{"key": "a", "data": 1}, {"key": "b", "data": 2}]
}`

const areaTOML = `
name = "sales"

[chart]
type = "standard"
width = 200
height = 100

[[data]]
key = "jan"
data = 1

[[data]]
key = "feb"
data = 3
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(fc, nil, logger), store.NewMemoryStore(), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestRequestIDPropagates(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", pieJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "MISS", resp.Header.Get(CacheHeader))
	assert.True(t, bytes.HasPrefix(readBody(t, resp), []byte("<svg")))

	resp = do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", pieJSON)
	assert.Equal(t, "HIT", resp.Header.Get(CacheHeader))

	resp = do(t, http.MethodPost, ts.URL+"/v1/render?format=png", "application/json", pieJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestRenderTOMLHover(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/v1/render?format=json&hover=feb", "application/toml", areaTOML)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Kind     string `json:"kind"`
		Geometry struct {
			MarkLine *struct {
				X float64 `json:"x"`
			} `json:"markLine"`
		} `json:"geometry"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &out))
	assert.Equal(t, "area", out.Kind)
	require.NotNil(t, out.Geometry.MarkLine)
	assert.InDelta(t, 200, out.Geometry.MarkLine.X, 1e-9)
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"bad format", "?format=gif", pieJSON, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad x", "?x=left", pieJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown hover", "?hover=zzz", pieJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed body", "", "{", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"nested pie", "", `{"chart":{"type":"pie"},"data":[{"key":"s","data":[{"key":"a","data":1}]}]}`, http.StatusBadRequest, errors.ErrCodeShapeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/v1/render"+tt.query, "application/json", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decodeError(t, resp).Error)
		})
	}
}

func TestChartsCRUD(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/charts", "application/json", pieJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec store.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "/v1/charts/"+rec.ID, resp.Header.Get("Location"))
	assert.Equal(t, "pie", rec.Type)

	resp = do(t, http.MethodGet, ts.URL+"/v1/charts/"+rec.ID, "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/charts/"+rec.ID+"/render?hover=b", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(readBody(t, resp)), "active")

	resp = do(t, http.MethodPut, ts.URL+"/v1/charts/"+rec.ID, "application/toml", areaTOML)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated store.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "standard", updated.Type)

	resp = do(t, http.MethodGet, ts.URL+"/v1/charts", "", "")
	var list struct {
		Charts []store.Record `json:"charts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list.Charts, 1)

	resp = do(t, http.MethodDelete, ts.URL+"/v1/charts/"+rec.ID, "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/charts/"+rec.ID, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, resp).Error)

	resp = do(t, http.MethodGet, ts.URL+"/v1/charts/"+rec.ID+"/render", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeStackAlignment, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "%v", tt.err)
	}
}
