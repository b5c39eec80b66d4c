package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	apihttp "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const parity = `[states]
q0 S
q1 F
[sigma]
a
[rules]
q0 a q1
q1 a q0
`

const broken = `[states]
q0 S
[sigma]
a
[rules]
q0 a nowhere
`

func newHandler(t *testing.T, opts ...apihttp.Option) (http.Handler, *apihttp.StreamManager) {
	t.Helper()
	streams := apihttp.NewStreamManager()
	loader := memory.NewLoader(map[string]string{"parity": parity, "broken": broken})
	eng, err := automata.New("", automata.WithLoader(loader), automata.WithLifecycleHooks(streams.Hooks()))
	require.NoError(t, err)

	opts = append([]apihttp.Option{apihttp.WithStreams(streams), apihttp.WithLogger(logging.NewNop())}, opts...)
	return apihttp.NewHandler(eng, opts...), streams
}

func do(h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newHandler(t, apihttp.WithVersion("1.0.0\n"))

	w := do(h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(h, "GET", "/info", "")
	assert.JSONEq(t, `{"app":"automata-http","version":"1.0.0"}`, w.Body.String())
}

func TestListMachines(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "GET", "/machines", "")
	require.Equal(t, http.StatusOK, w.Code)

	var names []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	assert.Equal(t, []string{"broken", "parity"}, names)
}

func TestGetMachine(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "GET", "/machines/parity", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp apihttp.MachineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "dfa", resp.Kind)
	assert.Len(t, resp.Rules, 2)

	w = do(h, "GET", "/machines/broken", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Error, "unknown reference")

	w = do(h, "GET", "/machines/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGraph(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "GET", "/machines/parity/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
	assert.NotContains(t, w.Body.String(), "classDef")

	w = do(h, "GET", "/machines/parity/graph?input=a", "")
	assert.Contains(t, w.Body.String(), "class q1 current;")
}

func TestRunMachine(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "POST", "/machines/parity/run", `{"input": ["a", "a", "a"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Verdict.Accepted)
	assert.Len(t, res.Trace, 3)

	w = do(h, "POST", "/machines/parity/run", `{"input": "a a"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Verdict.Accepted)
	assert.Equal(t, domain.ReasonNotFinal, res.Verdict.Reason)
}

func TestRunMachine_Errors(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		check  string
	}{
		{"bad body", "/machines/parity/run", `{`, http.StatusBadRequest, ""},
		{"empty body", "/machines/parity/run", ``, http.StatusBadRequest, ""},
		{"unknown machine", "/machines/nope/run", `{"input": []}`, http.StatusNotFound, ""},
		{"invalid table", "/machines/broken/run", `{"input": []}`, http.StatusUnprocessableEntity, domain.CheckRules},
		{"bad symbol", "/machines/parity/run", `{"input": ["b"]}`, http.StatusUnprocessableEntity, domain.CheckInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "POST", tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp apihttp.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.check, resp.Check)
		})
	}
}

func TestRunMachine_Formats(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "POST", "/machines/parity/run?format=text", `{"input": ["a"]}`)
	assert.Equal(t, "q0 -> q1\nDFA input accepted!\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = do(h, "POST", "/machines/parity/run", `{"input": ["a"]}`, "Accept", "text/markdown")
	assert.Contains(t, w.Body.String(), "# parity")

	w = do(h, "POST", "/machines/parity/run?format=pdf", `{"input": ["a"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunMachine_CBOR(t *testing.T) {
	h, _ := newHandler(t)

	body, err := cbor.Marshal(map[string]any{"input": []string{"a"}})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/machines/parity/run", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/cbor")
	req.Header.Set("Accept", "application/cbor")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/cbor", w.Header().Get("Content-Type"))
	var res domain.Result
	require.NoError(t, cbor.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Verdict.Accepted)
}

func TestSimulate(t *testing.T) {
	h, _ := newHandler(t)

	payload, err := json.Marshal(apihttp.SimulateRequest{
		Source:   "[states]\nq0 S\nq1 F\n[sigma]\na b x e\n[rules]\nq0 a e x q0\nq0 b x e q1\nq1 b x e q1\n",
		Filename: "balanced.pda",
		Input:    []string{"a", "a", "b", "b"},
	})
	require.NoError(t, err)

	w := do(h, "POST", "/simulate", string(payload))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, domain.KindPushdown, res.Kind)
	assert.True(t, res.Verdict.Accepted)
}

func TestValidate(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "POST", "/validate", `{"source": `+quote(parity)+`}`)
	var resp apihttp.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "dfa", resp.Kind)

	w = do(h, "POST", "/validate", `{"source": `+quote(broken)+`}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, domain.CheckRules, resp.Check)

	w = do(h, "POST", "/validate", `{"source": "[states]\nq0 S extra\n"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	loader := memory.NewLoader(map[string]string{"parity": parity})
	eng, err := automata.New("", automata.WithLoader(loader), automata.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)
	h := apihttp.NewHandler(eng, apihttp.WithMetrics(reg), apihttp.WithLogger(logging.NewNop()))

	do(h, "POST", "/machines/parity/run", `{"input": ["a"]}`)

	w := do(h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "automata_runs_total")
}

func TestCORS(t *testing.T) {
	h, _ := newHandler(t)
	w := do(h, "OPTIONS", "/machines", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	h, _ := newHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/events?machine=parity", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		buf := make([]byte, 4096)
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				lines <- string(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	waitFor := func(want string) {
		t.Helper()
		var seen strings.Builder
		deadline := time.After(2 * time.Second)
		for !strings.Contains(seen.String(), want) {
			select {
			case chunk, ok := <-lines:
				require.True(t, ok, "stream closed before %q", want)
				seen.WriteString(chunk)
			case <-deadline:
				t.Fatalf("timed out waiting for %q, got %q", want, seen.String())
			}
		}
	}

	waitFor("event: ping")

	run, err := srv.Client().Post(srv.URL+"/machines/parity/run", "application/json", strings.NewReader(`{"input":["a"]}`))
	require.NoError(t, err)
	run.Body.Close()

	waitFor(`"type":"run_end"`)

	cancel()
	for range lines {
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
