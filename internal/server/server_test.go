package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/conduit-lang/eggmath/internal/optimizer"
	"github.com/conduit-lang/eggmath/internal/rewrite"
)

func newServer(t *testing.T, opts ...optimizer.Option) *Server {
	t.Helper()
	opts = append([]optimizer.Option{optimizer.WithGroups("id-reduce-fp-safe", "commutativity")}, opts...)
	opt, err := optimizer.New(opts...)
	require.NoError(t, err)
	return New(opt, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newServer(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["groups"])
}

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodGet, "/health", "")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestVocabulary(t *testing.T) {
	w := do(t, newServer(t), http.MethodGet, "/v1/vocabulary", "")
	require.Equal(t, http.StatusOK, w.Code)

	entries := decode[[]VocabularyEntry](t, w)
	kinds := make(map[string]string, len(entries))
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}
	assert.Equal(t, "operator", kinds["sqrt"])
	assert.Equal(t, "operator", kinds["+"])
	assert.Equal(t, "constant", kinds["PI"])
}

func TestRulesMarksSelection(t *testing.T) {
	w := do(t, newServer(t), http.MethodGet, "/v1/rules", "")
	require.Equal(t, http.StatusOK, w.Code)

	groups := decode[[]GroupInfo](t, w)
	assert.Len(t, groups, 38)
	selected := 0
	for _, g := range groups {
		if g.Selected {
			selected++
		}
		assert.NotEmpty(t, g.Rules, g.Name)
	}
	assert.Equal(t, 2, selected)
}

func TestRuleGroup(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodGet, "/v1/rules/commutativity", "")
	require.Equal(t, http.StatusOK, w.Code)
	g := decode[GroupInfo](t, w)
	assert.Equal(t, "fp-safe", g.Soundness)
	assert.True(t, g.Selected)
	assert.Contains(t, g.Rules, RuleInfo{Name: "+-commutative", LHS: "(+ ?a ?b)", RHS: "(+ ?b ?a)"})

	w = do(t, s, http.MethodGet, "/v1/rules/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "invalid_rules", decode[ErrorResponse](t, w).Error)
}

func TestOptimize(t *testing.T) {
	w := do(t, newServer(t), http.MethodPost, "/v1/optimize", `{"expr": "(* (+ x 0) 1)"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[optimizer.Result](t, w)
	assert.Equal(t, "x", res.Output)
	assert.Equal(t, rewrite.Saturated, res.StopReason)
	assert.True(t, res.Improved())
}

func TestOptimizeWithGroups(t *testing.T) {
	w := do(t, newServer(t), http.MethodPost, "/v1/optimize",
		`{"expr": "(+ x 0)", "groups": ["commutativity"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "(+ x 0)", decode[optimizer.Result](t, w).Output)
}

func TestOptimizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"expr":`, http.StatusBadRequest, "invalid_json"},
		{"unknown field", `{"expression": "x"}`, http.StatusBadRequest, "invalid_json"},
		{"syntax error", `{"expr": "(+ x"}`, http.StatusBadRequest, "invalid_expression"},
		{"empty expression", `{"expr": ""}`, http.StatusBadRequest, "invalid_expression"},
		{"unknown group", `{"expr": "x", "groups": ["nope"]}`, http.StatusBadRequest, "invalid_rules"},
		{"too large", `{"expr": "` + strings.Repeat("x", MaxRequestBytes) + `"}`, http.StatusRequestEntityTooLarge, "request_too_large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newServer(t), http.MethodPost, "/v1/optimize", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestOptimizeSyntaxErrorCarriesDiagnostic(t *testing.T) {
	w := do(t, newServer(t), http.MethodPost, "/v1/optimize", `{"expr": "(+ x"}`)

	body := decode[map[string]interface{}](t, w)
	diags, ok := body["diagnostics"].([]interface{})
	require.True(t, ok, w.Body.String())
	require.Len(t, diags, 1)
	d := diags[0].(map[string]interface{})
	assert.Equal(t, "SYN102", d["code"])
	assert.Equal(t, optimizer.InputSource, d["source"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodGet, "/v2/anything", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[ErrorResponse](t, w).Error)

	w = do(t, s, http.MethodGet, "/v1/optimize", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRecoveryLogsPanic(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestID(Recovery(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	w := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	entry := logs.FilterMessage("panic recovered").All()[0]
	assert.Equal(t, "boom", entry.ContextMap()["panic"])
	assert.NotEmpty(t, entry.ContextMap()["request_id"])
}

func TestLoggingRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	opt, err := optimizer.New(optimizer.WithGroups("commutativity"))
	require.NoError(t, err)
	s := New(opt, zap.New(core))

	do(t, s, http.MethodGet, "/v1/rules/nope", "")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "/v1/rules/nope", fields["path"])
}

func dialStream(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/optimize/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	return conn
}

func readAll(t *testing.T, conn *websocket.Conn) []StreamMessage {
	t.Helper()
	var msgs []StreamMessage
	for {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			return msgs
		}
		msgs = append(msgs, msg)
	}
}

func TestStream(t *testing.T) {
	conn := dialStream(t, newServer(t))
	require.NoError(t, conn.WriteJSON(OptimizeRequest{Expr: "(+ (* x 1) 0)"}))

	msgs := readAll(t, conn)
	require.GreaterOrEqual(t, len(msgs), 2)

	last := msgs[len(msgs)-1]
	require.Equal(t, MessageResult, last.Type)
	assert.Equal(t, "x", last.Result.Output)

	iterations := msgs[:len(msgs)-1]
	assert.Len(t, iterations, len(last.Result.Iterations))
	for i, m := range iterations {
		assert.Equal(t, MessageIteration, m.Type)
		assert.Equal(t, i, m.Iteration.Index)
	}
}

func TestStreamError(t *testing.T) {
	conn := dialStream(t, newServer(t))
	require.NoError(t, conn.WriteJSON(OptimizeRequest{Expr: "x", Groups: []string{"nope"}}))

	msgs := readAll(t, conn)
	require.Len(t, msgs, 1)
	assert.Equal(t, MessageError, msgs[0].Type)
	assert.Equal(t, "invalid_rules", msgs[0].Error.Error)
}

func TestStreamRejectsGarbage(t *testing.T) {
	conn := dialStream(t, newServer(t))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	var msg StreamMessage
	err := conn.ReadJSON(&msg)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseUnsupportedData), "got %v", err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newServer(t).Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/v1/optimize"
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(`{"expr":"(+ x 0)"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestOptimizeCanceledReturnsServiceUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := httptest.NewRequest(http.MethodPost, "/v1/optimize", strings.NewReader(`{"expr": "(+ x 0)"}`)).WithContext(ctx)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newServer(t).ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode[ErrorResponse](t, w)
	assert.Equal(t, "canceled", body.Error)
}
