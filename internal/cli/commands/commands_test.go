package commands

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/eggmath/internal/cli/config"
	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/optimizer"
	"github.com/conduit-lang/eggmath/internal/server"
)

const testConfig = `runner:
  iter_limit: 10
  node_limit: 2000
cache:
  backend: none
log:
  level: error
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eggmath.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color", "--config", writeConfig(t, testConfig)}, args...))
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestRootRegistersCommands(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "eggmath", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "optimize", "rules", "vocab", "serve", "token", "watch"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersion(t *testing.T) {
	Version = "1.2.3"
	t.Cleanup(func() { Version = "dev" })

	r := execute(t, "", "version")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "eggmath version: 1.2.3")
	assert.Contains(t, r.stdout, "Go version:")
}

func TestOptimizeArgs(t *testing.T) {
	r := execute(t, "", "optimize", "--groups", "id-reduce-fp-safe", "(* (+ x 0) 1)", "(+ 1 2)")
	require.NoError(t, r.err)
	assert.Equal(t, "x\n3\n", r.stdout)
}

func TestOptimizeStdin(t *testing.T) {
	input := "; identities\n(+ x 0)\n\n(* 1 y)\n"
	r := execute(t, input, "optimize", "-g", "id-reduce-fp-safe")
	require.NoError(t, r.err)
	assert.Equal(t, "x\ny\n", r.stdout)
}

func TestOptimizeEmptyStdin(t *testing.T) {
	r := execute(t, "; nothing\n", "optimize")
	assert.ErrorContains(t, r.err, "no expressions given")
}

func TestOptimizeJSON(t *testing.T) {
	r := execute(t, "", "optimize", "--json", "-g", "id-reduce-fp-safe", "(- a 0)")
	require.NoError(t, r.err)

	var res optimizer.Result
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &res))
	assert.Equal(t, "(- a 0)", res.Input)
	assert.Equal(t, "a", res.Output)
	assert.True(t, res.Improved())
}

func TestOptimizeVerbose(t *testing.T) {
	r := execute(t, "", "optimize", "--verbose", "-g", "commutativity", "(+ a b)")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "Output:")
	assert.Contains(t, r.stdout, "Stop reason: saturated")
	assert.Contains(t, r.stdout, "Improved:    false")
	assert.Contains(t, r.stdout, "Top rules")
	assert.Contains(t, r.stdout, "+-commutative×1")
}

func TestOptimizeProgress(t *testing.T) {
	r := execute(t, "", "optimize", "--progress", "-g", "commutativity", "(+ a b)")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "1/10")
}

func TestOptimizeIterLimitFlag(t *testing.T) {
	r := execute(t, "", "optimize", "--json", "--iter-limit", "1", "-g", "commutativity", "(+ a (+ b c))")
	require.NoError(t, r.err)

	var res optimizer.Result
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &res))
	assert.Len(t, res.Iterations, 1)
}

func TestOptimizeSyntaxError(t *testing.T) {
	r := execute(t, "", "optimize", "(+ x")

	var d *errors.Diagnostic
	require.True(t, stderrors.As(r.err, &d), "got %v", r.err)
	assert.Equal(t, errors.ErrUnclosedList, d.Code)
}

func TestOptimizeUnknownGroup(t *testing.T) {
	r := execute(t, "", "optimize", "-g", "comutativity", "x")

	var list errors.ErrorList
	require.True(t, stderrors.As(r.err, &list), "got %v", r.err)
	assert.Equal(t, errors.ErrUnknownGroup, list[0].Code)
}

func TestInvalidConfig(t *testing.T) {
	var stdout bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", writeConfig(t, "runner:\n  iter_limit: -1\n"), "rules"})

	err := cmd.Execute()
	var list errors.ErrorList
	require.True(t, stderrors.As(err, &list), "got %v", err)
	assert.Equal(t, "runner.iter_limit", list[0].Source)
}

func scripted(answers ...string) func(func(string) error) (string, error) {
	return func(func(string) error) (string, error) {
		if len(answers) == 0 {
			return "", terminal.InterruptErr
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
}

func runInteractive(t *testing.T, ask func(func(string) error) (string, error)) (string, string, error) {
	t.Helper()
	o := &optimizeOptions{
		globalOptions: &globalOptions{configPath: writeConfig(t, testConfig), noColor: true},
		groups:        []string{"id-reduce-fp-safe"},
		interactive:   true,
		ask:           ask,
	}
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(context.Background())

	err := o.run(cmd, nil)
	return stdout.String(), stderr.String(), err
}

func TestInteractive(t *testing.T) {
	stdout, stderr, err := runInteractive(t, scripted("(+ x 0)", "(+ x", "(* 1 y)", ""))
	require.NoError(t, err)

	assert.Equal(t, "x\ny\n", stdout)
	assert.Contains(t, stderr, "SYN102")
}

func TestInteractiveInterrupt(t *testing.T) {
	stdout, _, err := runInteractive(t, scripted("(+ z 0)"))
	require.NoError(t, err)
	assert.Equal(t, "z\n", stdout)
}

func TestInteractivePromptFailure(t *testing.T) {
	_, _, err := runInteractive(t, func(func(string) error) (string, error) {
		return "", stderrors.New("no terminal")
	})
	assert.EqualError(t, err, "no terminal")
}

func TestRulesList(t *testing.T) {
	r := execute(t, "", "rules")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "commutativity")
	assert.Contains(t, r.stdout, "id-reduce-fp-safe-nan")
	assert.Contains(t, r.stdout, "38 groups, 38 selected")
}

func TestRulesGroup(t *testing.T) {
	r := execute(t, "", "rules", "commutativity")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "commutativity (fp-safe)")
	assert.Contains(t, r.stdout, "+-commutative")
	assert.Contains(t, r.stdout, "(+ ?b ?a)")
}

func TestRulesUnknownGroup(t *testing.T) {
	r := execute(t, "", "rules", "nope")
	var list errors.ErrorList
	require.True(t, stderrors.As(r.err, &list))
	assert.Equal(t, "nope", list[0].Source)
}

func TestRulesJSON(t *testing.T) {
	r := execute(t, "", "rules", "--json", "counting")
	require.NoError(t, r.err)

	var groups []groupJSON
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "counting", groups[0].Name)
	assert.True(t, groups[0].Selected)
	assert.NotEmpty(t, groups[0].Rules)
}

func TestVocab(t *testing.T) {
	r := execute(t, "", "vocab")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "sqrt")
	assert.Contains(t, r.stdout, "real->posit")

	r = execute(t, "", "vocab", "--json")
	require.NoError(t, r.err)
	var entries []vocabJSON
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &entries))
	assert.Contains(t, entries, vocabJSON{Name: "PI", Kind: "constant"})
	assert.Contains(t, entries, vocabJSON{Name: "+", Kind: "operator", Foldable: true})
	assert.Contains(t, entries, vocabJSON{Name: "sqrt", Kind: "operator"})
}

func TestServeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", writeConfig(t, testConfig), "serve", "--host", "127.0.0.1", "--port", "0"})
	assert.NoError(t, cmd.ExecuteContext(ctx))
}

func TestTopRules(t *testing.T) {
	applied := map[string]int{"a": 1, "b": 3, "c": 3, "d": 0, "e": 2}
	assert.Equal(t, "b×3, c×3, e×2", topRules(applied, 3))
	assert.Equal(t, "", topRules(nil, 3))
}

func executeWithConfig(t *testing.T, config string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--no-color", "--config", writeConfig(t, config)}, args...))
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestOptimizeWithRuleFile(t *testing.T) {
	rulePath := filepath.Join(t.TempDir(), "extra.yml")
	require.NoError(t, os.WriteFile(rulePath, []byte(`groups:
  - name: cancellation
    soundness: exact
    rules:
      - name: cancel-difference
        lhs: (- ?a ?a)
        rhs: "0"
`), 0o644))

	config := testConfig + "rules:\n  files:\n    - " + rulePath + "\n"

	r := executeWithConfig(t, config, "optimize", "-g", "cancellation", "(- y y)")
	require.NoError(t, r.err)
	assert.Equal(t, "0\n", r.stdout)

	r = executeWithConfig(t, config, "rules", "cancellation")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "cancellation (exact)")
	assert.Contains(t, r.stdout, "cancel-difference")
}

func TestOptimizeMissingRuleFile(t *testing.T) {
	config := testConfig + "rules:\n  files:\n    - " + filepath.Join(t.TempDir(), "gone.yml") + "\n"
	r := executeWithConfig(t, config, "optimize", "x")
	assert.ErrorContains(t, r.err, "failed to read rule file")
}

func TestOptimizeJobs(t *testing.T) {
	r := execute(t, "(+ a 0)\n(* b 1)\n(- c 0)\n(+ 1 2)\n", "optimize", "--jobs", "3", "-g", "id-reduce-fp-safe")
	require.NoError(t, r.err)
	assert.Equal(t, "a\nb\nc\n3\n", r.stdout)
}

func TestOptimizeJobsFailure(t *testing.T) {
	r := execute(t, "", "optimize", "-j", "2", "x", "(+ y")

	var d *errors.Diagnostic
	require.True(t, stderrors.As(r.err, &d), "got %v", r.err)
	assert.Equal(t, errors.ErrUnclosedList, d.Code)
	assert.Empty(t, r.stdout)
}

func TestOptimizeJobsExcludesProgress(t *testing.T) {
	r := execute(t, "", "optimize", "--jobs", "2", "--progress", "x")
	assert.ErrorContains(t, r.err, "none of the others can be")
}

const authConfig = testConfig + `server:
  auth:
    secret: 0123456789abcdef0123
    token_ttl: 1h
`

func TestToken(t *testing.T) {
	r := executeWithConfig(t, authConfig, "token", "ci-bot")
	require.NoError(t, r.err)

	claims, err := server.NewAuthenticator("0123456789abcdef0123", time.Hour).Verify(strings.TrimSpace(r.stdout))
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)

	r = executeWithConfig(t, authConfig, "token", "--ttl", "0", "forever")
	require.NoError(t, r.err)
	claims, err = server.NewAuthenticator("0123456789abcdef0123", 0).Verify(strings.TrimSpace(r.stdout))
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestTokenRequiresSecret(t *testing.T) {
	r := execute(t, "", "token", "ci-bot")

	var d *errors.Diagnostic
	require.True(t, stderrors.As(r.err, &d), "got %v", r.err)
	assert.Equal(t, "server.auth.secret", d.Source)
}

// syncBuffer guards a bytes.Buffer written from the watch goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchReoptimizesOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("; scratch\n(+ x 0)\n"), 0o644))

	var stdout, stderr syncBuffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--no-color", "--config", writeConfig(t, testConfig), "watch", "-g", "id-reduce-fp-safe", path})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "\nx\n")
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, strings.HasPrefix(stdout.String(), path+"\n"))

	// the watcher starts after the first pass, so keep saving until it notices
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("(* y 1)\n(+ z\n"), 0o644)
		return strings.Contains(stdout.String(), "\ny\n")
	}, 10*time.Second, 200*time.Millisecond)
	assert.Contains(t, stderr.String(), "SYN")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchMissingFile(t *testing.T) {
	r := execute(t, "", "watch", filepath.Join(t.TempDir(), "missing", "exprs.txt"))
	assert.ErrorContains(t, r.err, "failed to watch directory")
	assert.NotEmpty(t, r.stderr)
}

func TestNewLimiter(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.Server.RateLimit = config.RateLimitConfig{Requests: 1, Window: time.Minute, Backend: "memory"}

	l, closeLimiter, err := newLimiter(ctx, cfg)
	require.NoError(t, err)
	defer closeLimiter()
	assert.IsType(t, &server.TokenBucket{}, l)

	mr := miniredis.RunT(t)
	cfg.Server.RateLimit.Backend = "redis"
	cfg.Cache.Redis.Addr = mr.Addr()
	cfg.Cache.Prefix = "eggmath:"

	l, closeRedis, err := newLimiter(ctx, cfg)
	require.NoError(t, err)
	defer closeRedis()

	info, err := l.Allow(ctx, "ip:127.0.0.1")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
	assert.True(t, mr.Exists("eggmath:ratelimit:ip:127.0.0.1"))

	mr.Close()
	_, _, err = newLimiter(ctx, cfg)
	assert.ErrorContains(t, err, "failed to open redis rate limiter")
}
