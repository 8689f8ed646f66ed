package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliRun struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliRun {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetErr(&errOut)
	code := app.execute(args, &errOut)
	return cliRun{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

const goodSource = "funct main() ret int {\n    let x: int = 1 + 2 * 3;\n    return x;\n}\n"
const badSource = "funct (a: int) ret int { return a; }\n"

func TestCheckExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := writeTemp(t, dir, "good.lr", goodSource)
	bad := writeTemp(t, dir, "bad.lr", badSource)
	txt := writeTemp(t, dir, "notes.txt", goodSource)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"clean", []string{good}, 0, ""},
		{"syntax error", []string{"--color", "off", bad}, 1, "expected function name"},
		{"no args", nil, 2, "usage: lunar <file.lr>"},
		{"two args", []string{good, good}, 2, "usage: lunar <file.lr>"},
		{"wrong extension", []string{txt}, 2, "expected a .lr file"},
		{"missing file", []string{filepath.Join(dir, "nope.lr")}, 1, "failed to read file"},
		{"unknown flag", []string{"--bogus", good}, 2, "unknown flag"},
		{"bad color", []string{"--color", "rainbow", good}, 2, "invalid --color value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runCLI(t, tt.args...)
			if got.code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", got.code, tt.wantCode, got.stderr)
			}
			if tt.wantStderr == "" && got.stderr != "" {
				t.Fatalf("unexpected stderr: %s", got.stderr)
			}
			if !strings.Contains(got.stderr, tt.wantStderr) {
				t.Fatalf("stderr %q does not contain %q", got.stderr, tt.wantStderr)
			}
		})
	}
}

func TestCheckClassicDiagnostics(t *testing.T) {
	bad := writeTemp(t, t.TempDir(), "bad.lr", badSource)
	got := runCLI(t, "--diag-format", "classic", bad)
	if got.code != 1 {
		t.Fatalf("exit code = %d", got.code)
	}
	if !strings.Contains(got.stderr, ":1:7: error: expected function name") {
		t.Fatalf("unexpected classic output: %q", got.stderr)
	}
}

func TestTokenizeCommand(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "t.lr", "let x = 42;")
	got := runCLI(t, "tokenize", path)
	if got.code != 0 {
		t.Fatalf("exit code = %d (%s)", got.code, got.stderr)
	}
	want := "1:1  KW_LET\n1:5  IDENT     \"x\"\n1:7  =\n1:9  INT       42\n1:11  ;\n1:12  EOF\n"
	if got.stdout != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got.stdout, want)
	}
}

func TestTokenizeLexErrorExitCode(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "t.lr", "let x = @;")
	got := runCLI(t, "--color", "off", "tokenize", path)
	if got.code != 1 {
		t.Fatalf("exit code = %d", got.code)
	}
	if !strings.Contains(got.stdout, "INVALID") {
		t.Fatalf("tokens must still be printed: %s", got.stdout)
	}
}

func TestParseCommandTree(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "f.lr", "funct f(x: int) ret int { return -x; }")
	got := runCLI(t, "parse", "--format", "tree", path)
	if got.code != 0 {
		t.Fatalf("exit code = %d (%s)", got.code, got.stderr)
	}
	if !strings.Contains(got.stdout, "└─ Fn name=f ret=int @1:1") {
		t.Fatalf("unexpected tree:\n%s", got.stdout)
	}
}

func TestParseCommandDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.lr", goodSource)
	writeTemp(t, dir, "b.lr", badSource)

	got := runCLI(t, "--color", "off", "parse", "--jobs", "2", dir)
	if got.code != 1 {
		t.Fatalf("exit code = %d (%s)", got.code, got.stderr)
	}
	if !strings.Contains(got.stdout, "== "+filepath.Join(dir, "a.lr")+" ==") {
		t.Fatalf("missing header for a.lr:\n%s", got.stdout)
	}
	if !strings.Contains(got.stdout, "funct main() ret int {") {
		t.Fatalf("missing pretty AST:\n%s", got.stdout)
	}
	if !strings.Contains(got.stderr, "expected function name") {
		t.Fatalf("missing diagnostic:\n%s", got.stderr)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "f.lr", goodSource)
	got := runCLI(t, "parse", "--format", "xml", path)
	if got.code != 2 {
		t.Fatalf("exit code = %d", got.code)
	}
}

func TestManifestLayering(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "lunar.toml", "[parser]\nmax_depth = 2\n")
	path := writeTemp(t, dir, "src/deep.lr", "funct f() ret int { return ((((1)))); }")

	got := runCLI(t, "--color", "off", path)
	if got.code != 1 || !strings.Contains(got.stderr, "SYN2302") {
		t.Fatalf("max_depth from lunar.toml not applied: code=%d stderr=%s", got.code, got.stderr)
	}

	got = runCLI(t, "--color", "off", "--max-depth", "64", path)
	if got.code != 0 {
		t.Fatalf("--max-depth must override lunar.toml: code=%d stderr=%s", got.code, got.stderr)
	}
}

func TestManifestToolchainMismatch(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "lunar.toml", "[toolchain]\nlunar = \">= 99.0.0\"\n")
	path := writeTemp(t, dir, "main.lr", goodSource)

	got := runCLI(t, path)
	if got.code != 1 || !strings.Contains(got.stderr, "PRJ5002") {
		t.Fatalf("expected toolchain mismatch, code=%d stderr=%s", got.code, got.stderr)
	}
}

func TestTimingsFlag(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "main.lr", goodSource)
	got := runCLI(t, "--timings", path)
	if got.code != 0 {
		t.Fatalf("exit code = %d", got.code)
	}
	for _, want := range []string{"timings:", "load", "parse", "total"} {
		if !strings.Contains(got.stderr, want) {
			t.Fatalf("timings output misses %q:\n%s", want, got.stderr)
		}
	}
}

func TestTraceToStderr(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.ndjson")
	path := writeTemp(t, t.TempDir(), "main.lr", goodSource)
	got := runCLI(t, "--trace", tracePath, path)
	if got.code != 0 {
		t.Fatalf("exit code = %d (%s)", got.code, got.stderr)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.Contains(string(data), `"name":"parse"`) {
		t.Fatalf("trace lacks parse span:\n%s", data)
	}
}

func TestVersionJSON(t *testing.T) {
	got := runCLI(t, "version", "--format", "json")
	if got.code != 0 {
		t.Fatalf("exit code = %d", got.code)
	}
	if !strings.Contains(got.stdout, `"version"`) || !strings.Contains(got.stdout, `"go_version"`) {
		t.Fatalf("unexpected json: %s", got.stdout)
	}
}

func TestReplSession(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := &cliConfig{diagFormat: "classic"}
	s := newReplSession(cfg, "tree", &out, &errOut)

	if _, ok := s.feed("funct f() ret int {"); ok {
		t.Fatalf("unbalanced snippet must wait for more input")
	}
	if !s.pending() {
		t.Fatalf("session must be pending")
	}
	src, ok := s.feed("  return \"}\"; }")
	if !ok {
		t.Fatalf("braces inside strings must not count")
	}
	s.eval(context.Background(), src)
	if !strings.Contains(out.String(), "Fn name=f ret=int") {
		t.Fatalf("unexpected tree:\n%s", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", errOut.String())
	}

	out.Reset()
	if !s.command(":trace") {
		t.Fatalf(":trace must not quit")
	}
	if !strings.Contains(out.String(), "parse") {
		t.Fatalf(":trace printed nothing useful:\n%s", out.String())
	}

	src, ok = s.feed("funct () ret int {}")
	if !ok {
		t.Fatalf("balanced snippet must complete")
	}
	s.eval(context.Background(), src)
	if !strings.Contains(errOut.String(), "expected function name") {
		t.Fatalf("missing diagnostic: %s", errOut.String())
	}

	if s.command(":quit") {
		t.Fatalf(":quit must stop the loop")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Errorf("expected error for invalid mode")
	}
}

func TestProfileFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "main.lr", goodSource)
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	got := runCLI(t, "--cpu-profile", cpu, "--mem-profile", mem, path)
	if got.code != 0 {
		t.Fatalf("exit code = %d (%s)", got.code, got.stderr)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("profile %s not written: %v", filepath.Base(p), err)
		}
	}
}

func TestReplRejectsUnknownFormat(t *testing.T) {
	for _, format := range []string{"xyz", "msgpack"} {
		got := runCLI(t, "repl", "--format", format)
		if got.code != 2 {
			t.Fatalf("repl --format %s: exit code = %d, want 2 (stderr: %s)", format, got.code, got.stderr)
		}
		if !strings.Contains(got.stderr, "unknown format") {
			t.Fatalf("repl --format %s: stderr = %q", format, got.stderr)
		}
	}

	var out, errOut bytes.Buffer
	s := newReplSession(&cliConfig{diagFormat: "classic"}, "tree", &out, &errOut)
	s.command(":format msgpack")
	if s.format != "tree" || !strings.Contains(errOut.String(), "unknown format") {
		t.Fatalf(":format msgpack must be rejected, format=%s stderr=%q", s.format, errOut.String())
	}
	s.command(":format JSON")
	if s.format != "json" {
		t.Fatalf(":format JSON = %s", s.format)
	}
}
