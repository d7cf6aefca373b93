package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var fixtures = map[string]string{
	"react-hooks.md": "---\ntitle: React Hooks\ndate: 2024-01-10\ntags: [react, frontend]\n---\n" +
		"Hooks let function components hold state.\n",
	"go-intro.md": "---\ntitle: Go Intro\ndate: 2024-01-05\ntags: [go]\n" +
		"collection: Go Basics\ncollection_order: 1\n---\nInstall the toolchain.\n",
	"go-types.md": "---\ntitle: Go Types\ndate: 2024-01-12\ntags: [go]\n" +
		"collection: Go Basics\ncollection_order: 2\n---\nStructs and interfaces.\n",
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, doc := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, false)
	return code, stdout.String(), stderr.String()
}

func TestRun_Commands(t *testing.T) {
	dir := writeFixtures(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"search", []string{"search", "hooks"}, []string{"result(s) for \"hooks\"", "React [Hooks]", "/posts/react-hooks"}},
		{"search limit", []string{"search", "-limit", "1", "go"}, []string{"1 result(s)"}},
		{"search no results", []string{"search", "qqqqxyzzy"}, []string{"no results"}},
		{"related", []string{"related", "/posts/go-intro"}, []string{"Related to Go Intro", "/posts/go-types"}},
		{"popular", []string{"popular"}, []string{"Popular posts", "0 views"}},
		{"series", []string{"series", "Go Basics"}, []string{"Go Basics (2 posts)", "1. Go Intro", "2. Go Types"}},
		{"series nav", []string{"series", "Go Basics", "/posts/go-intro"}, []string{"* 1. Go Intro", "post 1 of 2, 50% through", "next: Go Types"}},
		{"tags", []string{"tags"}, []string{"3 tag(s)", "/tags/go"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"-dir", dir}, tc.args...)
			code, out, errOut := runCLI(t, args...)
			if code != 0 {
				t.Fatalf("exit code %d, stderr: %s", code, errOut)
			}
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	dir := writeFixtures(t)

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"no command", []string{"-dir", dir}, 2, "usage: blogdexctl"},
		{"unknown command", []string{"-dir", dir, "frobnicate"}, 2, "unknown command"},
		{"search without query", []string{"-dir", dir, "search"}, 2, "search [-limit n]"},
		{"related unknown post", []string{"-dir", dir, "related", "/posts/missing"}, 1, "error:"},
		{"unknown series", []string{"-dir", dir, "series", "Rust"}, 1, "not found"},
		{"post outside series", []string{"-dir", dir, "series", "Go Basics", "/posts/react-hooks"}, 1, "error:"},
		{"missing dir", []string{"-dir", filepath.Join(dir, "nope"), "tags"}, 1, "error:"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tc.args...)
			if code != tc.code {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", code, tc.code, errOut)
			}
			if !strings.Contains(errOut, tc.want) {
				t.Errorf("stderr missing %q:\n%s", tc.want, errOut)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	if code != 0 || !strings.HasPrefix(out, "blogdexctl ") {
		t.Errorf("unexpected version output %d %q", code, out)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList = %v", got)
	}
}
