package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/relayout/internal/app"
	"github.com/1broseidon/relayout/internal/config"
	"github.com/1broseidon/relayout/internal/platform"
)

type fakeBackend struct {
	windows []platform.Window
	moved   int
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return []platform.Display{{ID: 1, Name: "eDP-1", Bounds: platform.Rect{Width: 1920, Height: 1080}}}, nil
}

func (f *fakeBackend) ListWindows() ([]platform.Window, error) { return f.windows, nil }

func (f *fakeBackend) MoveResize(platform.WindowID, platform.Rect) error {
	f.moved++
	return nil
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no args prints usage", args: nil, want: 0},
		{name: "help", args: []string{"help"}, want: 0},
		{name: "unknown command", args: []string{"frobnicate"}, want: 2},
		{name: "save rejects args", args: []string{"save", "extra"}, want: 2},
		{name: "save name and output", args: []string{"save", "--name", "a", "--output", "b"}, want: 2},
		{name: "save invalid name", args: []string{"save", "--name", "../etc"}, want: 2},
		{name: "save help", args: []string{"save", "--help"}, want: 0},
		{name: "restore two paths", args: []string{"restore", "a", "b"}, want: 2},
		{name: "restore name and path", args: []string{"restore", "--name", "a", "b"}, want: 2},
		{name: "restore negative passes", args: []string{"restore", "--passes", "-1"}, want: 2},
		{name: "restore bad flag", args: []string{"restore", "--bogus"}, want: 2},
		{name: "delete needs name", args: []string{"delete"}, want: 2},
		{name: "screens rejects args", args: []string{"screens", "x"}, want: 2},
		{name: "config without subcommand", args: []string{"config"}, want: 2},
		{name: "config unknown subcommand", args: []string{"config", "edit"}, want: 2},
		{name: "config explain needs key", args: []string{"config", "explain"}, want: 2},
		{name: "mcp without subcommand", args: []string{"mcp"}, want: 2},
		{name: "mcp unknown", args: []string{"mcp", "start"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Fatalf("run(%v) = %d, want %d (stderr: %s)", tt.args, got, tt.want, stderr.String())
			}
		})
	}
}

func TestRun_ConfigCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("passes: 3\nlog_level: debug\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"config", "validate", "--path", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("validate exit %d: %s", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != "config: ok" {
		t.Fatalf("unexpected validate output %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"config", "explain", "--path", path, "passes"}, &stdout, &stderr); code != 0 {
		t.Fatalf("explain exit %d: %s", code, stderr.String())
	}
	want := "source: file:" + path + ":1:9"
	if !strings.Contains(stdout.String(), want) || !strings.Contains(stdout.String(), "3") {
		t.Fatalf("explain output %q missing %q", stdout.String(), want)
	}

	stdout.Reset()
	if code := run([]string{"config", "print", "--path", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("print exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "passes: 3") || !strings.Contains(stdout.String(), "# loaded: ") {
		t.Fatalf("unexpected print output %q", stdout.String())
	}

	if err := os.WriteFile(path, []byte("passes: 0\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	stderr.Reset()
	if code := run([]string{"config", "validate", "--path", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected validation failure, got %d", code)
	}
	if !strings.Contains(stderr.String(), "passes") {
		t.Fatalf("validation error should name the key: %q", stderr.String())
	}
}

func TestRun_ListAndDeleteUseLayoutsDir(t *testing.T) {
	dir := t.TempDir()
	layouts := filepath.Join(dir, "layouts")
	if err := os.MkdirAll(layouts, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"work", "home"} {
		if err := os.WriteFile(filepath.Join(layouts, name+".yaml"), []byte("screens: []\nwindows: []\n"), 0644); err != nil {
			t.Fatalf("write layout: %v", err)
		}
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("layouts_dir: "+layouts+"\nlog_level: off\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"list", "--config", cfgPath}, &stdout, &stderr); code != 0 {
		t.Fatalf("list exit %d: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "home\nwork\n" {
		t.Fatalf("list output = %q", got)
	}

	stdout.Reset()
	if code := run([]string{"delete", "--config", cfgPath, "home"}, &stdout, &stderr); code != 0 {
		t.Fatalf("delete exit %d: %s", code, stderr.String())
	}
	if code := run([]string{"delete", "--config", cfgPath, "home"}, &stdout, &stderr); code != 1 {
		t.Fatalf("second delete should fail, got %d", code)
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceFile, File: "/tmp/c.yaml"}, "file:/tmp/c.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/tmp/c.yaml", Line: 4, Column: 2}, "file:/tmp/c.yaml:4:2"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestRestoreOnce_DryRunListsEachMoveOnce(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "layout.yaml")
	doc := "screens:\n  - id: 1\n    frame: 0,0,1920,1080\nwindows:\n  - owner_name: kitty\n    name: vim\n    screen_num: 1\n    pos: max\n"
	if err := os.WriteFile(layoutPath, []byte(doc), 0644); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.LayoutPath = layoutPath
	cfg.SettleInterval = time.Millisecond
	b := &fakeBackend{windows: []platform.Window{
		{ID: 5, AppID: "kitty", Title: "vim", Bounds: platform.Rect{X: 100, Y: 100, Width: 800, Height: 600}},
	}}
	a := app.New(cfg, nil)
	a.Connect = func() (platform.Backend, func(), error) { return b, nil, nil }

	var stdout bytes.Buffer
	if err := restoreOnce(context.Background(), a, app.Source{}, app.RestoreOptions{DryRun: true}, &stdout); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := strings.Count(stdout.String(), "kitty/vim"); got != 1 {
		t.Fatalf("expected the planned move listed once, got %d:\n%s", got, stdout.String())
	}
	if b.moved != 0 {
		t.Fatalf("dry run moved %d windows", b.moved)
	}
}
