package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nnviz/pkg/config"
	"github.com/matzehuels/nnviz/pkg/errors"
)

func TestConfigInit(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "config", "init")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, config.FileName) {
		t.Errorf("output = %q", out)
	}
	cfg, err := config.Load(config.FileName)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Output.Dir != "ANN" {
		t.Errorf("output dir = %q", cfg.Output.Dir)
	}

	if _, err := execute(t, "config", "init"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init: err = %v, want INVALID_PATH", err)
	}
	if _, err := execute(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[labels]\nenabled = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Decode(strings.NewReader(out))
	if err != nil {
		t.Fatalf("show output does not decode: %v\n%s", err, out)
	}
	if !cfg.Labels.Enabled {
		t.Error("show should print the loaded file's values")
	}

	if _, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "config", "show"); err == nil {
		t.Error("missing --config file should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("HOME", dir)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Errorf("cache path = %q", out)
	}

	if err := os.WriteFile("net.json", []byte(`{"layers": [1, 1], "epoch": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "render", "-f", "json", "net.json"); err != nil {
		t.Fatal(err)
	}

	out, err = execute(t, "cache", "info")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Entries") {
		t.Errorf("cache info = %q", out)
	}

	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear = %q", out)
	}
}
