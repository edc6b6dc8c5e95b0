package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"ideabox-cli/internal/model"
)

func TestLoadConfig_AcceptsCommentsAndTrailingCommas(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("IDEABOX_CONFIG_DIR", cfgDir)

	raw := `{
  // new ideas get the two-textarea layout
  "variant": "fields",
  "theme": "light", /* initial only */
  "exportDir": "/tmp/out",
}`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(raw), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultVariant() != model.VariantFields || !cfg.LightTheme() || cfg.ExportDir != "/tmp/out" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}

func TestLoadConfig_MissingIsDefault(t *testing.T) {
	t.Setenv("IDEABOX_CONFIG_DIR", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultVariant() != model.VariantChat || cfg.LightTheme() {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}

	var nilCfg *GlobalConfig
	if nilCfg.DefaultVariant() != model.VariantChat || nilCfg.LightTheme() {
		t.Fatalf("nil config must behave like defaults")
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	t.Setenv("IDEABOX_CONFIG_DIR", t.TempDir())

	const n = 32
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := SaveConfig(&GlobalConfig{CurrentWorkspace: "ws", Variant: "chat"}); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("config is not valid JSON: %v\n%s", err, raw)
	}
}

func TestWorkspaces(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("IDEABOX_CONFIG_DIR", cfgDir)

	ws, err := ListWorkspaces()
	if err != nil || len(ws) != 0 {
		t.Fatalf("expected no workspaces; got %v %v", ws, err)
	}

	for _, name := range []string{"b", "a"} {
		d, err := WorkspaceDir(name)
		if err != nil {
			t.Fatalf("WorkspaceDir: %v", err)
		}
		if d != filepath.Join(cfgDir, "workspaces", name) {
			t.Fatalf("unexpected dir: %s", d)
		}
		if err := (Store{Dir: d}).Ensure(); err != nil {
			t.Fatalf("Ensure: %v", err)
		}
	}
	ws, err = ListWorkspaces()
	if err != nil || !reflect.DeepEqual(ws, []string{"a", "b"}) {
		t.Fatalf("unexpected workspaces: %v %v", ws, err)
	}

	for _, bad := range []string{"", " ", "a/b", `a\b`, ".", ".."} {
		if _, err := NormalizeWorkspaceName(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}

	// Missing file => default state.
	st0, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{Version: 1, SelectedTitle: "Garden bot", Pane: "detail"}
	if err := s.SaveTUIState(want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}

	// Corrupted state is treated as missing.
	if err := os.WriteFile(s.tuiStatePath(), []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err = s.LoadTUIState()
	if err != nil || got.SelectedTitle != "" {
		t.Fatalf("expected default state for corrupt file; got %#v %v", got, err)
	}
}
