package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matheus3301/convo/internal/config"
)

func TestDirUsesHomeOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv(HomeEnv, base)

	if got, want := Dir("main"), filepath.Join(base, "profiles", "main"); got != want {
		t.Errorf("Dir(main) = %q, want %q", got, want)
	}
	if got, want := DBPath("w"), filepath.Join(base, "profiles", "w", "convo.db"); got != want {
		t.Errorf("DBPath(w) = %q, want %q", got, want)
	}
	if got, want := LogPath("w"), filepath.Join(base, "profiles", "w", "logs", "convo.log"); got != want {
		t.Errorf("LogPath(w) = %q, want %q", got, want)
	}
	if got, want := ConfigPath(), filepath.Join(base, "config.toml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestDefaultBaseDir(t *testing.T) {
	t.Setenv(HomeEnv, "")
	home, _ := os.UserHomeDir()
	if got, want := BaseDir(), filepath.Join(home, ".convo"); got != want {
		t.Errorf("BaseDir() = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	if err := EnsureDir("test"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(LogDir("test"))
	if err != nil {
		t.Fatalf("log dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("log dir is not a directory")
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("log dir permission = %o, want 0700", perm)
	}
}

func TestResolve(t *testing.T) {
	cfg := &config.Config{DefaultProfile: "work"}
	tests := []struct {
		flag string
		cfg  *config.Config
		want string
	}{
		{"cli", cfg, "cli"},
		{"", cfg, "work"},
		{"", &config.Config{}, DefaultName},
		{"", nil, DefaultName},
	}
	for _, tt := range tests {
		if got := Resolve(tt.flag, tt.cfg); got != tt.want {
			t.Errorf("Resolve(%q, %+v) = %q, want %q", tt.flag, tt.cfg, got, tt.want)
		}
	}
}
