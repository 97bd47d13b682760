package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/slidegen/pkg/deck"
	apperrors "github.com/matzehuels/slidegen/pkg/errors"
)

func TestDefaultThemeMatchesDeck(t *testing.T) {
	if diff := cmp.Diff(deck.DefaultTheme(), Default().Theme()); diff != "" {
		t.Errorf("theme mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[title]
size = 32
color = "#112233"

[code]
style = "dracula"
fill = "000000"
tab_width = 2

[cache]
ttl = "1h"
redis_url = "redis://localhost:6379/0"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Title.Size != 32 || cfg.Title.Color != deck.RGB(0x11, 0x22, 0x33) {
		t.Errorf("title = %+v", cfg.Title)
	}
	if cfg.Title.Left != 0.5 || !cfg.Title.Bold {
		t.Errorf("title defaults lost: %+v", cfg.Title)
	}
	if cfg.Code.Style != "dracula" || cfg.Code.Fill != deck.RGB(0, 0, 0) || cfg.Code.TabWidth != 2 {
		t.Errorf("code = %+v", cfg.Code)
	}
	if cfg.Code.Font != "Courier New" {
		t.Errorf("code font default lost: %q", cfg.Code.Font)
	}
	if cfg.Cache.TTL.Duration != time.Hour || cfg.Cache.RedisURL == "" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  apperrors.Code
		field string
	}{
		{"syntax", "[title\n", apperrors.ErrCodeInvalidInput, ""},
		{"unknown key", "[title]\nsise = 3\n", apperrors.ErrCodeInvalidInput, ""},
		{"bad color", "[text]\ncolor = \"blue\"\n", apperrors.ErrCodeInvalidInput, ""},
		{"bad duration", "[cache]\nttl = \"soon\"\n", apperrors.ErrCodeInvalidInput, ""},
		{"zero size", "[text]\nsize = 0\n", apperrors.ErrCodeInvalidTheme, "text.size"},
		{"unknown style", "[code]\nstyle = \"nope\"\n", apperrors.ErrCodeInvalidTheme, "code.style"},
		{"negative tabs", "[code]\ntab_width = -1\n", apperrors.ErrCodeInvalidTheme, "code.tab_width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !apperrors.Is(err, tt.code) {
				t.Fatalf("Parse() error = %v, want code %s", err, tt.code)
			}
			if tt.field == "" {
				return
			}
			var ve *apperrors.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("error = %v, want field %s", err, tt.field)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing default file should give defaults (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file error = %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Server.Addr)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/xdg/slidegen" {
		t.Errorf("Dir() = %q", dir)
	}
}
