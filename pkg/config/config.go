// Package config loads slidegen settings from TOML.
//
// Every value has a default, so a missing file or a partial file is fine.
// Unknown keys are rejected to catch typos.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/slidegen/pkg/buildinfo"
	"github.com/matzehuels/slidegen/pkg/deck"
	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/highlight"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Duration is a time.Duration that decodes from strings like "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Box is a frame in inches plus its text style.
type Box struct {
	Left   float64 `toml:"left"`
	Top    float64 `toml:"top"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

func (b Box) rect() deck.Rect { return deck.InchRect(b.Left, b.Top, b.Width, b.Height) }

type Slide struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Title struct {
	Box
	Font     string     `toml:"font"`
	Size     float64    `toml:"size"`
	Bold     bool       `toml:"bold"`
	Color    deck.Color `toml:"color"`
	HeroSize float64    `toml:"hero_size"`
	SubSize  float64    `toml:"subtitle_size"`
}

type Text struct {
	Font  string     `toml:"font"`
	Size  float64    `toml:"size"`
	Color deck.Color `toml:"color"`
}

type Code struct {
	Font     string     `toml:"font"`
	Size     float64    `toml:"size"`
	Fill     deck.Color `toml:"fill"`
	Color    deck.Color `toml:"color"`
	Style    string     `toml:"style"`
	Language string     `toml:"language"`
	TabWidth int        `toml:"tab_width"`
}

type Table struct {
	Size       float64 `toml:"size"`
	HeaderBold bool    `toml:"header_bold"`
	StyleID    string  `toml:"style_id"`
}

// Cache selects and tunes the artifact cache. Redis wins over Mongo, and
// either wins over the file cache.
type Cache struct {
	Disabled bool     `toml:"disabled"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
	MongoURI string   `toml:"mongo_uri"`
	MongoDB  string   `toml:"mongo_database"`
}

type Server struct {
	Addr    string   `toml:"addr"`
	MaxBody int64    `toml:"max_body"`
	Timeout Duration `toml:"timeout"`
}

// Config is the full settings file.
type Config struct {
	Slide   Slide  `toml:"slide"`
	Title   Title  `toml:"title"`
	Explain Box    `toml:"explain"`
	Content Box    `toml:"content"`
	Text    Text   `toml:"text"`
	Code    Code   `toml:"code"`
	Table   Table  `toml:"table"`
	Cache   Cache  `toml:"cache"`
	Server  Server `toml:"server"`
}

// Default returns the built-in settings.
func Default() Config {
	th := deck.DefaultTheme()
	box := func(r deck.Rect) Box {
		return Box{Left: r.X.Inches(), Top: r.Y.Inches(), Width: r.W.Inches(), Height: r.H.Inches()}
	}
	return Config{
		Slide: Slide{Width: th.Width.Inches(), Height: th.Height.Inches()},
		Title: Title{
			Box:      box(th.Title),
			Font:     th.TitleText.Font,
			Size:     th.TitleText.Size,
			Bold:     th.TitleText.Bold,
			Color:    th.TitleText.Color,
			HeroSize: th.HeroSize,
			SubSize:  th.SubtitleSize,
		},
		Explain: box(th.Explain),
		Content: box(th.Content),
		Text:    Text{Font: th.Text.Font, Size: th.Text.Size, Color: th.Text.Color},
		Code: Code{
			Font:     th.Code.Font,
			Size:     th.Code.Size,
			Fill:     th.Code.Fill,
			Color:    th.Code.Color,
			Style:    th.Code.Style,
			Language: th.Code.Language,
			TabWidth: th.Code.TabWidth,
		},
		Table:  Table{Size: th.Table.Size, HeaderBold: th.Table.HeaderBold, StyleID: th.Table.StyleID},
		Cache:  Cache{TTL: Duration{7 * 24 * time.Hour}, MongoDB: buildinfo.AppName},
		Server: Server{Addr: ":8080", MaxBody: 4 << 20, Timeout: Duration{30 * time.Second}},
	}
}

// Dir returns the config directory ($XDG_CONFIG_HOME/slidegen).
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, buildinfo.AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", buildinfo.AppName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads path over the defaults. An empty path means the default
// location, where a missing file is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, apperrors.New(apperrors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read config")
	}
	return Parse(string(data))
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would produce a broken deck.
func (c Config) Validate() error {
	positive := []struct {
		field string
		v     float64
	}{
		{"slide.width", c.Slide.Width},
		{"slide.height", c.Slide.Height},
		{"title.size", c.Title.Size},
		{"text.size", c.Text.Size},
		{"code.size", c.Code.Size},
		{"table.size", c.Table.Size},
		{"explain.width", c.Explain.Width},
		{"content.width", c.Content.Width},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return apperrors.Wrap(apperrors.ErrCodeInvalidTheme,
				&apperrors.ValidationError{Index: -1, Field: p.field, Msg: "must be positive"}, "invalid config")
		}
	}
	if c.Code.Style != "" && !highlight.HasStyle(c.Code.Style) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidTheme,
			&apperrors.ValidationError{Index: -1, Field: "code.style", Msg: "unknown style " + c.Code.Style}, "invalid config")
	}
	if c.Code.TabWidth < 0 {
		return apperrors.Wrap(apperrors.ErrCodeInvalidTheme,
			&apperrors.ValidationError{Index: -1, Field: "code.tab_width", Msg: "must not be negative"}, "invalid config")
	}
	return nil
}

// Theme converts the settings into a deck theme.
func (c Config) Theme() deck.Theme {
	return deck.Theme{
		Width:   deck.Inches(c.Slide.Width),
		Height:  deck.Inches(c.Slide.Height),
		Title:   c.Title.rect(),
		Explain: c.Explain.rect(),
		Content: c.Content.rect(),

		TitleText:    deck.TextStyle{Font: c.Title.Font, Size: c.Title.Size, Color: c.Title.Color, Bold: c.Title.Bold},
		SubtitleSize: c.Title.SubSize,
		HeroSize:     c.Title.HeroSize,
		Text:         deck.TextStyle{Font: c.Text.Font, Size: c.Text.Size, Color: c.Text.Color},
		Code: deck.CodeStyle{
			Font:     c.Code.Font,
			Size:     c.Code.Size,
			Fill:     c.Code.Fill,
			Color:    c.Code.Color,
			Style:    c.Code.Style,
			Language: c.Code.Language,
			TabWidth: c.Code.TabWidth,
		},
		Table: deck.TableStyle{Size: c.Table.Size, HeaderBold: c.Table.HeaderBold, StyleID: c.Table.StyleID},
	}
}
