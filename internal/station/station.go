// Package station defines station entries and the station list they are
// loaded from. Lists are TOML data files, parsed as data only.
package station

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"chillstreams/internal/httputil"
)

//go:embed stations.toml
var defaultStations []byte

var (
	// ErrStationNotFound is returned when no station matches a lookup.
	ErrStationNotFound = errors.New("station not found")
	// ErrAmbiguous is returned when a prefix lookup matches more than one station.
	ErrAmbiguous = errors.New("station name is ambiguous")
)

var (
	audioStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a9096"))
	videoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D8A24D"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

var validate = validator.New()

// Entry is one streamable source: a URL plus how to present it.
type Entry struct {
	Name     string `toml:"name" validate:"required"`
	URL      string `toml:"url" validate:"required"`
	Category string `toml:"category"`
	Video    bool   `toml:"video"`
}

// Validate checks the fields every entry needs before it can be played.
func (e Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid station %q: %w", e.Name, err)
	}
	return nil
}

// AnsiColorized renders the entry name for terminal display.
func (e Entry) AnsiColorized() string {
	style := audioStyle
	if e.Video {
		style = videoStyle
	}
	s := style.Render(e.Name)
	if e.Category != "" {
		s += " " + categoryStyle.Render("("+e.Category+")")
	}
	return s
}

// List is an ordered collection of stations.
type List struct {
	Stations []Entry `toml:"station"`
}

// Default returns the built-in station list.
func Default() (*List, error) {
	return Parse(defaultStations)
}

// Parse decodes a TOML station list and validates every entry.
func Parse(data []byte) (*List, error) {
	var l List
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing station list: %w", err)
	}
	for _, e := range l.Stations {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

// Load reads a station list from path. An empty path or a missing file
// yields the built-in list.
func Load(path string) (*List, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default()
		}
		return nil, fmt.Errorf("reading station list: %w", err)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Fetch downloads and parses a station list published over HTTPS.
func Fetch(ctx context.Context, client *http.Client, url string) (*List, error) {
	data, err := httputil.Fetch(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("fetching station list: %w", err)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return l, nil
}

// Find looks up a station by name. An exact case-insensitive match wins;
// otherwise a unique case-insensitive prefix is accepted.
func (l *List) Find(name string) (Entry, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return Entry{}, ErrStationNotFound
	}

	var matches []Entry
	for _, e := range l.Stations {
		got := strings.ToLower(e.Name)
		if got == want {
			return e, nil
		}
		if strings.HasPrefix(got, want) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %q", ErrStationNotFound, name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return Entry{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, name, strings.Join(names, ", "))
	}
}

// Filter returns the stations in category. An empty category returns the
// whole list.
func (l *List) Filter(category string) []Entry {
	if category == "" {
		return l.Stations
	}
	var out []Entry
	for _, e := range l.Stations {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the distinct, sorted categories in the list.
func (l *List) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range l.Stations {
		c := strings.ToLower(e.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FormatForDisplay creates picker lines for entries.
func FormatForDisplay(entries []Entry) []string {
	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = e.AnsiColorized()
	}
	return items
}
