package player

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// EnvVar names an explicit VLC executable path.
	EnvVar = "VLC_PATH"
	// CommandName is the command searched for on PATH.
	CommandName = "vlc"

	searchTool = "which"
)

var (
	// ErrNotFound is returned when no resolver produced a verified path.
	ErrNotFound = errors.New("can't locate vlc")
	// ErrMalformedCandidate is returned for an empty candidate path.
	ErrMalformedCandidate = errors.New("malformed candidate path")
	// ErrUnresolved is returned when a candidate exists in no known casing.
	ErrUnresolved = errors.New("candidate not found in any casing")
)

// Resolver is one strategy for producing a candidate executable path.
// ok reports whether the strategy produced a candidate at all; the
// candidate itself is not yet verified.
type Resolver struct {
	Name      string
	Candidate func(ctx context.Context) (path string, ok bool)
}

// Locator holds the verified, case-correct path to the VLC executable.
type Locator struct {
	location string
}

// Location returns the resolved executable path.
func (l *Locator) Location() string { return l.location }

// NewLocator resolves VLC from $VLC_PATH, then from a PATH search.
func NewLocator(ctx context.Context, deps Deps) (*Locator, error) {
	d := deps.withDefaults()
	return locate(ctx, d, []Resolver{envResolver(d), pathResolver(d)})
}

func locate(ctx context.Context, d Deps, resolvers []Resolver) (*Locator, error) {
	log := d.Log
	for _, r := range resolvers {
		candidate, ok := r.Candidate(ctx)
		if !ok {
			log.Debug().Str("resolver", r.Name).Msg("no candidate")
			continue
		}

		loc, err := reconcileOnFs(d.Fs, candidate)
		if errors.Is(err, ErrMalformedCandidate) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, r.Name, err)
		}
		if err != nil {
			log.Debug().Err(err).Str("resolver", r.Name).Msg("candidate rejected")
			continue
		}

		log.Debug().Str("resolver", r.Name).Str("path", loc).Msg("located vlc")
		return &Locator{location: loc}, nil
	}
	return nil, ErrNotFound
}

// envResolver reads $VLC_PATH. A value that does not exist on disk is
// treated as unset.
func envResolver(d Deps) Resolver {
	return Resolver{
		Name: "env " + EnvVar,
		Candidate: func(context.Context) (string, bool) {
			loc := d.Getenv(EnvVar)
			if loc == "" {
				return "", false
			}
			if _, err := d.Fs.Stat(loc); err != nil {
				d.Log.Debug().Str("path", loc).Msg("ignoring " + EnvVar + ": no such file")
				return "", false
			}
			return loc, true
		},
	}
}

// pathResolver asks `which vlc`. Only a zero exit produces a candidate;
// a search tool that cannot start is the same as not found.
func pathResolver(d Deps) Resolver {
	return Resolver{
		Name: searchTool,
		Candidate: func(ctx context.Context) (string, bool) {
			res, err := d.Exec.Output(ctx, searchTool, CommandName)
			if err != nil {
				d.Log.Debug().Err(err).Msg("path search failed to start")
				return "", false
			}
			if res.ExitCode != 0 {
				return "", false
			}
			return strings.TrimRight(string(res.Output), " \t\r\n"), true
		},
	}
}

func reconcileOnFs(fs afero.Fs, candidate string) (string, error) {
	if candidate == "" {
		return "", ErrMalformedCandidate
	}
	// exec treats a bare name as a PATH lookup, so pin relative paths.
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolved, err)
	}
	candidate = abs

	listing, err := listDir(fs, filepath.Dir(candidate))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolved, err)
	}
	return Reconcile(candidate, listing)
}

func listDir(fs afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	paths := make([]string, len(infos))
	for i, fi := range infos {
		paths[i] = filepath.Join(dir, fi.Name())
	}
	return paths, nil
}

// Reconcile returns the entry of listing that matches candidate, trying
// the candidate as given, then its executable name lowercased, then
// uppercased. Tools that match on process name only know those casings,
// even on filesystems that would accept any.
func Reconcile(candidate string, listing []string) (string, error) {
	if candidate == "" {
		return "", ErrMalformedCandidate
	}

	present := make(map[string]bool, len(listing))
	for _, p := range listing {
		present[p] = true
	}

	dir, base := filepath.Dir(candidate), filepath.Base(candidate)
	for _, p := range []string{
		candidate,
		filepath.Join(dir, strings.ToLower(base)),
		filepath.Join(dir, strings.ToUpper(base)),
	} {
		if present[p] {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnresolved, candidate)
}
