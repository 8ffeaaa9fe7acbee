// Package history records played stations in a TSV file.
// Writes are atomic (temp+rename) so an interrupted save never corrupts it.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"chillstreams/internal/config"
	"chillstreams/internal/station"
)

// TSV columns: name, url, category, video, exit_code, played_at
const numColumns = 6

// Entry is one played station.
type Entry struct {
	Name     string
	URL      string
	Category string
	Video    bool
	ExitCode int
	PlayedAt time.Time
}

// FromStation builds a history entry for a play of s.
func FromStation(s station.Entry, exitCode int, at time.Time) Entry {
	return Entry{
		Name:     s.Name,
		URL:      s.URL,
		Category: s.Category,
		Video:    s.Video,
		ExitCode: exitCode,
		PlayedAt: at,
	}
}

// Station converts the entry back into something playable.
func (e Entry) Station() station.Entry {
	return station.Entry{Name: e.Name, URL: e.URL, Category: e.Category, Video: e.Video}
}

// Load reads the history file and returns all entries.
func Load() ([]Entry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Record writes or updates the entry for e.URL. The latest play wins.
func Record(e Entry) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	found := false
	for i, existing := range entries {
		if existing.URL == e.URL {
			entries[i] = e
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, e)
	}

	return writeAll(entries)
}

// Remove deletes the entry for url from the history.
func Remove(url string) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	var filtered []Entry
	for _, e := range entries {
		if e.URL != url {
			filtered = append(filtered, e)
		}
	}

	return writeAll(filtered)
}

// Recent returns up to n entries, most recently played first. n <= 0
// returns them all.
func Recent(n int) ([]Entry, error) {
	entries, err := Load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PlayedAt.After(entries[j].PlayedAt)
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// FormatForDisplay creates display strings for fzf selection from history entries.
func FormatForDisplay(entries []Entry) []string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		display := e.Station().AnsiColorized()
		display += " " + e.PlayedAt.Local().Format("2006-01-02 15:04")
		if e.ExitCode != 0 {
			display += fmt.Sprintf(" [exit %d]", e.ExitCode)
		}
		items = append(items, display)
	}
	return items
}

// writeAll replaces the history file with entries via temp file + rename.
func writeAll(entries []Entry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := writer.WriteString(formatLine(e) + "\n"); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing history: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing history: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming history file: %w", err)
	}

	return nil
}

// parseLine parses a TSV line into an Entry.
func parseLine(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return Entry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}
	if fields[1] == "" {
		return Entry{}, fmt.Errorf("empty url")
	}

	video, _ := strconv.ParseBool(fields[3])
	exitCode, _ := strconv.Atoi(fields[4])
	playedAt, _ := strconv.ParseInt(fields[5], 10, 64)

	return Entry{
		Name:     fields[0],
		URL:      fields[1],
		Category: fields[2],
		Video:    video,
		ExitCode: exitCode,
		PlayedAt: time.Unix(playedAt, 0),
	}, nil
}

// formatLine converts an Entry to a TSV line. Tabs and newlines in
// free-text fields are flattened to spaces.
func formatLine(e Entry) string {
	clean := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return strings.Join([]string{
		clean.Replace(e.Name),
		clean.Replace(e.URL),
		clean.Replace(e.Category),
		strconv.FormatBool(e.Video),
		strconv.Itoa(e.ExitCode),
		strconv.FormatInt(e.PlayedAt.Unix(), 10),
	}, "\t")
}
