package station

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chillstreams/internal/httputil"
)

const testList = `
[[station]]
name = "Groove Salad"
url = "https://example.com/groovesalad"
category = "ambient"

[[station]]
name = "Groove Salad Classic"
url = "https://example.com/gsclassic"
category = "ambient"

[[station]]
name = "Lofi Girl"
url = "https://example.com/lofi"
category = "lofi"
video = true
`

func TestDefault(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, l.Stations)

	for _, e := range l.Stations {
		assert.NoError(t, e.Validate(), e.Name)
	}
}

func TestParseRejectsMissingURL(t *testing.T) {
	_, err := Parse([]byte(`
[[station]]
name = "Broken"
`))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	l, err := Parse([]byte(testList))
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		want    string
		wantErr error
	}{
		{"exact", "Groove Salad", "Groove Salad", nil},
		{"case insensitive", "groove salad", "Groove Salad", nil},
		{"unique prefix", "lofi", "Lofi Girl", nil},
		{"ambiguous prefix", "groove", "", ErrAmbiguous},
		{"missing", "drone zone", "", ErrStationNotFound},
		{"empty", "  ", "", ErrStationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Find(tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestFilterAndCategories(t *testing.T) {
	l, err := Parse([]byte(testList))
	require.NoError(t, err)

	assert.Len(t, l.Filter(""), 3)
	assert.Len(t, l.Filter("AMBIENT"), 2)
	assert.Empty(t, l.Filter("jazz"))
	assert.Equal(t, []string{"ambient", "lofi"}, l.Categories())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stations.toml")
	require.NoError(t, os.WriteFile(path, []byte(testList), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, l.Stations, 3)
	assert.True(t, l.Stations[2].Video)
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def.Stations, l.Stations)
}

func TestAnsiColorizedContainsName(t *testing.T) {
	e := Entry{Name: "Drone Zone", URL: "https://example.com/dz", Category: "ambient"}
	out := e.AnsiColorized()
	assert.Contains(t, out, "Drone Zone")
	assert.Contains(t, out, "ambient")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testList))
	}))
	defer srv.Close()

	l, err := Fetch(context.Background(), srv.Client(), srv.URL+"/stations.toml")
	require.NoError(t, err)
	assert.Len(t, l.Stations, 3)
}

func TestFetchOversizedList(t *testing.T) {
	// A cut-off trailing comment would still parse, so truncation must fail loudly.
	big := testList + "\n# " + strings.Repeat("x", 1<<20) + "\n"
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(big))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL+"/stations.toml")
	assert.ErrorIs(t, err, httputil.ErrBodyTooLarge)
}
