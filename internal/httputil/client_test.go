package httputil

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/stations.toml", false},
		{"http://example.com/stations.toml", true},
		{"ftp://example.com/x", true},
		{"https://", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/s.toml"))
	assert.True(t, IsRemote("http://example.com/s.toml"))
	assert.False(t, IsRemote("/home/me/stations.toml"))
	assert.False(t, IsRemote("stations.toml"))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), srv.Client(), srv.URL+"/stations.toml")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := maxBody
		if r.URL.Path == "/big" {
			n++
		}
		_, _ = w.Write(bytes.Repeat([]byte("a"), n))
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), srv.Client(), srv.URL+"/exact")
	require.NoError(t, err)
	assert.Len(t, body, maxBody)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/big")
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}
