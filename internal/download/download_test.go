package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const body = "bodies:\n  - {pos: [0, 0], mass: 1, radius: 1}\n"

func TestFetchSavesYAML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/scenes/binary.yml":
			_, _ = w.Write([]byte(body))
		case "/attachment":
			w.Header().Set("Content-Disposition", `attachment; filename="three body.yaml"`)
			_, _ = w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	cases := []struct {
		path, want string
	}{
		{"/scenes/binary.yml", "binary.yaml"},
		{"/attachment", "three_body.yaml"},
	}
	for _, tc := range cases {
		got, err := Fetch(context.Background(), srv.URL+tc.path, dir)
		if err != nil {
			t.Fatalf("Fetch(%s): %v", tc.path, err)
		}
		if filepath.Base(got) != tc.want {
			t.Errorf("Fetch(%s) saved %s, want %s", tc.path, filepath.Base(got), tc.want)
		}
		data, err := os.ReadFile(got)
		if err != nil || string(data) != body {
			t.Errorf("saved content %q, %v", data, err)
		}
	}

	if _, err := Fetch(context.Background(), srv.URL+"/missing", dir); err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("missing file err = %v", err)
	}
}

func TestFetchRejectsLargeFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, maxBytes+10))
	}))
	defer srv.Close()
	dir := t.TempDir()
	if _, err := Fetch(context.Background(), srv.URL+"/big.yaml", dir); err == nil {
		t.Fatal("oversized file accepted")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("partial file left behind: %v", entries)
	}
}

func TestFilenames(t *testing.T) {
	cases := []struct {
		url, want string
	}{
		{"https://example.com/a/b/orbit.yaml?x=1", "orbit.yaml"},
		{"https://example.com/", ""},
		{"https://example.com", ""},
	}
	for _, tc := range cases {
		if got := filenameFromURL(tc.url); got != tc.want {
			t.Errorf("filenameFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
	if got := sanitizeFilename("../../etc/passwd"); strings.Contains(got, "/") {
		t.Errorf("sanitizeFilename kept a separator: %q", got)
	}
	if got := sanitizeFilename(""); got != "scenario" {
		t.Errorf("empty name = %q", got)
	}
	if !IsURL("https://x") || IsURL("scenarios/x.yaml") {
		t.Error("IsURL misclassifies")
	}
}
