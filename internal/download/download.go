package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultDir is where downloaded scenario files are saved, relative to the working directory.
const DefaultDir = "scenarios/downloaded"

const (
	userAgent = "gravity-sandbox"
	timeout   = 30 * time.Second
	maxBytes  = 4 << 20 // scenario files are small; refuse anything larger
)

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads the scenario file at url and saves it under destDir. The file name comes from
// Content-Disposition or the URL path and always ends in .yaml. Returns the path to the saved file.
// destDir is created if needed.
func Fetch(ctx context.Context, url, destDir string) (savedPath string, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}

	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(url)
	}
	name = sanitizeFilename(strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")) + ".yaml"

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath = filepath.Join(destDir, name)
	out, err := os.Create(savedPath)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	n, err := io.Copy(out, io.LimitReader(resp.Body, maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxBytes {
		err = fmt.Errorf("larger than %d bytes", maxBytes)
	}
	if err != nil {
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	return savedPath, nil
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	path = strings.TrimRight(path, "/")
	if i := strings.Index(path, "://"); i >= 0 && !strings.Contains(path[i+3:], "/") {
		return ""
	}
	return filepath.Base(path)
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, ".")
	if name == "" {
		return "scenario"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
