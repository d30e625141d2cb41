package plan

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format names a serialized storyboard encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// FormatFromName infers the encoding from a file name or URL path. JSON is the default.
func FormatFromName(name string) (format Format) {
	if u, err := url.Parse(name); err == nil && u.Path != "" {
		name = u.Path
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".md", ".markdown":
		format = FormatMarkdown
	default:
		format = FormatJSON
	}
	return format
}

// Load reads a storyboard from a file on disk.
func Load(path string) (doc Document, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read plan file: %s", path)
		return doc, err
	}

	doc, err = Decode(data, FormatFromName(path), filepath.Base(path))
	if err != nil {
		err = errors.Wrapf(err, "failed to load plan: %s", path)
		return doc, err
	}

	return doc, err
}

// Fetch reads a storyboard from a file path or an http(s) URL.
func Fetch(ctx context.Context, input string) (doc Document, err error) {
	parsedURL, urlErr := url.Parse(input)
	if urlErr != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		doc, err = Load(input)
		return doc, err
	}

	var data []byte
	data, err = fetchFromURL(ctx, input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch plan from URL: %s", input)
		return doc, err
	}

	doc, err = Decode(data, FormatFromName(input), filepath.Base(parsedURL.Path))
	if err != nil {
		err = errors.Wrapf(err, "failed to load plan: %s", input)
		return doc, err
	}

	return doc, err
}

// Decode parses a storyboard in the given format and validates it.
func Decode(data []byte, format Format, name string) (doc Document, err error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		err = errors.New("plan is empty")
		return doc, err
	}

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
		if err != nil {
			err = errors.Wrap(err, "failed to parse plan YAML")
			return doc, err
		}
	case FormatMarkdown:
		doc = ParseMarkdown(data, name)
	default:
		err = json.Unmarshal(data, &doc)
		if err != nil {
			err = errors.Wrap(err, "failed to parse plan JSON")
			return doc, err
		}
	}

	err = doc.Validate()
	if err != nil {
		err = errors.Wrap(err, "plan validation failed")
		return doc, err
	}

	return doc, err
}

func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "storyboard-scorer/1.0")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	return data, err
}
