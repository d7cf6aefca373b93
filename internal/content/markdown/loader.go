// Package markdown loads posts from directories of markdown files with YAML front matter.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/usecase/normalize"
)

// SourceName identifies the loader in logs and metrics.
const SourceName = "markdown"

// LinkPrefix is prepended to the file slug when front matter has no link.
const LinkPrefix = "/posts/"

var extensions = map[string]struct{}{".md": {}, ".markdown": {}}

var fence = []byte("---")

// ErrFrontMatter reports an unterminated or invalid front matter block.
var ErrFrontMatter = errors.New("invalid front matter")

// Loader reads every markdown file under its directories.
type Loader struct {
	dirs   []string
	md     goldmark.Markdown
	logger *zap.Logger
}

// New creates a markdown loader.
func New(dirs []string, logger *zap.Logger) *Loader {
	return &Loader{
		dirs:   dirs,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger: logger,
	}
}

// Name implements catalog.Source.
func (l *Loader) Name() string { return SourceName }

// Dirs returns the watched directories.
func (l *Loader) Dirs() []string { return append([]string(nil), l.dirs...) }

// IsMarkdown reports whether path has a markdown extension.
func IsMarkdown(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load walks the directories in order. Files are visited in lexical order;
// a file that fails to parse is logged and skipped.
func (l *Loader) Load(ctx context.Context) ([]post.RawEntry, error) {
	var entries []post.RawEntry
	for _, dir := range l.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || !IsMarkdown(path) {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				l.logger.Warn("Failed to read markdown file", zap.String("path", path), zap.Error(err))
				return nil
			}
			entry, err := l.Parse(filepath.Base(path), data)
			if err != nil {
				l.logger.Warn("Skipping markdown file", zap.String("path", path), zap.Error(err))
				return nil
			}
			entries = append(entries, entry)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return entries, nil
}

// Parse converts one markdown document into a raw entry. Front matter goes
// under post.FrontMatterKey; derived title, description, link and body text
// sit at the metadata level as fallbacks.
func (l *Loader) Parse(filename string, data []byte) (post.RawEntry, error) {
	fm, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	doc := l.extract(body)
	entry := post.RawEntry{
		"link":   LinkPrefix + normalize.Slug(strings.TrimSuffix(filename, filepath.Ext(filename))),
		"source": doc.text,
	}
	if doc.title != "" {
		entry["title"] = doc.title
	}
	if doc.summary != "" {
		entry["description"] = doc.summary
	}
	if fm != nil {
		entry[post.FrontMatterKey] = fm
	}
	return entry, nil
}

func splitFrontMatter(data []byte) (map[string]any, []byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	first, rest, ok := cutLine(data)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return nil, data, nil
	}

	var header []byte
	for {
		line, next, more := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			fm := map[string]any{}
			if err := yaml.Unmarshal(header, &fm); err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrFrontMatter, err)
			}
			return fm, next, nil
		}
		if !more {
			return nil, nil, fmt.Errorf("%w: missing closing ---", ErrFrontMatter)
		}
		header = append(header, line...)
		header = append(header, '\n')
		rest = next
	}
}

// cutLine splits off the first line without its terminator. more is false
// when data had no newline.
func cutLine(data []byte) (line, rest []byte, more bool) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return bytes.TrimSuffix(data, []byte("\r")), nil, false
	}
	return bytes.TrimSuffix(data[:i], []byte("\r")), data[i+1:], true
}
