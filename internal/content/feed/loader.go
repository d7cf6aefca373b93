// Package feed loads posts from RSS, Atom and JSON feeds over HTTP.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/repository/cache"
)

// SourceName identifies the loader in logs and metrics.
const SourceName = "feed"

// blockElements get a separating space so adjacent blocks do not run together.
const blockElements = "p, div, br, li, h1, h2, h3, h4, h5, h6, tr, td, blockquote, pre"

const (
	defaultTimeout = 25 * time.Second
	maxBodyBytes   = 10 << 20
	userAgent      = "blogdex-feed-loader/1.0"
)

// responseCache is the consumer interface for the response cache (ISP).
type responseCache interface {
	Get(ctx context.Context, key string) (cache.Entry, bool)
	Stale(ctx context.Context, key string) (cache.Entry, bool)
	Set(ctx context.Context, key string, data []byte)
}

// Loader fetches feed URLs, caching raw payloads.
type Loader struct {
	urls    []string
	client  *http.Client
	cache   responseCache
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a feed loader. client and cache may be nil.
func New(urls []string, client *http.Client, c responseCache, logger *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{urls: urls, client: client, cache: c, timeout: defaultTimeout, logger: logger}
}

// WithTimeout sets the per-feed request timeout.
func (l *Loader) WithTimeout(d time.Duration) *Loader {
	if d > 0 {
		l.timeout = d
	}
	return l
}

// Name implements catalog.Source.
func (l *Loader) Name() string { return SourceName }

// Load fetches every feed. A feed that cannot be fetched falls back to its
// stale cached payload, or is skipped. Load fails only if every feed failed.
func (l *Loader) Load(ctx context.Context) ([]post.RawEntry, error) {
	var entries []post.RawEntry
	var errs []error
	for _, u := range l.urls {
		items, err := l.loadOne(ctx, u)
		if err != nil {
			l.logger.Warn("Skipping feed", zap.String("url", u), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		entries = append(entries, items...)
	}
	if len(l.urls) > 0 && len(errs) == len(l.urls) {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}

func (l *Loader) loadOne(ctx context.Context, feedURL string) ([]post.RawEntry, error) {
	data, err := l.payload(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	out := make([]post.RawEntry, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		out = append(out, Entry(it))
	}
	return out, nil
}

func (l *Loader) payload(ctx context.Context, feedURL string) ([]byte, error) {
	if l.cache != nil {
		if e, ok := l.cache.Get(ctx, feedURL); ok {
			return e.Data, nil
		}
	}

	data, err := l.fetch(ctx, feedURL)
	if err == nil {
		if l.cache != nil {
			l.cache.Set(ctx, feedURL, data)
		}
		return data, nil
	}

	if l.cache != nil {
		if e, ok := l.cache.Stale(ctx, feedURL); ok {
			l.logger.Warn("Feed unavailable, serving stale copy",
				zap.String("url", feedURL),
				zap.Time("cached_at", e.Timestamp),
				zap.Error(err),
			)
			return e.Data, nil
		}
	}
	return nil, err
}

func (l *Loader) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", feedURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET feed %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET feed %s: status %d", feedURL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feedURL, err)
	}
	return data, nil
}

// Entry maps a feed item to a raw entry. HTML in description and content is reduced to text.
func Entry(it *gofeed.Item) post.RawEntry {
	e := post.RawEntry{
		"title":       strings.TrimSpace(it.Title),
		"link":        strings.TrimSpace(it.Link),
		"description": htmlText(it.Description),
		"source":      htmlText(it.Content),
	}
	if t := pickTime(it.PublishedParsed, it.UpdatedParsed); !t.IsZero() {
		e["date"] = t
	}
	if len(it.Categories) > 0 {
		tags := make([]any, len(it.Categories))
		for i, c := range it.Categories {
			tags[i] = c
		}
		e["tags"] = tags
	}
	if it.Image != nil && it.Image.URL != "" {
		e["image"] = it.Image.URL
	}
	return e
}

func pickTime(a, b *time.Time) time.Time {
	if a != nil {
		return *a
	}
	if b != nil {
		return *b
	}
	return time.Time{}
}

func htmlText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style").Remove()
	doc.Find(blockElements).AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}
