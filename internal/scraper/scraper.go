package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/time/rate"
)

const (
	UserAgent       = "nfl-scrape/1.0 (github.com/pfrederiksen/nfl-scrape)"
	Timeout         = 30 * time.Second
	RequestInterval = 3 * time.Second
)

// StatusError is returned when a page responds with a non-200 status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Scraper fetches and parses statistics pages
type Scraper struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	uncomment bool
}

// Option configures a Scraper
type Option func(*Scraper)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithRequestInterval sets the minimum spacing between requests; zero or less disables it
func WithRequestInterval(d time.Duration) Option {
	return func(s *Scraper) {
		s.limiter = newLimiter(d)
	}
}

// WithUncomment controls whether commented-out tables are parsed into the tree
func WithUncomment(on bool) Option {
	return func(s *Scraper) {
		s.uncomment = on
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
		limiter:   newLimiter(RequestInterval),
		uncomment: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch retrieves url and parses the body into a goquery document
func (s *Scraper) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	return ParseHTML(resp.Body, s.uncomment)
}

// ParseHTML parses an HTML body. With uncomment set, comments that carry a
// <table> are parsed and spliced into the tree in place of the comment, so
// commented-out tables become queryable. Other comments stay comments.
func ParseHTML(r io.Reader, uncomment bool) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	if uncomment {
		if err := expandCommentedTables(doc); err != nil {
			return nil, fmt.Errorf("parsing commented table: %w", err)
		}
	}
	return doc, nil
}

// expandCommentedTables replaces every comment containing "<table" with the
// nodes parsed from its text
func expandCommentedTables(doc *goquery.Document) error {
	var comments []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode && strings.Contains(n.Data, "<table") {
			comments = append(comments, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	for _, comment := range comments {
		parent := comment.Parent
		fragmentCtx := parent
		if fragmentCtx == nil || fragmentCtx.Type != html.ElementNode {
			fragmentCtx = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		}

		nodes, err := html.ParseFragment(strings.NewReader(comment.Data), fragmentCtx)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			parent.InsertBefore(n, comment)
		}
		parent.RemoveChild(comment)
	}
	return nil
}
