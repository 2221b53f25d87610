package genius

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var errNotFound = errors.New("page not found")

const (
	// BaseURL is the hosted widget root. Pages are server-rendered HTML.
	BaseURL = "https://hosted.dcd.shared.geniussports.com/BIF/en"

	maxAttempts = 3
	retryDelay  = 2 * time.Second
)

// Client fetches hosted widget pages for a match.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client with a custom base URL, for tests and mirrors.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
			// The widget host serves an incomplete certificate chain.
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// NewClient creates a client against the hosted widget.
func NewClient() *Client {
	return New(BaseURL)
}

// FetchBoxScore retrieves the box score page for a match.
func (c *Client) FetchBoxScore(ctx context.Context, competitionID int, matchID string) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/competition/%d/match/%s/boxscore", c.baseURL, competitionID, matchID)
	return c.fetch(ctx, url)
}

// FetchPlayByPlay retrieves the play-by-play page for a match.
func (c *Client) FetchPlayByPlay(ctx context.Context, competitionID int, matchID string) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/competition/%d/match/%s/playbyplay", c.baseURL, competitionID, matchID)
	return c.fetch(ctx, url)
}

// FetchSummary retrieves the summary page (team comparison, match date).
func (c *Client) FetchSummary(ctx context.Context, competitionID int, matchID string) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/competition/%d/match/%s/summary", c.baseURL, competitionID, matchID)
	return c.fetch(ctx, url)
}

// fetch GETs a page with retries. The hosted widget intermittently serves
// 5xx under load; a couple of spaced retries clears it.
func (c *Client) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			log.Printf("[genius-client] retry %d/%d for %s", attempt, maxAttempts, url)
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		doc, err := c.fetchOnce(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		// A 404 is a wrong competition, not a flake; retrying won't help.
		if errors.Is(err, errNotFound) {
			break
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", url, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}
