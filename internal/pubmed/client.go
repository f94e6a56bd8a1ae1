// Package pubmed fetches bibliographic records from the NCBI E-utilities
// API.
package pubmed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/TranSophie/ericbryantphd.com/internal/bibtex"
)

const (
	// BaseURL is the NCBI E-utilities EFetch endpoint.
	BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

	// Tool identifies this client to NCBI, per their usage policy.
	Tool = "refs"

	// NCBI allows 3 requests per second without an API key, 10 with one.
	anonymousRateLimit = 3.0
	keyedRateLimit     = 10.0
)

// Client is a rate-limited HTTP client for PubMed EFetch lookups.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	email      string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the NCBI API key, which raises the allowed request rate.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithEmail sets the contact email sent with each request.
func WithEmail(email string) ClientOption {
	return func(c *Client) {
		c.email = email
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom endpoint URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a PubMed EFetch client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	limit := anonymousRateLimit
	if c.apiKey != "" {
		limit = keyedRateLimit
	}
	c.limiter = rate.NewLimiter(rate.Limit(limit), 1)

	return c
}

// Fetch retrieves the records for the given PMIDs in a single EFetch call
// and returns them keyed by PMID. PMIDs the service cannot resolve (invalid
// or withdrawn) are absent from the result, not an error.
func (c *Client) Fetch(ctx context.Context, pmids []string) (map[string]bibtex.Record, error) {
	if len(pmids) == 0 {
		return map[string]bibtex.Record{}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("retmode", "xml")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("tool", Tool)
	if c.email != "" {
		params.Set("email", c.email)
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building EFetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling EFetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EFetch returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading EFetch response: %w", err)
	}

	return parseArticleSet(body)
}
