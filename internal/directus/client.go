package directus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
)

const (
	providerName      = "directus api"
	pathCollections   = "/collections"
	pathFields        = "/fields"
	defaultTimeout    = 30 * time.Second
	maxErrorBodyBytes = 64 << 10
)

type ClientOptions struct {
	URL           string
	Token         string
	IncludeSystem bool
	Timeout       time.Duration
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Client fetches collection metadata from a running Directus instance.
type Client struct {
	baseURL       string
	token         string
	includeSystem bool
	http          *http.Client
	logger        *slog.Logger
}

func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.URL, "/"),
		token:         opts.Token,
		includeSystem: opts.IncludeSystem,
		http:          httpClient,
		logger:        logger,
	}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type errorEnvelope struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) FetchCollections(ctx context.Context) ([]model.Collection, error) {
	var collections envelope[[]Collection]
	if err := c.get(ctx, pathCollections, &collections); err != nil {
		return nil, err
	}

	var fields envelope[[]Field]
	if err := c.get(ctx, pathFields, &fields); err != nil {
		return nil, err
	}

	return Assemble(collections.Data, fields.Data, c.includeSystem), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	op := http.MethodGet + " " + path

	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return &source.FetchError{Provider: providerName, Op: op, Err: fmt.Errorf(`invalid url "%s": %w`, c.baseURL, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &source.FetchError{Provider: providerName, Op: op, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return &source.FetchError{Provider: providerName, Op: op, Err: err}
	}
	defer res.Body.Close()

	c.logger.DebugContext(ctx, "directus request", "method", req.Method, "url", u, "status", res.StatusCode, "duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &source.FetchError{Provider: providerName, Op: op, StatusCode: res.StatusCode, Err: readAPIError(res)}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &source.FetchError{Provider: providerName, Op: op, StatusCode: res.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

func readAPIError(res *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var e errorEnvelope
	if err := json.Unmarshal(body, &e); err == nil && len(e.Errors) > 0 && e.Errors[0].Message != "" {
		return errors.New(e.Errors[0].Message)
	}

	if len(body) > 0 {
		return errors.New(strings.TrimSpace(string(body)))
	}

	return errors.New(http.StatusText(res.StatusCode))
}
