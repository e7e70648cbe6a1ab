package db

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

const (
	BackendRemote = "remote"

	restPathPrefix = "/rest/v1/"
	preferReturn   = "return=representation"
	preferCount    = "count=exact"
)

// RemoteConfig holds the remote table store credentials.
type RemoteConfig struct {
	URL     string
	APIKey  string
	Bearer  string
	Timeout time.Duration
}

// RemoteProvider hands out RemoteClient handles bound to one store.
type RemoteProvider struct {
	cfg        RemoteConfig
	httpClient *http.Client
}

// NewRemoteProvider builds a provider. A nil httpClient gets a default
// client using cfg.Timeout. Bearer falls back to the API key.
func NewRemoteProvider(cfg RemoteConfig, httpClient *http.Client) *RemoteProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if cfg.Bearer == "" {
		cfg.Bearer = cfg.APIKey
	}
	return &RemoteProvider{cfg: cfg, httpClient: httpClient}
}

func (p *RemoteProvider) missing() []string {
	var out []string
	if p.cfg.URL == "" {
		out = append(out, "SUPABASE_URL")
	}
	if p.cfg.APIKey == "" {
		out = append(out, "SUPABASE_APIKEY")
	}
	return out
}

func (p *RemoteProvider) Configured() bool { return p != nil && len(p.missing()) == 0 }

func (p *RemoteProvider) Acquire(ctx context.Context) (*RemoteClient, error) {
	if missing := p.missing(); len(missing) > 0 {
		return nil, &ConfigurationError{Backend: BackendRemote, Missing: missing}
	}
	base, err := url.Parse(p.cfg.URL + restPathPrefix)
	if err != nil {
		return nil, &ConfigurationError{Backend: BackendRemote, Missing: []string{"valid SUPABASE_URL"}}
	}
	return &RemoteClient{
		baseURL: base,
		apiKey:  p.cfg.APIKey,
		bearer:  p.cfg.Bearer,
		http:    p.httpClient,
	}, nil
}

// Ping checks that the store answers on its REST root.
func (p *RemoteProvider) Ping(ctx context.Context) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	_, _, err = c.do(ctx, http.MethodGet, "", nil, nil, "", nil)
	return err
}

// RemoteClient is the remote-table handle.
type RemoteClient struct {
	baseURL *url.URL
	apiKey  string
	bearer  string
	http    *http.Client
}

// Release is a no-op; the underlying transport is shared by the provider.
func (c *RemoteClient) Release() {}

// Select decodes the matching rows into out, which must point to a slice.
func (c *RemoteClient) Select(ctx context.Context, table string, q Query, out any) error {
	_, _, err := c.do(ctx, http.MethodGet, table, q.Values(), nil, "", out)
	return err
}

// Count returns the exact number of rows matching q, ignoring its paging.
func (c *RemoteClient) Count(ctx context.Context, table string, q Query) (int, error) {
	q.Limit, q.Offset, q.Order = 1, 0, nil
	hdr, _, err := c.do(ctx, http.MethodGet, table, q.Values(), nil, preferCount, nil)
	if err != nil {
		return 0, err
	}
	return parseContentRangeTotal(hdr.Get("Content-Range"))
}

// Insert posts one record and decodes the stored representation into out.
func (c *RemoteClient) Insert(ctx context.Context, table string, record any, out any) error {
	_, _, err := c.do(ctx, http.MethodPost, table, nil, record, preferReturn, out)
	return err
}

// Update applies patch to every row matching filters and decodes the
// updated representations into out.
func (c *RemoteClient) Update(ctx context.Context, table string, filters Filters, patch map[string]any, out any) error {
	v := url.Values{}
	filters.apply(v)
	_, _, err := c.do(ctx, http.MethodPatch, table, v, patch, preferReturn, out)
	return err
}

// Delete removes every row matching filters. The boolean reports whether the
// store answered with a representation (decoded into out) or an empty body.
func (c *RemoteClient) Delete(ctx context.Context, table string, filters Filters, out any) (bool, error) {
	v := url.Values{}
	filters.apply(v)
	_, hadBody, err := c.do(ctx, http.MethodDelete, table, v, nil, preferReturn, out)
	return hadBody, err
}

func (c *RemoteClient) do(
	ctx context.Context,
	method, table string,
	params url.Values,
	body any,
	prefer string,
	out any,
) (http.Header, bool, error) {
	u := *c.baseURL
	u.Path += table
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, false, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, &ConnectivityError{Backend: BackendRemote, Err: err}
	}
	defer resp.Body.Close()

	utils.Logger.WithFields(logrus.Fields{
		"method":   method,
		"table":    table,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("remote store request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &ConnectivityError{Backend: BackendRemote, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, classifyRemoteError(resp.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return resp.Header, false, nil
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, true, fmt.Errorf("failed to decode %s response: %w", table, err)
		}
	}
	return resp.Header, true, nil
}

// postgrestError is the JSON error body PostgREST returns.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func classifyRemoteError(status int, raw []byte) error {
	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		msg := strings.TrimSpace(string(raw))
		var pe postgrestError
		if err := json.Unmarshal(raw, &pe); err == nil && pe.Message != "" {
			msg = pe.Message
			if pe.Details != "" {
				msg += ": " + pe.Details
			}
		}
		return &ValidationError{Status: status, Message: msg}
	}
	return &RemoteStoreError{Status: status, Body: string(raw)}
}

// parseContentRangeTotal reads the total from "0-24/573" or "*/0".
func parseContentRangeTotal(h string) (int, error) {
	idx := strings.LastIndex(h, "/")
	if idx < 0 || idx == len(h)-1 {
		return 0, fmt.Errorf("missing total in Content-Range %q", h)
	}
	total, err := strconv.Atoi(h[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid total in Content-Range %q: %w", h, err)
	}
	return total, nil
}
