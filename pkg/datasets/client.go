package datasets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yosida95/uritemplate/v3"

	"github.com/facultyai/mlflow-faculty-go/pkg/session"
)

// Endpoint URI templates for the object service.
var (
	objectTemplate = uritemplate.MustNew("{+base}/project/{project_id}/object{+path}")
	listTemplate   = uritemplate.MustNew("{+base}/project/{project_id}/object-list{+prefix}{?page_token}")
)

// Config holds object service client configuration.
type Config struct {
	// Domain is the Faculty services domain, e.g.
	// "services.cloud.my.faculty.ai".
	Domain string

	// Protocol is "https" or "http".
	Protocol string

	// Endpoint overrides the object service base URL derived from
	// Protocol and Domain. Useful for test servers and local stacks.
	Endpoint string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// HTTPClient overrides the underlying client.
	HTTPClient *http.Client
}

// Client talks to the Faculty object service over HTTP. It implements
// both ObjectClient and TransferClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     session.TokenSource
}

// New creates an object service client.
func New(cfg Config, tokens session.TokenSource) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	cfg = applyDefaults(cfg)
	if cfg.Domain == "" && cfg.Endpoint == "" {
		return nil, fmt.Errorf("domain or endpoint is required")
	}

	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s://object.%s", cfg.Protocol, cfg.Domain)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}, nil
}

// applyDefaults applies default values to the configuration.
func applyDefaults(cfg Config) Config {
	if cfg.Protocol == "" {
		cfg.Protocol = "https"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return cfg
}

// HTTPError is a non-2xx response from the object service. It is
// returned as-is so callers can apply their own retry policy.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("object service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("object service returned status %d: %s", e.StatusCode, e.Body)
}

// ListObjects returns one page of objects under prefix.
func (c *Client) ListObjects(ctx context.Context, projectID uuid.UUID, prefix string, pageToken *string) (*ListObjectsResponse, error) {
	vars := uritemplate.Values{
		"base":       uritemplate.String(c.baseURL),
		"project_id": uritemplate.String(projectID.String()),
		"prefix":     uritemplate.String(ensureLeadingSlash(prefix)),
	}
	if pageToken != nil {
		vars["page_token"] = uritemplate.String(*pageToken)
	}

	endpoint, err := listTemplate.Expand(vars)
	if err != nil {
		return nil, fmt.Errorf("expanding list endpoint: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var page ListObjectsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}
	return &page, nil
}

// Put uploads a local file, or every regular file in a local directory
// tree, to datasetsPath in the project's datasets.
func (c *Client) Put(ctx context.Context, localPath, datasetsPath string, projectID uuid.UUID) error {
	info, err := os.Stat(localPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", localPath, err)
	}

	if !info.IsDir() {
		return c.putFile(ctx, localPath, datasetsPath, projectID)
	}

	return filepath.WalkDir(localPath, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localPath, p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		return c.putFile(ctx, p, path.Join(datasetsPath, filepath.ToSlash(rel)), projectID)
	})
}

func (c *Client) putFile(ctx context.Context, localPath, datasetsPath string, projectID uuid.UUID) error {
	endpoint, err := c.objectEndpoint(projectID, datasetsPath)
	if err != nil {
		return err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer func() { _ = file.Close() }()

	req, err := c.newRequest(ctx, http.MethodPut, endpoint, file)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", localPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return checkStatus(resp)
}

// Get downloads the object at datasetsPath to localPath, creating parent
// directories as needed.
func (c *Client) Get(ctx context.Context, datasetsPath, localPath string, projectID uuid.UUID) error {
	endpoint, err := c.objectEndpoint(projectID, datasetsPath)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", datasetsPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(localPath), err)
	}
	out, err := os.Create(localPath) // #nosec G304 -- destination chosen by the caller
	if err != nil {
		return fmt.Errorf("creating %s: %w", localPath, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}

func (c *Client) objectEndpoint(projectID uuid.UUID, datasetsPath string) (string, error) {
	endpoint, err := objectTemplate.Expand(uritemplate.Values{
		"base":       uritemplate.String(c.baseURL),
		"project_id": uritemplate.String(projectID.String()),
		"path":       uritemplate.String(ensureLeadingSlash(datasetsPath)),
	})
	if err != nil {
		return "", fmt.Errorf("expanding object endpoint: %w", err)
	}
	return endpoint, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// Verify interface compliance.
var (
	_ ObjectClient   = (*Client)(nil)
	_ TransferClient = (*Client)(nil)
)
