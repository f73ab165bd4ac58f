package openfda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/casualjim/rxagent/tool"
	"github.com/fogfish/opts"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL        = "https://api.fda.gov"
	labelPath             = "/drug/label.json"
	defaultMaxFieldLength = 2000
	defaultLimit          = 1
	maxLimit              = 10
	truncationMarker      = " ...[truncated]"
)

// ErrNoLabel is returned when no label matches the drug name.
var ErrNoLabel = errors.New("no FDA label found")

var defaultSearchFields = []string{"openfda.generic_name", "openfda.brand_name"}

// Client executes label-backed catalog tools.
type Client struct {
	catalog        *tool.Catalog
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	maxFieldLength int
}

var _ tool.Executor = (*Client)(nil)

var (
	// WithBaseURL points the client at another openFDA deployment.
	WithBaseURL = opts.ForName[Client, string]("baseURL")
	// WithAPIKey sets the openFDA api key, which raises the rate limit.
	WithAPIKey = opts.ForName[Client, string]("apiKey")
	// WithHTTPClient replaces the HTTP client.
	WithHTTPClient = opts.ForName[Client, *http.Client]("httpClient")
	// WithMaxFieldLength bounds the length of every returned label section.
	WithMaxFieldLength = opts.ForName[Client, int]("maxFieldLength")
)

// New creates a client serving the tools of catalog.
func New(catalog *tool.Catalog, options ...opts.Option[Client]) (*Client, error) {
	c := &Client{
		catalog:        catalog,
		baseURL:        DefaultBaseURL,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		maxFieldLength: defaultMaxFieldLength,
	}
	if err := opts.Apply(c, options); err != nil {
		return nil, err
	}
	if c.catalog == nil {
		return nil, fmt.Errorf("openfda: a tool catalog is required")
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c, nil
}

// Run executes the catalog tool called name.
func (c *Client) Run(ctx context.Context, name string, args tool.Arguments) (any, error) {
	spec, ok := c.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", tool.ErrUnknownTool, name)
	}
	if err := spec.CheckArguments(args); err != nil {
		return nil, err
	}
	drug := strings.TrimSpace(args.DrugName())
	if drug == "" {
		return nil, fmt.Errorf("%s: drug_name is required", name)
	}

	body, err := c.search(ctx, spec, drug, intArg(args, "limit", defaultLimit), intArg(args, "skip", 0))
	if err != nil {
		return nil, err
	}

	results := gjson.GetBytes(body, "results")
	if len(results.Array()) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoLabel, drug)
	}

	out := map[string]any{tool.DrugNameKey: drug}
	for _, field := range spec.Fields.ReturnFields {
		out[field] = c.collect(results, field)
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, spec tool.Spec, drug string, limit, skip int) ([]byte, error) {
	fields := spec.Fields.SearchFields
	if len(fields) == 0 {
		fields = defaultSearchFields
	}
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = fmt.Sprintf("%s:%q", f, drug)
	}

	query := url.Values{}
	query.Set("search", strings.Join(terms, " "))
	query.Set("limit", strconv.Itoa(limit))
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+labelPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building label request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.DebugContext(ctx, "searching drug labels",
		slogx.LoggerName("openfda"), slogx.Tool(spec.CanonicalName()), slog.String("drug", drug))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("label request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading label response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w for %q", ErrNoLabel, drug)
	case resp.StatusCode != http.StatusOK:
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("openfda returned %d: %s", resp.StatusCode, msg)
	}
	return body, nil
}

// collect gathers one label section across all results. openFDA stores each
// section as a list of paragraphs.
func (c *Client) collect(results gjson.Result, field string) []string {
	var out []string
	for _, label := range results.Array() {
		value := label.Get(gjson.Escape(field))
		switch {
		case value.IsArray():
			for _, paragraph := range value.Array() {
				out = append(out, c.truncate(paragraph.String()))
			}
		case value.Exists():
			out = append(out, c.truncate(value.String()))
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func (c *Client) truncate(s string) string {
	if c.maxFieldLength <= 0 || len(s) <= c.maxFieldLength {
		return s
	}
	cut := c.maxFieldLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationMarker
}

func intArg(args tool.Arguments, key string, fallback int) int {
	var n int
	switch v := args[key].(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		n = parsed
	default:
		return fallback
	}
	if key == "limit" {
		return min(max(n, 1), maxLimit)
	}
	return max(n, 0)
}
