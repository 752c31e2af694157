package atlassian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"atlassian_mcp/internal/config"
	"atlassian_mcp/internal/model"
)

const (
	// requestTimeout bounds a single upstream call so a hung Atlassian
	// endpoint cannot block the serving loop indefinitely.
	requestTimeout = 30 * time.Second

	// maxErrorBody caps how much of an upstream error body is carried
	// into an error message.
	maxErrorBody = 500
)

// searchFields is the fixed field list requested for JQL searches.
const searchFields = "summary,status,assignee,reporter,created,updated,priority,issuetype"

// APIError is a non-2xx response from an Atlassian endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// Client issues authenticated read-only requests against the Jira and
// Confluence Cloud REST APIs.
type Client struct {
	email             string
	token             string
	jiraBaseURL       string
	confluenceBaseURL string
	httpClient        *http.Client
}

// NewClient creates an Atlassian API client from the resolved configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		email:             cfg.AtlassianEmail,
		token:             cfg.AtlassianToken,
		jiraBaseURL:       cfg.JiraBaseURL,
		confluenceBaseURL: cfg.ConfluenceBaseURL,
		httpClient:        &http.Client{Timeout: requestTimeout},
	}
}

// get executes a single authenticated GET and decodes the JSON body into out.
// Non-2xx responses become an *APIError carrying the status and a truncated
// copy of the upstream body. No retries: every call is one-shot.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetIssue retrieves a Jira issue by its key (e.g. "PROJ-123").
func (c *Client) GetIssue(ctx context.Context, issueKey string) (*model.JiraIssue, error) {
	endpoint := fmt.Sprintf("%s/issue/%s", c.jiraBaseURL, url.PathEscape(issueKey))

	var issue model.JiraIssue
	if err := c.get(ctx, endpoint, nil, &issue); err != nil {
		return nil, describeError(err, fmt.Sprintf("issue %s not found", issueKey), "")
	}
	return &issue, nil
}

// SearchIssues searches for issues using JQL, forwarding maxResults upstream.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) (*model.JiraSearchResponse, error) {
	endpoint := c.jiraBaseURL + "/search"

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", searchFields)

	var result model.JiraSearchResponse
	if err := c.get(ctx, endpoint, params, &result); err != nil {
		return nil, describeError(err, "", "invalid JQL query")
	}
	return &result, nil
}

// GetProject retrieves a Jira project by its key.
func (c *Client) GetProject(ctx context.Context, projectKey string) (*model.JiraProject, error) {
	endpoint := fmt.Sprintf("%s/project/%s", c.jiraBaseURL, url.PathEscape(projectKey))

	var project model.JiraProject
	if err := c.get(ctx, endpoint, nil, &project); err != nil {
		return nil, describeError(err, fmt.Sprintf("project %s not found", projectKey), "")
	}
	return &project, nil
}

// GetPage retrieves a Confluence page by ID, expanded with its storage body,
// version, space and ancestors.
func (c *Client) GetPage(ctx context.Context, pageID string) (*model.ConfluencePage, error) {
	endpoint := fmt.Sprintf("%s/content/%s", c.confluenceBaseURL, url.PathEscape(pageID))

	params := url.Values{}
	params.Set("expand", "body.storage,version,space,ancestors")

	var page model.ConfluencePage
	if err := c.get(ctx, endpoint, params, &page); err != nil {
		return nil, describeError(err, fmt.Sprintf("Confluence page %s not found", pageID), "")
	}
	return &page, nil
}

// SearchPages searches for Confluence content using CQL, forwarding the
// result limit upstream.
func (c *Client) SearchPages(ctx context.Context, cql string, limit int) (*model.ConfluenceSearchResponse, error) {
	endpoint := c.confluenceBaseURL + "/content/search"

	params := url.Values{}
	params.Set("cql", cql)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("expand", "space,version")

	var result model.ConfluenceSearchResponse
	if err := c.get(ctx, endpoint, params, &result); err != nil {
		return nil, describeError(err, "", "invalid CQL query")
	}
	return &result, nil
}

// GetSpace retrieves a Confluence space by its key.
func (c *Client) GetSpace(ctx context.Context, spaceKey string) (*model.ConfluenceSpace, error) {
	endpoint := fmt.Sprintf("%s/space/%s", c.confluenceBaseURL, url.PathEscape(spaceKey))

	params := url.Values{}
	params.Set("expand", "description.plain,homepage")

	var space model.ConfluenceSpace
	if err := c.get(ctx, endpoint, params, &space); err != nil {
		return nil, describeError(err, fmt.Sprintf("Confluence space %s not found", spaceKey), "")
	}
	return &space, nil
}

// describeError rewords well-known upstream statuses. notFound is used for
// 404 responses when set; badRequest prefixes 400 responses when set (invalid
// JQL/CQL). Every other error passes through unchanged.
func describeError(err error, notFound, badRequest string) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return errors.New("authentication failed: check ATLASSIAN_EMAIL and ATLASSIAN_TOKEN")
	case http.StatusNotFound:
		if notFound != "" {
			return errors.New(notFound)
		}
	case http.StatusBadRequest:
		if badRequest != "" {
			return fmt.Errorf("%s: %s", badRequest, apiErr.Body)
		}
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
