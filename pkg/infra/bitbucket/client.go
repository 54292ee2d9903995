package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/types"
)

// defaultPageLimit is the page size requested from the Bitbucket REST API.
const defaultPageLimit = 100

// Client queries a Bitbucket Server (Stash) instance through its REST API
// 1.0 and implements interfaces.RepositoryClient. Pagination is handled
// internally; every listing is returned as a single ordered slice in the
// order the server produced it.
type Client struct {
	baseURL    string
	projectKey string
	repoSlug   string
	username   string
	token      string
	pageLimit  int
	httpClient *http.Client
}

var _ interfaces.RepositoryClient = (*Client)(nil)

// Option is a functional option for Client configuration.
type Option func(*Client)

// WithBasicAuth sets username/token basic authentication.
func WithBasicAuth(username, token string) Option {
	return func(c *Client) {
		c.username = username
		c.token = token
	}
}

// WithBearerToken sets personal access token authentication.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPageLimit overrides the REST API page size.
func WithPageLimit(limit int) Option {
	return func(c *Client) {
		c.pageLimit = limit
	}
}

// NewClient creates a Bitbucket Server client for one repository.
func NewClient(serverURL, projectKey, repoSlug string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(serverURL); err != nil {
		return nil, goerr.Wrap(err, "invalid Bitbucket server URL", goerr.V("url", serverURL))
	}

	client := &Client{
		baseURL:    strings.TrimRight(serverURL, "/"),
		projectKey: projectKey,
		repoSlug:   repoSlug,
		pageLimit:  defaultPageLimit,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// pagedResponse is the Bitbucket Server paged listing envelope.
type pagedResponse[T any] struct {
	Values        []T  `json:"values"`
	IsLastPage    bool `json:"isLastPage"`
	NextPageStart int  `json:"nextPageStart"`
}

// tagEntity mirrors the REST representation of a tag.
type tagEntity struct {
	DisplayID    string `json:"displayId"`
	LatestCommit string `json:"latestCommit"`
}

// commitEntity mirrors the REST representation of a commit.
type commitEntity struct {
	ID     string `json:"id"`
	Author struct {
		Name string `json:"name"`
	} `json:"author"`
	AuthorTimestamp int64  `json:"authorTimestamp"` // epoch milliseconds
	Message         string `json:"message"`
}

// changeEntity mirrors the REST representation of a file change.
type changeEntity struct {
	Path struct {
		ToString string `json:"toString"`
	} `json:"path"`
	Type string `json:"type"`
}

// ListTags returns all tags of the repository in server order.
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	entities, err := getPaged[tagEntity](ctx, c, c.repoPath("tags"))
	if err != nil {
		return nil, err
	}

	tags := make([]model.Tag, 0, len(entities))
	for _, e := range entities {
		tags = append(tags, model.Tag{
			DisplayID:    e.DisplayID,
			LatestCommit: e.LatestCommit,
		})
	}
	return tags, nil
}

// ListCommits returns the default branch history, newest first.
func (c *Client) ListCommits(ctx context.Context) ([]model.Commit, error) {
	entities, err := getPaged[commitEntity](ctx, c, c.repoPath("commits"))
	if err != nil {
		return nil, err
	}

	commits := make([]model.Commit, 0, len(entities))
	for _, e := range entities {
		commits = append(commits, e.toModel())
	}
	return commits, nil
}

// GetCommit returns a single commit by id.
func (c *Client) GetCommit(ctx context.Context, commitID string) (model.Commit, error) {
	var entity commitEntity
	if err := c.getJSON(ctx, c.repoPath("commits/"+commitID), nil, &entity); err != nil {
		return model.Commit{}, err
	}
	return entity.toModel(), nil
}

// GetCommitChanges returns the file changes of a single commit.
func (c *Client) GetCommitChanges(ctx context.Context, commitID string) ([]model.FileChange, error) {
	entities, err := getPaged[changeEntity](ctx, c, c.repoPath("commits/"+commitID+"/changes"))
	if err != nil {
		return nil, err
	}

	changes := make([]model.FileChange, 0, len(entities))
	for _, e := range entities {
		changes = append(changes, model.FileChange{
			Path: e.Path.ToString,
			Type: model.ParseChangeType(e.Type),
		})
	}
	return changes, nil
}

// GetTagsForCommit returns the tags pointing at a specific commit.
func (c *Client) GetTagsForCommit(ctx context.Context, commitID string) ([]model.Tag, error) {
	entities, err := getPaged[tagEntity](ctx, c, c.repoPath("commits/"+commitID+"/tags"))
	if err != nil {
		return nil, err
	}

	tags := make([]model.Tag, 0, len(entities))
	for _, e := range entities {
		latest := e.LatestCommit
		if latest == "" {
			latest = commitID
		}
		tags = append(tags, model.Tag{DisplayID: e.DisplayID, LatestCommit: latest})
	}
	return tags, nil
}

func (e commitEntity) toModel() model.Commit {
	return model.Commit{
		ID:              e.ID,
		AuthorName:      e.Author.Name,
		AuthorTimestamp: time.UnixMilli(e.AuthorTimestamp),
		Message:         e.Message,
	}
}

func (c *Client) repoPath(suffix string) string {
	return fmt.Sprintf("/rest/api/1.0/projects/%s/repos/%s/%s", c.projectKey, c.repoSlug, suffix)
}

// getPaged follows the isLastPage/nextPageStart cursor until the listing is
// exhausted and flattens all pages into one slice.
func getPaged[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T
	start := 0

	for {
		query := url.Values{
			"limit": []string{strconv.Itoa(c.pageLimit)},
			"start": []string{strconv.Itoa(start)},
		}

		var page pagedResponse[T]
		if err := c.getJSON(ctx, path, query, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Values...)
		if page.IsLastPage {
			return all, nil
		}
		start = page.NextPageStart
	}
}

// getJSON performs one authenticated GET request and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", endpoint))
	}
	req.Header.Set("Accept", "application/json")

	switch {
	case c.username != "":
		req.SetBasicAuth(c.username, c.token)
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrQueryFailed, "request failed",
			goerr.V("url", endpoint),
			goerr.V("cause", err.Error()),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.Wrap(types.ErrQueryFailed, "unexpected status code",
			goerr.V("url", endpoint),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("url", endpoint))
	}
	return nil
}
