package bitbucket_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/types"
	"github.com/khalilabidd/Project-Hermes/pkg/infra/bitbucket"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...bitbucket.Option) (*bitbucket.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := bitbucket.NewClient(srv.URL, "PROJ", "service", opts...)
	gt.NoError(t, err)
	return client, srv
}

func writePage(w http.ResponseWriter, values any, isLast bool, nextStart int) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"values":        values,
		"isLastPage":    isLast,
		"nextPageStart": nextStart,
	})
}

func TestClient_ListTags(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/rest/api/1.0/projects/PROJ/repos/service/tags")
		writePage(w, []map[string]string{
			{"displayId": "prod-server-2024-01", "latestCommit": "abc1234def"},
			{"displayId": "v1.0", "latestCommit": "fff0000aaa"},
		}, true, 0)
	})

	client, _ := newTestClient(t, handler)
	tags, err := client.ListTags(context.Background())

	gt.NoError(t, err)
	gt.Array(t, tags).Length(2)
	gt.Value(t, tags[0].DisplayID).Equal("prod-server-2024-01")
	gt.Value(t, tags[0].LatestCommit).Equal("abc1234def")
}

func TestClient_ListCommits_Paginated(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		switch start {
		case 0:
			writePage(w, []map[string]any{
				{"id": "c3", "author": map[string]string{"name": "alice"}, "authorTimestamp": int64(1710000000000), "message": "third"},
				{"id": "c2", "author": map[string]string{"name": "bob"}, "authorTimestamp": int64(1700000000000), "message": "second"},
			}, false, 2)
		case 2:
			writePage(w, []map[string]any{
				{"id": "c1", "author": map[string]string{"name": "alice"}, "authorTimestamp": int64(1690000000000), "message": "first"},
			}, true, 0)
		default:
			t.Errorf("unexpected page start %d", start)
		}
	})

	client, _ := newTestClient(t, handler, bitbucket.WithPageLimit(2))
	commits, err := client.ListCommits(context.Background())

	gt.NoError(t, err)
	gt.Array(t, commits).Length(3)
	gt.Value(t, commits[0].ID).Equal("c3")
	gt.Value(t, commits[0].AuthorName).Equal("alice")
	gt.Value(t, commits[2].ID).Equal("c1")
	gt.Value(t, commits[0].AuthorTimestamp).Equal(time.UnixMilli(1710000000000))
}

func TestClient_GetCommit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/rest/api/1.0/projects/PROJ/repos/service/commits/abc1234def")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":              "abc1234def",
			"author":          map[string]string{"name": "carol"},
			"authorTimestamp": int64(1705000000000),
			"message":         "release prep",
		})
	})

	client, _ := newTestClient(t, handler)
	commit, err := client.GetCommit(context.Background(), "abc1234def")

	gt.NoError(t, err)
	gt.Value(t, commit.ID).Equal("abc1234def")
	gt.Value(t, commit.AuthorName).Equal("carol")
	gt.Value(t, commit.Message).Equal("release prep")
}

func TestClient_GetCommitChanges(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(w, []map[string]any{
			{"path": map[string]string{"toString": "deployment/config.yaml"}, "type": "MODIFY"},
			{"path": map[string]string{"toString": "src/app.py"}, "type": "ADD"},
			{"path": map[string]string{"toString": "deployment/moved.yaml"}, "type": "MOVE"},
		}, true, 0)
	})

	client, _ := newTestClient(t, handler)
	changes, err := client.GetCommitChanges(context.Background(), "c1")

	gt.NoError(t, err)
	gt.Array(t, changes).Length(3)
	gt.Value(t, changes[0].Path).Equal("deployment/config.yaml")
	gt.Value(t, changes[0].Type).Equal(model.ChangeTypeModify)
	// Unsupported change types collapse to UNKNOWN.
	gt.Value(t, changes[2].Type).Equal(model.ChangeTypeUnknown)
}

func TestClient_GetTagsForCommit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/rest/api/1.0/projects/PROJ/repos/service/commits/abc1234def/tags")
		writePage(w, []map[string]string{
			{"displayId": "prod-server-2024-01"},
		}, true, 0)
	})

	client, _ := newTestClient(t, handler)
	tags, err := client.GetTagsForCommit(context.Background(), "abc1234def")

	gt.NoError(t, err)
	gt.Array(t, tags).Length(1)
	gt.Value(t, tags[0].DisplayID).Equal("prod-server-2024-01")
	// Missing latestCommit falls back to the queried commit.
	gt.Value(t, tags[0].LatestCommit).Equal("abc1234def")
}

func TestClient_BasicAuthHeader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		gt.True(t, ok)
		gt.Value(t, user).Equal("svc-release")
		gt.Value(t, pass).Equal("s3cret")
		writePage(w, []map[string]string{}, true, 0)
	})

	client, _ := newTestClient(t, handler, bitbucket.WithBasicAuth("svc-release", "s3cret"))
	_, err := client.ListTags(context.Background())
	gt.NoError(t, err)
}

func TestClient_BearerAuthHeader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer pat-token")
		writePage(w, []map[string]string{}, true, 0)
	})

	client, _ := newTestClient(t, handler, bitbucket.WithBearerToken("pat-token"))
	_, err := client.ListTags(context.Background())
	gt.NoError(t, err)
}

func TestClient_ErrorStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"Repository not found"}]}`, http.StatusNotFound)
	})

	client, _ := newTestClient(t, handler)
	_, err := client.ListTags(context.Background())

	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrQueryFailed))
}

func TestClient_InvalidURL(t *testing.T) {
	_, err := bitbucket.NewClient("://not-a-url", "PROJ", "service")
	gt.Error(t, err)
}
