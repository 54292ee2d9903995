package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/khalilabidd/Project-Hermes/pkg/controller/http"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// stubReportUseCase signals when Generate is invoked
type stubReportUseCase struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func (s *stubReportUseCase) Generate(ctx context.Context) (*model.ReleaseReport, []model.Artifact, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.done != nil {
		select {
		case s.done <- struct{}{}:
		default:
		}
	}
	return &model.ReleaseReport{}, nil, nil
}

func (s *stubReportUseCase) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestReportEndpoint_Accepted(t *testing.T) {
	ctx := context.Background()
	uc := &stubReportUseCase{done: make(chan struct{}, 1)}

	server, err := controller.NewServer(ctx, uc, controller.WithAddr("localhost:0"))
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusAccepted)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	gt.Value(t, body["status"]).Equal("accepted")
	gt.Value(t, body["request_id"]).NotEqual("")

	// Generation runs in the background after the response is written.
	select {
	case <-uc.done:
	case <-time.After(1 * time.Second):
		t.Fatal("report generation was not dispatched")
	}
	gt.Value(t, uc.callCount()).Equal(1)
}

func TestReportEndpoint_MethodNotAllowed(t *testing.T) {
	ctx := context.Background()
	uc := &stubReportUseCase{}

	server, err := controller.NewServer(ctx, uc, controller.WithAddr("localhost:0"))
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusMethodNotAllowed)
	gt.Value(t, uc.callCount()).Equal(0)
}
