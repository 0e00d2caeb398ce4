package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"autoslot/models"
	"autoslot/services/slots"
	"autoslot/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeEditorService scripts EditorService responses per test.
type fakeEditorService struct {
	view    *models.EditorSessionView
	err     error
	history []models.CommitRecord

	lastProvider string
	lastSession  string
	lastDay      int
	lastHour     int
	lastCount    int
}

func (f *fakeEditorService) OpenSession(ctx context.Context, providerID, weekStart string) (*models.EditorSessionView, error) {
	f.lastProvider = providerID
	return f.view, f.err
}

func (f *fakeEditorService) GetSession(providerID, sessionID string) (*models.EditorSessionView, error) {
	f.lastProvider, f.lastSession = providerID, sessionID
	return f.view, f.err
}

func (f *fakeEditorService) CloseSession(providerID, sessionID string) error {
	f.lastProvider, f.lastSession = providerID, sessionID
	return f.err
}

func (f *fakeEditorService) ToggleHour(providerID, sessionID string, dayIndex, hour int) (*models.EditorSessionView, error) {
	f.lastProvider, f.lastSession, f.lastDay, f.lastHour = providerID, sessionID, dayIndex, hour
	return f.view, f.err
}

func (f *fakeEditorService) SetEmployees(providerID, sessionID string, dayIndex, count int) (*models.EditorSessionView, error) {
	f.lastProvider, f.lastSession, f.lastDay, f.lastCount = providerID, sessionID, dayIndex, count
	return f.view, f.err
}

func (f *fakeEditorService) Commit(ctx context.Context, providerID, sessionID string) (*models.EditorSessionView, error) {
	f.lastProvider, f.lastSession = providerID, sessionID
	return f.view, f.err
}

func (f *fakeEditorService) Discard(providerID, sessionID string) (*models.EditorSessionView, error) {
	f.lastProvider, f.lastSession = providerID, sessionID
	return f.view, f.err
}

func (f *fakeEditorService) History(ctx context.Context, providerID string, limit int) ([]models.CommitRecord, error) {
	f.lastProvider = providerID
	return f.history, f.err
}

func newTestRouter(svc slots.EditorService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSlotHandler(svc)

	r := gin.New()
	// Stand-in for the provider auth middleware.
	r.Use(func(c *gin.Context) {
		c.Set("providerID", "prov-1")
		c.Next()
	})

	api := r.Group("/api/slots")
	api.POST("/sessions", h.OpenSessionHandler)
	api.GET("/sessions/:sessionID", h.GetSessionHandler)
	api.PATCH("/sessions/:sessionID/hours", h.ToggleHourHandler)
	api.PATCH("/sessions/:sessionID/employees", h.SetEmployeesHandler)
	api.POST("/sessions/:sessionID/commit", h.CommitHandler)
	api.POST("/sessions/:sessionID/discard", h.DiscardHandler)
	api.DELETE("/sessions/:sessionID", h.CloseSessionHandler)
	api.GET("/history", h.HistoryHandler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleView() *models.EditorSessionView {
	return &models.EditorSessionView{
		SessionID:  "sess-1",
		ProviderID: "prov-1",
		WeekStart:  "2026-03-02",
		Stats:      models.WeekStats{UnavailableHours: 168},
	}
}

func TestOpenSessionHandler_Created(t *testing.T) {
	svc := &fakeEditorService{view: sampleView()}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/slots/sessions", models.OpenSessionRequest{WeekStart: "2026-03-02"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "prov-1", svc.lastProvider)

	var resp struct {
		Session models.EditorSessionView `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "sess-1", resp.Session.SessionID)
}

func TestOpenSessionHandler_MissingWeekStart(t *testing.T) {
	r := newTestRouter(&fakeEditorService{view: sampleView()})

	w := doJSON(t, r, http.MethodPost, "/api/slots/sessions", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpenSessionHandler_UpstreamDown(t *testing.T) {
	svc := &fakeEditorService{err: &upstream.APIError{StatusCode: 500, Body: "boom"}}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/slots/sessions", models.OpenSessionRequest{WeekStart: "2026-03-02"})
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestToggleHourHandler_PassesIndices(t *testing.T) {
	svc := &fakeEditorService{view: sampleView()}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPatch, "/api/slots/sessions/sess-1/hours", models.ToggleHourRequest{DayIndex: 4, Hour: 15})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "sess-1", svc.lastSession)
	require.Equal(t, 4, svc.lastDay)
	require.Equal(t, 15, svc.lastHour)
}

func TestToggleHourHandler_RejectsOutOfRangeBinding(t *testing.T) {
	r := newTestRouter(&fakeEditorService{view: sampleView()})

	w := doJSON(t, r, http.MethodPatch, "/api/slots/sessions/sess-1/hours", map[string]int{"dayIndex": 9, "hour": 3})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetEmployeesHandler(t *testing.T) {
	svc := &fakeEditorService{view: sampleView()}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPatch, "/api/slots/sessions/sess-1/employees", models.SetEmployeesRequest{DayIndex: 2, Employees: 3})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, svc.lastDay)
	require.Equal(t, 3, svc.lastCount)
}

func TestCommitHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"session gone", slots.ErrSessionNotFound, http.StatusNotFound},
		{"already saving", slots.ErrCommitInFlight, http.StatusConflict},
		{"nothing pending", slots.ErrNoPendingChanges, http.StatusBadRequest},
		{"platform rejected", &upstream.APIError{StatusCode: 422, Body: "bad"}, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeEditorService{err: tc.err})
			w := doJSON(t, r, http.MethodPost, "/api/slots/sessions/sess-1/commit", nil)
			require.Equal(t, tc.want, w.Code)
		})
	}
}

func TestCommitHandler_Success(t *testing.T) {
	svc := &fakeEditorService{view: sampleView()}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/slots/sessions/sess-1/commit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "sess-1", svc.lastSession)
}

func TestDiscardHandler(t *testing.T) {
	svc := &fakeEditorService{view: sampleView()}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/slots/sessions/sess-1/discard", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCloseSessionHandler_NotFound(t *testing.T) {
	r := newTestRouter(&fakeEditorService{err: slots.ErrSessionNotFound})

	w := doJSON(t, r, http.MethodDelete, "/api/slots/sessions/sess-1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryHandler(t *testing.T) {
	svc := &fakeEditorService{history: []models.CommitRecord{{ID: "rec-1", ProviderID: "prov-1"}}}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/slots/history?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []models.CommitRecord `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.History, 1)
}
