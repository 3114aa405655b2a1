package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/market-notifier/internal/middlewares"
	mocks "github.com/aliskhannn/market-notifier/internal/mocks/api/handlers/notification"
	"github.com/aliskhannn/market-notifier/internal/model"
	notificationrepo "github.com/aliskhannn/market-notifier/internal/repository/notification"
	notificationsvc "github.com/aliskhannn/market-notifier/internal/service/notification"
)

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MocknotificationService, *mocks.Mockstreamer) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	mockService := mocks.NewMocknotificationService(ctrl)
	mockStreamer := mocks.NewMockstreamer(ctrl)
	h := NewHandler(mockService, mockStreamer, validator.New(), time.Hour)

	e := gin.New()
	g := e.Group("/api/notifications", middlewares.RequireUser())
	g.GET("", h.List)
	g.GET("/unread-count", h.UnreadCount)
	g.GET("/stream", h.Stream)
	g.PATCH("/read-all", h.MarkAllRead)
	g.PATCH("/:id/read", h.MarkRead)
	g.DELETE("/:id", h.Delete)
	g.DELETE("", h.DeleteAll)

	return e, mockService, mockStreamer
}

func do(e *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(middlewares.UserIDHeader, "1")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestHandler_List(t *testing.T) {
	e, mockService, _ := setupRouter(t)

	page := model.NotificationPage{
		Items: []model.Notification{{ID: uuid.New(), UserID: 1, ContentType: model.ContentEarnings, ContentID: 1}},
		Total: 1, Page: 2, Limit: 10,
	}
	mockService.EXPECT().GetUserNotifications(gomock.Any(), int64(1), 2, 10).Return(page, nil)

	w := do(e, http.MethodGet, "/api/notifications?page=2&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result model.NotificationPage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Result.Total)
	assert.Equal(t, page.Items[0].ID, body.Result.Items[0].ID)
}

func TestHandler_List_InvalidQuery(t *testing.T) {
	e, _, _ := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/notifications?limit=1000").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/notifications?page=abc").Code)
}

func TestHandler_List_RequiresUser(t *testing.T) {
	e, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_UnreadCount(t *testing.T) {
	e, mockService, _ := setupRouter(t)

	mockService.EXPECT().GetUnreadCount(gomock.Any(), int64(1)).Return(3, nil)

	w := do(e, http.MethodGet, "/api/notifications/unread-count")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"unreadCount":3}}`, w.Body.String())
}

func TestHandler_MarkRead(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "success", err: nil, wantStatus: http.StatusOK},
		{name: "not found", err: fmt.Errorf("get notification: %w", notificationrepo.ErrNotificationNotFound), wantStatus: http.StatusNotFound},
		{name: "forbidden", err: notificationsvc.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "internal", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, mockService, _ := setupRouter(t)

			mockService.EXPECT().MarkAsRead(gomock.Any(), int64(1), id).Return(tt.err)

			assert.Equal(t, tt.wantStatus, do(e, http.MethodPatch, "/api/notifications/"+id.String()+"/read").Code)
		})
	}
}

func TestHandler_MarkRead_InvalidID(t *testing.T) {
	e, _, _ := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPatch, "/api/notifications/not-a-uuid/read").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPatch, "/api/notifications/"+uuid.Nil.String()+"/read").Code)
}

func TestHandler_MarkAllRead(t *testing.T) {
	e, mockService, _ := setupRouter(t)

	mockService.EXPECT().MarkAllAsRead(gomock.Any(), int64(1)).Return(int64(4), nil)

	w := do(e, http.MethodPatch, "/api/notifications/read-all")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"count":4}}`, w.Body.String())
}

func TestHandler_Delete(t *testing.T) {
	e, mockService, _ := setupRouter(t)
	id := uuid.New()

	mockService.EXPECT().DeleteNotification(gomock.Any(), int64(1), id).Return(notificationsvc.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, do(e, http.MethodDelete, "/api/notifications/"+id.String()).Code)
}

func TestHandler_DeleteAll(t *testing.T) {
	e, mockService, _ := setupRouter(t)

	mockService.EXPECT().DeleteAllNotifications(gomock.Any(), int64(1)).Return(int64(0), nil)

	w := do(e, http.MethodDelete, "/api/notifications")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"count":0}}`, w.Body.String())
}

// streamRecorder adds the close notification gin's streaming requires.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestHandler_Stream(t *testing.T) {
	e, mockService, mockStreamer := setupRouter(t)

	ch := make(chan model.StreamEvent, 1)
	ch <- model.StreamEvent{
		ID:          "n-1",
		Type:        model.BroadcastNotification,
		ContentType: model.ContentEarnings,
		ContentID:   1,
		CreatedAt:   time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC),
		Payload:     map[string]any{"unreadCount": 1},
	}
	close(ch)
	var events <-chan model.StreamEvent = ch

	mockStreamer.EXPECT().GetNotificationStream(gomock.Any(), int64(1)).Return(events)
	mockService.EXPECT().GetUnreadCount(gomock.Any(), int64(1)).Return(0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/stream", nil).WithContext(context.Background())
	req.Header.Set(middlewares.UserIDHeader, "1")
	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}

	e.ServeHTTP(w, req)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	assert.Contains(t, body, "event:count_update")
	assert.True(t, strings.Index(body, "event:count_update") < strings.Index(body, "event:notification"))
	assert.Contains(t, body, `"id":"n-1"`)
	assert.Contains(t, body, `"unreadCount":1`)
	assert.Contains(t, body, `"contentType":"EARNINGS"`)
}
