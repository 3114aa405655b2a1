package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	mocks "github.com/aliskhannn/market-notifier/internal/mocks/api/handlers/health"
)

func TestHandler_Check(t *testing.T) {
	tests := []struct {
		name       string
		connected  bool
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthy",
			connected:  true,
			wantStatus: http.StatusOK,
			wantBody:   `{"result":{"status":"ok","brokerConnected":true,"brokerReachable":true}}`,
		},
		{
			name:       "ping fails",
			connected:  true,
			pingErr:    errors.New("i/o timeout"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","brokerConnected":true,"brokerReachable":false}`,
		},
		{
			name:       "subscription lost",
			connected:  false,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","brokerConnected":false,"brokerReachable":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			ctrl := gomock.NewController(t)
			broker := mocks.NewMockbrokerChecker(ctrl)

			broker.EXPECT().IsConnected().Return(tt.connected)
			broker.EXPECT().TestConnection(gomock.Any()).Return(tt.pingErr)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

			NewHandler(broker).Check(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
