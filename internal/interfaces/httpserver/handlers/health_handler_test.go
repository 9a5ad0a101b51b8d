package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/product-search-api/internal/interfaces/httpserver/handlers"
)

type staticStates map[string]string

func (s staticStates) UpstreamStates() map[string]string {
	return s
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		states     staticStates
		wantStatus int
		wantBody   string
	}{
		{"all closed", staticStates{"product_search": "closed", "generation": "closed"}, http.StatusOK, "ready"},
		{"half-open still serves", staticStates{"product_search": "half-open", "generation": "closed"}, http.StatusOK, "ready"},
		{"open breaker", staticStates{"product_search": "closed", "generation": "open"}, http.StatusServiceUnavailable, "not_ready"},
		{"no reporters", staticStates{}, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/readyz", handlers.NewHealthHandler(tt.states).Ready)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body struct {
				Status    string            `json:"status"`
				Upstreams map[string]string `json:"upstreams"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Status)
			assert.Equal(t, map[string]string(tt.states), body.Upstreams)
		})
	}
}
