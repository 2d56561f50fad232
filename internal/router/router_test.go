package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"church_backend/internal/config"
	"church_backend/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: gin.TestMode},
		JWT: config.JWTConfig{
			AccessSecret: "access", RefreshSecret: "refresh",
			AccessTTL: time.Minute, RefreshTTL: time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func TestSetup_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig()
	engine := gin.New()
	app, err := Setup(engine, db, cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Messages)

	tokens := utils.NewTokenManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	churchAdmin, err := tokens.GenerateAccessToken(utils.Claims{
		UserID: uuid.NewString(), ChurchID: uuid.NewString(), GroupID: uuid.NewString(), Status: "churchAdmin",
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"ping", http.MethodGet, "/ping", "", http.StatusOK},
		{"report without token", http.MethodGet, "/api/v2/reports/monthly?month=2024-01", "", http.StatusUnauthorized},
		{"groups need a manager", http.MethodGet, "/api/v2/groups", churchAdmin, http.StatusForbidden},
		{"churches need a group admin", http.MethodGet, "/api/v2/churches", churchAdmin, http.StatusForbidden},
		{"users need a church pastor", http.MethodGet, "/api/v2/users", churchAdmin, http.StatusForbidden},
		{"report query is validated", http.MethodGet, "/api/v2/reports/monthly?month=2024-01", churchAdmin, http.StatusBadRequest},
		{"refresh without cookie", http.MethodPost, "/api/v2/auth/refresh", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
