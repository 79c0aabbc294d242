package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/homeservice-backend/internal/config"
	"github.com/ignatzorin/homeservice-backend/internal/http/handlers"
	"github.com/ignatzorin/homeservice-backend/internal/service"
)

// Лимит на /api/auth берётся из конфигурации: после исчерпания
// квоты возвращается 429.
func TestSetupRouter_AuthRateLimitFromConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:             "development",
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitLimit:  2,
		RateLimitPeriod: time.Minute,
	}

	tokens := service.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	engine := SetupRouter(
		cfg,
		handlers.NewAuthHandler(nil),
		handlers.NewProfileHandler(nil),
		handlers.NewRequestHandler(nil),
		handlers.NewProfessionalHandler(nil),
		handlers.NewWSHandler(nil, tokens),
		handlers.NewHealthHandler(nil),
		tokens,
	)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// Пустое тело не проходит биндинг, но запрос учитывается лимитером
	assert.Equal(t, http.StatusBadRequest, codes[0])
	assert.Equal(t, http.StatusBadRequest, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
