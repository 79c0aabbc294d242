package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/homeservice-backend/internal/http/middleware"
	"github.com/ignatzorin/homeservice-backend/internal/models"
	"github.com/ignatzorin/homeservice-backend/internal/repository"
	"github.com/ignatzorin/homeservice-backend/internal/service"
)

// stubRequestRepo фиксирует обращения, реального хранилища нет.
type stubRequestRepo struct {
	created int
}

func (s *stubRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	s.created++
	req.ID = uuid.New()
	return nil
}

func (s *stubRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	return nil, repository.ErrRequestNotFound
}

func (s *stubRequestRepo) AssignProfessional(ctx context.Context, id, professionalID uuid.UUID) error {
	return nil
}

func (s *stubRequestRepo) UpdateStatus(ctx context.Context, id, professionalID uuid.UUID, from, to string) error {
	return nil
}

func (s *stubRequestRepo) ListByHomeowner(ctx context.Context, homeownerID uuid.UUID) ([]*models.ServiceRequest, error) {
	return nil, nil
}

func (s *stubRequestRepo) ListIncoming(ctx context.Context, professionalID uuid.UUID) ([]*models.ServiceRequest, error) {
	return nil, nil
}

type stubUserReader struct{}

func (s *stubUserReader) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func TestRequestHandler_Create_OnlyClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &stubRequestRepo{}
	h := NewRequestHandler(service.NewRequestService(repo, &stubUserReader{}))

	body, err := json.Marshal(gin.H{
		"title":       "Замена смесителя",
		"description": "Течёт смеситель на кухне, нужна замена",
		"category":    models.CategoryPlumbing,
		"location": gin.H{
			"address":  "ул. Ленина, 10",
			"city":     "Казань",
			"state":    "Татарстан",
			"zip_code": "420111",
		},
	})
	assert.NoError(t, err)

	cases := []struct {
		role string
		want int
	}{
		{models.RoleProfessional, http.StatusForbidden},
		{models.RoleAdmin, http.StatusForbidden},
		{models.RoleClient, http.StatusCreated},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/requests", bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Set(middleware.ContextRoleKey, tc.role)

		h.Create(c)

		assert.Equal(t, tc.want, w.Code, "роль %s", tc.role)
	}

	// Заявка сохранена только для заказчика
	assert.Equal(t, 1, repo.created)
}
