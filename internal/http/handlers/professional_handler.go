package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/homeservice-backend/internal/dto"
	"github.com/ignatzorin/homeservice-backend/internal/http/handlers/common"
	"github.com/ignatzorin/homeservice-backend/internal/models"
	"github.com/ignatzorin/homeservice-backend/internal/service"
)

// ProfessionalHandler отдаёт справочник исполнителей.
type ProfessionalHandler struct {
	users *service.UserService
}

// NewProfessionalHandler создаёт хэндлер.
func NewProfessionalHandler(users *service.UserService) *ProfessionalHandler {
	return &ProfessionalHandler{users: users}
}

// List обрабатывает GET /professionals с опциональным фильтром ?skill=.
func (h *ProfessionalHandler) List(c *gin.Context) {
	skill := c.Query("skill")
	limit, offset := common.GetPagination(c)

	users, total, err := h.users.ListProfessionals(c.Request.Context(), skill, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	professionals := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		professionals = append(professionals, u.Public())
	}

	c.JSON(http.StatusOK, dto.PaginatedProfessionalsResponse{
		Professionals: professionals,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	})
}

// Get обрабатывает GET /professionals/:id.
func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.GetProfessional(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
