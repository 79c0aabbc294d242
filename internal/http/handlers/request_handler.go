package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/homeservice-backend/internal/dto"
	"github.com/ignatzorin/homeservice-backend/internal/http/handlers/common"
	"github.com/ignatzorin/homeservice-backend/internal/models"
	"github.com/ignatzorin/homeservice-backend/internal/pkg/apperror"
	"github.com/ignatzorin/homeservice-backend/internal/service"
)

// RequestHandler предоставляет HTTP слой для заявок на услуги.
type RequestHandler struct {
	requests *service.RequestService
}

// NewRequestHandler создаёт хэндлер.
func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// respondServiceError отправляет типизированную ошибку сервиса или передаёт
// неизвестную ошибку в централизованный обработчик.
func respondServiceError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message, "code": string(appErr.Code)})
		return
	}
	_ = c.Error(err)
}

// Create обрабатывает POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateServiceRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var scheduledDate *time.Time
	if req.ScheduledDate != nil && *req.ScheduledDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.ScheduledDate)
		if err != nil {
			common.RespondBadRequest(c, "scheduled_date должен быть в формате RFC3339")
			return
		}
		scheduledDate = &parsed
	}

	result, err := h.requests.CreateRequest(c.Request.Context(), service.CreateRequestInput{
		HomeownerID:   userID,
		HomeownerRole: role,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Urgency:       req.Urgency,
		Location: models.Location{
			Address: req.Location.Address,
			City:    req.Location.City,
			State:   req.Location.State,
			ZipCode: req.Location.ZipCode,
		},
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		ScheduledDate: scheduledDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Send обрабатывает POST /requests/:id/send - направление заявки исполнителю.
func (h *RequestHandler) Send(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	requestID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SendToProfessionalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		common.RespondBadRequest(c, "professional_id должен быть валидным UUID")
		return
	}

	result, err := h.requests.SendToProfessional(c.Request.Context(), requestID, userID, professionalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateStatus обрабатывает PUT /requests/:id/status.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	requestID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.requests.UpdateStatus(c.Request.Context(), requestID, userID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMy обрабатывает GET /requests/my-requests - заявки текущего заказчика.
func (h *RequestHandler) ListMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	requests, err := h.requests.ListMyRequests(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if requests == nil {
		requests = []*models.ServiceRequest{}
	}

	c.JSON(http.StatusOK, requests)
}

// ListIncoming обрабатывает GET /requests/incoming - активные заявки исполнителя.
func (h *RequestHandler) ListIncoming(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	if role != models.RoleProfessional {
		common.RespondForbidden(c, "лента входящих заявок доступна только исполнителям")
		return
	}

	requests, err := h.requests.ListIncoming(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if requests == nil {
		requests = []*models.ServiceRequest{}
	}

	c.JSON(http.StatusOK, requests)
}

// Get обрабатывает GET /requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	requestID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.requests.GetRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
