package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/homeservice-backend/internal/logger"
	"github.com/ignatzorin/homeservice-backend/internal/models"
	"github.com/ignatzorin/homeservice-backend/internal/pkg/apperror"
	"github.com/ignatzorin/homeservice-backend/internal/repository"
	"github.com/ignatzorin/homeservice-backend/internal/validation"
)

// События, отправляемые через WebSocket при изменении заявки.
const (
	EventRequestAssigned      = "requests.assigned"
	EventRequestStatusChanged = "requests.status_changed"
)

// RequestRepository описывает взаимодействие сервиса с хранилищем заявок.
type RequestRepository interface {
	Create(ctx context.Context, req *models.ServiceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)
	AssignProfessional(ctx context.Context, id, professionalID uuid.UUID) error
	UpdateStatus(ctx context.Context, id, professionalID uuid.UUID, from, to string) error
	ListByHomeowner(ctx context.Context, homeownerID uuid.UUID) ([]*models.ServiceRequest, error)
	ListIncoming(ctx context.Context, professionalID uuid.UUID) ([]*models.ServiceRequest, error)
}

// RequestUserReader описывает минимальный контракт чтения пользователей.
type RequestUserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// WSNotifier интерфейс для отправки WebSocket уведомлений.
type WSNotifier interface {
	BroadcastToUser(userID uuid.UUID, event string, data interface{}) error
}

// RequestService содержит бизнес-логику жизненного цикла заявок.
// Каждый переход статуса проверяется по таблице переходов и выполняется
// условной записью, поэтому из конкурирующих операций над одной заявкой
// фиксируется ровно одна, остальные получают CONFLICT.
type RequestService struct {
	repo  RequestRepository
	users RequestUserReader
	hub   WSNotifier
}

// NewRequestService создаёт новый сервис заявок.
func NewRequestService(repo RequestRepository, users RequestUserReader) *RequestService {
	return &RequestService{
		repo:  repo,
		users: users,
	}
}

// SetHub устанавливает WebSocket hub для отправки уведомлений.
func (s *RequestService) SetHub(hub WSNotifier) {
	s.hub = hub
}

// CreateRequestInput описывает входные данные новой заявки.
type CreateRequestInput struct {
	HomeownerID   uuid.UUID
	HomeownerRole string
	Title         string
	Description   string
	Category      string
	Urgency       string
	Location      models.Location
	BudgetMin     *float64
	BudgetMax     *float64
	ScheduledDate *time.Time
}

// CreateRequest создаёт заявку в статусе pending и возвращает её.
// Создавать заявки могут только заказчики.
func (s *RequestService) CreateRequest(ctx context.Context, in CreateRequestInput) (*models.ServiceRequest, error) {
	if in.HomeownerRole != models.RoleClient {
		return nil, apperror.New(apperror.ErrCodeForbidden, "создавать заявки могут только заказчики")
	}

	if err := validation.ValidateRequestTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateRequestDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	urgency := in.Urgency
	if urgency == "" {
		urgency = models.UrgencyMedium
	}
	if err := validation.ValidateUrgency(urgency); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if err := validation.ValidateLocation(in.Location); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBudget(in.BudgetMin, in.BudgetMax); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	req := &models.ServiceRequest{
		HomeownerID:   in.HomeownerID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Urgency:       urgency,
		Status:        models.RequestStatusPending,
		Location:      in.Location,
		BudgetMin:     in.BudgetMin,
		BudgetMax:     in.BudgetMax,
		ScheduledDate: in.ScheduledDate,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// SendToProfessional направляет заявку исполнителю. Разрешено только владельцу
// заявки, только в статусе pending и только исполнителю с подходящим навыком.
func (s *RequestService) SendToProfessional(ctx context.Context, requestID, homeownerID, professionalID uuid.UUID) (*models.ServiceRequest, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.HomeownerID != homeownerID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "направить заявку может только её владелец")
	}

	if req.Status != models.RequestStatusPending {
		return nil, apperror.New(apperror.ErrCodeIllegalTransition, "направить исполнителю можно только заявку в статусе pending")
	}

	professional, err := s.users.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}

	if professional.Role != models.RoleProfessional {
		return nil, apperror.New(apperror.ErrCodeInvalidAssignment, "заявку можно направить только исполнителю")
	}

	if !hasSkill(professional.Skills, req.Category) {
		return nil, apperror.New(apperror.ErrCodeInvalidAssignment, "исполнитель не обслуживает категорию "+req.Category)
	}

	if err := s.repo.AssignProfessional(ctx, requestID, professionalID); err != nil {
		return nil, s.mapRepoError(err)
	}

	req, err = s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notify(professionalID, EventRequestAssigned, req)

	return req, nil
}

// UpdateStatus переводит заявку в новый статус. Переходы выполняет только
// назначенный исполнитель; допустимость перехода определяется таблицей
// переходов, терминальные статусы неизменяемы.
func (s *RequestService) UpdateStatus(ctx context.Context, requestID, actorID uuid.UUID, newStatus string) (*models.ServiceRequest, error) {
	if _, ok := models.ValidRequestStatuses[newStatus]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный статус заявки: "+newStatus)
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.ProfessionalID == nil || *req.ProfessionalID != actorID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "менять статус заявки может только назначенный исполнитель")
	}

	if !models.CanTransition(req.Status, newStatus) {
		return nil, apperror.New(apperror.ErrCodeIllegalTransition,
			"переход из статуса "+req.Status+" в статус "+newStatus+" не допускается")
	}

	if err := s.repo.UpdateStatus(ctx, requestID, actorID, req.Status, newStatus); err != nil {
		return nil, s.mapRepoError(err)
	}

	req, err = s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notify(req.HomeownerID, EventRequestStatusChanged, req)

	return req, nil
}

// GetRequest возвращает заявку. Доступ имеют владелец и назначенный исполнитель.
func (s *RequestService) GetRequest(ctx context.Context, requestID, actorID uuid.UUID) (*models.ServiceRequest, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.HomeownerID != actorID && (req.ProfessionalID == nil || *req.ProfessionalID != actorID) {
		return nil, apperror.ErrForbidden
	}

	return req, nil
}

// ListMyRequests возвращает заявки заказчика, новые сверху.
func (s *RequestService) ListMyRequests(ctx context.Context, homeownerID uuid.UUID) ([]*models.ServiceRequest, error) {
	return s.repo.ListByHomeowner(ctx, homeownerID)
}

// ListIncoming возвращает активные заявки, направленные исполнителю.
func (s *RequestService) ListIncoming(ctx context.Context, professionalID uuid.UUID) ([]*models.ServiceRequest, error) {
	return s.repo.ListIncoming(ctx, professionalID)
}

func (s *RequestService) getRequest(ctx context.Context, requestID uuid.UUID) (*models.ServiceRequest, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	return req, nil
}

func (s *RequestService) mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrRequestNotFound):
		return apperror.ErrRequestNotFound
	case errors.Is(err, repository.ErrStaleStatus):
		return apperror.Wrap(err, apperror.ErrCodeConflict, "заявка изменена конкурирующей операцией, повторите запрос")
	default:
		return err
	}
}

// notify отправляет событие пользователю, если hub установлен.
// Уведомления не влияют на результат перехода.
func (s *RequestService) notify(userID uuid.UUID, event string, req *models.ServiceRequest) {
	if s.hub == nil {
		return
	}
	if err := s.hub.BroadcastToUser(userID, event, req); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":    userID,
			"request_id": req.ID,
			"event":      event,
			"error":      err.Error(),
		}).Warn("request service: не удалось отправить уведомление")
	}
}

func hasSkill(skills []string, category string) bool {
	for _, skill := range skills {
		if skill == category {
			return true
		}
	}
	return false
}
