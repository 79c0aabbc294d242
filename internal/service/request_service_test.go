package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/homeservice-backend/internal/models"
	"github.com/ignatzorin/homeservice-backend/internal/pkg/apperror"
	"github.com/ignatzorin/homeservice-backend/internal/repository"
)

type mockRequestRepo struct {
	mock.Mock
}

func (m *mockRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	args := m.Called(ctx, req)
	if args.Error(0) == nil {
		req.ID = uuid.New()
		req.CreatedAt = time.Now()
		req.UpdatedAt = req.CreatedAt
	}
	return args.Error(0)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestRepo) AssignProfessional(ctx context.Context, id, professionalID uuid.UUID) error {
	args := m.Called(ctx, id, professionalID)
	return args.Error(0)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id, professionalID uuid.UUID, from, to string) error {
	args := m.Called(ctx, id, professionalID, from, to)
	return args.Error(0)
}

func (m *mockRequestRepo) ListByHomeowner(ctx context.Context, homeownerID uuid.UUID) ([]*models.ServiceRequest, error) {
	args := m.Called(ctx, homeownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestRepo) ListIncoming(ctx context.Context, professionalID uuid.UUID) ([]*models.ServiceRequest, error) {
	args := m.Called(ctx, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRequest), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func validLocation() models.Location {
	return models.Location{
		Address: "ул. Ленина, 10",
		City:    "Казань",
		State:   "Татарстан",
		ZipCode: "420111",
	}
}

func pendingRequest(homeownerID uuid.UUID) *models.ServiceRequest {
	return &models.ServiceRequest{
		ID:          uuid.New(),
		HomeownerID: homeownerID,
		Title:       "Замена смесителя",
		Description: "Течёт смеситель на кухне, нужна замена",
		Category:    models.CategoryPlumbing,
		Urgency:     models.UrgencyMedium,
		Status:      models.RequestStatusPending,
		Location:    validLocation(),
	}
}

func TestRequestService_CreateRequest_Success(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.ServiceRequest")).Return(nil)

	req, err := svc.CreateRequest(ctx, CreateRequestInput{
		HomeownerID:   uuid.New(),
		HomeownerRole: models.RoleClient,
		Title:         "Замена смесителя",
		Description:   "Течёт смеситель на кухне, нужна замена",
		Category:      models.CategoryPlumbing,
		Location:      validLocation(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, req)
	assert.Equal(t, models.RequestStatusPending, req.Status)
	assert.Equal(t, models.UrgencyMedium, req.Urgency)
	assert.Nil(t, req.ProfessionalID)
	assert.Nil(t, req.CompletedDate)
}

func TestRequestService_CreateRequest_OnlyClients(t *testing.T) {
	repo := new(mockRequestRepo)
	svc := NewRequestService(repo, new(mockUserReader))

	for _, role := range []string{models.RoleProfessional, models.RoleAdmin, ""} {
		_, err := svc.CreateRequest(context.Background(), CreateRequestInput{
			HomeownerID:   uuid.New(),
			HomeownerRole: role,
			Title:         "Замена смесителя",
			Description:   "Течёт смеситель на кухне, нужна замена",
			Category:      models.CategoryPlumbing,
			Location:      validLocation(),
		})

		assert.Error(t, err, "роль %q не должна создавать заявки", role)
		assert.True(t, apperror.IsForbidden(err))
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestService_CreateRequest_UnknownCategory(t *testing.T) {
	svc := NewRequestService(new(mockRequestRepo), new(mockUserReader))

	_, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		HomeownerID:   uuid.New(),
		HomeownerRole: models.RoleClient,
		Title:         "Починить крышу",
		Description:   "Протекает крыша над верандой",
		Category:      "roofing",
		Location:      validLocation(),
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "категория")
}

func TestRequestService_CreateRequest_BudgetOrder(t *testing.T) {
	svc := NewRequestService(new(mockRequestRepo), new(mockUserReader))

	min := 500.0
	max := 100.0
	_, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		HomeownerID:   uuid.New(),
		HomeownerRole: models.RoleClient,
		Title:         "Покраска забора",
		Description:   "Покрасить забор вокруг участка",
		Category:      models.CategoryPainting,
		Location:      validLocation(),
		BudgetMin:     &min,
		BudgetMax:     &max,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRequestService_CreateRequest_IncompleteLocation(t *testing.T) {
	svc := NewRequestService(new(mockRequestRepo), new(mockUserReader))

	loc := validLocation()
	loc.City = ""
	_, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		HomeownerID:   uuid.New(),
		HomeownerRole: models.RoleClient,
		Title:         "Уборка после ремонта",
		Description:   "Генеральная уборка двухкомнатной квартиры",
		Category:      models.CategoryCleaning,
		Location:      loc,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRequestService_SendToProfessional_Success(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	homeownerID := uuid.New()
	professionalID := uuid.New()
	req := pendingRequest(homeownerID)

	assigned := *req
	assigned.ProfessionalID = &professionalID

	users.On("GetByID", ctx, professionalID).Return(&models.User{
		ID:     professionalID,
		Role:   models.RoleProfessional,
		Skills: []string{models.CategoryPlumbing, models.CategoryElectrical},
	}, nil)
	repo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
	repo.On("AssignProfessional", ctx, req.ID, professionalID).Return(nil)
	repo.On("GetByID", ctx, req.ID).Return(&assigned, nil).Once()

	result, err := svc.SendToProfessional(ctx, req.ID, homeownerID, professionalID)

	assert.NoError(t, err)
	assert.NotNil(t, result.ProfessionalID)
	assert.Equal(t, professionalID, *result.ProfessionalID)
}

func TestRequestService_SendToProfessional_NotOwner(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	req := pendingRequest(uuid.New())
	repo.On("GetByID", ctx, req.ID).Return(req, nil)

	_, err := svc.SendToProfessional(ctx, req.ID, uuid.New(), uuid.New())

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "AssignProfessional", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_SendToProfessional_WrongRole(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	homeownerID := uuid.New()
	targetID := uuid.New()
	req := pendingRequest(homeownerID)

	repo.On("GetByID", ctx, req.ID).Return(req, nil)
	users.On("GetByID", ctx, targetID).Return(&models.User{
		ID:   targetID,
		Role: models.RoleClient,
	}, nil)

	_, err := svc.SendToProfessional(ctx, req.ID, homeownerID, targetID)

	assert.Error(t, err)
	assert.True(t, apperror.IsInvalidAssignment(err))
	repo.AssertNotCalled(t, "AssignProfessional", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_SendToProfessional_SkillMismatch(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	homeownerID := uuid.New()
	professionalID := uuid.New()
	req := pendingRequest(homeownerID)

	repo.On("GetByID", ctx, req.ID).Return(req, nil)
	users.On("GetByID", ctx, professionalID).Return(&models.User{
		ID:     professionalID,
		Role:   models.RoleProfessional,
		Skills: []string{models.CategoryCarpentry},
	}, nil)

	_, err := svc.SendToProfessional(ctx, req.ID, homeownerID, professionalID)

	assert.Error(t, err)
	assert.True(t, apperror.IsInvalidAssignment(err))
	// Неудачное назначение не должно трогать заявку
	repo.AssertNotCalled(t, "AssignProfessional", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_SendToProfessional_NotPending(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	homeownerID := uuid.New()
	professionalID := uuid.New()
	req := pendingRequest(homeownerID)
	req.Status = models.RequestStatusAccepted
	req.ProfessionalID = &professionalID

	repo.On("GetByID", ctx, req.ID).Return(req, nil)

	_, err := svc.SendToProfessional(ctx, req.ID, homeownerID, uuid.New())

	assert.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))
}

func TestRequestService_UpdateStatus_HappyPath(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	homeownerID := uuid.New()
	professionalID := uuid.New()

	statuses := []string{
		models.RequestStatusAccepted,
		models.RequestStatusInProgress,
		models.RequestStatusCompleted,
	}

	current := pendingRequest(homeownerID)
	current.ProfessionalID = &professionalID

	for _, next := range statuses {
		updated := *current
		updated.Status = next
		if next == models.RequestStatusCompleted {
			now := time.Now()
			updated.CompletedDate = &now
		}

		repo.On("GetByID", ctx, current.ID).Return(current, nil).Once()
		repo.On("UpdateStatus", ctx, current.ID, professionalID, current.Status, next).Return(nil).Once()
		repo.On("GetByID", ctx, current.ID).Return(&updated, nil).Once()

		result, err := svc.UpdateStatus(ctx, current.ID, professionalID, next)

		assert.NoError(t, err)
		assert.Equal(t, next, result.Status)
		if next == models.RequestStatusCompleted {
			assert.NotNil(t, result.CompletedDate)
		} else {
			assert.Nil(t, result.CompletedDate)
		}

		current = &updated
	}
}

func TestRequestService_UpdateStatus_NotAssignedActor(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	homeownerID := uuid.New()
	professionalID := uuid.New()
	req := pendingRequest(homeownerID)
	req.ProfessionalID = &professionalID

	repo.On("GetByID", ctx, req.ID).Return(req, nil)

	// Даже владелец заявки не может двигать статус
	_, err := svc.UpdateStatus(ctx, req.ID, homeownerID, models.RequestStatusAccepted)

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestRequestService_UpdateStatus_NoProfessional(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	req := pendingRequest(uuid.New())
	repo.On("GetByID", ctx, req.ID).Return(req, nil)

	_, err := svc.UpdateStatus(ctx, req.ID, uuid.New(), models.RequestStatusAccepted)

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestRequestService_UpdateStatus_IllegalTransition(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	professionalID := uuid.New()
	req := pendingRequest(uuid.New())
	req.ProfessionalID = &professionalID

	repo.On("GetByID", ctx, req.ID).Return(req, nil)

	// pending -> completed перескакивает accepted и in_progress
	_, err := svc.UpdateStatus(ctx, req.ID, professionalID, models.RequestStatusCompleted)

	assert.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_UpdateStatus_TerminalImmutable(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	professionalID := uuid.New()

	for _, terminal := range []string{models.RequestStatusCompleted, models.RequestStatusCancelled} {
		req := pendingRequest(uuid.New())
		req.ProfessionalID = &professionalID
		req.Status = terminal

		repo.On("GetByID", ctx, req.ID).Return(req, nil)

		_, err := svc.UpdateStatus(ctx, req.ID, professionalID, models.RequestStatusInProgress)

		assert.Error(t, err)
		assert.True(t, apperror.IsIllegalTransition(err))
	}
}

func TestRequestService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewRequestService(new(mockRequestRepo), new(mockUserReader))

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "archived")

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRequestService_UpdateStatus_ConcurrentLoser(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	professionalID := uuid.New()
	req := pendingRequest(uuid.New())
	req.ProfessionalID = &professionalID

	repo.On("GetByID", ctx, req.ID).Return(req, nil)
	repo.On("UpdateStatus", ctx, req.ID, professionalID, models.RequestStatusPending, models.RequestStatusCancelled).
		Return(repository.ErrStaleStatus)

	_, err := svc.UpdateStatus(ctx, req.ID, professionalID, models.RequestStatusCancelled)

	assert.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestRequestService_UpdateStatus_CancelFromAccepted(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	professionalID := uuid.New()
	req := pendingRequest(uuid.New())
	req.ProfessionalID = &professionalID
	req.Status = models.RequestStatusAccepted

	cancelled := *req
	cancelled.Status = models.RequestStatusCancelled

	repo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
	repo.On("UpdateStatus", ctx, req.ID, professionalID, models.RequestStatusAccepted, models.RequestStatusCancelled).Return(nil)
	repo.On("GetByID", ctx, req.ID).Return(&cancelled, nil).Once()

	result, err := svc.UpdateStatus(ctx, req.ID, professionalID, models.RequestStatusCancelled)

	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusCancelled, result.Status)
	assert.Nil(t, result.CompletedDate)
}

func TestRequestService_GetRequest_Access(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	homeownerID := uuid.New()
	professionalID := uuid.New()
	req := pendingRequest(homeownerID)
	req.ProfessionalID = &professionalID

	repo.On("GetByID", ctx, req.ID).Return(req, nil)

	_, err := svc.GetRequest(ctx, req.ID, homeownerID)
	assert.NoError(t, err)

	_, err = svc.GetRequest(ctx, req.ID, professionalID)
	assert.NoError(t, err)

	_, err = svc.GetRequest(ctx, req.ID, uuid.New())
	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestRequestService_GetRequest_NotFound(t *testing.T) {
	repo := new(mockRequestRepo)
	users := new(mockUserReader)
	svc := NewRequestService(repo, users)
	ctx := context.Background()

	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(nil, repository.ErrRequestNotFound)

	_, err := svc.GetRequest(ctx, id, uuid.New())

	assert.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
