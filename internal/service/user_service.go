package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/homeservice-backend/internal/models"
	"github.com/ignatzorin/homeservice-backend/internal/pkg/apperror"
	"github.com/ignatzorin/homeservice-backend/internal/repository"
	"github.com/ignatzorin/homeservice-backend/internal/validation"
)

// UserRepositoryContract описывает взаимодействие сервиса с хранилищем пользователей.
type UserRepositoryContract interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	ListProfessionals(ctx context.Context, skill string, limit, offset int) ([]*models.User, error)
	CountProfessionals(ctx context.Context, skill string) (int, error)
}

// UserService содержит логику профилей и справочника исполнителей.
type UserService struct {
	repo UserRepositoryContract
}

// NewUserService создаёт сервис пользователей.
func NewUserService(repo UserRepositoryContract) *UserService {
	return &UserService{repo: repo}
}

// UpdateProfileInput описывает изменяемые поля профиля.
type UpdateProfileInput struct {
	DisplayName string
	Phone       *string
	Skills      []string
}

// GetByID возвращает пользователя по идентификатору.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile обновляет профиль пользователя. Навыки проверяются
// по словарю и по роли: у исполнителя хотя бы один, у остальных никаких.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != "" {
		if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		user.DisplayName = in.DisplayName
	}

	if in.Phone != nil {
		user.Phone = in.Phone
	}

	if in.Skills != nil {
		if err := validation.ValidateRoleSkills(user.Role, in.Skills); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		user.Skills = in.Skills
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetProfessional возвращает исполнителя по идентификатору.
func (s *UserService) GetProfessional(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role != models.RoleProfessional {
		return nil, apperror.ErrUserNotFound
	}

	return user, nil
}

// ListProfessionals возвращает страницу справочника исполнителей
// с опциональным фильтром по навыку.
func (s *UserService) ListProfessionals(ctx context.Context, skill string, limit, offset int) ([]*models.User, int, error) {
	if skill != "" {
		if _, ok := models.ValidCategories[skill]; !ok {
			return nil, 0, apperror.New(apperror.ErrCodeValidation, "неизвестный навык: "+skill)
		}
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.ListProfessionals(ctx, skill, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountProfessionals(ctx, skill)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
