package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/homeservice-backend/internal/models"
)

// Ошибки уровня репозитория.
var (
	ErrRequestNotFound = errors.New("service request not found")
	// ErrStaleStatus возвращается, когда условный UPDATE не затронул ни одной
	// строки: статус заявки изменился между чтением и записью.
	ErrStaleStatus = errors.New("service request status changed concurrently")
)

// RequestRepository отвечает за работу с таблицей service_requests.
// Все изменения статуса выполняются условными UPDATE по паре (id, status),
// поэтому из конкурирующих переходов побеждает ровно один.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository создаёт новый экземпляр.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `id, homeowner_id, professional_id, title, description, category, urgency, status,
	       location_address, location_city, location_state, location_zip_code,
	       budget_min, budget_max, scheduled_date, completed_date, created_at, updated_at`

func scanRequest(row sqlx.ColScanner) (*models.ServiceRequest, error) {
	var req models.ServiceRequest

	if err := row.Scan(
		&req.ID,
		&req.HomeownerID,
		&req.ProfessionalID,
		&req.Title,
		&req.Description,
		&req.Category,
		&req.Urgency,
		&req.Status,
		&req.Location.Address,
		&req.Location.City,
		&req.Location.State,
		&req.Location.ZipCode,
		&req.BudgetMin,
		&req.BudgetMax,
		&req.ScheduledDate,
		&req.CompletedDate,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &req, nil
}

// Create сохраняет новую заявку.
func (r *RequestRepository) Create(ctx context.Context, req *models.ServiceRequest) error {
	query := `
		INSERT INTO service_requests (homeowner_id, title, description, category, urgency, status,
		                              location_address, location_city, location_state, location_zip_code,
		                              budget_min, budget_max, scheduled_date)
		VALUES ($1, $2, $3, $4::skill_tag, $5::request_urgency, $6::request_status, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		req.HomeownerID,
		req.Title,
		req.Description,
		req.Category,
		req.Urgency,
		req.Status,
		req.Location.Address,
		req.Location.City,
		req.Location.State,
		req.Location.ZipCode,
		req.BudgetMin,
		req.BudgetMax,
		req.ScheduledDate,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return fmt.Errorf("request repository: create %w", err)
	}

	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE id = $1`

	req, err := scanRequest(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("request repository: get by id %w", err)
	}

	return req, nil
}

// AssignProfessional привязывает исполнителя к заявке. UPDATE условный:
// строка меняется только пока заявка в статусе pending, поэтому повторное
// или конкурирующее назначение не затирает уже выполненное.
func (r *RequestRepository) AssignProfessional(ctx context.Context, id, professionalID uuid.UUID) error {
	query := `
		UPDATE service_requests
		SET professional_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, id, professionalID)
	if err != nil {
		return fmt.Errorf("request repository: assign professional %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("request repository: assign professional rows affected %w", err)
	}

	if rowsAffected == 0 {
		return r.classifyMiss(ctx, id)
	}

	return nil
}

// UpdateStatus переводит заявку из статуса from в статус to.
// Условие проверяет и статус, и назначенного исполнителя: если заявку успели
// перенаправить другому исполнителю, переход не фиксируется.
// Дата завершения выставляется только при переходе в completed.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id, professionalID uuid.UUID, from, to string) error {
	query := `
		UPDATE service_requests
		SET status = $4::request_status,
		    completed_date = CASE WHEN $4 = 'completed' THEN NOW() ELSE completed_date END,
		    updated_at = NOW()
		WHERE id = $1 AND professional_id = $2 AND status = $3::request_status
	`

	result, err := r.db.ExecContext(ctx, query, id, professionalID, from, to)
	if err != nil {
		return fmt.Errorf("request repository: update status %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("request repository: update status rows affected %w", err)
	}

	if rowsAffected == 0 {
		return r.classifyMiss(ctx, id)
	}

	return nil
}

// classifyMiss различает отсутствие заявки и проигрыш конкурирующему переходу.
func (r *RequestRepository) classifyMiss(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM service_requests WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("request repository: check exists %w", err)
	}
	if !exists {
		return ErrRequestNotFound
	}
	return ErrStaleStatus
}

// ListByHomeowner возвращает заявки заказчика, новые сверху.
func (r *RequestRepository) ListByHomeowner(ctx context.Context, homeownerID uuid.UUID) ([]*models.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM service_requests
		WHERE homeowner_id = $1
		ORDER BY created_at DESC`

	return r.list(ctx, query, homeownerID)
}

// ListIncoming возвращает активные заявки, направленные исполнителю, новые сверху.
// Терминальные заявки в ленту не попадают.
func (r *RequestRepository) ListIncoming(ctx context.Context, professionalID uuid.UUID) ([]*models.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM service_requests
		WHERE professional_id = $1 AND status IN ('pending', 'accepted', 'in_progress')
		ORDER BY created_at DESC`

	return r.list(ctx, query, professionalID)
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.ServiceRequest, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("request repository: list %w", err)
	}
	defer rows.Close()

	var requests []*models.ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("request repository: scan %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}
