package models

// RequestStatus константы статусов заявок на услуги
const (
	RequestStatusPending    = "pending"
	RequestStatusAccepted   = "accepted"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
	RequestStatusCancelled  = "cancelled"
)

// Category константы категорий услуг
const (
	CategoryPlumbing   = "plumbing"
	CategoryElectrical = "electrical"
	CategoryCarpentry  = "carpentry"
	CategoryPainting   = "painting"
	CategoryCleaning   = "cleaning"
)

// Urgency константы срочности заявки
const (
	UrgencyLow       = "low"
	UrgencyMedium    = "medium"
	UrgencyHigh      = "high"
	UrgencyEmergency = "emergency"
)

// Role константы ролей пользователей
const (
	RoleClient       = "client"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// ValidRequestStatuses список валидных статусов заявок
var ValidRequestStatuses = map[string]struct{}{
	RequestStatusPending:    {},
	RequestStatusAccepted:   {},
	RequestStatusInProgress: {},
	RequestStatusCompleted:  {},
	RequestStatusCancelled:  {},
}

// ValidCategories список валидных категорий услуг.
// Категории заявок и навыки исполнителей используют один словарь.
var ValidCategories = map[string]struct{}{
	CategoryPlumbing:   {},
	CategoryElectrical: {},
	CategoryCarpentry:  {},
	CategoryPainting:   {},
	CategoryCleaning:   {},
}

// ValidUrgencies список валидных значений срочности
var ValidUrgencies = map[string]struct{}{
	UrgencyLow:       {},
	UrgencyMedium:    {},
	UrgencyHigh:      {},
	UrgencyEmergency: {},
}

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleClient:       {},
	RoleProfessional: {},
	RoleAdmin:        {},
}

// StatusTransitions задаёт допустимые переходы статусов заявки.
// Терминальные статусы (completed, cancelled) отсутствуют в таблице:
// из них переходов нет.
var StatusTransitions = map[string][]string{
	RequestStatusPending:    {RequestStatusAccepted, RequestStatusCancelled},
	RequestStatusAccepted:   {RequestStatusInProgress, RequestStatusCancelled},
	RequestStatusInProgress: {RequestStatusCompleted},
}

// CanTransition сообщает, допустим ли переход из статуса from в статус to.
func CanTransition(from, to string) bool {
	for _, next := range StatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus сообщает, является ли статус терминальным.
func IsTerminalStatus(status string) bool {
	return len(StatusTransitions[status]) == 0
}
