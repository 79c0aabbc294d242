package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignatzorin/homeservice-backend/internal/models"
)

// Константы валидации
const (
	MinUsernameLength           = 3
	MaxUsernameLength           = 30
	MinDisplayNameLength        = 2
	MaxDisplayNameLength        = 100
	MinRequestTitleLength       = 3
	MaxRequestTitleLength       = 200
	MinRequestDescriptionLength = 10
	MaxRequestDescriptionLength = 5000
	MaxAddressLength            = 200
	MaxCityLength               = 100
	MaxStateLength              = 100
	MaxZipCodeLength            = 20
	MinBudget                   = 0.0
	MaxBudget                   = 100000000.0 // 100 миллионов
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	// Базовая проверка формата
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	// Проверка на валидные символы в локальной части
	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	// Проверка на валидные символы в доменной части
	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	// Проверка длины
	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	// Проверка на допустимые символы (только буквы, цифры и подчеркивание)
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	// Проверка, что не начинается с цифры
	if len(username) > 0 && unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	if displayName == "" {
		return fmt.Errorf("отображаемое имя обязательно")
	}

	displayName = strings.TrimSpace(displayName)

	// Проверка длины
	if err := ValidateLength("отображаемое имя", displayName, MinDisplayNameLength, MaxDisplayNameLength); err != nil {
		return err
	}

	// Проверка на недопустимые символы (только буквы, цифры, пробелы и некоторые спецсимволы)
	displayNameRegex := regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9\s\-_.,!?()]+$`)
	if !displayNameRegex.MatchString(displayName) {
		return fmt.Errorf("отображаемое имя содержит недопустимые символы")
	}

	return nil
}

// ValidateRequestTitle проверяет заголовок заявки.
func ValidateRequestTitle(title string) error {
	if title == "" {
		return fmt.Errorf("заголовок заявки обязателен")
	}

	title = strings.TrimSpace(title)

	if err := ValidateLength("заголовок заявки", title, MinRequestTitleLength, MaxRequestTitleLength); err != nil {
		return err
	}

	return nil
}

// ValidateRequestDescription проверяет описание заявки.
func ValidateRequestDescription(description string) error {
	if description == "" {
		return fmt.Errorf("описание заявки обязательно")
	}

	description = strings.TrimSpace(description)

	if err := ValidateLength("описание заявки", description, MinRequestDescriptionLength, MaxRequestDescriptionLength); err != nil {
		return err
	}

	return nil
}

// ValidateCategory проверяет категорию услуги по словарю.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("категория услуги обязательна")
	}

	if _, ok := models.ValidCategories[category]; !ok {
		return fmt.Errorf("неизвестная категория услуги: %s", category)
	}

	return nil
}

// ValidateUrgency проверяет срочность заявки по словарю.
func ValidateUrgency(urgency string) error {
	if _, ok := models.ValidUrgencies[urgency]; !ok {
		return fmt.Errorf("неизвестная срочность заявки: %s", urgency)
	}
	return nil
}

// ValidateLocation проверяет адрес выполнения работ. Все поля обязательны.
func ValidateLocation(loc models.Location) error {
	if err := ValidateNonEmpty("адрес", loc.Address); err != nil {
		return err
	}
	if err := ValidateLength("адрес", loc.Address, 0, MaxAddressLength); err != nil {
		return err
	}

	if err := ValidateNonEmpty("город", loc.City); err != nil {
		return err
	}
	if err := ValidateLength("город", loc.City, 0, MaxCityLength); err != nil {
		return err
	}

	if err := ValidateNonEmpty("регион", loc.State); err != nil {
		return err
	}
	if err := ValidateLength("регион", loc.State, 0, MaxStateLength); err != nil {
		return err
	}

	if err := ValidateNonEmpty("почтовый индекс", loc.ZipCode); err != nil {
		return err
	}
	if err := ValidateLength("почтовый индекс", loc.ZipCode, 0, MaxZipCodeLength); err != nil {
		return err
	}

	return nil
}

// ValidateBudget проверяет бюджет.
func ValidateBudget(budgetMin, budgetMax *float64) error {
	if budgetMin != nil {
		if *budgetMin < MinBudget {
			return fmt.Errorf("минимальный бюджет не может быть отрицательным")
		}
		if *budgetMin > MaxBudget {
			return fmt.Errorf("минимальный бюджет не может превышать %.0f", MaxBudget)
		}
	}

	if budgetMax != nil {
		if *budgetMax < MinBudget {
			return fmt.Errorf("максимальный бюджет не может быть отрицательным")
		}
		if *budgetMax > MaxBudget {
			return fmt.Errorf("максимальный бюджет не может превышать %.0f", MaxBudget)
		}
	}

	if budgetMin != nil && budgetMax != nil {
		if *budgetMin > *budgetMax {
			return fmt.Errorf("минимальный бюджет не может быть больше максимального")
		}
	}

	return nil
}

// ValidateSkills проверяет список навыков исполнителя по словарю категорий.
func ValidateSkills(skills []string) error {
	seen := make(map[string]bool)
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return fmt.Errorf("навык не может быть пустым")
		}

		if _, ok := models.ValidCategories[skill]; !ok {
			return fmt.Errorf("неизвестный навык: %s", skill)
		}

		if seen[skill] {
			return fmt.Errorf("навык '%s' указан дважды", skill)
		}
		seen[skill] = true
	}

	return nil
}

// ValidateRoleSkills проверяет соответствие навыков роли: у исполнителя
// должен быть хотя бы один навык, у остальных ролей навыков нет.
func ValidateRoleSkills(role string, skills []string) error {
	if role == models.RoleProfessional {
		if len(skills) == 0 {
			return fmt.Errorf("исполнитель должен указать хотя бы один навык")
		}
		return ValidateSkills(skills)
	}

	if len(skills) > 0 {
		return fmt.Errorf("навыки доступны только для роли исполнителя")
	}

	return nil
}
