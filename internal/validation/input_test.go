package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/homeservice-backend/internal/models"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"ivan.petrov+test@mail.ru",
		"a@b.co",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), "email %q должен проходить", email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.com",
		"user@nodot",
		"пользователь@example.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), "email %q не должен проходить", email)
	}
}

func TestValidateRequestTitle(t *testing.T) {
	assert.NoError(t, ValidateRequestTitle("Починить кран"))
	assert.Error(t, ValidateRequestTitle(""))
	assert.Error(t, ValidateRequestTitle("аб"))

	long := make([]rune, MaxRequestTitleLength+1)
	for i := range long {
		long[i] = 'а'
	}
	assert.Error(t, ValidateRequestTitle(string(long)))
}

func TestValidateRequestDescription(t *testing.T) {
	assert.NoError(t, ValidateRequestDescription("Течёт кран на кухне, нужна замена прокладки"))
	assert.Error(t, ValidateRequestDescription(""))
	assert.Error(t, ValidateRequestDescription("коротко"))
}

func TestValidateCategory(t *testing.T) {
	for category := range models.ValidCategories {
		assert.NoError(t, ValidateCategory(category))
	}

	assert.Error(t, ValidateCategory(""))
	assert.Error(t, ValidateCategory("gardening"))
	assert.Error(t, ValidateCategory("Plumbing"))
}

func TestValidateUrgency(t *testing.T) {
	for urgency := range models.ValidUrgencies {
		assert.NoError(t, ValidateUrgency(urgency))
	}

	assert.Error(t, ValidateUrgency(""))
	assert.Error(t, ValidateUrgency("urgent"))
}

func TestValidateLocation(t *testing.T) {
	base := models.Location{
		Address: "ул. Ленина, 1",
		City:    "Казань",
		State:   "Татарстан",
		ZipCode: "420000",
	}
	assert.NoError(t, ValidateLocation(base))

	cases := []struct {
		name   string
		mutate func(loc *models.Location)
	}{
		{"пустой адрес", func(loc *models.Location) { loc.Address = "" }},
		{"пустой город", func(loc *models.Location) { loc.City = "  " }},
		{"пустой регион", func(loc *models.Location) { loc.State = "" }},
		{"пустой индекс", func(loc *models.Location) { loc.ZipCode = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc := base
			tc.mutate(&loc)
			assert.Error(t, ValidateLocation(loc))
		})
	}
}

func TestValidateBudget(t *testing.T) {
	min := 100.0
	max := 500.0
	negative := -1.0
	huge := MaxBudget + 1

	assert.NoError(t, ValidateBudget(nil, nil))
	assert.NoError(t, ValidateBudget(&min, nil))
	assert.NoError(t, ValidateBudget(nil, &max))
	assert.NoError(t, ValidateBudget(&min, &max))
	assert.NoError(t, ValidateBudget(&min, &min))

	assert.Error(t, ValidateBudget(&negative, nil))
	assert.Error(t, ValidateBudget(nil, &negative))
	assert.Error(t, ValidateBudget(&huge, nil))
	assert.Error(t, ValidateBudget(&max, &min), "min больше max")
}

func TestValidateSkills(t *testing.T) {
	assert.NoError(t, ValidateSkills(nil))
	assert.NoError(t, ValidateSkills([]string{"plumbing"}))
	assert.NoError(t, ValidateSkills([]string{"plumbing", "electrical", "cleaning"}))

	assert.Error(t, ValidateSkills([]string{""}))
	assert.Error(t, ValidateSkills([]string{"welding"}))
	assert.Error(t, ValidateSkills([]string{"plumbing", "plumbing"}), "дубликаты запрещены")
}

func TestValidateRoleSkills(t *testing.T) {
	assert.NoError(t, ValidateRoleSkills(models.RoleProfessional, []string{"painting"}))
	assert.NoError(t, ValidateRoleSkills(models.RoleClient, nil))
	assert.NoError(t, ValidateRoleSkills(models.RoleAdmin, []string{}))

	assert.Error(t, ValidateRoleSkills(models.RoleProfessional, nil), "исполнитель без навыков")
	assert.Error(t, ValidateRoleSkills(models.RoleProfessional, []string{"welding"}))
	assert.Error(t, ValidateRoleSkills(models.RoleClient, []string{"plumbing"}), "навыки только у исполнителя")
}
