package validator

import (
	"log"

	"chefmarket_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правила приложение запускаться не должно
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-audience", validateAudience)
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.UserRoleBasic, models.UserRolePro, models.UserRoleAdmin:
		return true
	}
	return false
}

func validateAudience(fl validator.FieldLevel) bool {
	switch models.AnnouncementAudience(fl.Field().String()) {
	case models.AudienceAll, models.AudienceChefs, models.AudienceEmployers:
		return true
	}
	return false
}
