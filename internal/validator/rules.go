package validator

import (
	"fmt"
	"log"
	"strings"

	"botrabota_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Границы возраста работника
const (
	MinWorkerAge = 14
	MaxWorkerAge = 80
)

// registerCustomRules регистрирует кастомные правила в переданном
// экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без этого правила приложение не должно запускаться
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-payment-type", validatePaymentType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Пустые значения проверяет 'required'
	}
	role := models.UserRole(value)
	return role == models.UserRoleWorker || role == models.UserRoleEmployer
}

func validatePaymentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PaymentType(value).Valid()
}

// ValidateAge разбирает и проверяет возраст из пользовательского ввода.
// Возвращает (валидно, возраст, сообщение об ошибке): ошибка ввода -
// повод переспросить, а не падать.
func ValidateAge(raw string) (bool, int, string) {
	var age int
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d", &age); err != nil {
		return false, 0, "Введите число"
	}
	if age < MinWorkerAge || age > MaxWorkerAge {
		return false, 0, fmt.Sprintf("Возраст должен быть от %d до %d лет", MinWorkerAge, MaxWorkerAge)
	}
	return true, age, ""
}

// ValidateTextLength проверяет длину свободного текста (резюме, описание)
func ValidateTextLength(text string, maxLength int) (bool, string) {
	if len([]rune(text)) <= maxLength {
		return true, ""
	}
	return false, fmt.Sprintf("Максимум %d символов. Вы ввели: %d", maxLength, len([]rune(text)))
}

// ValidateNotEmpty проверяет, что текст не пустой
func ValidateNotEmpty(text string) (bool, string) {
	if strings.TrimSpace(text) != "" {
		return true, ""
	}
	return false, "Текст не может быть пустым"
}

// ValidateCoordinates проверяет диапазон координат
func ValidateCoordinates(lat, lon float64) (bool, string) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false, "Некорректные координаты"
	}
	return true, ""
}
