package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("document_type", validateDocumentType)
	validate.RegisterValidation("promo_code", validatePromoCode)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return utils.IsValidPhone(utils.NormalizePhone(fl.Field().String()))
}

func validateDocumentType(fl validator.FieldLevel) bool {
	return models.ValidDocumentType(models.DocumentType(fl.Field().String()))
}

func validatePromoCode(fl validator.FieldLevel) bool {
	return utils.IsValidPromoCodeFormat(utils.CanonicalPromoCode(fl.Field().String()))
}

// ValidateStruct runs tag validation and flattens the result into a
// field -> message map suitable for a 400 response body. Returns nil
// when the struct is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": "invalid payload"}
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[strings.ToLower(fieldErr.Field())] = messageFor(fieldErr)
	}
	return details
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	case "phone_number":
		return "must be a valid phone number"
	case "document_type":
		return "unsupported document type"
	case "promo_code":
		return "must be 4-16 letters or digits"
	default:
		return "invalid value"
	}
}
