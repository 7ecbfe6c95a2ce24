package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
	"github.com/rxreturns/backend/internal/interfaces/http/dto"
)

// SetupValidator configures gin's validator engine: field names in
// validation errors come from the json tag, and the custom "ndc" tag
// accepts any identifier the normalizer can canonicalize.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not *validator.Validate")
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return v.RegisterValidation("ndc", validateNDC)
}

func validateNDC(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := valueobject.NewNDC(value)
	return err == nil
}

// FormatValidationErrors converts validator errors into per-field details
func FormatValidationErrors(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   fieldErr.Field(),
			Message: validationMessage(fieldErr),
		})
	}
	return details
}

// HandleValidationError writes a 400 response for a binding failure.
// Non-validator errors (malformed JSON, type mismatches) produce a
// generic bad-request response.
func HandleValidationError(c *gin.Context, err error) {
	if details := FormatValidationErrors(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(details))
		return
	}
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid request body"))
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is below the minimum of " + fieldErr.Param()
	case "max":
		return "Value exceeds the maximum of " + fieldErr.Param()
	case "oneof":
		return "Value must be one of: " + fieldErr.Param()
	case "uuid":
		return "Value must be a valid UUID"
	case "ndc":
		return "Value must be a valid NDC identifier"
	case "email":
		return "Value must be a valid email address"
	case "dive":
		return "One or more entries are invalid"
	default:
		return "Value failed validation rule: " + fieldErr.Tag()
	}
}
