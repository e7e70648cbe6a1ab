package dtos

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
)

// ValidationErrorDetail describes one rejected field.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// NewValidator returns a validator that understands Optional fields.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(validationValue[string], Optional[string]{})
	v.RegisterCustomTypeFunc(validationValue[int], Optional[int]{})
	v.RegisterCustomTypeFunc(validationValue[float64], Optional[float64]{})
	v.RegisterCustomTypeFunc(validationValue[bool], Optional[bool]{})
	v.RegisterCustomTypeFunc(validationValue[uuid.UUID], Optional[uuid.UUID]{})
	return v
}

// ValidationDetails flattens validator errors for an error response.
func ValidationDetails(err error) []ValidationErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]ValidationErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationErrorDetail{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: fe.Error(),
		})
	}
	return out
}

var errPasswordNull = db.Invalid("password", "must not be null")
