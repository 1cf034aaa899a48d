package utilities

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Regra dos ids de documento (ObjectID em hexadecimal).
const ObjectIDRule = "required,hexadecimal,len=24"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator devolve a instância única do validator.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// nomes de campo vêm da tag json
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct valida s pelas tags `validate`. A primeira falha vira um
// BadRequest; messages permite trocar a mensagem de um campo (chave = nome json).
func ValidateStruct(s interface{}, messages map[string]string) error {
	return toBadRequest(getValidator().Struct(s), messages)
}

// ValidateVar valida um valor solto; a falha vira um BadRequest com message.
func ValidateVar(value interface{}, rule, message string) error {
	if err := getValidator().Var(value, rule); err != nil {
		return NewError(KindBadRequest, message)
	}
	return nil
}

func toBadRequest(err error, messages map[string]string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return WrapError(KindBadRequest, "Invalid request.", err)
	}

	first := fieldErrs[0]
	if msg, ok := messages[first.Field()]; ok {
		return NewError(KindBadRequest, msg)
	}
	return NewError(KindBadRequest, first.Field()+" "+formatValidationError(first))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must have at least " + e.Param() + " item(s)"
	case "len":
		return "must have length " + e.Param()
	case "hexadecimal":
		return "must be hexadecimal"
	default:
		return "is invalid"
	}
}
