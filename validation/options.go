package validation

import (
	"context"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// OptionValidator checks a value against the `validate` tag that
// structField carries on model, e.g. the settings language and theme
func OptionValidator(model interface{}, structField string) Validator {
	var tag string
	if field, ok := reflect.TypeOf(model).FieldByName(structField); ok {
		tag = field.Tag.Get("validate")
	}

	return func(ctx context.Context, value string) Outcome {
		if tag == "" {
			return Valid()
		}
		if err := structValidator.VarCtx(ctx, value, tag); err != nil {
			return Invalid(ReasonInvalidOption)
		}
		return Valid()
	}
}
