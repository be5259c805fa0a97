package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewJobValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("job_date", jobDateValidator),
		},
		{
			Rule: registerFn("job_time", jobTimeValidator),
		},
		{
			Rule: registerFn("category_id", uuidValidator),
		},
		{
			Rule: registerFn("not_blank", notBlankValidator),
		},
	}
}

func NewProviderChoiceValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("not_blank", notBlankValidator),
		},
	}
}
