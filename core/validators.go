package core

import (
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	wilayaTag  = "wilaya"
	wilayaText = "not a valid Algerian state"

	genderTag  = "gender"
	genderText = "must be one of male, female or other"

	courseTypeTag  = "coursetype"
	courseTypeText = "must be one of code, parking or road"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(wilayaTag, wilayaValidation)
	RegisterCustomTranslation(validate, translator, wilayaTag, wilayaText)

	_ = validate.RegisterValidation(genderTag, genderValidation)
	RegisterCustomTranslation(validate, translator, genderTag, genderText)

	_ = validate.RegisterValidation(courseTypeTag, courseTypeValidation)
	RegisterCustomTranslation(validate, translator, courseTypeTag, courseTypeText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

func wilayaValidation(fl validator.FieldLevel) bool {
	return IsWilaya(fl.Field().String())
}

func genderValidation(fl validator.FieldLevel) bool {
	return Gender(fl.Field().String()).Valid()
}

func courseTypeValidation(fl validator.FieldLevel) bool {
	return CourseType(fl.Field().String()).Valid()
}
