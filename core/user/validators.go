package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/yacinedz/siyaqa/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"

	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to user attributes"

	numericRegex = regexp.MustCompile(`^\d+$`)
)

func initValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)

	validate.RegisterStructValidation(newUserStructValidation, NewUser{})
	core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(validate, translator, pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterCustomTranslation(validate, translator, pwdNotAllNumTag, pwdNotAllNumText)
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
}

// Custom Validators

// roleValidation checks that the provided role is one of AllRoles.
func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}

// newUserStructValidation applies the password policy to NewUser.
func newUserStructValidation(sl validator.StructLevel) {
	nu, ok := sl.Current().Interface().(NewUser)
	if !ok {
		return
	}
	validatePassword(sl, nu.Password, nu.Email, nu.FullName, nu.Phone)
}

// ValidatePassword applies the password policy outside struct validation
// (admin CLI, password resets).
func ValidatePassword(pwd string, attrs ...string) error {
	var flds []core.FieldError
	addErr := func(text string) {
		flds = append(flds, core.FieldError{Field: "password", Error: text})
	}
	if len(pwd) < pwdMinLen {
		addErr(pwdMinLenText)
	}
	if strings.IndexFunc(pwd, unicode.IsSpace) >= 0 {
		addErr(pwdNoSpaceText)
	}
	if numericRegex.MatchString(pwd) {
		addErr(pwdNotAllNumText)
	}
	if passwordTooSimilar(pwd, attrs) {
		addErr(pwdAttrSimText)
	}
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func validatePassword(sl validator.StructLevel, pwd string, attrs ...string) {
	if len(pwd) < pwdMinLen {
		sl.ReportError(pwd, "password", "Password", pwdMinLenTag, "")
	}
	if strings.IndexFunc(pwd, unicode.IsSpace) >= 0 {
		sl.ReportError(pwd, "password", "Password", pwdNoSpaceTag, "")
	}
	if numericRegex.MatchString(pwd) {
		sl.ReportError(pwd, "password", "Password", pwdNotAllNumTag, "")
	}
	if passwordTooSimilar(pwd, attrs) {
		sl.ReportError(pwd, "password", "Password", pwdAttrSimTag, "")
	}
}

// passwordTooSimilar reports whether pwd closely matches any user attribute.
func passwordTooSimilar(pwd string, attrs []string) bool {
	p := strings.ToLower(pwd)
	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" {
			continue
		}
		parts := append(strings.FieldsFunc(attr, func(r rune) bool { return r == ' ' || r == '@' || r == '.' }), attr)
		for _, part := range parts {
			m := difflib.NewMatcher(strings.Split(p, ""), strings.Split(part, ""))
			if m.Ratio() >= pwdMaxSim {
				return true
			}
		}
	}
	return false
}
