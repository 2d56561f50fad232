package utils

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Translator renders validation errors in english. Set by InitValidators.
var Translator ut.Translator

// custom validation tags & texts
const (
	NotBlankTag   = "notblank"
	YearMonthTag  = "yearmonth"
	MonthAfterTag = "monthafter"

	notBlankText   = "{0} cannot be blank"
	yearMonthText  = "{0} must be a month in YYYY-MM format"
	monthAfterText = "{0} must be after {1}"
	enumText       = "{0} has an unsupported value"
)

// InitValidators registers the custom tags and english translations on gin's validator.
func InitValidators() error {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not a go-playground validator")
	}

	english := en.New()
	uni := ut.New(english, english)
	Translator, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, Translator); err != nil {
		return err
	}

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(NotBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(YearMonthTag, yearMonthValidation)
	_ = validate.RegisterValidation(MonthAfterTag, monthAfterValidation)
	registerTranslation(validate, NotBlankTag, notBlankText)
	registerTranslation(validate, YearMonthTag, yearMonthText)
	registerTranslation(validate, MonthAfterTag, monthAfterText)
	return nil
}

// RegisterEnumValidation registers tag as a check that a string field holds one of values.
// Empty strings pass so the tag combines with omitempty or required.
func RegisterEnumValidation(tag string, values ...string) error {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not a go-playground validator")
	}
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, ok := allowed[s]
		return ok
	}); err != nil {
		return err
	}
	registerTranslation(validate, tag, enumText)
	return nil
}

func registerTranslation(validate *validator.Validate, tag, text string) {
	if Translator == nil {
		return
	}
	_ = validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func yearMonthValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

// monthAfterValidation checks that a YYYY-MM field is strictly after the sibling named by the param.
func monthAfterValidation(fl validator.FieldLevel) bool {
	other := reflect.Indirect(fl.Parent()).FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String {
		return false
	}
	return fl.Field().String() > other.String()
}
