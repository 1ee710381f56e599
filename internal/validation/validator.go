package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
	"github.com/umalmyha/clientes/internal/model"
)

const tagObjectID = "objectid"

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError contains all violations found in request payload
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range e.violations {
		buff.WriteString(err.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

// Violation adds new violation
func (e *PayloadError) Violation(v violation) {
	e.violations = append(e.violations, v)
}

// First returns message of the first violation
func (e *PayloadError) First() string {
	if len(e.violations) == 0 {
		return ""
	}
	return e.violations[0].Message
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EchoValidator adapts validator to echo.Validator
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// English builds EchoValidator with english messages and objectid tag registered
func English() (*EchoValidator, error) {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("missing en translations")
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations - %w", err)
	}

	if err := v.RegisterValidation(tagObjectID, func(fl validator.FieldLevel) bool {
		return model.IsObjectID(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register %s validation - %w", tagObjectID, err)
	}

	err := v.RegisterTranslation(tagObjectID, trans,
		func(ut ut.Translator) error {
			return ut.Add(tagObjectID, "{0} must be a 24 characters hexadecimal ObjectId", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tagObjectID, fe.Field())
			return t
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s translation - %w", tagObjectID, err)
	}

	return Echo(v, trans), nil
}

func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]violation, 0)}
	for _, e := range ve {
		pldErr.Violation(violation{
			Field:   e.Field(),
			Message: e.Translate(v.translator),
		})
	}
	return pldErr
}
