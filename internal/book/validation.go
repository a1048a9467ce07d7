package book

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	validate.RegisterValidation("year", validateYear)
	validate.RegisterValidation("yearrange", validateYearRange)
}

func validateYear(fl validator.FieldLevel) bool {
	_, err := strconv.Atoi(fl.Field().String())
	return err == nil
}

// validateYearRange keeps years within the 32-bit INTEGER column.
func validateYearRange(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 32)
	return err == nil
}

// FieldError is a validation failure on a single form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports the field-level failures of a rejected write.
// Book is the unsaved record built from the submitted fields and Input keeps
// the raw values so a form can be shown again as it was entered.
type ValidationError struct {
	Book   Book
	Input  Input
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "book validation failed: " + strings.Join(msgs, "; ")
}

// Message returns the first message reported for field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

func newValidationError(in Input, fields ...FieldError) *ValidationError {
	return &ValidationError{
		Book:   in.Book(),
		Input:  in,
		Fields: fields,
	}
}

// Validate checks the normalized input and returns a *ValidationError when
// any field is rejected.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return newValidationError(in, fields...)
}

func fieldMessage(field, tag, param string) string {
	label := fieldLabel(field)
	switch tag {
	case "required":
		return fmt.Sprintf("Please provide a value for %q", label)
	case "max":
		return fmt.Sprintf("%q must be at most %s characters", label, param)
	case "year":
		return fmt.Sprintf("%q must be a whole number", label)
	case "yearrange":
		return fmt.Sprintf("%q is out of range", label)
	default:
		return fmt.Sprintf("%q is invalid", label)
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
