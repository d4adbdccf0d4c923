package validation

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	message string
}

func (e FieldError) Error() string {
	return e.message
}

// RequestError is a client error: a body that could not be decoded or
// fields that broke a rule. Handlers answer it with 400.
type RequestError struct {
	Fields  []FieldError
	message string
}

func (e *RequestError) Error() string {
	if e.message != "" {
		return e.message
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.message
	}
	return strings.Join(msgs, "; ")
}

// Describe converts a binding or validation error into a *RequestError.
func Describe(err error) *RequestError {
	if err == nil {
		return nil
	}

	var re *RequestError
	if errors.As(err, &re) {
		return re
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		fields := make([]FieldError, len(ves))
		for i, fe := range ves {
			name := fieldPath(fe)
			fields[i] = FieldError{Field: name, Tag: fe.Tag(), Param: fe.Param(), message: message(name, fe)}
		}
		return &RequestError{Fields: fields}
	}

	if errors.Is(err, io.EOF) {
		return &RequestError{message: "request body is required"}
	}
	return &RequestError{message: "invalid request body: " + err.Error()}
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isList {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
