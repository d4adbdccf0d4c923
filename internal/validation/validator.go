// Package validation configures gin's go-playground validator for the
// request DTOs and turns its errors into client messages.
//
// Rules live in the `binding` struct tags. After RegisterGin, failed fields
// are reported by their JSON (or query) names.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs JSON field naming on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
}

// RegisterGin applies Register to gin's binding validator.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not validator/v10")
	}
	Register(v)
	return nil
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
