package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Validate reports every problem in doc at once.
func Validate(doc Document) error {
	var errs error
	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = multierr.Append(errs, fieldError(fe))
		}
	}
	errs = multierr.Append(errs, validateProductIDs(doc.Products))
	return errs
}

func validateProductIDs(products []Product) error {
	var errs error
	seen := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			continue
		}
		if first, ok := seen[p.ID]; ok {
			errs = multierr.Append(errs, fmt.Errorf("products[%d].id %q duplicates products[%d]", i, p.ID, first))
			continue
		}
		seen[p.ID] = i
	}
	return errs
}

func fieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", path, fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Errorf("%s must be >= %s", path, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", path, fe.Param())
	default:
		return fmt.Errorf("%s failed %s validation", path, fe.Tag())
	}
}
