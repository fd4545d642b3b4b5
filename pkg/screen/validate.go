package screen

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/bloom/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report fields by their JSON names so messages match the document.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("component_type", func(fl validator.FieldLevel) bool {
			return ComponentType(fl.Field().String()).Valid()
		})

		validateInst = v
	})
	return validateInst
}

// Validate performs the strict document checks: the screen has an id and a
// name, every component has an id and a known type, and ids are unique
// across the whole forest.
//
// Import does not call Validate; it is opt-in for callers that want to
// reject malformed documents.
func Validate(s *Screen) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}

	if err := validatorInstance().Struct(s); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{})
	var dup string
	Walk(s.Components, func(c *Component, _ int) bool {
		if dup != "" {
			return false
		}
		if _, ok := seen[c.ID]; ok {
			dup = c.ID
			return false
		}
		seen[c.ID] = struct{}{}
		return true
	})
	if dup != "" {
		return errors.New(errors.ErrCodeInvalidDocument, "duplicate component id %q", dup)
	}
	return nil
}

func convertValidationError(err error) error {
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid document")
	}

	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(errors.ErrCodeInvalidDocument, "%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "component_type":
		return fmt.Sprintf("%s: unknown component type %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag())
	}
}
