package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/primowater/deliveryform/internal/domain"
	pkgerrors "github.com/primowater/deliveryform/pkg/errors"
)

var registerOnce sync.Once

// RegisterValidators adds the costco tag to gin's validator and reports
// field errors under their form names
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("costco", func(fl validator.FieldLevel) bool {
			return domain.ValidateMembership(fl.Field().String()) == nil
		})
	})
}

// describeBindError turns a binding failure into the field to highlight and a message
func describeBindError(err error) *pkgerrors.ErrValidation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &pkgerrors.ErrValidation{Message: "The form could not be read. Please check your entries."}
	}

	fe := verrs[0]
	field := fe.Field()
	switch {
	case field == "costco":
		return &pkgerrors.ErrValidation{Field: field, Message: domain.MembershipMessage}
	case field == "waterQuantity":
		return &pkgerrors.ErrValidation{Field: field, Message: "Water quantity must be at least 2."}
	case fe.Tag() == "email":
		return &pkgerrors.ErrValidation{Field: field, Message: "Please enter a valid email address."}
	case fe.Tag() == "required":
		return &pkgerrors.ErrValidation{Field: field, Message: fmt.Sprintf("%s is required.", field)}
	case fe.Tag() == "min":
		return &pkgerrors.ErrValidation{Field: field, Message: fmt.Sprintf("%s must be at least %s.", field, fe.Param())}
	default:
		return &pkgerrors.ErrValidation{Field: field, Message: fmt.Sprintf("%s is invalid.", field)}
	}
}
