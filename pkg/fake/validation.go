/*
Copyright 2026 the PN Academy Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/pnacademy/user-api-tests/pkg/client"
)

const minPasswordLength = 8

var ErrInvalidPermission = errors.New("invalid permission")

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation("strong_password", strongPassword); err != nil {
		return nil, err
	}

	return v, nil
}

// strongPassword requires a minimum length and at least one upper case
// letter, lower case letter, digit and special character.
func strongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < minPasswordLength {
		return false
	}

	var upper, lower, digit, special bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	return upper && lower && digit && special
}

// validationMessage turns the first validation failure into a message for
// the client.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	fe := errs[0]

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "strong_password":
		return fmt.Sprintf("%s must be at least %d characters and contain upper and lower case letters, a digit and a special character", fe.Field(), minPasswordLength)
	case "numeric", "min", "max":
		return fmt.Sprintf("%s is not a valid phone number", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// validatePermissions rejects any key that is not a known permission.
func validatePermissions(permissions map[string]bool) error {
	known := set.New[string](client.PermissionKeys()...)
	requested := set.New[string](slices.Collect(maps.Keys(permissions))...)

	unknown := slices.Sorted(requested.Difference(known).All())
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPermission, strings.Join(unknown, ", "))
	}

	return nil
}
