// Package validate holds the account form rules.
package validate

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Messages shown to the user, one per rule.
const (
	MsgEmail           = "A valid email address is required"
	MsgPassword        = "Password must be between 6 and 30 characters"
	MsgConfirmPassword = "Passwords must match"
	MsgName            = "Name must be at most 60 characters"
	MsgURL             = "Must be a valid URL"
)

// Password and name bounds, in characters.
const (
	PasswordMinLength = 6
	PasswordMaxLength = 30
	NameMaxLength     = 60
)

// Form is a set of field values by field name.
type Form map[string]string

// Rule checks one value. It returns nil when the value is valid, otherwise
// an error carrying the user-facing message. form gives access to sibling
// fields.
type Rule func(value string, form Form) error

// Email requires a well-formed e-mail address.
func Email(value string, _ Form) error {
	return validation.Validate(value,
		validation.Required.Error(MsgEmail),
		is.Email.Error(MsgEmail),
	)
}

// Password requires 6 to 30 characters.
func Password(value string, _ Form) error {
	return validation.Validate(value,
		validation.Required.Error(MsgPassword),
		validation.RuneLength(PasswordMinLength, PasswordMaxLength).Error(MsgPassword),
	)
}

// ConfirmPassword requires a value equal to form[target].
func ConfirmPassword(target string) Rule {
	return func(value string, form Form) error {
		return validation.Validate(value,
			validation.Required.Error(MsgConfirmPassword),
			validation.In(form[target]).Error(MsgConfirmPassword),
		)
	}
}

// Name allows an empty value or up to 60 characters.
func Name(value string, _ Form) error {
	return validation.Validate(value,
		validation.RuneLength(0, NameMaxLength).Error(MsgName),
	)
}

// URL allows an empty value or an absolute URL with a scheme.
func URL(value string, _ Form) error {
	return validation.Validate(value,
		is.RequestURL.Error(MsgURL),
	)
}

// by adapts r to an ozzo rule evaluated against form.
func by(r Rule, form Form) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		return r(s, form)
	})
}
