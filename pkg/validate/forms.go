package validate

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// SignInForm is the sign-in screen.
type SignInForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns validation.Errors keyed by field name, or nil.
func (f SignInForm) Validate() error {
	form := Form{"email": f.Email, "password": f.Password}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, by(Email, form)),
		validation.Field(&f.Password, by(Password, form)),
	)
}

// SignUpForm is the sign-up screen.
type SignUpForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate returns validation.Errors keyed by field name, or nil.
func (f SignUpForm) Validate() error {
	form := Form{"email": f.Email, "password": f.Password, "confirmPassword": f.ConfirmPassword}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, by(Email, form)),
		validation.Field(&f.Password, by(Password, form)),
		validation.Field(&f.ConfirmPassword, by(ConfirmPassword("password"), form)),
	)
}

// DetailsForm is the account details screen. It is also the request body
// of the details update.
type DetailsForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Validate returns validation.Errors keyed by field name, or nil.
func (f DetailsForm) Validate() error {
	form := Form{"name": f.Name, "email": f.Email, "website": f.Website}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, by(Name, form)),
		validation.Field(&f.Email, by(Email, form)),
		validation.Field(&f.Website, by(URL, form)),
	)
}
