package cli

import (
	"errors"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const minPasswordLength = 8

// RegisterForm is what the register command collects before sending.
type RegisterForm struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (r RegisterForm) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 255)),
		validation.Field(
			&r.PasswordConfirmation,
			validation.Required,
			validation.By(validateStringEquals(r.Password)),
		),
	)
}

func (r RegisterForm) toAPI() api.Form {
	return api.Form{
		"name":                  r.Name,
		"email":                 r.Email,
		"password":              r.Password,
		"password_confirmation": r.PasswordConfirmation,
	}
}

// LoginForm holds login credentials.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l LoginForm) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Email, validation.Required, is.Email),
		validation.Field(&l.Password, validation.Required),
	)
}

func (l LoginForm) toAPI() api.Form {
	return api.Form{"email": l.Email, "password": l.Password}
}

func validateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}
