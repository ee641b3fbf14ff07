package user

import (
	"fmt"
	"unicode"
)

const (
	minLoginLen    = 3
	maxLoginLen    = 32
	minPasswordLen = 8
)

type Validator struct{}

func NewValidator() Validator {
	return Validator{}
}

func (Validator) ValidateLogin(login string) error {
	if len(login) < minLoginLen || len(login) > maxLoginLen {
		return fmt.Errorf("login must be %d to %d characters", minLoginLen, maxLoginLen)
	}
	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' && r != '@' {
			return fmt.Errorf("login contains invalid character %q", r)
		}
	}
	return nil
}

func (v Validator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return err
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain letters and digits")
	}
	return nil
}
