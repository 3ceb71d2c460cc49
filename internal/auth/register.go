package auth

import (
	"net/mail"
	"strings"
	"unicode"
)

type RegisterRequest struct {
	FirstName       string `json:"firstName" form:"firstName"`
	LastName        string `json:"lastName" form:"lastName"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	AgreeToTerms    bool   `json:"agreeToTerms" form:"agreeToTerms"`
}

// Validate returns field -> message. An empty map means the request can be
// sent to the backend.
func (r RegisterRequest) Validate() map[string]string {
	errs := map[string]string{}
	if len([]rune(strings.TrimSpace(r.FirstName))) < 2 {
		errs["firstName"] = "First name must be at least 2 characters"
	}
	if len([]rune(strings.TrimSpace(r.LastName))) < 2 {
		errs["lastName"] = "Last name must be at least 2 characters"
	}
	if !validEmail(r.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	switch {
	case len(r.Password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	case !mixedCase(r.Password):
		errs["password"] = "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	}
	if r.Password != r.ConfirmPassword {
		errs["confirmPassword"] = "Passwords don't match"
	}
	if !r.AgreeToTerms {
		errs["agreeToTerms"] = "You must agree to the terms and conditions"
	}
	return errs
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

func mixedCase(p string) bool {
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
