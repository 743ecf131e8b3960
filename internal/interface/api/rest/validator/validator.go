package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"user-admin-api/internal/interface/api/rest/dto/auth"
	"user-admin-api/internal/interface/api/rest/dto/user"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt safe, counted in bytes
	maxNameLen     = 64
	maxEmailLen    = 254
)

var ErrInvalidID = errors.New("user id must be a positive integer")

func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// normalize trims and folds s to NFC so visually equal names compare equal.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func validateUsername(errs map[string]string, username string) {
	if username == "" {
		errs["username"] = "username is required"
		return
	}
	if l := utf8.RuneCountInString(username); l < minUsernameLen || l > maxUsernameLen {
		errs["username"] = "username length must be 3-50 characters"
		return
	}
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			continue
		}
		errs["username"] = "allowed characters: letters, digits, '.', '_', '-'"
		return
	}
}

func validateName(errs map[string]string, field, name string) {
	if name == "" {
		return
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		errs[field] = field + " must be at most 64 characters"
	} else if !isHumanName(name) {
		errs[field] = "allowed characters: letters, space, '-', '''"
	}
}

func isHumanName(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsMark(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return false
	}
	return true
}

// ValidateCreate normalizes r in place and returns per-field messages, or nil.
func ValidateCreate(r *user.CreateRequest) map[string]string {
	errs := make(map[string]string)

	r.Username = normalize(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = normalize(r.FirstName)
	r.LastName = normalize(r.LastName)

	validateUsername(errs, r.Username)

	if r.Email == "" {
		errs["email"] = "email is required"
	} else if len(r.Email) > maxEmailLen {
		errs["email"] = "email is too long"
	} else if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		errs["email"] = "invalid email format"
	}

	// the password is never trimmed
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(r.Password) < minPasswordLen || len(r.Password) > maxPasswordLen {
		errs["password"] = "password length must be 6-72 characters"
	}

	validateName(errs, "first_name", r.FirstName)
	validateName(errs, "last_name", r.LastName)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateUpdate(r *user.UpdateRequest) map[string]string {
	errs := make(map[string]string)

	r.Username = normalize(r.Username)
	r.FirstName = normalize(r.FirstName)
	r.LastName = normalize(r.LastName)

	validateUsername(errs, r.Username)
	validateName(errs, "first_name", r.FirstName)
	validateName(errs, "last_name", r.LastName)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r *auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	r.Username = normalize(r.Username)

	if r.Username == "" {
		errs["username"] = "username is required"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
