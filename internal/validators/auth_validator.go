package validators

import (
	"log"
	"regexp"

	"boardSync/internal/errs"
	"boardSync/internal/models"
)

func ValidateUser(user *models.User) []error {
	var errors []error
	if user == nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		return errors
	}

	if user.Email == "" || !ValidateEmail(user.Email) {
		errors = append(errors, errs.ErrInvalidEmail)
	}

	if !ValidatePassword(user.Password) {
		errors = append(errors, errs.ErrInvalidPassword)
	}

	if user.Name == "" || len(user.Name) > 80 {
		errors = append(errors, errs.ErrInvalidName)
	}
	return errors
}

func ValidateEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex, err := regexp.Compile(pattern)
	if err != nil {
		log.Println("Error compiling regular expression:", err)
		return false
	}
	return regex.MatchString(email)
}

// ValidatePassword accepts 8 to 72 characters, the bcrypt input ceiling.
func ValidatePassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72
}
