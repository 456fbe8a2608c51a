package utils

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var urlSafePattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// check if a string value can be safely used as a part of an URL
func IsURLSafe(value string) bool {
	if value == "" {
		return false
	}
	return urlSafePattern.MatchString(value)
}

func ContainsString(slice []string, searchTerm string) bool {
	for _, s := range slice {
		if searchTerm == s {
			return true
		}
	}
	return false
}

func SanitizeEmail(email string) string {
	email = strings.ToLower(email)
	email = strings.Trim(email, " \n\r")
	return email
}

// CheckEmailFormat to check if input string is a correct email address
func CheckEmailFormat(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func ParseDurationString(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid time duration '%s' : %s", value, err.Error())
	}
	return d, nil
}
