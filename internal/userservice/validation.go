package userservice

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sushihentaime/inkpost/internal/common"
)

var (
	EmailRX     = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)
	PasswordRX  = regexp.MustCompile(`^.{6,20}$`)
	UppercaseRX = regexp.MustCompile("[A-Z]")
	LowercaseRX = regexp.MustCompile("[a-z]")
	NumberRX    = regexp.MustCompile("[0-9]")
)

func validateFullname(v *common.Validator, fullname string) {
	v.Check(utf8.RuneCountInString(fullname) >= 3, "fullname", "fullname must be at least 3 letters long")
	v.Check(utf8.RuneCountInString(fullname) <= 80, "fullname", "fullname must not be longer than 80 letters")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "enter email")
	v.Check(EmailRX.MatchString(email), "email", "invalid email")
}

func validatePassword(v *common.Validator, password string) {
	value := PasswordRX.MatchString(password) && UppercaseRX.MatchString(password) && LowercaseRX.MatchString(password) && NumberRX.MatchString(password)
	v.Check(value, "password", "password must be 6 to 20 characters long with at least 1 numeric, 1 lowercase and 1 uppercase letter")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
