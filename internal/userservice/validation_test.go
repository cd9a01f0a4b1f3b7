package userservice

import (
	"strings"
	"testing"

	"github.com/sushihentaime/inkpost/internal/common"
)

func TestValidateFullname(t *testing.T) {
	testCases := []struct {
		fullname string
		valid    bool
	}{
		{fullname: "", valid: false},
		{fullname: "ab", valid: false},
		{fullname: "abc", valid: true},
		{fullname: "Ada L", valid: true},
		{fullname: "Zoë", valid: true},
		{fullname: strings.Repeat("a", 80), valid: true},
		{fullname: strings.Repeat("a", 81), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.fullname, func(t *testing.T) {
			v := common.NewValidator()
			validateFullname(v, tc.fullname)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v (%s)", tc.valid, v.Valid(), v.Message)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{email: "", valid: false},
		{email: "a", valid: false},
		{email: "a@", valid: false},
		{email: "a@b", valid: false},
		{email: "a@b.c", valid: false},
		{email: "a@b.com", valid: true},
		{email: "ada@x.com", valid: true},
		{email: "first.last@mail.example.org", valid: true},
		{email: "first-last@example.co.uk", valid: true},
		{email: "a b@example.com", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v (%s)", tc.valid, v.Valid(), v.Message)
			}
		})
	}
}

func TestValidateEmailMessages(t *testing.T) {
	v := common.NewValidator()
	validateEmail(v, "")
	if v.Message != "enter email" {
		t.Errorf("expected empty email message, got %q", v.Message)
	}

	v = common.NewValidator()
	validateEmail(v, "nope")
	if v.Message != "invalid email" {
		t.Errorf("expected invalid email message, got %q", v.Message)
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		password string
		valid    bool
	}{
		{password: "", valid: false},
		{password: "Ab1", valid: false},
		{password: "Abcd1", valid: false},
		{password: "Abcde1", valid: true},
		{password: "abcdef1", valid: false},
		{password: "ABCDEF1", valid: false},
		{password: "Abcdefg", valid: false},
		{password: "Secret12", valid: true},
		{password: "Abcdefghijklmnopqr12", valid: true},
		{password: "Abcdefghijklmnopqrs12", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
			}
		})
	}
}
