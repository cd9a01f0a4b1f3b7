package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "inkpost <no-reply@inkpost.dev>",
	}

	data := welcomeData{Fullname: "Ada L", Username: "ada"}

	subject := bytes.NewBufferString("Welcome")
	plainBody := bytes.NewBufferString("plain")
	htmlBody := bytes.NewBufferString("<p>html</p>")
	mockParser.On("ParseTemplate", welcomeTemplate, data).Return(subject, plainBody, htmlBody, nil)
	mockDialer.On("DialAndSend", mock.AnythingOfType("[]*mail.Message")).Return(nil)

	err := mailer.send("ada@x.com", data, welcomeTemplate)
	assert.NoError(t, err)

	mockParser.AssertExpectations(t)
	mockDialer.AssertExpectations(t)
}

func TestSendEmailTemplateError(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{dialer: mockDialer, parser: mockParser}

	mockParser.On("ParseTemplate", "missing.html", nil).Return(nil, nil, nil, errors.New("could not parse template"))

	err := mailer.send("ada@x.com", nil, "missing.html")
	assert.Error(t, err)

	mockDialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
}
