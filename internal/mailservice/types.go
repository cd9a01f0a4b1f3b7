package mailservice

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"
	"golang.org/x/time/rate"

	"github.com/sushihentaime/inkpost/internal/common"
)

const (
	welcomeTemplate = "welcome_email.html"
	consumerName    = "mailservice"

	defaultMaxRetries = 5
	defaultBaseDelay  = 500 * time.Millisecond
)

type MailService struct {
	mb         common.MessageConsumer
	m          Mailer
	logger     MailLogger
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	// RatePerSec caps outbound sends. Zero or less means unlimited.
	RatePerSec float64
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

// welcomeData is what welcome_email.html renders.
type welcomeData struct {
	Fullname string
	Username string
}
