package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sushihentaime/inkpost/internal/common"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrVerification is returned when the password hash could not be checked at all.
	ErrVerification = errors.New("error occurred while logging in, please try again")
)

// NewUserService wires the credential store, token manager and event producer.
// profileImg is stored for every new account that has no picture of its own.
func NewUserService(db *sql.DB, mb common.MessageProducer, tokens *TokenManager, logger *slog.Logger, profileImg string) *UserService {
	return &UserService{
		m:          newUserModel(db),
		tokens:     tokens,
		mb:         mb,
		logger:     logger,
		profileImg: profileImg,
	}
}

// Signup validates the input, creates the account and opens a session for it.
// The username is derived from the email's local part.
func (s *UserService) Signup(ctx context.Context, fullname, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	v := common.NewValidator()
	validateFullname(v, fullname)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Fullname:   fullname,
		Email:      email,
		ProfileImg: s.profileImg,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	base, _, _ := strings.Cut(email, "@")

	u.Username, err = s.generateUsername(ctx, base)
	if err != nil {
		return nil, err
	}

	// The existence check above can lose a race; the unique constraint decides.
	for attempt := 1; ; attempt++ {
		err = s.m.insertUser(ctx, &u)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateUsername) || attempt == maxUsernameAttempts {
			return nil, err
		}

		u.Username, err = withSuffix(base)
		if err != nil {
			return nil, err
		}
	}

	s.publishUserCreated(ctx, &u)

	return s.newSession(&u)
}

// Signin checks the password of the account registered under email.
func (s *UserService) Signin(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.m.getUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	ok, err := u.Password.compare(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	if !ok {
		return nil, ErrIncorrectPassword
	}

	return s.newSession(u)
}

// Authenticate resolves an access token to the actor it was issued for.
func (s *UserService) Authenticate(token string) (*Actor, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	return &Actor{ID: id}, nil
}

func (s *UserService) generateUsername(ctx context.Context, base string) (string, error) {
	exists, err := s.m.usernameExists(ctx, base)
	if err != nil {
		return "", err
	}

	if exists {
		return withSuffix(base)
	}

	return base, nil
}

func withSuffix(base string) (string, error) {
	suffix, err := gonanoid.Generate(suffixAlphabet, usernameSuffixLength)
	if err != nil {
		return "", err
	}

	return base + suffix, nil
}

func (s *UserService) newSession(u *User) (*Session, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: token,
		ProfileImg:  u.ProfileImg,
		Username:    u.Username,
		Fullname:    u.Fullname,
	}, nil
}

// publishUserCreated never fails the signup; a lost event only means a lost
// welcome email.
func (s *UserService) publishUserCreated(ctx context.Context, u *User) {
	if s.mb == nil {
		return
	}

	err := common.PublishUserCreated(ctx, s.mb, common.UserCreatedMessage{
		Email:    u.Email,
		Fullname: u.Fullname,
		Username: u.Username,
	})
	if err != nil {
		s.logger.Error("could not publish user created event", slog.String("username", u.Username), slog.String("error", err.Error()))
	}
}
