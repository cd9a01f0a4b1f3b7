package userservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/inkpost/internal/common"
)

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, *common.MockMessageProducer, func() error) {
	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mb := new(common.MockMessageProducer)
	mb.On("Publish", common.UserCreatedKey, common.UserExchange).Return(nil)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		return err
	}

	return NewUserService(db, mb, NewTokenManager("test-secret", time.Hour), logger, "https://example.com/avatar.png"), db, mb, cleanup
}

func TestSignup(t *testing.T) {
	s, db, _, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		fullname    string
		email       string
		password    string
		expectedErr error
	}{
		{
			name:     "valid user",
			fullname: "Ada L",
			email:    "ada@x.com",
			password: "Secret12",
		},
		{
			name:        "short fullname",
			fullname:    "Ad",
			email:       "ada@x.com",
			password:    "Secret12",
			expectedErr: common.ValidationError{Field: "fullname", Message: "fullname must be at least 3 letters long"},
		},
		{
			name:        "empty email",
			fullname:    "Ada L",
			password:    "Secret12",
			expectedErr: common.ValidationError{Field: "email", Message: "enter email"},
		},
		{
			name:        "invalid email",
			fullname:    "Ada L",
			email:       "ada@x",
			password:    "Secret12",
			expectedErr: common.ValidationError{Field: "email", Message: "invalid email"},
		},
		{
			name:        "weak password",
			fullname:    "Ada L",
			email:       "ada@x.com",
			password:    "secret",
			expectedErr: common.ValidationError{Field: "password", Message: "password must be 6 to 20 characters long with at least 1 numeric, 1 lowercase and 1 uppercase letter"},
		},
		{
			name:        "first failure wins",
			fullname:    "A",
			email:       "",
			password:    "",
			expectedErr: common.ValidationError{Field: "fullname", Message: "fullname must be at least 3 letters long"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			session, err := s.Signup(ctx, tc.fullname, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			var count int
			err = db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
			assert.NoError(t, err)

			if tc.expectedErr == nil {
				assert.Equal(t, 1, count)
				assert.NotEmpty(t, session.AccessToken)
				assert.Equal(t, "ada", session.Username)
				assert.Equal(t, "Ada L", session.Fullname)
				assert.Equal(t, "https://example.com/avatar.png", session.ProfileImg)

				var stored []byte
				err = db.QueryRow("SELECT password FROM users WHERE email = $1", "ada@x.com").Scan(&stored)
				assert.NoError(t, err)
				assert.NotEqual(t, []byte(tc.password), stored)
			} else {
				assert.Nil(t, session)
				assert.Equal(t, 0, count)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	s, db, _, cleanup := setupTestEnvironment(t)
	defer func() { assert.NoError(t, cleanup()) }()

	ctx := context.Background()

	_, err := s.Signup(ctx, "Ada L", "ada@x.com", "Secret12")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		session, err := s.Signup(ctx, "Ada Again", "ADA@x.com", "Secret12")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
		assert.ErrorIs(t, err, common.ErrConflict)
		assert.Nil(t, session)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSignupUsernameCollision(t *testing.T) {
	s, db, _, cleanup := setupTestEnvironment(t)
	defer func() { assert.NoError(t, cleanup()) }()

	ctx := context.Background()

	first, err := s.Signup(ctx, "Ada L", "ada@x.com", "Secret12")
	require.NoError(t, err)

	second, err := s.Signup(ctx, "Ada M", "ada@y.com", "Secret12")
	require.NoError(t, err)

	third, err := s.Signup(ctx, "Ada N", "ada@z.com", "Secret12")
	require.NoError(t, err)

	assert.Equal(t, "ada", first.Username)
	assert.Regexp(t, `^ada[a-z0-9]{5}$`, second.Username)
	assert.Regexp(t, `^ada[a-z0-9]{5}$`, third.Username)
	assert.NotEqual(t, second.Username, third.Username)

	var distinct int
	err = db.QueryRow("SELECT COUNT(DISTINCT username) FROM users").Scan(&distinct)
	assert.NoError(t, err)
	assert.Equal(t, 3, distinct)
}

func TestSignupPublishesUserCreated(t *testing.T) {
	s, _, mb, cleanup := setupTestEnvironment(t)
	defer func() { assert.NoError(t, cleanup()) }()

	_, err := s.Signup(context.Background(), "Ada L", "ada@x.com", "Secret12")
	require.NoError(t, err)

	mb.AssertCalled(t, "Publish", common.UserCreatedKey, common.UserExchange)
	assert.Equal(t, []common.UserCreatedMessage{{Email: "ada@x.com", Fullname: "Ada L", Username: "ada"}}, mb.Messages())
}

func TestSignupSurvivesPublishFailure(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	defer func() { assert.NoError(t, cleanup()) }()

	failing := new(common.MockMessageProducer)
	failing.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	s.mb = failing

	session, err := s.Signup(context.Background(), "Ada L", "ada@x.com", "Secret12")
	assert.NoError(t, err)
	assert.NotNil(t, session)
}

func TestSignin(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	defer func() { assert.NoError(t, cleanup()) }()

	ctx := context.Background()

	signup, err := s.Signup(ctx, "Ada L", "ada@x.com", "Secret12")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		email       string
		password    string
		expectedErr error
	}{
		{name: "valid credentials", email: "ada@x.com", password: "Secret12"},
		{name: "email is case insensitive", email: " Ada@X.com ", password: "Secret12"},
		{name: "unknown email", email: "nobody@x.com", password: "Secret12", expectedErr: ErrNotFound},
		{name: "wrong password", email: "ada@x.com", password: "Secret13", expectedErr: ErrIncorrectPassword},
		{name: "empty password", email: "ada@x.com", password: "", expectedErr: ErrIncorrectPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			session, err := s.Signin(ctx, tc.email, tc.password)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, signup.Username, session.Username)
			assert.Equal(t, signup.Fullname, session.Fullname)
			assert.Equal(t, signup.ProfileImg, session.ProfileImg)

			actor, err := s.Authenticate(session.AccessToken)
			assert.NoError(t, err)

			signupActor, err := s.Authenticate(signup.AccessToken)
			assert.NoError(t, err)
			assert.Equal(t, signupActor.ID, actor.ID)
		})
	}
}

func TestSigninCorruptHash(t *testing.T) {
	s, db, _, cleanup := setupTestEnvironment(t)
	defer func() { assert.NoError(t, cleanup()) }()

	_, err := db.Exec("INSERT INTO users (fullname, email, username, password) VALUES ($1, $2, $3, $4)", "Ada L", "ada@x.com", "ada", []byte("broken"))
	require.NoError(t, err)

	session, err := s.Signin(context.Background(), "ada@x.com", "Secret12")
	assert.ErrorIs(t, err, ErrVerification)
	assert.Nil(t, session)
}
