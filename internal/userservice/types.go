package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/inkpost/internal/common"
)

const (
	AccessTokenTime time.Duration = 7 * 24 * time.Hour

	// PasswordCost is the bcrypt work factor used for every stored password.
	PasswordCost = 10

	usernameSuffixLength = 5
	maxUsernameAttempts  = 3
)

type UserService struct {
	m          *DBModel
	tokens     *TokenManager
	mb         common.MessageProducer
	logger     *slog.Logger
	profileImg string
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID         int64     `json:"-"`
	Fullname   string    `json:"fullname"`
	Email      string    `json:"-"`
	Username   string    `json:"username"`
	Password   Password  `json:"-"`
	ProfileImg string    `json:"profile_img"`
	TotalPosts int       `json:"-"`
	TotalReads int       `json:"-"`
	Blogs      []int64   `json:"-"`
	JoinedAt   time.Time `json:"joined_at"`
}

type Password struct {
	hash []byte
}

// Session is returned by both signup and signin.
type Session struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

// Actor is the identity proven by a verified access token.
type Actor struct {
	ID int64
}
