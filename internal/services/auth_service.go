package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopbook/internal/domain"
	"shopbook/internal/repos"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrBadToken   = errors.New("invalid or expired token")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users    *repos.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TokenTTL: ttl}
}

func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.NewString(), Name: name, Email: email, Hash: string(hash)}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and mints a signed bearer token carrying the
// user id as subject.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// CurrentUser resolves a bearer token to its owning user.
func (s *AuthService) CurrentUser(token string) (*domain.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrBadToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrBadToken
	}
	u, err := s.Users.ByID(claims.Subject)
	if err != nil {
		return nil, ErrBadToken
	}
	return u, nil
}
