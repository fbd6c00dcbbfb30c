package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

const (
	bcryptCost = 10
	// bcrypt rejects longer inputs; the limit is in bytes, not characters.
	maxPasswordBytes = 72
)

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("mi-biblioteca"), bcryptCost)
	return h
})

// tokenClaims is the bearer credential payload: {id, es_admin, exp}.
type tokenClaims struct {
	UserID  int64 `json:"id"`
	IsAdmin bool  `json:"es_admin"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and credential verification.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Register hashes the password and stores a new non-admin user.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (int64, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return 0, domain.ErrMissingSignupFields
	}
	if len(password) > maxPasswordBytes {
		return 0, domain.ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, domain.Internal("Error interno al crear el usuario", err)
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return 0, domain.ErrEmailTaken
		}
		return 0, domain.Internal("Error interno al crear el usuario", err)
	}

	s.log.Info().Int64("user_id", id).Msg("user registered")
	return id, nil
}

// Login verifies the password and issues a signed credential. Unknown email
// and wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal("Error en el servidor", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, domain.Internal("Error en el servidor", err)
	}

	return &ports.Session{Token: token, IsAdmin: user.IsAdmin}, nil
}

// VerifyToken checks signature and expiry only; the store is not consulted.
func (s *AuthService) VerifyToken(token string) (*domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := tokenClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
