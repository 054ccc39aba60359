package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"keybox/internal/domain"
)

// TokenLifetime is how long an issued bearer token remains valid.
const TokenLifetime = 3600 * time.Second

// Password policy: at least 8 characters with one uppercase letter, one
// lowercase letter, one digit, and one symbol from the fixed set.
var (
	passwordUpper  = regexp.MustCompile(`[A-Z]`)
	passwordLower  = regexp.MustCompile(`[a-z]`)
	passwordDigit  = regexp.MustCompile(`[0-9]`)
	passwordSymbol = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// AuthService handles user registration, credential checks, and bearer
// token issuance/verification.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// RegisterInput carries the six registration fields. Age arrives as a
// string because callers may send either a number or a numeric string.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Age      string
	Gender   string
}

// Register creates a new user account after validating inputs.
// Validation failures never reach the store.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" ||
		in.FullName == "" || in.Age == "" || in.Gender == "" {
		return nil, domain.ErrInvalidRequest
	}

	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !validPassword(in.Password) {
		return nil, domain.ErrInvalidPassword
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil || age <= 0 {
		return nil, domain.ErrInvalidAge
	}

	if strings.TrimSpace(in.Gender) == "" {
		return nil, domain.ErrGenderRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Age:          age,
		Gender:       in.Gender,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A racing register can trip the unique constraint after the
		// lookups above passed; surface it as the same conflict.
		if errors.Is(err, domain.ErrUsernameExists) || errors.Is(err, domain.ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// VerifyCredentials looks up the user and checks the password. Unknown
// username and wrong password are deliberately indistinguishable.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken verifies credentials and returns a signed bearer token and
// its lifetime in seconds.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (string, int64, error) {
	if username == "" || password == "" {
		return "", 0, domain.ErrMissingFields
	}

	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", 0, err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"iat": now.Unix(),
		"exp": now.Add(TokenLifetime).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return token, int64(TokenLifetime.Seconds()), nil
}

// VerifyToken parses and validates a bearer token string, returning the
// user ID from the sub claim. Malformed, tampered, and expired tokens
// all fail the same way.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}

	return userID, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func validPassword(password string) bool {
	return len(password) >= 8 &&
		passwordUpper.MatchString(password) &&
		passwordLower.MatchString(password) &&
		passwordDigit.MatchString(password) &&
		passwordSymbol.MatchString(password)
}
