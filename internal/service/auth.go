package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/templui/goaltrack/internal/apperror"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/repository"
	"github.com/templui/goaltrack/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const AuthCookieName = "auth_token"

// User-facing messages shared by handlers and tests.
const (
	MsgFillAllFields        = "Please fill in all fields!"
	MsgPasswordMismatch     = "Passwords do not match!"
	MsgEmailExists          = "Email already exists!"
	MsgUsernameExists       = "Username already exists!"
	MsgInvalidEmail         = "Please provide a valid email address!"
	MsgInvalidUsername      = "Username must be at most 50 characters and contain no spaces!"
	MsgInvalidCredentials   = "Invalid email or password!"
	MsgAccountCreated       = "Account created successfully! Please log in."
	MsgWelcomeBack          = "Welcome back!"
	MsgSomethingWentWrong   = "Something went wrong. Please try again."
	MsgProfileConflict      = "Username or email already exists!"
	MsgProfileUpdated       = "Profile updated successfully!"
	MsgIncorrectOldPassword = "Incorrect old password!"
	MsgNewPasswordMismatch  = "New passwords do not match!"
	MsgPasswordUpdated      = "Password updated successfully!"
)

var ErrInvalidToken = errors.New("invalid token")

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type AuthService struct {
	userRepository    repository.UserRepository
	emailService      *EmailService
	jwtSecret         string
	cookieSecure      bool
	jwtExpiry         time.Duration
	minPasswordLength int
}

func NewAuthService(
	userRepository repository.UserRepository,
	emailService *EmailService,
	jwtSecret string,
	cookieSecure bool,
	jwtExpiry time.Duration,
	minPasswordLength int,
) *AuthService {
	return &AuthService{
		userRepository:    userRepository,
		emailService:      emailService,
		jwtSecret:         jwtSecret,
		cookieSecure:      cookieSecure,
		jwtExpiry:         jwtExpiry,
		minPasswordLength: minPasswordLength,
	}
}

// Register validates the input and creates an account. Checks run in order:
// required fields, password match, password length, email format, username
// format, email taken, username taken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)

	if username == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, apperror.NewValidation(MsgFillAllFields)
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperror.NewValidation(MsgPasswordMismatch)
	}
	if err := validation.ValidatePassword("Password", in.Password, s.minPasswordLength); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.NewValidation(MsgInvalidEmail)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, apperror.NewValidation(MsgInvalidUsername)
	}

	_, err := s.userRepository.ByEmail(ctx, email)
	if err == nil {
		return nil, apperror.NewConflict(MsgEmailExists, repository.ErrDuplicateEmail)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	_, err = s.userRepository.ByUsername(ctx, username)
	if err == nil {
		return nil, apperror.NewConflict(MsgUsernameExists, repository.ErrDuplicateUsername)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(ctx, user)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, apperror.NewConflict(MsgEmailExists, err)
	case errors.Is(err, repository.ErrDuplicateUsername):
		return nil, apperror.NewConflict(MsgUsernameExists, err)
	case err != nil:
		return nil, fmt.Errorf("create user: %w", err)
	}

	err = s.emailService.SendWelcomeEmail(ctx, user.Email, user.DisplayName())
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials. Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.NewValidation(MsgFillAllFields)
	}

	user, err := s.userRepository.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.NewAuth(MsgInvalidCredentials, err)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.NewAuth(MsgInvalidCredentials, err)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	return hashPassword(password)
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GenerateJWT returns a signed session token and its expiry.
func (s *AuthService) GenerateJWT(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiry.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiry, nil
}

// VerifyJWT returns the user ID carried by a valid, unexpired token.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

// StartSession issues a token for user and stores it in the auth cookie.
func (s *AuthService) StartSession(w http.ResponseWriter, user *model.User) error {
	token, expiry, err := s.GenerateJWT(user)
	if err != nil {
		return fmt.Errorf("generate jwt: %w", err)
	}
	s.SetJWTCookie(w, token, expiry)
	return nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
