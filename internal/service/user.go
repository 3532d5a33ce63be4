package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/goaltrack/internal/apperror"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/repository"
	"github.com/templui/goaltrack/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepository    repository.UserRepository
	emailService      *EmailService
	minPasswordLength int
}

func NewUserService(
	userRepository repository.UserRepository,
	emailService *EmailService,
	minPasswordLength int,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		emailService:      emailService,
		minPasswordLength: minPasswordLength,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepository.ByID(ctx, id)
}

// UpdateProfile applies the non-empty fields. A username or email held by
// another account is rejected before anything is written.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) error {
	update = model.ProfileUpdate{
		Username:    strings.TrimSpace(update.Username),
		Email:       normalizeEmail(update.Email),
		Name:        strings.TrimSpace(update.Name),
		Bio:         strings.TrimSpace(update.Bio),
		CurrentRole: strings.TrimSpace(update.CurrentRole),
		Company:     strings.TrimSpace(update.Company),
		LinkedIn:    strings.TrimSpace(update.LinkedIn),
	}

	if update.Email != "" {
		if err := validation.ValidateEmail(update.Email); err != nil {
			return apperror.NewValidation(MsgInvalidEmail)
		}
	}
	if update.Username != "" {
		if err := validation.ValidateUsername(update.Username); err != nil {
			return apperror.NewValidation(MsgInvalidUsername)
		}
	}

	taken, err := s.userRepository.ExistsOther(ctx, userID, update.Username, update.Email)
	if err != nil {
		return fmt.Errorf("check profile conflict: %w", err)
	}
	if taken {
		return apperror.NewConflict(MsgProfileConflict, nil)
	}

	err = s.userRepository.UpdateProfile(ctx, userID, update)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail), errors.Is(err, repository.ErrDuplicateUsername):
		return apperror.NewConflict(MsgProfileConflict, err)
	case err != nil:
		return fmt.Errorf("update profile: %w", err)
	}

	slog.Info("profile updated", "user_id", userID)
	return nil
}

// ChangePassword checks, in order: all fields present, old password correct,
// confirmation matches, new password length.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		return apperror.NewValidation(MsgFillAllFields)
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword))
	if err != nil {
		return apperror.NewAuth(MsgIncorrectOldPassword, err)
	}

	if newPassword != confirmPassword {
		return apperror.NewValidation(MsgNewPasswordMismatch)
	}

	err = validation.ValidatePassword("New password", newPassword, s.minPasswordLength)
	if err != nil {
		return apperror.NewValidation(err.Error())
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.userRepository.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	err = s.emailService.SendPasswordChangedEmail(ctx, user.Email, user.DisplayName())
	if err != nil {
		slog.Warn("failed to send password changed email", "error", err, "user_id", userID)
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}
