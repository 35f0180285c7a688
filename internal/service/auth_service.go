package service

import (
	"errors"
	"fmt"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/jwt"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/validator"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(user *model.User, password string) (*model.User, error)
	Login(email, password string) (string, *model.User, error)
	UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(user *model.User, password string) (*model.User, error) {
	if errs := validator.ValidateStruct(user); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, validator.FirstError(errs))
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindByEmail(user.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	if user.Role == "" {
		user.Role = model.RoleStaff
	}
	user.IsActive = true
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates against active users only and issues a JWT.
func (s *authService) Login(email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrNotFound)
	}

	if !user.CheckPassword(password) {
		return "", nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrNotFound)
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName(), string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrValidation)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}
