package service

import (
	"context"
	"errors"
	"fmt"

	"agriconnect/internal/model"
	"agriconnect/internal/repository"
	"agriconnect/internal/session"
	"agriconnect/pkg/validator"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrUserTypeNotFound   = errors.New("user type not found")
)

type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	UserTypeID uint   `json:"user_type_id" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo     repository.UserRepository
	userTypeRepo repository.UserTypeRepository
	sessions     session.Store
}

func NewAuthService(userRepo repository.UserRepository, userTypeRepo repository.UserTypeRepository, sessions session.Store) AuthService {
	return &authService{
		userRepo:     userRepo,
		userTypeRepo: userTypeRepo,
		sessions:     sessions,
	}
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}

	userType, err := s.userTypeRepo.FindByID(req.UserTypeID)
	if err != nil {
		return nil, ErrUserTypeNotFound
	}

	user := &model.User{
		Name:       req.Name,
		Email:      req.Email,
		UserTypeID: userType.ID,
		UserType:   userType,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
