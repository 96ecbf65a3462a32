// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/internal/pkg/mailer"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = apperror.Unauthorized("Invalid credentials")

type IAuthService interface {
	SignupCustomer(ctx context.Context, req *dto.CustomerSignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, role entity.UserRole, req *dto.LoginRequest) (*dto.AuthResponse, error)
	CreateSeller(ctx context.Context, actor entity.Principal, req *dto.CreateSellerRequest) (*dto.UserResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type AuthSettings struct {
	JwtSecret string
	TokenTTL  time.Duration
	LoginURL  string
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	settings     AuthSettings
	logger       logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, settings AuthSettings, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		settings:     settings,
		logger:       log,
	}
}

// HashPassword is shared with the seed command.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) SignupCustomer(ctx context.Context, req *dto.CustomerSignupRequest) (*dto.AuthResponse, error) {
	user, err := s.createUser(ctx, &entity.User{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Role:    entity.UserRoleCustomer,
		Address: toAddressEntity(req.Address),
	}, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, role entity.UserRole, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByEmail{Email: strings.TrimSpace(req.Email)},
		specification.ByRole{Role: string(role)},
	)
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("Account is deactivated")
	}
	return s.issue(user)
}

func (s *authService) CreateSeller(ctx context.Context, actor entity.Principal, req *dto.CreateSellerRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("Only admins can create seller accounts")
	}
	createdBy := actor.Id
	seller, err := s.createUser(ctx, &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Role:         entity.UserRoleSeller,
		BusinessName: strings.TrimSpace(req.BusinessName),
		Address:      toAddressEntity(req.Address),
		CreatedBy:    &createdBy,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendSellerWelcome(seller.Email, seller.Name, seller.BusinessName, s.settings.LoginURL); err != nil {
		s.logger.Warn("AuthService", "Failed to send seller welcome email", map[string]interface{}{"seller_id": seller.Id, "error": err.Error()})
	}
	return toUserResponse(seller), nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return toUserResponse(user), nil
}

func (s *authService) createUser(ctx context.Context, user *entity.User, password string) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: user.Email})
	if err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.Validation("User already exists with this email")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	now := time.Now()
	user.Id = uuid.New()
	user.PasswordHash = hash
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Internal(fmt.Sprintf("failed to create %s", user.Role), err)
	}
	return user, nil
}

func (s *authService) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := serverutils.IssueToken(s.settings.JwtSecret, entity.Principal{Id: user.Id, Role: user.Role}, s.settings.TokenTTL)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
