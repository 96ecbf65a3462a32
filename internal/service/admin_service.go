package service

import (
	"context"

	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	ListUsers(ctx context.Context, query *dto.UserListQuery) ([]*dto.UserResponse, error)
	SetUserActive(ctx context.Context, userId uuid.UUID, active bool) (*dto.UserResponse, error)
	GetSystemLogs(ctx context.Context, query *dto.LogListQuery) ([]logger.LogEntry, error)
	GetLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *adminService) ListUsers(ctx context.Context, query *dto.UserListQuery) ([]*dto.UserResponse, error) {
	specs := []specification.Specification{specification.OrderBy{Field: "created_at", Desc: true}}
	if query.Role != "" {
		role := entity.UserRole(query.Role)
		if role != entity.UserRoleCustomer && role != entity.UserRoleSeller && role != entity.UserRoleAdmin {
			return nil, apperror.Validation("Invalid role: %s", query.Role)
		}
		specs = append(specs, specification.ByRole{Role: query.Role})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list users", err)
	}
	res := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, toUserResponse(u))
	}
	return res, nil
}

func (s *adminService) SetUserActive(ctx context.Context, userId uuid.UUID, active bool) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	if user.Role == entity.UserRoleAdmin && !active {
		return nil, apperror.Validation("Admin accounts cannot be deactivated")
	}

	user.IsActive = active
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Internal("failed to update user", err)
	}
	s.logger.Info("AdminService", "User activation changed", map[string]interface{}{"user_id": userId, "is_active": active})
	return toUserResponse(user), nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, query *dto.LogListQuery) ([]logger.LogEntry, error) {
	limit := query.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	logs, err := s.logger.GetLogs(query.Level, limit, offset)
	if err != nil {
		return nil, apperror.Internal("failed to read logs", err)
	}
	return logs, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error) {
	entry, err := s.logger.GetLogById(logId)
	if err != nil {
		return nil, apperror.Internal("failed to read logs", err)
	}
	if entry == nil {
		return nil, apperror.NotFound("Log entry not found")
	}
	return entry, nil
}
