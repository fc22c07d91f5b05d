package services

import (
	"context"
	"log/slog"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	"github.com/hoalu/hoalu-backend/internal/core/domain"
	portsrepo "github.com/hoalu/hoalu-backend/internal/core/ports/repositories"
	"github.com/hoalu/hoalu-backend/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct{}

// GetLogger gets the request-scoped logger from context or the default one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting.
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// AuthorizeMember resolves the caller's membership in a workspace and checks
// it against the required role. Missing workspace and missing membership both
// surface as ErrNotFound; an insufficient role surfaces as ErrForbidden.
func (s *BaseService) AuthorizeMember(ctx context.Context, members portsrepo.MembershipReader, workspaceID, userID string, required domain.MemberRole) (*domain.Member, error) {
	member, err := members.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !member.Can(required) {
		s.LogWarn(ctx, "Member lacks required role",
			slog.String("workspace_id", workspaceID),
			slog.String("required_role", string(required)),
			slog.String("role", string(member.Role)))
		return nil, apperrors.NewForbiddenError("insufficient role for this action")
	}
	return member, nil
}
