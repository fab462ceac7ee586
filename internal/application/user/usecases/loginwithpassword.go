package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/buildingai/cozepkg/internal/domain/user"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// TokenIssuer signs access tokens for an authenticated user.
type TokenIssuer interface {
	Generate(userID, username string, isRoot bool) (token string, expiresIn int64, err error)
}

type LoginWithPasswordCommand struct {
	Username string
	Password string
	IP       string
}

type LoginWithPasswordResult struct {
	UserID      string
	Username    string
	AccessToken string
	ExpiresIn   int64
}

type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*LoginWithPasswordResult, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, apperrors.NewValidationError("username and password are required")
	}

	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Unknown usernames and wrong passwords look the same to the caller.
	if existing == nil {
		return nil, apperrors.NewUnauthorizedError(user.ErrInvalidCredentials.Error())
	}

	if err := existing.VerifyPassword(cmd.Password, uc.passwordHasher); err != nil {
		uc.logger.Warnw("login rejected", "username", username, "ip", cmd.IP, "reason", err)
		if errors.Is(err, user.ErrUserDisabled) {
			return nil, apperrors.NewForbiddenError(err.Error())
		}
		return nil, apperrors.NewUnauthorizedError(user.ErrInvalidCredentials.Error())
	}

	token, expiresIn, err := uc.tokens.Generate(existing.ID(), existing.Username(), existing.IsRoot())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", existing.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to issue access token")
	}

	uc.logger.Infow("user logged in", "user_id", existing.ID(), "ip", cmd.IP)

	return &LoginWithPasswordResult{
		UserID:      existing.ID(),
		Username:    existing.Username(),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}
