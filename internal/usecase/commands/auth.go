package commands

import (
	"context"
	"log/slog"

	"reimburse-api/internal/domain/operator"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/errs"
	"reimburse-api/internal/pkg/jwt"
	"reimburse-api/internal/pkg/password"
	"reimburse-api/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrOperatorInactive     = errs.New("operator inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	Operator    *queries.OperatorView
	AccessToken string
}

type AuthCommands interface {
	// Login authenticates with email and password.
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	// Exchange authenticates with an identity-provider token; the verified
	// email must belong to an active operator.
	Exchange(ctx context.Context, idpToken string) (*LoginResult, error)
	GetOperator(ctx context.Context, id uuid.UUID) (*queries.OperatorView, error)
}

type authCommandsImpl struct {
	operators  OperatorRepository
	verifier   IdentityVerifier
	jwtService *jwt.Service
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAuthCommands(operators OperatorRepository, verifier IdentityVerifier, jwtService *jwt.Service, clk clock.Clock, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		operators:  operators,
		verifier:   verifier,
		jwtService: jwtService,
		clock:      clk,
		logger:     logger,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	op, err := a.operators.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	if op.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(*op.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a.issueToken(ctx, op)
}

func (a *authCommandsImpl) Exchange(ctx context.Context, idpToken string) (*LoginResult, error) {
	email, err := a.verifier.VerifyToken(ctx, idpToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	op, err := a.operators.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	return a.issueToken(ctx, op)
}

func (a *authCommandsImpl) issueToken(ctx context.Context, op *operator.Operator) (*LoginResult, error) {
	if !op.IsActive {
		return nil, ErrOperatorInactive
	}

	token, err := a.jwtService.GenerateToken(op.ID, op.IsSuperuser)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if err := a.operators.UpdateLastLogin(ctx, op.ID, a.clock.Now()); err != nil {
		// Not critical, the login itself succeeded.
		a.logger.Warn("failed to update last login", "operator_id", op.ID, "error", err)
	}

	return &LoginResult{
		Operator:    operatorToView(op),
		AccessToken: token,
	}, nil
}

func (a *authCommandsImpl) GetOperator(ctx context.Context, id uuid.UUID) (*queries.OperatorView, error) {
	op, err := a.operators.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrAuthenticationFailed)
		}
		return nil, err
	}
	if !op.IsActive {
		return nil, ErrOperatorInactive
	}
	return operatorToView(op), nil
}

func operatorToView(op *operator.Operator) *queries.OperatorView {
	return &queries.OperatorView{
		ID:          op.ID,
		Email:       op.Email,
		Name:        op.Name,
		IsSuperuser: op.IsSuperuser,
		LastLogin:   op.LastLogin,
	}
}
