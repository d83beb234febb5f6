package account

import (
	"context"
	"errors"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/auth"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/repository"
	"github.com/oggyb/skillswap/internal/rpc"
)

// Service implements the Account gRPC API. It stands in for a hosted auth
// provider: email + password accounts and signed bearer tokens.
type Service struct {
	appCtx   *app.AppContext
	accounts *repository.AccountRepository
	profiles *repository.ProfileRepository
}

var _ rpc.AccountServer = (*Service)(nil)

func NewAccountService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		accounts: repository.NewAccountRepository(appCtx.DB),
		profiles: repository.NewProfileRepository(appCtx.DB, appCtx.Catalog),
	}
}

// Register creates an account. The new user has no profile until the first
// UpsertProfile.
func (s *Service) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	s.appCtx.Logger.Debug("Register called", "email", req.Email)

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	acc, err := s.accounts.Create(ctx, req.Email, hash)
	if err != nil {
		s.appCtx.Logger.Error("Register failed", "email", req.Email, "err", err)
		return nil, svcErr.Map(err)
	}
	return &rpc.RegisterResponse{UserID: acc.ID}, nil
}

// Login checks the password and issues a bearer token.
//
// Behavior:
//   - Unknown email and wrong password look the same to the caller.
//   - A successful login stamps last_login_at.
func (s *Service) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	s.appCtx.Logger.Debug("Login called", "email", req.Email)

	acc, err := s.accounts.GetByEmail(ctx, req.Email)
	if errors.Is(err, svcErr.ErrNotFound) || (err == nil && !auth.CheckPassword(acc.PasswordHash, req.Password)) {
		return nil, svcErr.Map(svcErr.Unauthenticated("invalid email or password"))
	}
	if err != nil {
		s.appCtx.Logger.Error("Login lookup failed", "err", err)
		return nil, svcErr.Map(err)
	}

	if err := s.accounts.TouchLogin(ctx, acc.ID); err != nil {
		s.appCtx.Logger.Warn("failed to record login", "user", acc.ID, "err", err)
	}

	token, exp, err := s.appCtx.Tokens.Issue(auth.Identity{ID: acc.ID, Email: acc.Email})
	if err != nil {
		s.appCtx.Logger.Error("token issue failed", "user", acc.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &rpc.LoginResponse{Token: token, UserID: acc.ID, ExpiresAt: exp.Unix()}, nil
}

// WhoAmI echoes the caller and whether onboarding has produced a profile.
func (s *Service) WhoAmI(ctx context.Context, _ *rpc.WhoAmIRequest) (*rpc.WhoAmIResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	has, err := s.profiles.Exists(ctx, id.ID)
	if err != nil {
		s.appCtx.Logger.Error("profile lookup failed", "user", id.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &rpc.WhoAmIResponse{UserID: id.ID, Email: id.Email, HasProfile: has}, nil
}
