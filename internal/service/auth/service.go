package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/leavedesk/leave-backend-go/internal/domain/auth"
	"github.com/leavedesk/leave-backend-go/internal/domain/leave"
	"github.com/leavedesk/leave-backend-go/internal/domain/user"
	"github.com/leavedesk/leave-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	tx       leave.Transactor
	users    user.Repository
	balances leave.BalanceRepository
	jwt      jwt.Service
}

func NewAuthService(tx leave.Transactor, users user.Repository, balances leave.BalanceRepository, jwtService jwt.Service) *Service {
	return &Service{
		tx:       tx,
		users:    users,
		balances: balances,
		jwt:      jwtService,
	}
}

// Register creates the user and seeds the default leave balances in one
// transaction.
func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) (user.Profile, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.Profile{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.Profile{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.Profile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.users.Create(ctx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := s.balances.InitDefaults(ctx, created.ID); err != nil {
			return fmt.Errorf("failed to seed balances: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.Profile{}, err
	}

	balances := make(map[string]int, len(leave.AllTypes()))
	for _, t := range leave.AllTypes() {
		balances[string(t)] = leave.DefaultBalance(t)
	}

	return user.Profile{
		ID:       created.ID,
		Name:     created.Name,
		Email:    created.Email,
		IsAdmin:  created.IsAdmin,
		Balances: balances,
	}, nil
}

func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// Refresh rotates the refresh token and issues a fresh access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwt.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := s.jwt.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := decoded.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userIDVal, ok := decoded.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	s.jwt.RevokeToken(refreshToken)

	return s.issueTokens(u)
}

func (s *Service) Logout(refreshToken string) {
	if refreshToken != "" {
		s.jwt.RevokeToken(refreshToken)
	}
}

// Profile returns the user record with the per-type balances attached.
func (s *Service) Profile(ctx context.Context, userID string) (user.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}

	balances := make(map[string]int, len(leave.AllTypes()))
	for _, t := range leave.AllTypes() {
		remaining, err := s.balances.Get(ctx, userID, t)
		if err != nil {
			return user.Profile{}, fmt.Errorf("failed to load balance: %w", err)
		}
		balances[string(t)] = remaining
	}

	return user.Profile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		Balances: balances,
	}, nil
}

func (s *Service) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}
