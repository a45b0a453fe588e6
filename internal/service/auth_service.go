// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"strings"
	"time"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/admin/dashboard"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, principal entity.Principal) (*dto.UserResponse, error)
	Dashboard(ctx context.Context, principal entity.Principal) (*dto.DashboardResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
	logger     logger.ILogger
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	aggregator *dashboard.Aggregator,
	log logger.ILogger,
	jwtSecret string,
	tokenTTL time.Duration,
) IAuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		uowFactory: uowFactory,
		aggregator: aggregator,
		logger:     log,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

// IssueToken signs an HS256 access token carrying the caller's id, tier and role.
func IssueToken(user *entity.User, secret string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"tier":    string(user.Tier),
		"role":    string(user.Tier.Role()),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	// 1. Check if user exists
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: strings.ToLower(strings.TrimSpace(req.Email))})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	// 2. Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	// 3. Generate JWT
	token, expiresAt, err := IssueToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{"user_id": user.Id.String()})
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, principal entity.Principal) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: principal.UserID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) Dashboard(ctx context.Context, principal entity.Principal) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	summary, err := s.aggregator.GetSummary(ctx, uow, principal.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if summary.User == nil {
		return nil, apperror.NotFound("user not found")
	}

	recent := make([]dto.OrderResponse, 0, len(summary.RecentOrders))
	for _, o := range summary.RecentOrders {
		recent = append(recent, toOrderResponse(o))
	}
	return &dto.DashboardResponse{
		User:                 toUserResponse(summary.User),
		Balance:              summary.Balance,
		RecentOrders:         recent,
		PendingRequestsCount: summary.PendingRequestsCount,
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:          u.Id,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CompanyName: u.CompanyName,
		AccountCode: u.AccountCode,
		Tier:        string(u.Tier),
		Role:        string(u.Tier.Role()),
		CreatedAt:   u.CreatedAt,
	}
}
