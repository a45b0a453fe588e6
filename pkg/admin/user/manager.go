package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/database"
	"adorder-be/pkg/events"

	"golang.org/x/crypto/bcrypt"
)

const accountCodeAttempts = 3

// Manager handles user-related admin operations
type Manager struct {
	logger    logger.ILogger
	publisher events.Publisher
}

// NewManager creates a new user manager
func NewManager(logger logger.ILogger, publisher events.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
	}
}

// GenerateAccountCode returns "AD" followed by six random digits.
func GenerateAccountCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AD%06d", n), nil
}

// Create hashes the password, assigns an account code and stores the user.
// A clashing account code is retried; a clashing email is a Conflict.
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.AdminCreateUserRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	tier := entity.UserTier(req.Tier)
	if !tier.Valid() {
		return nil, apperror.InvalidArgument("invalid tier")
	}

	// 1. Check existing
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict(apperror.ReasonDuplicate, "email already exists")
	}

	// 2. Hash Password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	hashStr := string(hash)

	// 3. Create User
	user := &entity.User{
		Email:        email,
		PasswordHash: &hashStr,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Tier:         tier,
	}
	for attempt := 0; ; attempt++ {
		code, err := GenerateAccountCode()
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.AccountCode = code
		err = uow.UserRepository().Create(ctx, user)
		if err == nil {
			break
		}
		if !database.IsUniqueViolation(err) || attempt+1 >= accountCodeAttempts {
			if database.IsUniqueViolation(err) {
				return nil, apperror.Conflict(apperror.ReasonDuplicate, "email or account code already exists")
			}
			return nil, apperror.Internal(err)
		}
	}

	m.logger.Info("ADMIN", "Created User", map[string]interface{}{
		"userId": user.Id.String(),
		"tier":   string(user.Tier),
	})
	m.publisher.PublishUserRegistered(ctx, user.Id, user.Email, string(user.Tier))

	return user, nil
}

// FindAll retrieves users newest first with pagination and an optional tier filter
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, tier string) ([]*entity.User, int64, error) {
	specs := []specification.Specification{}
	if tier != "" {
		specs = append(specs, specification.ByTier{Tier: tier})
	}
	total, err := uow.UserRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	users, err := uow.UserRepository().FindAll(ctx, append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(page, limit),
	)...)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return users, total, nil
}
