package service

import (
	"context"
	"strings"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICustomerService interface {
	List(ctx context.Context, principal entity.Principal) ([]*dto.CustomerResponse, error)
	Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.CustomerResponse, error)
	Create(ctx context.Context, principal entity.Principal, req *dto.CustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.CustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error

	ListKeywords(ctx context.Context, principal entity.Principal, customerId uuid.UUID) ([]dto.KeywordResponse, error)
	AddKeywords(ctx context.Context, principal entity.Principal, customerId uuid.UUID, req *dto.AddKeywordsRequest) (*dto.AddKeywordsResponse, error)
	DeleteKeyword(ctx context.Context, principal entity.Principal, customerId, keywordId uuid.UUID) error
}

type customerService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCustomerService(uowFactory unitofwork.RepositoryFactory) ICustomerService {
	return &customerService{
		uowFactory: uowFactory,
	}
}

// owned loads a customer of the caller. Foreign customers read as missing.
func (s *customerService) owned(ctx context.Context, uow unitofwork.UnitOfWork, principal entity.Principal, id uuid.UUID) (*entity.Customer, error) {
	customer, err := uow.CustomerRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: principal.UserID},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if customer == nil {
		return nil, apperror.NotFound("customer not found")
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context, principal entity.Principal) ([]*dto.CustomerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customers, err := uow.CustomerRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: principal.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	res := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		res = append(res, toCustomerResponse(c, nil))
	}
	return res, nil
}

func (s *customerService) Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.CustomerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := s.owned(ctx, uow, principal, id)
	if err != nil {
		return nil, err
	}
	keywords, err := uow.CustomerRepository().FindKeywords(ctx,
		specification.ByCustomerID{CustomerID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toCustomerResponse(customer, keywords), nil
}

func (s *customerService) Create(ctx context.Context, principal entity.Principal, req *dto.CustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return nil, apperror.InvalidArgument("business_name is required")
	}
	customer := &entity.Customer{
		UserId:       principal.UserID,
		BusinessName: name,
		PlaceId:      req.PlaceId,
		PlaceUrl:     req.PlaceUrl,
		Contact:      req.Contact,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
		return nil, apperror.Internal(err)
	}
	return toCustomerResponse(customer, nil), nil
}

func (s *customerService) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.CustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return nil, apperror.InvalidArgument("business_name is required")
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := s.owned(ctx, uow, principal, id)
	if err != nil {
		return nil, err
	}
	customer.BusinessName = name
	customer.PlaceId = req.PlaceId
	customer.PlaceUrl = req.PlaceUrl
	customer.Contact = req.Contact
	if err := uow.CustomerRepository().Update(ctx, customer); err != nil {
		return nil, apperror.Internal(err)
	}
	return toCustomerResponse(customer, nil), nil
}

func (s *customerService) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	if _, err := s.owned(ctx, uow, principal, id); err != nil {
		return err
	}
	if err := uow.CustomerRepository().Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *customerService) ListKeywords(ctx context.Context, principal entity.Principal, customerId uuid.UUID) ([]dto.KeywordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.owned(ctx, uow, principal, customerId); err != nil {
		return nil, err
	}
	keywords, err := uow.CustomerRepository().FindKeywords(ctx,
		specification.ByCustomerID{CustomerID: customerId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toKeywordResponses(keywords), nil
}

// AddKeywords trims input, drops empties and skips anything already present
// on the customer or earlier in the same batch, comparing case-insensitively.
func (s *customerService) AddKeywords(ctx context.Context, principal entity.Principal, customerId uuid.UUID, req *dto.AddKeywordsRequest) (*dto.AddKeywordsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	if _, err := s.owned(ctx, uow, principal, customerId); err != nil {
		return nil, err
	}
	existing, err := uow.CustomerRepository().FindKeywords(ctx, specification.ByCustomerID{CustomerID: customerId})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := make(map[string]bool, len(existing)+len(req.Keywords))
	for _, k := range existing {
		seen[strings.ToLower(k.Keyword)] = true
	}

	toAdd := []*entity.CustomerKeyword{}
	duplicates := []string{}
	for _, raw := range req.Keywords {
		kw := strings.TrimSpace(raw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			duplicates = append(duplicates, kw)
			continue
		}
		seen[key] = true
		toAdd = append(toAdd, &entity.CustomerKeyword{CustomerId: customerId, Keyword: kw})
	}

	if err := uow.CustomerRepository().CreateKeywords(ctx, toAdd); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}
	return &dto.AddKeywordsResponse{
		Added:      toKeywordResponses(toAdd),
		Duplicates: duplicates,
	}, nil
}

func (s *customerService) DeleteKeyword(ctx context.Context, principal entity.Principal, customerId, keywordId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.owned(ctx, uow, principal, customerId); err != nil {
		return err
	}
	deleted, err := uow.CustomerRepository().DeleteKeyword(ctx, customerId, keywordId)
	if err != nil {
		return apperror.Internal(err)
	}
	if deleted == 0 {
		return apperror.NotFound("keyword not found")
	}
	return nil
}

func toKeywordResponses(keywords []*entity.CustomerKeyword) []dto.KeywordResponse {
	res := make([]dto.KeywordResponse, 0, len(keywords))
	for _, k := range keywords {
		res = append(res, dto.KeywordResponse{Id: k.Id, Keyword: k.Keyword, CreatedAt: k.CreatedAt})
	}
	return res
}

func toCustomerResponse(c *entity.Customer, keywords []*entity.CustomerKeyword) *dto.CustomerResponse {
	res := &dto.CustomerResponse{
		Id:           c.Id,
		BusinessName: c.BusinessName,
		PlaceId:      c.PlaceId,
		PlaceUrl:     c.PlaceUrl,
		Contact:      c.Contact,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if keywords != nil {
		res.Keywords = toKeywordResponses(keywords)
	}
	return res
}
