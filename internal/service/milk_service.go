package service

import (
	"context"
	"strings"
	"time"

	"milk-platform-be/internal/constant"
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	milkTypesCacheKey = "milk_types"
	milkTypesCacheTTL = time.Minute
)

type IMilkService interface {
	ListTypes(ctx context.Context) ([]*dto.MilkTypeResponse, error)
	ListByType(ctx context.Context, milkType string) ([]*dto.MilkResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MilkResponse, error)
	Create(ctx context.Context, actor entity.Principal, req *dto.CreateMilkRequest) (*dto.MilkResponse, error)
	Update(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateMilkRequest) (*dto.MilkResponse, error)
	Delete(ctx context.Context, actor entity.Principal, id uuid.UUID) error
	ListMine(ctx context.Context, actor entity.Principal) ([]*dto.MilkResponse, error)
}

type milkService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
	notifier   Notifier
}

func NewMilkService(uowFactory unitofwork.RepositoryFactory, c *cache.Cache, notifier Notifier) IMilkService {
	return &milkService{
		uowFactory: uowFactory,
		cache:      c,
		notifier:   notifier,
	}
}

func (s *milkService) ListTypes(ctx context.Context) ([]*dto.MilkTypeResponse, error) {
	if cached, found := s.cache.Get(milkTypesCacheKey); found {
		return cached.([]*dto.MilkTypeResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	summaries, err := uow.MilkRepository().ListTypes(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list milk types", err)
	}

	res := make([]*dto.MilkTypeResponse, 0, len(summaries))
	for _, t := range summaries {
		res = append(res, &dto.MilkTypeResponse{MilkType: t.MilkType, SellerCount: t.SellerCount})
	}
	s.cache.Set(milkTypesCacheKey, res, milkTypesCacheTTL)
	return res, nil
}

func (s *milkService) ListByType(ctx context.Context, milkType string) ([]*dto.MilkResponse, error) {
	milkType = strings.TrimSpace(milkType)
	if milkType == "" {
		return nil, apperror.Validation("Milk type is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	milks, err := uow.MilkRepository().FindAll(ctx,
		specification.AvailableMilk{},
		specification.MilkTypeMatches{Type: milkType},
		specification.With("Seller"),
		specification.OrderBy{Field: "average_rating", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list sellers", err)
	}
	return toMilkResponses(milks), nil
}

func (s *milkService) Get(ctx context.Context, id uuid.UUID) (*dto.MilkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	milk, err := uow.MilkRepository().FindOne(ctx, specification.ByID{ID: id}, specification.With("Seller"))
	if err != nil {
		return nil, apperror.Internal("failed to load milk", err)
	}
	if milk == nil {
		return nil, apperror.NotFound("Milk product not found")
	}
	return toMilkResponse(milk), nil
}

func (s *milkService) Create(ctx context.Context, actor entity.Principal, req *dto.CreateMilkRequest) (*dto.MilkResponse, error) {
	if actor.Role != entity.UserRoleSeller {
		return nil, apperror.Forbidden("Only sellers can add milk products")
	}

	now := time.Now()
	milk := &entity.Milk{
		Id:                 uuid.New(),
		SellerId:           actor.Id,
		MilkType:           entity.MilkType(req.MilkType),
		CustomMilkType:     strings.TrimSpace(req.CustomMilkType),
		PricePerLiter:      req.PricePerLiter,
		FatPercentage:      req.FatPercentage,
		QualityDescription: req.QualityDescription,
		Nutrients: entity.Nutrients{
			Protein:  req.Nutrients.Protein,
			Calcium:  req.Nutrients.Calcium,
			Vitamins: req.Nutrients.Vitamins,
			Minerals: req.Nutrients.Minerals,
		},
		AvailabilityDays: req.AvailabilityDays,
		IsAvailable:      true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if req.IsAvailable != nil {
		milk.IsAvailable = *req.IsAvailable
	}
	if err := milk.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MilkRepository().Create(ctx, milk); err != nil {
		return nil, apperror.Internal("failed to create milk", err)
	}
	s.cache.Delete(milkTypesCacheKey)

	res := toMilkResponse(milk)
	s.notifier.Notify(ctx, BroadcastAudience, constant.EventNewMilkAdded, res)
	return res, nil
}

func (s *milkService) Update(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateMilkRequest) (*dto.MilkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	milk, err := s.findOwned(ctx, uow, actor, id, "update")
	if err != nil {
		return nil, err
	}

	if req.MilkType != nil {
		milk.MilkType = entity.MilkType(*req.MilkType)
	}
	if req.CustomMilkType != nil {
		milk.CustomMilkType = strings.TrimSpace(*req.CustomMilkType)
	}
	if req.PricePerLiter != nil {
		milk.PricePerLiter = *req.PricePerLiter
	}
	if req.FatPercentage != nil {
		milk.FatPercentage = *req.FatPercentage
	}
	if req.QualityDescription != nil {
		milk.QualityDescription = *req.QualityDescription
	}
	if req.Nutrients != nil {
		milk.Nutrients = entity.Nutrients{
			Protein:  req.Nutrients.Protein,
			Calcium:  req.Nutrients.Calcium,
			Vitamins: req.Nutrients.Vitamins,
			Minerals: req.Nutrients.Minerals,
		}
	}
	if req.AvailabilityDays != nil {
		milk.AvailabilityDays = req.AvailabilityDays
	}
	if req.IsAvailable != nil {
		milk.IsAvailable = *req.IsAvailable
	}
	if err := milk.Validate(); err != nil {
		return nil, err
	}

	milk.UpdatedAt = time.Now()
	if err := uow.MilkRepository().Update(ctx, milk); err != nil {
		return nil, apperror.Internal("failed to update milk", err)
	}
	s.cache.Delete(milkTypesCacheKey)

	res := toMilkResponse(milk)
	s.notifier.Notify(ctx, BroadcastAudience, constant.EventMilkUpdated, res)
	return res, nil
}

func (s *milkService) Delete(ctx context.Context, actor entity.Principal, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	milk, err := s.findOwned(ctx, uow, actor, id, "delete")
	if err != nil {
		return err
	}
	if err := uow.MilkRepository().Delete(ctx, milk.Id); err != nil {
		return apperror.Internal("failed to delete milk", err)
	}
	s.cache.Delete(milkTypesCacheKey)

	s.notifier.Notify(ctx, BroadcastAudience, constant.EventMilkDeleted, map[string]interface{}{
		"milkId":   milk.Id,
		"sellerId": milk.SellerId,
	})
	return nil
}

func (s *milkService) ListMine(ctx context.Context, actor entity.Principal) ([]*dto.MilkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	milks, err := uow.MilkRepository().FindAll(ctx,
		specification.OwnedBySeller{SellerID: actor.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list milk products", err)
	}
	return toMilkResponses(milks), nil
}

func (s *milkService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Principal, id uuid.UUID, action string) (*entity.Milk, error) {
	milk, err := uow.MilkRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to load milk", err)
	}
	if milk == nil {
		return nil, apperror.NotFound("Milk product not found")
	}
	if milk.SellerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized to " + action + " this milk product")
	}
	return milk, nil
}
