package service

import (
	"context"

	"milk-platform-be/internal/constant"
	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/pkg/schedule"

	"github.com/google/uuid"
)

var ratingRelations = specification.With("Customer", "Seller", "Milk")

type IRatingService interface {
	Create(ctx context.Context, actor entity.Principal, req *dto.CreateRatingRequest) (*dto.RatingResponse, error)
	Update(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error)
	Delete(ctx context.Context, actor entity.Principal, id uuid.UUID) error
	ListForSeller(ctx context.Context, sellerId uuid.UUID) (*dto.RatingListResponse, error)
	ListForMilk(ctx context.Context, milkId uuid.UUID) (*dto.RatingListResponse, error)
	ListMine(ctx context.Context, actor entity.Principal) ([]*dto.RatingResponse, error)
	ListReceived(ctx context.Context, actor entity.Principal, query *dto.ReceivedRatingQuery) ([]*dto.RatingResponse, error)
}

type ratingService struct {
	uowFactory unitofwork.RepositoryFactory
	calendar   schedule.Calendar
	notifier   Notifier
}

func NewRatingService(uowFactory unitofwork.RepositoryFactory, calendar schedule.Calendar, notifier Notifier) IRatingService {
	return &ratingService{
		uowFactory: uowFactory,
		calendar:   calendar,
		notifier:   notifier,
	}
}

func (s *ratingService) Create(ctx context.Context, actor entity.Principal, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if actor.Role != entity.UserRoleCustomer {
		return nil, apperror.Forbidden("Only customers can rate")
	}
	ratingType := entity.RatingType(req.RatingType)
	if err := checkScores(ratingType, req.MilkRating, req.SellerRating); err != nil {
		return nil, err
	}
	if ratingType.IncludesMilk() && req.MilkId == nil {
		return nil, apperror.Validation("Milk ID is required for milk rating type")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	seller, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.SellerId}, specification.ByRole{Role: string(entity.UserRoleSeller)})
	if err != nil {
		return nil, apperror.Internal("failed to load seller", err)
	}
	if seller == nil {
		return nil, apperror.NotFound("Seller not found")
	}

	if req.MilkId != nil {
		milk, err := uow.MilkRepository().FindOne(ctx, specification.ByID{ID: *req.MilkId})
		if err != nil {
			return nil, apperror.Internal("failed to load milk", err)
		}
		if milk == nil {
			return nil, apperror.NotFound("Milk product not found")
		}
		if milk.SellerId != seller.Id {
			return nil, apperror.Validation("Milk product does not belong to this seller")
		}
	}

	if req.OrderId != nil {
		if err := s.checkRatableOrder(ctx, uow, actor, seller.Id, *req.OrderId); err != nil {
			return nil, err
		}
	}

	now := s.calendar.Now()
	rating := &entity.Rating{
		Id:           uuid.New(),
		CustomerId:   actor.Id,
		SellerId:     seller.Id,
		MilkId:       req.MilkId,
		OrderId:      req.OrderId,
		RatingType:   ratingType,
		MilkReview:   req.MilkReview,
		SellerReview: req.SellerReview,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ratingType.IncludesMilk() {
		rating.MilkRating = req.MilkRating
	}
	if ratingType.IncludesSeller() {
		rating.SellerRating = req.SellerRating
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.RatingRepository().Create(ctx, rating); err != nil {
		return nil, apperror.Internal("failed to create rating", err)
	}
	if err := s.recompute(ctx, uow, rating); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit rating", err)
	}

	res, err := s.load(ctx, rating.Id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, SellerAudience(rating.SellerId), constant.EventNewRating, res)
	return res, nil
}

func (s *ratingService) Update(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	rating, err := s.findOwned(ctx, uow, actor, id, "update")
	if err != nil {
		return nil, err
	}

	if req.MilkRating != nil && rating.RatingType.IncludesMilk() {
		rating.MilkRating = req.MilkRating
	}
	if req.SellerRating != nil && rating.RatingType.IncludesSeller() {
		rating.SellerRating = req.SellerRating
	}
	if req.MilkReview != nil {
		rating.MilkReview = *req.MilkReview
	}
	if req.SellerReview != nil {
		rating.SellerReview = *req.SellerReview
	}
	if err := checkScores(rating.RatingType, rating.MilkRating, rating.SellerRating); err != nil {
		return nil, err
	}
	rating.UpdatedAt = s.calendar.Now()

	if err := uow.RatingRepository().Update(ctx, rating); err != nil {
		return nil, apperror.Internal("failed to update rating", err)
	}
	if err := s.recompute(ctx, uow, rating); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit rating", err)
	}

	res, err := s.load(ctx, rating.Id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, SellerAudience(rating.SellerId), constant.EventRatingUpdated, res)
	return res, nil
}

func (s *ratingService) Delete(ctx context.Context, actor entity.Principal, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	rating, err := s.findOwned(ctx, uow, actor, id, "delete")
	if err != nil {
		return err
	}
	if err := uow.RatingRepository().Delete(ctx, rating.Id); err != nil {
		return apperror.Internal("failed to delete rating", err)
	}
	if err := s.recompute(ctx, uow, rating); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("failed to commit rating", err)
	}
	return nil
}

func (s *ratingService) ListForSeller(ctx context.Context, sellerId uuid.UUID) (*dto.RatingListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	seller, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: sellerId}, specification.ByRole{Role: string(entity.UserRoleSeller)})
	if err != nil {
		return nil, apperror.Internal("failed to load seller", err)
	}
	if seller == nil {
		return nil, apperror.NotFound("Seller not found")
	}

	ratings, err := uow.RatingRepository().FindAll(ctx,
		specification.OwnedBySeller{SellerID: sellerId},
		specification.With("Customer", "Milk"),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list ratings", err)
	}
	return &dto.RatingListResponse{
		Ratings:       toRatingResponses(ratings),
		AverageRating: seller.AverageRating,
		TotalRatings:  seller.TotalRatings,
	}, nil
}

func (s *ratingService) ListForMilk(ctx context.Context, milkId uuid.UUID) (*dto.RatingListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	milk, err := uow.MilkRepository().FindOne(ctx, specification.ByID{ID: milkId})
	if err != nil {
		return nil, apperror.Internal("failed to load milk", err)
	}
	if milk == nil {
		return nil, apperror.NotFound("Milk product not found")
	}

	ratings, err := uow.RatingRepository().FindAll(ctx,
		specification.ByMilk{MilkID: milkId},
		specification.With("Customer"),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list ratings", err)
	}
	return &dto.RatingListResponse{
		Ratings:       toRatingResponses(ratings),
		AverageRating: milk.AverageRating,
		TotalRatings:  milk.TotalRatings,
	}, nil
}

func (s *ratingService) ListMine(ctx context.Context, actor entity.Principal) ([]*dto.RatingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ratings, err := uow.RatingRepository().FindAll(ctx,
		specification.OwnedByCustomer{CustomerID: actor.Id},
		specification.With("Seller", "Milk", "Order"),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list ratings", err)
	}
	return toRatingResponses(ratings), nil
}

func (s *ratingService) ListReceived(ctx context.Context, actor entity.Principal, query *dto.ReceivedRatingQuery) ([]*dto.RatingResponse, error) {
	specs := []specification.Specification{
		specification.OwnedBySeller{SellerID: actor.Id},
		specification.With("Customer", "Milk", "Order"),
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if query.RatingType != "" {
		if !entity.RatingType(query.RatingType).Valid() {
			return nil, apperror.Validation("Invalid rating type: %s", query.RatingType)
		}
		specs = append(specs, specification.ByRatingType{RatingType: query.RatingType})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ratings, err := uow.RatingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list ratings", err)
	}
	return toRatingResponses(ratings), nil
}

func (s *ratingService) checkRatableOrder(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Principal, sellerId, orderId uuid.UUID) error {
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return apperror.Internal("failed to load order", err)
	}
	if order == nil {
		return apperror.NotFound("Order not found")
	}
	if order.CustomerId != actor.Id {
		return apperror.Forbidden("Not authorized to rate this order")
	}
	if order.SellerId != sellerId {
		return apperror.Validation("Order does not belong to this seller")
	}
	if order.Status != entity.OrderStatusDelivered {
		return apperror.State("Can only rate delivered orders")
	}

	existing, err := uow.RatingRepository().FindOne(ctx,
		specification.OwnedByCustomer{CustomerID: actor.Id},
		specification.ByOrder{OrderID: orderId},
	)
	if err != nil {
		return apperror.Internal("failed to check existing rating", err)
	}
	if existing != nil {
		return apperror.State("You have already rated this order")
	}
	return nil
}

func (s *ratingService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Principal, id uuid.UUID, action string) (*entity.Rating, error) {
	rating, err := uow.RatingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to load rating", err)
	}
	if rating == nil {
		return nil, apperror.NotFound("Rating not found")
	}
	if rating.CustomerId != actor.Id {
		return nil, apperror.Forbidden("Not authorized to " + action + " this rating")
	}
	return rating, nil
}

// recompute refreshes the running averages touched by rating.
func (s *ratingService) recompute(ctx context.Context, uow unitofwork.UnitOfWork, rating *entity.Rating) error {
	if rating.RatingType.IncludesSeller() {
		agg, err := uow.RatingRepository().SellerAggregate(ctx, rating.SellerId)
		if err != nil {
			return apperror.Internal("failed to aggregate seller ratings", err)
		}
		if err := uow.UserRepository().UpdateRating(ctx, rating.SellerId, agg); err != nil {
			return apperror.Internal("failed to store seller rating", err)
		}
	}
	if rating.RatingType.IncludesMilk() && rating.MilkId != nil {
		agg, err := uow.RatingRepository().MilkAggregate(ctx, *rating.MilkId)
		if err != nil {
			return apperror.Internal("failed to aggregate milk ratings", err)
		}
		if err := uow.MilkRepository().UpdateRating(ctx, *rating.MilkId, agg); err != nil {
			return apperror.Internal("failed to store milk rating", err)
		}
	}
	return nil
}

func (s *ratingService) load(ctx context.Context, id uuid.UUID) (*dto.RatingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rating, err := uow.RatingRepository().FindOne(ctx, specification.ByID{ID: id}, ratingRelations)
	if err != nil {
		return nil, apperror.Internal("failed to load rating", err)
	}
	if rating == nil {
		return nil, apperror.NotFound("Rating not found")
	}
	return toRatingResponse(rating), nil
}

func checkScores(ratingType entity.RatingType, milkRating, sellerRating *int) error {
	inRange := func(v *int) bool { return v != nil && *v >= 1 && *v <= 5 }

	switch ratingType {
	case entity.RatingTypeMilk:
		if !inRange(milkRating) {
			return apperror.Validation("Milk rating is required for milk rating type")
		}
	case entity.RatingTypeSeller:
		if !inRange(sellerRating) {
			return apperror.Validation("Seller rating is required for seller rating type")
		}
	case entity.RatingTypeBoth:
		if !inRange(milkRating) || !inRange(sellerRating) {
			return apperror.Validation("Both milk and seller ratings are required")
		}
	default:
		return apperror.Validation("Invalid rating type: %s", ratingType)
	}
	return nil
}
