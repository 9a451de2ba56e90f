package service

import (
	"errors"
	"fmt"

	"agriconnect/internal/model"
	"agriconnect/internal/repository"
	"agriconnect/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrListingNotFound   = errors.New("no listing found for product")
	ErrInsufficientStock = errors.New("insufficient stock for product")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderNotPayable   = errors.New("order is not in a payable state")
	ErrNotOrderSeller    = errors.New("no listing of yours is part of this order")
	ErrNotOrderBuyer     = errors.New("order belongs to another buyer")
)

type OrderService interface {
	PlaceOrder(buyerID uuid.UUID, req *PlaceOrderRequest) (*model.Order, error)
	GetOrder(requesterID, orderID uuid.UUID) (*model.Order, error)
	BuyerOrders(buyerID uuid.UUID) ([]model.Order, error)
	FarmerOrders(sellerID uuid.UUID) ([]model.Order, error)
	AcceptOrder(sellerID, orderID uuid.UUID) (*model.Order, error)
	RejectOrder(sellerID, orderID uuid.UUID) (*model.Order, error)
	PayOrder(buyerID, orderID uuid.UUID) (*model.Order, error)
}

type PlaceOrderRequest struct {
	Items []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type orderService struct {
	orderRepo   repository.OrderRepository
	listingRepo repository.ListingRepository
	db          *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, listingRepo repository.ListingRepository, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		db:          db,
	}
}

// PlaceOrder validates stock for every line, then atomically inserts the
// order with its items and decrements listing stock. Listings are resolved
// by product id alone: when several sellers list the same product the first
// by seller id is charged. Any failure after validation rolls the whole
// transaction back; no partial order or stock decrement is ever visible.
func (s *orderService) PlaceOrder(buyerID uuid.UUID, req *PlaceOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if errs := validator.ValidateStruct(&item); len(errs) > 0 {
			firstErr := errs[0]
			return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
		}
		if seen[item.ProductID] {
			return nil, fmt.Errorf("%w: duplicate product %s", ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = true
	}

	var created *model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		order := &model.Order{
			UserID: buyerID,
			Status: model.OrderPending,
		}

		for _, item := range req.Items {
			// Lock the listing row so concurrent placements against the
			// same listing serialize on the stock check.
			listing, err := s.listingRepo.FindByProductForUpdate(tx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrListingNotFound, item.ProductID)
				}
				return err
			}
			if item.Quantity > listing.StockQuantity {
				return fmt.Errorf("%w: %s (requested %d, available %d)",
					ErrInsufficientStock, item.ProductID, item.Quantity, listing.StockQuantity)
			}

			lineTotal := listing.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)

			order.Items = append(order.Items, model.OrderItem{
				ProductID:       item.ProductID,
				SellerID:        listing.UserID,
				PriceAtPurchase: listing.Price,
				Quantity:        item.Quantity,
			})

			newStock := listing.StockQuantity - item.Quantity
			if err := s.listingRepo.UpdateStock(tx, listing.UserID, listing.ProductID, newStock); err != nil {
				return err
			}
		}

		order.TotalPrice = total
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetOrder returns the order if the requester is its buyer or a seller who
// supplied one of its lines.
func (s *orderService) GetOrder(requesterID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == requesterID || sellerHasLine(order, requesterID) {
		return order, nil
	}
	return nil, ErrNotOrderBuyer
}

func (s *orderService) BuyerOrders(buyerID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByBuyer(buyerID)
}

func (s *orderService) FarmerOrders(sellerID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindBySeller(sellerID)
}

// AcceptOrder moves a pending order to accepted. Stock stays as reserved at
// placement. Only a seller with a line in the order may accept it.
func (s *orderService) AcceptOrder(sellerID, orderID uuid.UUID) (*model.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(tx, orderID)
		if err != nil {
			return err
		}
		if !sellerHasLine(order, sellerID) {
			return ErrNotOrderSeller
		}
		if !model.CanTransition(order.Status, model.OrderAccepted) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, model.OrderAccepted)
		}
		return s.orderRepo.UpdateStatus(tx, orderID, model.OrderAccepted)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(orderID)
}

// RejectOrder moves a pending order to rejected and restocks the rejecting
// seller's own lines. Lines from other sellers in a multi-seller order keep
// their reservation until those sellers act.
func (s *orderService) RejectOrder(sellerID, orderID uuid.UUID) (*model.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(tx, orderID)
		if err != nil {
			return err
		}
		if !sellerHasLine(order, sellerID) {
			return ErrNotOrderSeller
		}
		if !model.CanTransition(order.Status, model.OrderRejected) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, model.OrderRejected)
		}

		for _, item := range order.Items {
			if item.SellerID != sellerID {
				continue
			}
			listing, err := s.listingRepo.FindForUpdate(tx, item.SellerID, item.ProductID)
			if err != nil {
				return err
			}
			newStock := listing.StockQuantity + item.Quantity
			if err := s.listingRepo.UpdateStock(tx, item.SellerID, item.ProductID, newStock); err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateStatus(tx, orderID, model.OrderRejected)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(orderID)
}

// PayOrder marks an accepted order as paid. Status flag only, no money moves.
func (s *orderService) PayOrder(buyerID, orderID uuid.UUID) (*model.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(tx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != buyerID {
			return ErrNotOrderBuyer
		}
		if !model.CanTransition(order.Status, model.OrderPaid) {
			return fmt.Errorf("%w: status is %s", ErrOrderNotPayable, order.Status)
		}
		return s.orderRepo.UpdateStatus(tx, orderID, model.OrderPaid)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(orderID)
}

func sellerHasLine(order *model.Order, sellerID uuid.UUID) bool {
	for _, item := range order.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}
