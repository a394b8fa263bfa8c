package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopsphere/storefront/internal/domain"
	"github.com/shopsphere/storefront/internal/repository"
	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single line item.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct line items in a cart.
	MaxItemsPerCart = 50
)

// CartEventPublisher emits cart lifecycle events. Publishing is best-effort:
// failures are logged, never surfaced.
type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, profileID string) error
}

// AddItemInput holds the parameters for adding an item to the cart. Stock is
// the product's current stock count, snapshotted as the line's quantity
// ceiling; 0 means the product reports no ceiling.
type AddItemInput struct {
	ProductID string
	Name      string
	Price     int64
	ImageURL  string
	Quantity  int
	Stock     int
}

// CartService implements the cart state machine: merge-by-product adds,
// ceiling clamping, quantity updates with zero-removal, and wholesale
// persistence after every mutation.
type CartService struct {
	repo      repository.CartRepository
	publisher CartEventPublisher
	logger    *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, publisher CartEventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Get restores the cart for a profile. A missing or malformed persisted cart
// yields an empty cart; the parse failure is swallowed, not surfaced.
func (s *CartService) Get(ctx context.Context, profileID string) (*domain.Cart, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}
	return s.restore(ctx, profileID)
}

// AddItem adds a product to the cart. If a line item with the same product id
// exists, quantities merge: clamped to the stock ceiling captured when the
// item was first added, or uncapped when no ceiling was reported. New items
// snapshot the product's current stock as their ceiling. The full line-item
// sequence is persisted afterward.
func (s *CartService) AddItem(ctx context.Context, profileID string, input AddItemInput) (*domain.Cart, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Stock < 0 {
		input.Stock = 0
	}

	cart, err := s.restore(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(input.ProductID); i >= 0 {
		newQty := cart.Items[i].Quantity + input.Quantity
		// Clamp to the ceiling captured at first add; 0 means unlimited.
		if ceiling := cart.Items[i].Stock; ceiling > 0 && newQty > ceiling {
			newQty = ceiling
		}
		if newQty > MaxQuantityPerItem {
			newQty = MaxQuantityPerItem
		}
		cart.Items[i].Quantity = newQty
	} else {
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.LineItem{
			ProductID: input.ProductID,
			Name:      input.Name,
			Price:     input.Price,
			ImageURL:  input.ImageURL,
			Quantity:  input.Quantity,
			Stock:     input.Stock,
		})
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.notifyUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("profile_id", profileID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// SetQuantity sets a line item's quantity directly. A quantity of zero or
// less removes the item entirely; an unknown product id is a no-op. The cart
// is persisted afterward either way.
func (s *CartService) SetQuantity(ctx context.Context, profileID, productID string, quantity int) (*domain.Cart, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart, err := s.restore(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(productID); i >= 0 {
		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.notifyUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity set",
		slog.String("profile_id", profileID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem deletes a line item unconditionally if present; a missing item
// is a no-op. The cart is persisted afterward.
func (s *CartService) RemoveItem(ctx context.Context, profileID, productID string) (*domain.Cart, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.restore(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(productID); i >= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.notifyUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("profile_id", profileID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// Clear empties the cart by deleting the persisted record.
func (s *CartService) Clear(ctx context.Context, profileID string) error {
	if profileID == "" {
		return apperrors.InvalidInput("profile id is required")
	}

	if err := s.repo.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.publisher.PublishCartCleared(ctx, profileID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("profile_id", profileID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("profile_id", profileID),
	)

	return nil
}

// restore reads the persisted cart, falling back to an empty cart when the
// record is absent or cannot be decoded.
func (s *CartService) restore(ctx context.Context, profileID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(profileID), nil
		}
		if errors.Is(err, repository.ErrMalformed) {
			s.logger.DebugContext(ctx, "discarding malformed persisted cart",
				slog.String("profile_id", profileID),
			)
			return domain.NewCart(profileID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) notifyUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.publisher.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("profile_id", cart.ProfileID),
			slog.String("error", err.Error()),
		)
	}
}
