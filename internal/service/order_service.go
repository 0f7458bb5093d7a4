package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chowline/internal/model"
	"chowline/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo      repository.OrderRepository
	attributeRepo  repository.AttributeRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	logger         zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	attributeRepo repository.AttributeRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		attributeRepo:  attributeRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder runs the pricing pipeline: resolve and validate every
// reference first, compute line prices and costs, then persist the order
// and all its items inside a single transaction. Any resolution failure
// aborts the whole call before anything is written.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	lines, items, err := s.resolveLines(ctx, req)
	if err != nil {
		return nil, err
	}

	// Order-level references must resolve before any write.
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, req.Restaurant)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}

	totalPrice, totalCost := orderTotals(lines)
	if err := checkTotals(totalPrice, totalCost); err != nil {
		s.logger.Error().
			Float64("total_price", totalPrice).
			Float64("total_cost", totalCost).
			Msg("order total calculation produced an invalid value")
		return nil, err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = model.OrderStatusPending
	}

	order := &model.Order{
		ID:              uuid.New(),
		ShippingAddress: req.ShippingAddress,
		Status:          status,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      totalPrice,
		TotalCost:       totalCost,
		UserID:          user.ID,
		RestaurantID:    restaurant.ID,
		TransactionID:   uuid.NewString(),
		DateOrdered:     time.Now(),
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(items)).
		Float64("total_price", totalPrice).
		Msg("order created successfully")

	return s.buildResponse(order, items, lines), nil
}

// resolveLines resolves every attribute and product reference in the
// request. It returns the priced lines alongside the order items to
// persist; a single unresolvable reference fails the whole order.
func (s *orderService) resolveLines(ctx context.Context, req *model.OrderRequest) ([]pricedLine, []model.OrderItem, error) {
	attrIDs := make([]string, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		attrIDs = append(attrIDs, item.Attrs...)
	}

	attrs, err := s.attributeRepo.GetByIDs(ctx, attrIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve attributes: %w", err)
	}
	for _, id := range attrIDs {
		if _, ok := attrs[id]; !ok {
			s.logger.Warn().Str("attribute_id", id).Msg("order references unknown attribute")
			return nil, nil, model.ErrAttributeNotFound
		}
	}

	// Denormalise the owning product onto each line: explicit product
	// reference wins, otherwise the first attribute's owner.
	productIDs := make([]string, 0, len(req.OrderItems))
	lineProducts := make([]string, len(req.OrderItems))
	for i, item := range req.OrderItems {
		productID := item.Product
		if productID == "" && len(item.Attrs) > 0 {
			productID = attrs[item.Attrs[0]].ProductID
		}
		if productID == "" {
			return nil, nil, model.ErrMissingAttribute
		}
		lineProducts[i] = productID
		productIDs = append(productIDs, productID)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	for _, id := range productIDs {
		if _, ok := products[id]; !ok {
			s.logger.Warn().Str("product_id", id).Msg("order references unknown product")
			return nil, nil, model.ErrProductNotFound
		}
	}

	lines := make([]pricedLine, len(req.OrderItems))
	items := make([]model.OrderItem, len(req.OrderItems))
	for i, item := range req.OrderItems {
		lineAttrs := make([]model.Attribute, len(item.Attrs))
		for j, id := range item.Attrs {
			lineAttrs[j] = attrs[id]
		}

		lines[i] = pricedLine{
			quantity:   item.Quantity,
			attributes: lineAttrs,
			product:    products[lineProducts[i]],
		}

		drink := item.Drink
		if drink == "" {
			drink = "Water"
		}

		items[i] = model.OrderItem{
			ID:           uuid.New(),
			Quantity:     item.Quantity,
			Excluded:     item.Excluded,
			Drink:        drink,
			AttributeIDs: []string(item.Attrs),
			ProductID:    lineProducts[i],
		}
	}

	return lines, items, nil
}

// GetByID retrieves an order with its lines, attributes and products
// populated.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}

	lines, err := s.populateLines(ctx, items)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(order, items, lines), nil
}

// populateLines resolves the stored references of persisted order items.
// Records deleted from the catalogue since the order was placed are simply
// absent from the populated view; the order's totals are immutable either
// way.
func (s *orderService) populateLines(ctx context.Context, items []model.OrderItem) ([]pricedLine, error) {
	attrIDs := make([]string, 0, len(items))
	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		attrIDs = append(attrIDs, item.AttributeIDs...)
		if item.ProductID != "" {
			productIDs = append(productIDs, item.ProductID)
		}
	}

	attrs, err := s.attributeRepo.GetByIDs(ctx, attrIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to populate attributes: %w", err)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to populate products: %w", err)
	}

	lines := make([]pricedLine, len(items))
	for i, item := range items {
		var lineAttrs []model.Attribute
		for _, id := range item.AttributeIDs {
			if a, ok := attrs[id]; ok {
				lineAttrs = append(lineAttrs, a)
			}
		}
		lines[i] = pricedLine{
			quantity:   item.Quantity,
			attributes: lineAttrs,
			product:    products[item.ProductID],
		}
	}

	return lines, nil
}

// buildResponse shapes an order and its resolved lines for the API.
func (s *orderService) buildResponse(order *model.Order, items []model.OrderItem, lines []pricedLine) *model.OrderResponse {
	details := make([]model.OrderLineDetail, len(items))
	for i, item := range items {
		detail := model.OrderLineDetail{
			OrderItem:  item,
			Attributes: lines[i].attributes,
		}
		if lines[i].product.ID != "" {
			p := lines[i].product
			detail.ProductRef = &p
		}
		details[i] = detail
	}

	return &model.OrderResponse{
		Order: *order,
		Items: details,
	}
}

// List retrieves orders, optionally filtered by status.
func (s *orderService) List(ctx context.Context, status string) ([]model.Order, error) {
	orders, err := s.orderRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByUser retrieves a user's orders, optionally filtered by status.
func (s *orderService) ListByUser(ctx context.Context, userID, status string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's status.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if strings.TrimSpace(status) == "" {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", status).
		Msg("order status updated")

	return order, nil
}

// Delete removes an order and its items.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	existed, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !existed {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

// SalesReport aggregates Success orders by day, week or month.
func (s *orderService) SalesReport(ctx context.Context, groupBy string) ([]model.SalesBucket, error) {
	return s.orderRepo.SalesReport(ctx, groupBy)
}

// Profit computes per-order profit; an empty id list means all orders.
func (s *orderService) Profit(ctx context.Context, ids []uuid.UUID) ([]model.OrderProfit, error) {
	return s.orderRepo.ProfitByIDs(ctx, ids)
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeValidation, "Order request is required")
	}

	if len(req.OrderItems) == 0 {
		return model.ErrEmptyOrder
	}

	if req.UserID == "" {
		return model.NewDomainError(model.ErrCodeValidation, "userId is required")
	}

	if req.Restaurant == "" {
		return model.NewDomainError(model.ErrCodeValidation, "restaurant is required")
	}

	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return model.ErrInvalidPaymentMethod
	}

	for i, item := range req.OrderItems {
		if item.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
		if len(item.Attrs) == 0 && item.Product == "" {
			return model.ErrMissingAttribute
		}
	}

	return nil
}
