package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
	"bizprofile/internal/repositories"
)

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher // optional
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// CreateOrder stores an arbitrary JSON document under a name tag. The
// document must be valid JSON; its shape is not inspected.
func (s *OrderService) CreateOrder(ctx context.Context, name string, payload []byte) (*models.Order, error) {
	if !json.Valid(payload) {
		return nil, apperror.Validation("order payload must be valid JSON")
	}
	if name == "" {
		name = models.DefaultOrderName
	}

	order := &models.Order{
		Name:      name,
		Data:      datatypes.JSON(payload),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publishCreated(order)
	return order, nil
}

// publishCreated announces a new order. Broker failures never fail the
// request that stored the order.
func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		logrus.Debug("no event publisher configured, skipping order.created")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"orderID":   order.ID,
		"name":      order.Name,
		"createdAt": order.CreatedAt,
	})
	if err != nil {
		logrus.WithError(err).Warn("failed to marshal order event")
		return
	}

	if err := s.publisher.Publish("order", "order.created", body); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order created event")
		return
	}
	logrus.WithField("order_id", order.ID).Info("published order created event")
}
