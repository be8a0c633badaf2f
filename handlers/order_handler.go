package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type OrderHandler struct {
	orderRepo  *repository.OrderRepository
	clientRepo *repository.ClientRepository
}

func NewOrderHandler(orderRepo *repository.OrderRepository, clientRepo *repository.ClientRepository) *OrderHandler {
	return &OrderHandler{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
	}
}

// CreateClient godoc
// @Summary Create client
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body models.ClientCreatePayload true "Client data"
// @Success 201 {object} models.MessageResponse
// @Router /clients [post]
func (h *OrderHandler) CreateClient(c *fiber.Ctx) error {
	var payload models.ClientCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	client := &models.Client{
		Name:    payload.Name,
		Company: payload.Company,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	}
	if _, err := h.clientRepo.Create(ctx, client); err != nil {
		return repoError(c, err, "failed to create client")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "client created",
		"id":      client.ID.Hex(),
	})
}

// ListClients godoc
// @Summary List clients
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Client
// @Router /clients [get]
func (h *OrderHandler) ListClients(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	clients, err := h.clientRepo.FindAll(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list clients"})
	}
	return c.Status(fiber.StatusOK).JSON(clients)
}

// UpdateClient godoc
// @Summary Update client
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ObjectID"
// @Param client body models.ClientCreatePayload true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /clients/{id} [patch]
func (h *OrderHandler) UpdateClient(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.ClientCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	fields := bson.M{}
	setIfPresent(fields, "name", payload.Name)
	setIfPresent(fields, "company", payload.Company)
	setIfPresent(fields, "email", payload.Email)
	setIfPresent(fields, "phone", payload.Phone)
	setIfPresent(fields, "address", payload.Address)
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.clientRepo.Update(ctx, id, fields); err != nil {
		return repoError(c, err, "failed to update client")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "client updated"})
}

// DeleteClient godoc
// @Summary Delete client
// @Description Fails while the client still has orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /clients/{id} [delete]
func (h *OrderHandler) DeleteClient(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.clientRepo.Delete(ctx, id); err != nil {
		return repoError(c, err, "failed to delete client")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "client deleted"})
}

// CreateOrder godoc
// @Summary Create order
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body models.OrderCreatePayload true "Order data"
// @Success 201 {object} models.Order
// @Failure 404 {object} models.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.OrderCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	clientID, err := primitive.ObjectIDFromHex(payload.ClientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid client_id"})
	}

	order := &models.Order{
		ClientID:  clientID,
		Title:     payload.Title,
		Amount:    payload.Amount,
		Advance:   payload.Advance,
		Note:      payload.Note,
		CreatedBy: claims.UserID,
	}
	if payload.DeliveryDate != "" {
		deliveryDate, err := time.Parse("2006-01-02", payload.DeliveryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid delivery_date"})
		}
		order.DeliveryDate = &deliveryDate
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.orderRepo.Create(ctx, order); err != nil {
		return repoError(c, err, "failed to create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListOrders godoc
// @Summary List orders with their clients
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} models.OrderWithClient
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.orderRepo.FindAllWithClient(ctx, c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list orders"})
	}
	return c.Status(fiber.StatusOK).JSON(orders)
}

// UpdateOrderStatus godoc
// @Summary Move an order through its lifecycle
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ObjectID"
// @Param status body models.OrderStatusPayload true "New status"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.OrderStatusPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.orderRepo.UpdateStatus(ctx, id, payload.Status); err != nil {
		return repoError(c, err, "failed to update order status")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "order status updated"})
}

// DeleteOrder godoc
// @Summary Delete order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.orderRepo.Delete(ctx, id); err != nil {
		return repoError(c, err, "failed to delete order")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "order deleted"})
}

// Summary godoc
// @Summary Orders grouped by status with turnover
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OrderStatusSummary
// @Router /orders/summary [get]
func (h *OrderHandler) Summary(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	summary, err := h.orderRepo.StatusSummary(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute summary"})
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}
