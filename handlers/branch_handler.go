package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type BranchHandler struct {
	branchRepo repository.BranchRepository
}

func NewBranchHandler(branchRepo repository.BranchRepository) *BranchHandler {
	return &BranchHandler{
		branchRepo: branchRepo,
	}
}

// Create godoc
// @Summary Create branch
// @Tags Branch
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param branch body models.BranchCreatePayload true "Branch data"
// @Success 201 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var payload models.BranchCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	branch := &models.Branch{
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
	}
	result, err := h.branchRepo.CreateBranch(ctx, branch)
	if err != nil {
		return repoError(c, err, "failed to create branch")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "branch created",
		"id":      result.InsertedID,
	})
}

// List godoc
// @Summary List branches
// @Tags Branch
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Branch
// @Router /branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	branches, err := h.branchRepo.GetAllBranches(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list branches"})
	}
	return c.Status(fiber.StatusOK).JSON(branches)
}

// Get godoc
// @Summary Branch detail
// @Tags Branch
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ObjectID"
// @Success 200 {object} models.Branch
// @Failure 404 {object} models.ErrorResponse
// @Router /branches/{id} [get]
func (h *BranchHandler) Get(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	branch, err := h.branchRepo.GetBranchByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load branch"})
	}
	if branch == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "branch not found"})
	}
	return c.Status(fiber.StatusOK).JSON(branch)
}

// Update godoc
// @Summary Update branch
// @Tags Branch
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ObjectID"
// @Param branch body models.BranchUpdatePayload true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /branches/{id} [patch]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.BranchUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	fields := bson.M{}
	setIfPresent(fields, "name", payload.Name)
	setIfPresent(fields, "address", payload.Address)
	setIfPresent(fields, "phone", payload.Phone)
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	res, err := h.branchRepo.UpdateBranch(ctx, id, fields)
	if err != nil {
		return repoError(c, err, "failed to update branch")
	}
	if res.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "branch not found"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "branch updated"})
}

// Delete godoc
// @Summary Delete branch
// @Tags Branch
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /branches/{id} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	res, err := h.branchRepo.DeleteBranch(ctx, id)
	if err != nil {
		return repoError(c, err, "failed to delete branch")
	}
	if res.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "branch not found"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "branch deleted"})
}
