package handlers

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

func TestRepoErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing shift is a 404", fmt.Errorf("shift not found: %w", repository.ErrNotFound), fiber.StatusNotFound},
		{"duplicate is a 409", fmt.Errorf("staff_id already taken: %w", repository.ErrConflict), fiber.StatusConflict},
		{"completed profile is a 409", repository.ErrProfileCompleted, fiber.StatusConflict},
		{"exhausted balance is a 422", repository.ErrInsufficientBalance, fiber.StatusUnprocessableEntity},
		{"unknown failure is a 500", fmt.Errorf("socket closed"), fiber.StatusInternalServerError},
	}

	for _, c := range cases {
		app := fiber.New()
		app.Get("/", func(ctx *fiber.Ctx) error {
			return repoError(ctx, c.err, "request failed")
		})
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if resp.StatusCode != c.wantStatus {
			t.Errorf("%s: expected status %d, got %d", c.name, c.wantStatus, resp.StatusCode)
		}
	}
}

func TestObjectIDParamRejectsMalformedHex(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(ctx *fiber.Ctx) error {
		if _, ok := objectIDParam(ctx, "id"); !ok {
			return nil
		}
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/not-hex", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for malformed ID, got %d", resp.StatusCode)
	}
}
