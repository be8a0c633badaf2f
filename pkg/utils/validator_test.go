package util

import "testing"

type registerInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,hasuppercase"`
}

func TestValidateStructPasses(t *testing.T) {
	errs := ValidateStruct(registerInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "Password123",
	})
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateStructReportsEachField(t *testing.T) {
	errs := ValidateStruct(registerInput{
		Name:     "",
		Email:    "not-an-email",
		Password: "nouppercase1",
	})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}

	byField := map[string]*ErrorResponse{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	if e := byField["Name"]; e == nil || e.Tag != "required" {
		t.Errorf("expected required error on Name, got %+v", e)
	}
	if e := byField["Email"]; e == nil || e.Msg != "Invalid email format." {
		t.Errorf("expected email format error, got %+v", e)
	}
	if e := byField["Password"]; e == nil || e.Tag != "hasuppercase" {
		t.Errorf("expected uppercase rule error on Password, got %+v", e)
	}
}
