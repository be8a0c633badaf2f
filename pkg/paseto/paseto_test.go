package paseto

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
)

func TestInitRejectsBadSecrets(t *testing.T) {
	if err := Init("not base64!!"); err == nil {
		t.Errorf("expected an error for a non-base64 secret")
	}
	if err := Init("c2hvcnQ="); err == nil { // decodes to "short"
		t.Errorf("expected an error for a secret shorter than 32 bytes")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret, err := util.GenerateBase64Key(32)
	if err != nil {
		t.Fatalf("could not generate key: %v", err)
	}
	if err := Init(secret); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "jane@example.com",
		Role:  models.RoleStaff,
	}
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected generate error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID.Hex(), claims.UserID.Hex())
	}
	if claims.Email != user.Email || claims.Role != user.Role {
		t.Errorf("claims did not survive the round trip: %+v", claims)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	secret, err := util.GenerateBase64Key(32)
	if err != nil {
		t.Fatalf("could not generate key: %v", err)
	}
	if err := Init(secret); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}

	token, err := GenerateToken(&models.User{ID: primitive.NewObjectID(), Email: "a@b.c", Role: models.RoleStaff})
	if err != nil {
		t.Fatalf("unexpected generate error: %v", err)
	}

	flipped := byte('A')
	if token[len(token)-1] == flipped {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)
	if _, err := ValidateToken(tampered); err == nil {
		t.Errorf("expected tampered token to be rejected")
	}

	if _, err := ValidateToken("v2.local.garbage"); err == nil {
		t.Errorf("expected malformed token to be rejected")
	}
}
