package utilities

import "testing"

type sample struct {
	ID    string `json:"id" validate:"required,hexadecimal,len=24"`
	Email string `json:"email" validate:"required,email"`
}

func TestValidateStruct(t *testing.T) {
	ok := sample{ID: "507f1f77bcf86cd799439011", Email: "dev@example.com"}
	if err := ValidateStruct(ok, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateStruct(sample{ID: "xyz", Email: "dev@example.com"}, map[string]string{"id": "Invalid id format."})
	if KindOf(err) != KindBadRequest || err.Error() != "Invalid id format." {
		t.Errorf("expected mapped BadRequest, got %v", err)
	}

	err = ValidateStruct(sample{ID: "507f1f77bcf86cd799439011", Email: "nope"}, nil)
	if KindOf(err) != KindBadRequest || err.Error() != "email must be a valid email address" {
		t.Errorf("expected default message, got %v", err)
	}
}

func TestValidateVar(t *testing.T) {
	if err := ValidateVar("507f1f77bcf86cd799439011", ObjectIDRule, "bad"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, id := range []string{"", " 507f1f77bcf86cd799439011 ", "507f1f77bcf86cd79943901g"} {
		if err := ValidateVar(id, ObjectIDRule, "bad"); err == nil || err.Error() != "bad" {
			t.Errorf("ValidateVar(%q) = %v, want BadRequest", id, err)
		}
	}
}
