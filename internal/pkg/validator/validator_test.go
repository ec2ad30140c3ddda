package validator

import "testing"

type limitRequest struct {
	Method string `json:"withdrawal_method" validate:"required,withdrawal_method"`
	Pin    string `json:"pin" validate:"required,pin"`
	Status string `json:"status" validate:"omitempty,campaign_status"`
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	errs := Validate(&limitRequest{Method: "cash", Pin: "12a4", Status: "paused"})

	if errs["withdrawal_method"] == "" {
		t.Fatalf("expected withdrawal_method error, got %v", errs)
	}
	if errs["pin"] != "PIN must be exactly 4 digits" {
		t.Fatalf("unexpected pin error: %v", errs)
	}
	if errs["status"] == "" {
		t.Fatalf("expected status error, got %v", errs)
	}
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	if errs := Validate(&limitRequest{Method: "mpesa", Pin: "0420"}); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
