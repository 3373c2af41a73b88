package validator

import "testing"

type bookingForm struct {
	Type            string `validate:"required,oneof=PICKUP VIEWING"`
	Email           string `validate:"required,email"`
	FirstName       string `validate:"required,min=2,max=50"`
	PrivacyAccepted bool   `validate:"eq=true"`
}

func TestValidatePasses(t *testing.T) {
	t.Parallel()
	cv := NewValidator()
	err := cv.Validate(&bookingForm{
		Type:            "PICKUP",
		Email:           "hanna.brandt@example.com",
		FirstName:       "Hanna",
		PrivacyAccepted: true,
	})
	if err != nil {
		t.Errorf("valid form rejected: %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	t.Parallel()
	cv := NewValidator()
	err := cv.Validate(&bookingForm{
		Type:      "DELIVERY",
		Email:     "not-an-email",
		FirstName: "H",
	})
	if err == nil {
		t.Fatal("invalid form accepted")
	}

	formatted := cv.FormatValidationErrors(err)
	want := map[string]string{
		"Type":            "Type must be one of: PICKUP VIEWING",
		"Email":           "Email must be a valid email address",
		"FirstName":       "FirstName must be at least 2 characters",
		"PrivacyAccepted": "PrivacyAccepted must be true",
	}
	for field, message := range want {
		if got := formatted[field]; got != message {
			t.Errorf("%s: got %q, want %q", field, got, message)
		}
	}
}
