// Package global - Test các custom validator.
package global

import "testing"

type ticketInput struct {
	StartTicket string `validate:"required,ticket_number"`
}

func TestValidateTicketNumber(t *testing.T) {
	InitValidator()

	valid := []string{"000120", "0", "99", "  0050  "}
	for _, v := range valid {
		if err := Validate.Struct(&ticketInput{StartTicket: v}); err != nil {
			t.Errorf("ticket_number phải chấp nhận %q, được lỗi: %v", v, err)
		}
	}

	invalid := []string{"abc", "12a", "-5", "1.5", "  "}
	for _, v := range invalid {
		if err := Validate.Struct(&ticketInput{StartTicket: v}); err == nil {
			t.Errorf("ticket_number phải từ chối %q", v)
		}
	}
}

type labelInput struct {
	Label string `validate:"omitempty,no_xss"`
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	if err := Validate.Struct(&labelInput{Label: "Quầy số 1"}); err != nil {
		t.Errorf("no_xss phải chấp nhận text thường, được lỗi: %v", err)
	}
	if err := Validate.Struct(&labelInput{Label: "<script>alert(1)</script>"}); err == nil {
		t.Error("no_xss phải từ chối thẻ script")
	}
}
