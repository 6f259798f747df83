package http

import "testing"

func TestAmountRule(t *testing.T) {
	cv := NewValidator()

	valid := []string{"1", "0.01", "200.5", "999999999.99"}
	for _, amount := range valid {
		if err := cv.Validate(&amountReq{Amount: amount}); err != nil {
			t.Errorf("amount %q rejected: %v", amount, err)
		}
	}

	invalid := []string{"0", "-1", "abc", "1.005", "1e3x", "0.001"}
	for _, amount := range invalid {
		err := cv.Validate(&amountReq{Amount: amount})
		if err == nil {
			t.Errorf("amount %q accepted, want rejection", amount)
			continue
		}
		if !containsFieldMsg(ToFieldErrors(err), "Amount", "positive amount") {
			t.Errorf("amount %q: unexpected details %+v", amount, ToFieldErrors(err))
		}
	}
}

func TestAmountRule_RequiredBeatsFormat(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&amountReq{})
	if err == nil {
		t.Fatal("empty amount accepted")
	}
	if !containsFieldMsg(ToFieldErrors(err), "Amount", "required") {
		t.Fatalf("unexpected details: %+v", ToFieldErrors(err))
	}
}

func TestOpenAccountValidation(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&openAccountReq{OwnerName: "Jordan Rivers", OwnerEmail: "jordan@example.test"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	err := cv.Validate(&openAccountReq{OwnerName: "Jordan Rivers", OwnerEmail: "not-an-email"})
	if err == nil {
		t.Fatal("bad email accepted")
	}
	if !containsFieldMsg(ToFieldErrors(err), "OwnerEmail", "valid email") {
		t.Fatalf("unexpected details: %+v", ToFieldErrors(err))
	}
}
