package models

import "testing"

func validRegistrationInput() RegistrationInput {
	return RegistrationInput{
		FirstName: "Asha",
		LastName:  "Patil",
		Email:     "asha@example.com",
		MobileNo:  "+919812345678",
		Gender:    GenderFemale,
		Category:  "10 kilometer",
	}
}

func TestRegistrationInputValidate(t *testing.T) {
	valid := validRegistrationInput()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	// Email is optional
	in := validRegistrationInput()
	in.Email = ""
	if err := in.Validate(); err != nil {
		t.Fatalf("empty email must be accepted: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RegistrationInput)
	}{
		{name: "missing first name", mutate: func(in *RegistrationInput) { in.FirstName = "" }},
		{name: "missing last name", mutate: func(in *RegistrationInput) { in.LastName = "" }},
		{name: "malformed email", mutate: func(in *RegistrationInput) { in.Email = "not-an-email" }},
		{name: "missing mobile", mutate: func(in *RegistrationInput) { in.MobileNo = "" }},
		{name: "mobile without country code", mutate: func(in *RegistrationInput) { in.MobileNo = "9812345678" }},
		{name: "mobile with bad prefix", mutate: func(in *RegistrationInput) { in.MobileNo = "+915812345678" }},
		{name: "mobile too short", mutate: func(in *RegistrationInput) { in.MobileNo = "+91981234567" }},
		{name: "unknown gender", mutate: func(in *RegistrationInput) { in.Gender = "none" }},
		{name: "missing category", mutate: func(in *RegistrationInput) { in.Category = "" }},
	}

	for _, tt := range tests {
		in := validRegistrationInput()
		tt.mutate(&in)
		if err := in.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
	}
}

func TestRegistrationIsTerminal(t *testing.T) {
	reg := Registration{PaymentStatus: PaymentStatusPending}
	if reg.IsTerminal() {
		t.Fatalf("pending must not be terminal")
	}
	reg.PaymentStatus = PaymentStatusCompleted
	if !reg.IsTerminal() {
		t.Fatalf("completed must be terminal")
	}
	reg.PaymentStatus = PaymentStatusFailed
	if !reg.IsTerminal() {
		t.Fatalf("failed must be terminal")
	}
}
