package booking

import (
	"strings"
	"testing"

	"github.com/nazmulhs/farebridge/internal/models"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1990-05-25", "1990-05-25", false},
		{"25-05-1990", "1990-05-25", false}, // day > 12: day-first
		{"05-25-1990", "1990-05-25", false}, // second > 12: month-first
		{"05-06-1990", "1990-05-06", false}, // ambiguous reads month-first
		{"25/05/1990", "1990-05-25", false},
		{"1990-5-7", "1990-05-07", false},
		{"", "", true},
		{"1990-13-40", "", true},
		{"not-a-date", "", true},
		{"32-13-1990", "", true},
	}

	for _, tc := range cases {
		got, err := NormalizeDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeDate(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeDate(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func validInput() models.OrderCreateInput {
	return models.OrderCreateInput{
		TraceID:  "trace-1",
		OfferIDs: []string{"OF1"},
		Contact:  models.ContactForm{Phone: "+8801700000000", Email: "pax@example.com"},
		Passengers: []models.PaxForm{
			{PaxType: "ADT", GivenName: "Rahim", Surname: "Uddin", Gender: "male", Birthdate: "1985-02-10"},
			{PaxType: "ADT", GivenName: "Karima", Surname: "Begum", Gender: "female", Birthdate: "25-03-1988"},
			{PaxType: "INF", GivenName: "Noor", Surname: "Uddin", Gender: "female", Birthdate: "2025-01-05"},
		},
	}
}

func TestBuildOrderCreate(t *testing.T) {
	req, err := BuildOrderCreate(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.TraceID != "trace-1" {
		t.Errorf("trace id = %q", req.TraceID)
	}
	if len(req.Request.PaxList) != 3 {
		t.Fatalf("pax count = %d, want 3", len(req.Request.PaxList))
	}

	adult := req.Request.PaxList[0]
	if adult.Individual.GivenName != "RAHIM" {
		t.Errorf("names should be upper-cased, got %q", adult.Individual.GivenName)
	}
	if adult.Individual.Birthdate != "1985-02-10" {
		t.Errorf("adult birthdate = %q", adult.Individual.Birthdate)
	}

	second := req.Request.PaxList[1]
	if second.Individual.Birthdate != "1988-03-25" {
		t.Errorf("normalized birthdate = %q, want 1988-03-25", second.Individual.Birthdate)
	}
	if second.Individual.Gender != "Female" {
		t.Errorf("gender = %q", second.Individual.Gender)
	}
}

func TestBuildOrderCreateInfantPairing(t *testing.T) {
	req, err := BuildOrderCreate(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	infant := req.Request.PaxList[2]
	if infant.Individual.AssociatePax == nil {
		t.Fatal("infant is missing its adult association")
	}
	// First infant pairs with the first adult.
	if infant.Individual.AssociatePax.GivenName != "RAHIM" || infant.Individual.AssociatePax.Surname != "UDDIN" {
		t.Errorf("infant paired with %+v, want first adult", infant.Individual.AssociatePax)
	}

	for _, pax := range req.Request.PaxList[:2] {
		if pax.Individual.AssociatePax != nil {
			t.Errorf("adult %s should have no association", pax.Individual.GivenName)
		}
	}
}

func TestBuildOrderCreateRejectsExcessInfants(t *testing.T) {
	input := validInput()
	input.Passengers = append(input.Passengers,
		models.PaxForm{PaxType: "INF", GivenName: "Mim", Surname: "Begum", Birthdate: "2025-03-01"},
		models.PaxForm{PaxType: "INF", GivenName: "Rafi", Surname: "Uddin", Birthdate: "2025-04-01"},
	)

	_, err := BuildOrderCreate(input)
	if err == nil {
		t.Fatal("expected error for 3 infants with 2 adults")
	}
	if !strings.Contains(err.Error(), "infants") {
		t.Errorf("error should mention infants: %v", err)
	}
}

func TestBuildOrderCreatePassportRequired(t *testing.T) {
	input := validInput()
	input.PassportRequired = true

	if _, err := BuildOrderCreate(input); err == nil {
		t.Fatal("expected error for missing passport data")
	}

	for i := range input.Passengers {
		input.Passengers[i].PassportNumber = "bd1234567"
		input.Passengers[i].PassportExpiry = "2031-06-30"
	}
	req, err := BuildOrderCreate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adult := req.Request.PaxList[0]
	if adult.Individual.IdentityDoc == nil {
		t.Fatal("adult missing identity doc")
	}
	if adult.Individual.IdentityDoc.IdentityDocID != "BD1234567" {
		t.Errorf("doc id = %q", adult.Individual.IdentityDoc.IdentityDocID)
	}

	// Lap infants travel without their own passport entry.
	infant := req.Request.PaxList[2]
	if infant.Individual.IdentityDoc != nil {
		t.Error("infant should carry no identity doc")
	}
}

func TestBuildOrderCreateRequestLevelValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.OrderCreateInput)
	}{
		{"missing trace", func(in *models.OrderCreateInput) { in.TraceID = "" }},
		{"missing offers", func(in *models.OrderCreateInput) { in.OfferIDs = nil }},
		{"missing phone", func(in *models.OrderCreateInput) { in.Contact.Phone = "" }},
		{"missing email", func(in *models.OrderCreateInput) { in.Contact.Email = "" }},
		{"no passengers", func(in *models.OrderCreateInput) { in.Passengers = nil }},
	}

	for _, tc := range cases {
		input := validInput()
		tc.mutate(&input)
		if _, err := BuildOrderCreate(input); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
