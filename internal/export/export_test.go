package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/regdesk/regdesk-backend/internal/domain"
)

func sampleRegistrations() []*domain.Registration {
	return []*domain.Registration{
		{
			ID:           uuid.New(),
			Name:         "Ada Lovelace",
			Email:        "ada@example.com",
			Phone:        "555-0101",
			Organization: "Analytical Engines",
			Status:       domain.RegistrationStatusPaid,
			Amount:       15000,
			CreatedAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:     uuid.New(),
			Name:   "Blank Fields",
			Email:  "blank@example.com",
			Status: domain.RegistrationStatusPending,
			// Phone, Organization and CreatedAt deliberately absent.
		},
	}
}

func TestRegistrationsCSVRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 2, 9, 30, 15, 0, time.UTC)
	art, err := Registrations(sampleRegistrations(), FormatCSV, now)
	if err != nil {
		t.Fatalf("Registrations csv: %v", err)
	}
	if art.ContentType != "text/csv" {
		t.Fatalf("content type = %q", art.ContentType)
	}
	if art.Filename != "registrations-20250302-093015.csv" {
		t.Fatalf("filename = %q", art.Filename)
	}

	records, err := csv.NewReader(bytes.NewReader(art.Payload)).ReadAll()
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want 3", len(records))
	}
	for i, row := range records {
		if len(row) != len(registrationHeader) {
			t.Fatalf("row %d has %d columns, want %d", i, len(row), len(registrationHeader))
		}
	}
	// Absent fields render as empty cells, not dropped columns.
	if records[2][3] != "" || records[2][4] != "" || records[2][7] != "" {
		t.Fatalf("expected empty cells for absent fields, got %v", records[2])
	}
	if records[1][5] != domain.RegistrationStatusPaid || records[1][6] != "15000" {
		t.Fatalf("unexpected populated row: %v", records[1])
	}
}

func TestRegistrationsXLSXRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 2, 9, 30, 15, 0, time.UTC)
	art, err := Registrations(sampleRegistrations(), FormatXLSX, now)
	if err != nil {
		t.Fatalf("Registrations xlsx: %v", err)
	}
	if art.Filename != "registrations-20250302-093015.xlsx" {
		t.Fatalf("filename = %q", art.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(art.Payload))
	if err != nil {
		t.Fatalf("open payload: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for i, want := range registrationHeader {
		if rows[0][i] != want {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
}

func TestPaymentsZeroRows(t *testing.T) {
	now := time.Date(2025, 3, 2, 9, 30, 15, 0, time.UTC)
	art, err := Payments(nil, FormatCSV, now)
	if err != nil {
		t.Fatalf("Payments empty csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(art.Payload)).ReadAll()
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("rows = %d, want header only", len(records))
	}
	if len(records[0]) != len(paymentHeader) {
		t.Fatalf("header columns = %d, want %d", len(records[0]), len(paymentHeader))
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":      FormatCSV,
		"csv":   FormatCSV,
		"CSV":   FormatCSV,
		"xlsx":  FormatXLSX,
		"excel": FormatXLSX,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatal("ParseFormat(pdf) should fail")
	}
}
