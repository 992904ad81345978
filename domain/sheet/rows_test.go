package sheet

import (
	"strings"
	"testing"
)

func TestExtractPrincipalRow(t *testing.T) {
	row := Row{
		ColIdentifier:  "OP1",
		ColOrigin:      "IUT de Rennes",
		ColTrack:       "AST",
		ColNationality: "Française",
		ColFamilyName:  " Dupont ",
		ColGivenName:   "Jean",
	}

	pr, err := ExtractPrincipalRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pr.Identifier != "OP1" {
		t.Errorf("expected identifier OP1, got %q", pr.Identifier)
	}
	if pr.FamilyName != "Dupont" {
		t.Errorf("expected trimmed family name, got %q", pr.FamilyName)
	}
}

func TestExtractPrincipalRow_MissingIdentifier(t *testing.T) {
	for _, row := range []Row{{}, {ColIdentifier: ""}, {ColIdentifier: "   "}} {
		if _, err := ExtractPrincipalRow(row); err == nil {
			t.Errorf("expected error for row %v", row)
		}
	}
}

func TestExtractInternshipRow_NormalizesDates(t *testing.T) {
	row := Row{
		ColParentID:    "OP1",
		ColLinkedID:    "OP1",
		ColLinkedStart: "45108",
		ColLinkedEnd:   45139.0,
		ColLinkedRole:  "Analyste",
		ColLinkedName:  "ACME",
	}

	ir, err := ExtractInternshipRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ir.StartDate == nil || ir.StartDate.Format("2006-01-02") != "2023-07-01" {
		t.Errorf("expected start date 2023-07-01, got %v", ir.StartDate)
	}
	if ir.EndDate == nil || ir.EndDate.Format("2006-01-02") != "2023-08-01" {
		t.Errorf("expected end date 2023-08-01, got %v", ir.EndDate)
	}
}

func TestExtractStageAttributeRow_SparseFields(t *testing.T) {
	row := Row{
		ColIdentifier: "OP1",
		ColStipend:    "800",
	}

	sr, err := ExtractStageAttributeRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sr.Stipend == nil || *sr.Stipend != "800" {
		t.Errorf("expected stipend 800, got %v", sr.Stipend)
	}
	if sr.Duration != nil {
		t.Errorf("expected absent duration to stay nil, got %q", *sr.Duration)
	}
}

func TestExtractMajorRow(t *testing.T) {
	valid := Row{
		ColGivenName:  "Marie",
		ColFamilyName: "Curie",
		ColCohort:     "2024",
		ColMajorName:  "Data",
	}
	if _, err := ExtractMajorRow(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := Row{
		ColGivenName:  "Marie",
		ColFamilyName: "Curie",
		ColCohort:     "2024",
	}
	if _, err := ExtractMajorRow(missing); err == nil || !strings.Contains(err.Error(), ColMajorName) {
		t.Errorf("expected missing-field error naming %q, got %v", ColMajorName, err)
	}

	wrongType := Row{
		ColGivenName:  "Marie",
		ColFamilyName: "Curie",
		ColCohort:     2024.0,
		ColMajorName:  "Data",
	}
	if _, err := ExtractMajorRow(wrongType); err == nil || !strings.Contains(err.Error(), "invalid type") {
		t.Errorf("expected invalid-type error, got %v", err)
	}
}
