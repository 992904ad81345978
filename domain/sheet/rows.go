package sheet

import (
	"fmt"
	"time"
)

// Typed rows are produced only after the column-presence checks pass; every
// earlier stage operates on the raw Row type. Extraction never mutates the
// source row.

// PrincipalRow is a validated row of the principal sheet.
type PrincipalRow struct {
	Identifier  string
	Origin      string
	Track       string
	Nationality string
	FamilyName  string
	GivenName   string
}

// InternshipRow is a validated row of the internship child sheet with its
// date serials already normalized.
type InternshipRow struct {
	ParentID  string
	LinkedID  string
	StartDate *time.Time
	EndDate   *time.Time
	Role      string
	Name      string
}

// ExchangeRow is a validated row of the exchange-visit child sheet.
type ExchangeRow struct {
	ParentID     string
	StartDate    *time.Time
	EndDate      *time.Time
	MobilityType string
	HostName     string
}

// StageAttributeRow carries the sparse stipend/duration attributes of an
// enrichment batch. Pointer fields are nil when the column was not supplied.
type StageAttributeRow struct {
	Identifier string
	Stipend    *string
	Duration   *string
}

// OrganizationAttributeRow carries the sparse host-company attributes of an
// enrichment batch.
type OrganizationAttributeRow struct {
	ParentID    string
	SIRET       *string
	Country     *string
	City        *string
	ForeignCity *string
}

// MajorRow is a validated row of the major-assignment sheet. All four fields
// must be present and string-typed before a MajorRow exists.
type MajorRow struct {
	GivenName  string
	FamilyName string
	Cohort     string
	MajorName  string
}

// ExtractPrincipalRow builds a PrincipalRow, failing when the identifier is
// absent or blank.
func ExtractPrincipalRow(r Row) (PrincipalRow, error) {
	id, _ := r.String(ColIdentifier)
	if id == "" {
		return PrincipalRow{}, fmt.Errorf("missing %q", ColIdentifier)
	}
	origin, _ := r.String(ColOrigin)
	track, _ := r.String(ColTrack)
	nationality, _ := r.String(ColNationality)
	familyName, _ := r.String(ColFamilyName)
	givenName, _ := r.String(ColGivenName)
	return PrincipalRow{
		Identifier:  id,
		Origin:      origin,
		Track:       track,
		Nationality: nationality,
		FamilyName:  familyName,
		GivenName:   givenName,
	}, nil
}

// ExtractInternshipRow builds an InternshipRow, failing when the parent
// identifier is absent or blank. Date serials go through ParseSerial so raw
// serials never travel further.
func ExtractInternshipRow(r Row) (InternshipRow, error) {
	parentID, _ := r.String(ColParentID)
	if parentID == "" {
		return InternshipRow{}, fmt.Errorf("missing %q", ColParentID)
	}
	linkedID, _ := r.String(ColLinkedID)
	role, _ := r.String(ColLinkedRole)
	name, _ := r.String(ColLinkedName)
	return InternshipRow{
		ParentID:  parentID,
		LinkedID:  linkedID,
		StartDate: ParseSerial(r[ColLinkedStart]),
		EndDate:   ParseSerial(r[ColLinkedEnd]),
		Role:      role,
		Name:      name,
	}, nil
}

// ExtractExchangeRow builds an ExchangeRow, failing when the parent
// identifier is absent or blank.
func ExtractExchangeRow(r Row) (ExchangeRow, error) {
	parentID, _ := r.String(ColParentID)
	if parentID == "" {
		return ExchangeRow{}, fmt.Errorf("missing %q", ColParentID)
	}
	mobilityType, _ := r.String(ColMobilityType)
	hostName, _ := r.String(ColLinkedName)
	return ExchangeRow{
		ParentID:     parentID,
		StartDate:    ParseSerial(r[ColExchangeStart]),
		EndDate:      ParseSerial(r[ColExchangeEnd]),
		MobilityType: mobilityType,
		HostName:     hostName,
	}, nil
}

// ExtractStageAttributeRow builds a StageAttributeRow, failing when the
// identifier is absent or blank. Attribute columns stay nil when absent so
// the merge touches only supplied fields.
func ExtractStageAttributeRow(r Row) (StageAttributeRow, error) {
	id, _ := r.String(ColIdentifier)
	if id == "" {
		return StageAttributeRow{}, fmt.Errorf("missing %q", ColIdentifier)
	}
	return StageAttributeRow{
		Identifier: id,
		Stipend:    r.StringPtr(ColStipend),
		Duration:   r.StringPtr(ColDuration),
	}, nil
}

// ExtractOrganizationAttributeRow builds an OrganizationAttributeRow,
// failing when the parent identifier is absent or blank.
func ExtractOrganizationAttributeRow(r Row) (OrganizationAttributeRow, error) {
	parentID, _ := r.String(ColParentID)
	if parentID == "" {
		return OrganizationAttributeRow{}, fmt.Errorf("missing %q", ColParentID)
	}
	return OrganizationAttributeRow{
		ParentID:    parentID,
		SIRET:       r.StringPtr(ColLinkedSIRET),
		Country:     r.StringPtr(ColLinkedCountry),
		City:        r.StringPtr(ColLinkedCity),
		ForeignCity: r.StringPtr(ColLinkedForeignCity),
	}, nil
}

// ExtractMajorRow builds a MajorRow. All four columns must be present and
// carry string values; blank-after-trim values are reported by the engine at
// merge time, not here.
func ExtractMajorRow(r Row) (MajorRow, error) {
	for _, col := range []string{ColGivenName, ColFamilyName, ColCohort, ColMajorName} {
		v, ok := r[col]
		if !ok {
			return MajorRow{}, fmt.Errorf("missing the %q field", col)
		}
		if _, isString := v.(string); !isString {
			return MajorRow{}, fmt.Errorf("invalid type for the %q field", col)
		}
	}
	givenName, _ := r.String(ColGivenName)
	familyName, _ := r.String(ColFamilyName)
	cohort, _ := r.String(ColCohort)
	majorName, _ := r.String(ColMajorName)
	return MajorRow{
		GivenName:  givenName,
		FamilyName: familyName,
		Cohort:     cohort,
		MajorName:  majorName,
	}, nil
}
