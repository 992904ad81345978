package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sheetmerge/domain/sheet"
	"sheetmerge/domain/student"
	"sheetmerge/internal/errors"
	"sheetmerge/ports"
)

// MajorAssignmentService enriches records with challenge-major information.
// Rows carry no student identifier, so records are matched by the
// "given-name family-name" pair; a name matching several stored students is
// an error, never an arbitrary pick.
//
// Update-versus-insert is decided in memory after one batched name query:
// each row becomes either a cohort update (major name already on the record)
// or a major addition (name absent). Both op kinds still carry their
// store-level guard, so a mismatched precondition is a no-op rather than a
// duplicate, and both are submitted unordered.
type MajorAssignmentService struct {
	repo ports.StudentRepository
}

// NewMajorAssignmentService creates a major-assignment service.
func NewMajorAssignmentService(repo ports.StudentRepository) *MajorAssignmentService {
	return &MajorAssignmentService{repo: repo}
}

// Assign processes one major-assignment bundle. Structural and row-typing
// violations reject the whole batch before any store access; match errors
// are per-row and do not block other rows.
func (s *MajorAssignmentService) Assign(ctx context.Context, bundle sheet.SheetBundle) *Result {
	batchID := uuid.NewString()
	log.Printf("[MajorAssignmentService] batch %s: %d sheet element(s)", batchID, len(bundle))

	result := newResult()
	rows, errs := s.validate(bundle)
	if len(errs) > 0 {
		result.Errors = errs
		result.Message = "validation failed with errors"
		return result
	}

	pairs := s.collectNamePairs(rows)
	if len(pairs) == 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("no valid %q and %q pairs found in sheet %q",
			sheet.ColGivenName, sheet.ColFamilyName, sheet.SheetMajor))
		result.Message = "no valid data to process"
		return result
	}

	records, err := s.repo.FindByNames(ctx, pairs)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = "failed to query the store"
		return result
	}
	index := indexByNameKey(records)

	var updates []ports.MajorCohortUpdate
	var adds []ports.MajorAdd
	for rowIdx, row := range rows {
		if row.GivenName == "" || row.FamilyName == "" || row.Cohort == "" || row.MajorName == "" {
			result.Errors = append(result.Errors, errors.RowInvalid(fmt.Sprintf(
				"insufficient data to match student at row %d: %q, %q, %q and %q are required",
				rowIdx+1, sheet.ColGivenName, sheet.ColFamilyName, sheet.ColCohort, sheet.ColMajorName)).Error())
			continue
		}
		key := student.NameKey(row.GivenName, row.FamilyName)
		matches := index[key]
		if len(matches) == 0 {
			result.Errors = append(result.Errors, errors.Referential(fmt.Sprintf("no matching student found for %s %q and %s %q at row %d",
				sheet.ColGivenName, row.GivenName, sheet.ColFamilyName, row.FamilyName, rowIdx+1)).Error())
			continue
		}
		if len(matches) > 1 {
			result.Errors = append(result.Errors, errors.Referential(fmt.Sprintf("ambiguous match: multiple students found for %q at row %d, no update performed",
				key, rowIdx+1)).Error())
			continue
		}

		rec := matches[0]
		if rec.HasMajor(row.MajorName) {
			updates = append(updates, ports.MajorCohortUpdate{
				RecordID:  rec.ID,
				MajorName: row.MajorName,
				Cohort:    row.Cohort,
			})
		} else {
			adds = append(adds, ports.MajorAdd{
				RecordID: rec.ID,
				Major:    student.Major{Name: row.MajorName, Cohort: row.Cohort},
			})
		}
	}

	var modifiedCount int64
	submitted := false
	failed := false

	if len(updates) > 0 {
		if res, err := s.repo.BulkUpdateMajorCohorts(ctx, updates); err != nil {
			result.Errors = append(result.Errors, err.Error())
			failed = true
		} else {
			modifiedCount += res.ModifiedCount
			submitted = true
		}
	}
	if len(adds) > 0 {
		if res, err := s.repo.BulkAddMajors(ctx, adds); err != nil {
			result.Errors = append(result.Errors, err.Error())
			failed = true
		} else {
			modifiedCount += res.ModifiedCount
			submitted = true
		}
	}

	switch {
	case submitted:
		result.Message = fmt.Sprintf("successfully modified %d document(s)", modifiedCount)
	case failed:
		result.Message = fmt.Sprintf("attempted to modify %d document(s), but encountered errors", len(updates)+len(adds))
	default:
		result.Message = "no documents were modified"
	}
	if len(result.Errors) > 0 {
		result.Message += fmt.Sprintf("; encountered %d issue(s)", len(result.Errors))
	}
	log.Printf("[MajorAssignmentService] batch %s: %d update(s), %d add(s), %d error(s)",
		batchID, len(updates), len(adds), len(result.Errors))
	return result
}

// validate enforces the one-sheet shape and converts every row into its
// typed form. Any violation rejects the whole batch; the returned rows are
// only meaningful when the error list is empty.
func (s *MajorAssignmentService) validate(bundle sheet.SheetBundle) ([]sheet.MajorRow, []string) {
	var errs []string
	if len(bundle) != 1 {
		errs = append(errs, errors.Structural("input data should contain exactly one sheet object").Error())
		return nil, errs
	}
	rawRows, ok := bundle[0][sheet.SheetMajor]
	if !ok {
		errs = append(errs, errors.Structural(fmt.Sprintf("missing %q sheet in input data", sheet.SheetMajor)).Error())
		return nil, errs
	}

	rows := make([]sheet.MajorRow, 0, len(rawRows))
	for rowIdx, raw := range rawRows {
		row, err := sheet.ExtractMajorRow(raw)
		if err != nil {
			errs = append(errs, errors.RowInvalid(fmt.Sprintf("row %d in sheet %q: %v", rowIdx+1, sheet.SheetMajor, err)).Error())
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs
}

// collectNamePairs extracts the unique given/family name pairs of the batch,
// preserving first-seen order for the store query.
func (s *MajorAssignmentService) collectNamePairs(rows []sheet.MajorRow) []ports.NamePair {
	seen := make(map[string]struct{})
	var pairs []ports.NamePair
	for _, row := range rows {
		if row.GivenName == "" || row.FamilyName == "" {
			continue
		}
		key := student.NameKey(row.GivenName, row.FamilyName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pairs = append(pairs, ports.NamePair{GivenName: row.GivenName, FamilyName: row.FamilyName})
	}
	return pairs
}
