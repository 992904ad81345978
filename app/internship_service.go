package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sheetmerge/domain/sheet"
	"sheetmerge/domain/student"
	"sheetmerge/internal/errors"
	"sheetmerge/ports"
)

// InternshipEnrichService mutates internship entries of already-persisted
// records. An enrichment batch carries two child sheets: the principal sheet
// with stage attributes (stipend, duration) and the host-company sheet with
// organization attributes (SIRET code, country, city). Rows join on the
// internship entry's linked-entity identifier, so the store lookup is one
// batched query on that nested path.
//
// Writes are sparse positional updates guarded by the record and the linked
// identifier: only the fields a row actually carries are set, and no full
// document snapshot is ever written back, so two batches enriching different
// identifiers cannot clobber each other.
type InternshipEnrichService struct {
	repo      ports.StudentRepository
	validator *BatchValidator
}

// patchKey addresses one internship entry across both passes so a stage row
// and an organization row for the same entry merge into a single update.
type patchKey struct {
	recordID primitive.ObjectID
	linkedID string
}

// NewInternshipEnrichService creates an enrichment service validating
// against the given schema.
func NewInternshipEnrichService(repo ports.StudentRepository, schema []sheet.RequiredSheetSpec) *InternshipEnrichService {
	return &InternshipEnrichService{
		repo:      repo,
		validator: NewBatchValidator(schema),
	}
}

// Enrich processes one enrichment bundle. Unlike ingestion, row-level errors
// do not reject the batch: valid rows are still persisted and the errors are
// returned next to the success message.
func (s *InternshipEnrichService) Enrich(ctx context.Context, bundle sheet.SheetBundle) *Result {
	batchID := uuid.NewString()
	log.Printf("[InternshipEnrichService] batch %s: %d sheet element(s)", batchID, len(bundle))

	result := newResult()
	sheets, errs := s.validator.Partition(bundle)
	result.Errors = append(result.Errors, errs...)

	stageRows, hasStage := sheets[sheet.SheetPrincipal]
	orgRows, hasOrg := sheets[sheet.SheetHostCompany]
	if !hasStage || !hasOrg {
		result.Message = "processing failed: required sheets are missing"
		return result
	}

	candidateIDs := s.collectCandidateIDs(stageRows, orgRows, result)
	if len(candidateIDs) == 0 {
		result.Errors = append(result.Errors, "no valid identifier values found in input data")
		result.Message = "processing complete with errors"
		return result
	}

	records, err := s.repo.FindByInternshipLinkedIDs(ctx, candidateIDs)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = "processing failed"
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "no students found with a matching internship entry")
		result.Message = "processing complete with errors"
		return result
	}

	index := indexByLinkedInternship(records)
	patches := make(map[patchKey]*ports.InternshipPatch)
	var patchOrder []patchKey
	touched := make(map[primitive.ObjectID]struct{})

	// Stage-attribute pass.
	for rowIdx, row := range stageRows {
		sr, err := sheet.ExtractStageAttributeRow(row)
		if err != nil {
			result.Errors = append(result.Errors, errors.RowInvalid(fmt.Sprintf("%v in sheet %q at row %d", err, sheet.SheetPrincipal, rowIdx+1)).Error())
			continue
		}
		patch := s.resolvePatch(index, patches, &patchOrder, sr.Identifier, sheet.SheetPrincipal, rowIdx, result)
		if patch == nil {
			continue
		}
		if sr.Stipend != nil {
			patch.Stipend = sr.Stipend
		}
		if sr.Duration != nil {
			patch.Duration = sr.Duration
		}
		touched[patch.RecordID] = struct{}{}
	}

	// Organization-attribute pass; error policy is identical to the first pass.
	for rowIdx, row := range orgRows {
		or, err := sheet.ExtractOrganizationAttributeRow(row)
		if err != nil {
			result.Errors = append(result.Errors, errors.RowInvalid(fmt.Sprintf("%v in sheet %q at row %d", err, sheet.SheetHostCompany, rowIdx+1)).Error())
			continue
		}
		patch := s.resolvePatch(index, patches, &patchOrder, or.ParentID, sheet.SheetHostCompany, rowIdx, result)
		if patch == nil {
			continue
		}
		if or.SIRET != nil {
			patch.RegistrationCode = or.SIRET
		}
		if or.Country != nil {
			patch.Country = or.Country
		}
		if or.City != nil {
			patch.City = or.City
		}
		if or.ForeignCity != nil {
			patch.ForeignCity = or.ForeignCity
		}
		touched[patch.RecordID] = struct{}{}
	}

	if len(patchOrder) == 0 {
		result.Message = "processing complete: updated 0 student(s)"
		return result
	}

	ordered := make([]ports.InternshipPatch, 0, len(patchOrder))
	for _, key := range patchOrder {
		ordered = append(ordered, *patches[key])
	}

	if _, err := s.repo.BulkPatchInternships(ctx, ordered); err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = "processing failed"
		return result
	}

	result.Message = fmt.Sprintf("processing complete: updated %d student(s)", len(touched))
	log.Printf("[InternshipEnrichService] batch %s updated %d record(s), %d error(s)",
		batchID, len(touched), len(result.Errors))
	return result
}

// collectCandidateIDs gathers every identifier referenced by either child
// sheet so the store is queried once for the whole batch.
func (s *InternshipEnrichService) collectCandidateIDs(stageRows, orgRows []sheet.Row, result *Result) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for rowIdx, row := range stageRows {
		id, _ := row.String(sheet.ColIdentifier)
		if id == "" {
			result.Errors = append(result.Errors, errors.RowInvalid(fmt.Sprintf("missing %q in sheet %q at row %d",
				sheet.ColIdentifier, sheet.SheetPrincipal, rowIdx+1)).Error())
			continue
		}
		add(id)
	}
	for _, row := range orgRows {
		// Missing parent identifiers are reported by the organization pass.
		if id, _ := row.String(sheet.ColParentID); id != "" {
			add(id)
		}
	}
	return ids
}

// resolvePatch finds the record and internship entry a row refers to and
// returns the merged patch for it, recording a referential error and
// returning nil when either is missing. An unresolved row never creates a
// new entry.
func (s *InternshipEnrichService) resolvePatch(
	index map[string]*student.Record,
	patches map[patchKey]*ports.InternshipPatch,
	patchOrder *[]patchKey,
	linkedID, sheetName string,
	rowIdx int,
	result *Result,
) *ports.InternshipPatch {
	rec, ok := index[linkedID]
	if !ok {
		result.Errors = append(result.Errors, errors.Referential(fmt.Sprintf("no student found for identifier %q in sheet %q at row %d",
			linkedID, sheetName, rowIdx+1)).Error())
		return nil
	}
	// indexByLinkedInternship only indexes identifiers that carry an entry, so
	// a resolved record always matches here; the guard covers any future index
	// source that does not hold that invariant.
	if rec.FindInternshipByLinkedID(linkedID) == nil {
		result.Errors = append(result.Errors, errors.Referential(fmt.Sprintf("no matching internship entry for identifier %q in sheet %q at row %d",
			linkedID, sheetName, rowIdx+1)).Error())
		return nil
	}

	key := patchKey{recordID: rec.ID, linkedID: linkedID}
	patch, ok := patches[key]
	if !ok {
		patch = &ports.InternshipPatch{RecordID: rec.ID, LinkedEntityID: linkedID}
		patches[key] = patch
		*patchOrder = append(*patchOrder, key)
	}
	return patch
}
