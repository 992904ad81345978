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

// IngestService reconciles a fresh-import batch into student records: it
// validates the bundle, indexes the principal sheet by student identifier,
// folds the internship and exchange child sheets onto the indexed records,
// and persists the result as one ordered bulk upsert per record.
//
// The whole batch is rejected when any validation or merge error occurs;
// fresh imports are all-or-nothing. Re-submitting the same batch is
// idempotent on identifier: existing records are updated, never duplicated.
type IngestService struct {
	repo      ports.StudentRepository
	validator *BatchValidator
}

// NewIngestService creates an ingest service validating against the given
// schema.
func NewIngestService(repo ports.StudentRepository, schema []sheet.RequiredSheetSpec) *IngestService {
	return &IngestService{
		repo:      repo,
		validator: NewBatchValidator(schema),
	}
}

// Ingest processes one fresh-import bundle. The graduation year is stamped
// onto every record created from the principal sheet. The returned result is
// never nil and store failures surface as entries in Result.Errors, not as
// panics or raw errors.
func (s *IngestService) Ingest(ctx context.Context, bundle sheet.SheetBundle, graduationYear int) *Result {
	batchID := uuid.NewString()
	log.Printf("[IngestService] batch %s: %d sheet element(s)", batchID, len(bundle))

	result := newResult()
	sheets, errs := s.validator.Partition(bundle)

	index := make(map[string]*student.Record)
	var order []string

	for rowIdx, row := range sheets[sheet.SheetPrincipal] {
		pr, err := sheet.ExtractPrincipalRow(row)
		if err != nil {
			errs = append(errs, errors.RowInvalid(fmt.Sprintf("%v in sheet %q at row %d", err, sheet.SheetPrincipal, rowIdx+1)).Error())
			continue
		}
		if _, dup := index[pr.Identifier]; dup {
			// First occurrence wins; the duplicate is an error for this row only.
			errs = append(errs, errors.RowInvalid(fmt.Sprintf("duplicate %q %q in sheet %q at row %d", sheet.ColIdentifier, pr.Identifier, sheet.SheetPrincipal, rowIdx+1)).Error())
			continue
		}
		index[pr.Identifier] = &student.Record{
			Identifier:        pr.Identifier,
			OriginInstitution: pr.Origin,
			ProgramTrack:      pr.Track,
			Nationality:       pr.Nationality,
			FamilyName:        pr.FamilyName,
			GivenName:         pr.GivenName,
			GraduationYear:    graduationYear,
		}
		order = append(order, pr.Identifier)
	}

	errs = append(errs, s.mergeInternships(sheets[sheet.SheetInternship], index)...)
	errs = append(errs, s.mergeExchanges(sheets[sheet.SheetExchange], index)...)

	if len(errs) > 0 {
		result.Message = "batch rejected: no records were persisted"
		result.Errors = errs
		log.Printf("[IngestService] batch %s rejected with %d error(s)", batchID, len(errs))
		return result
	}

	if len(order) == 0 {
		result.Message = "no student data to process"
		return result
	}

	records := make([]student.Record, 0, len(order))
	for _, id := range order {
		records = append(records, *index[id])
	}

	bulkRes, err := s.repo.BulkUpsertByIdentifier(ctx, records)
	if err != nil {
		log.Printf("[IngestService] batch %s store failure (%s): %v", batchID, errors.GetCode(err), err)
		result.Errors = append(result.Errors, err.Error())
		result.Message = "bulk write failed"
		return result
	}

	result.Message = fmt.Sprintf("bulk write summary: matched %d, modified %d, upserted %d",
		bulkRes.MatchedCount, bulkRes.ModifiedCount, bulkRes.UpsertedCount)
	log.Printf("[IngestService] batch %s persisted %d record(s)", batchID, len(records))
	return result
}

// mergeInternships attaches internship child rows onto their parent records.
// A row whose parent identifier resolves to no record is an error and is
// skipped, never silently dropped.
func (s *IngestService) mergeInternships(rows []sheet.Row, index map[string]*student.Record) []string {
	var errs []string
	for rowIdx, row := range rows {
		ir, err := sheet.ExtractInternshipRow(row)
		if err != nil {
			errs = append(errs, errors.RowInvalid(fmt.Sprintf("%v in sheet %q at row %d", err, sheet.SheetInternship, rowIdx+1)).Error())
			continue
		}
		parent, ok := index[ir.ParentID]
		if !ok {
			errs = append(errs, errors.Referential(fmt.Sprintf("no matching principal record for %q %q in sheet %q at row %d",
				sheet.ColIdentifier, ir.ParentID, sheet.SheetInternship, rowIdx+1)).Error())
			continue
		}
		parent.InternshipEntries = append(parent.InternshipEntries, student.InternshipEntry{
			LinkedEntityID: ir.LinkedID,
			StartDate:      ir.StartDate,
			EndDate:        ir.EndDate,
			Role:           ir.Role,
			Name:           ir.Name,
		})
	}
	return errs
}

// mergeExchanges attaches exchange-visit child rows onto their parent
// records.
func (s *IngestService) mergeExchanges(rows []sheet.Row, index map[string]*student.Record) []string {
	var errs []string
	for rowIdx, row := range rows {
		er, err := sheet.ExtractExchangeRow(row)
		if err != nil {
			errs = append(errs, errors.RowInvalid(fmt.Sprintf("%v in sheet %q at row %d", err, sheet.SheetExchange, rowIdx+1)).Error())
			continue
		}
		parent, ok := index[er.ParentID]
		if !ok {
			errs = append(errs, errors.Referential(fmt.Sprintf("no matching principal record for %q %q in sheet %q at row %d",
				sheet.ColIdentifier, er.ParentID, sheet.SheetExchange, rowIdx+1)).Error())
			continue
		}
		parent.ExchangeVisits = append(parent.ExchangeVisits, student.ExchangeVisit{
			ParentIdentifier: er.ParentID,
			StartDate:        er.StartDate,
			EndDate:          er.EndDate,
			MobilityType:     er.MobilityType,
			HostInstitution:  er.HostName,
		})
	}
	return errs
}
