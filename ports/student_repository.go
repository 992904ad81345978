package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sheetmerge/domain/student"
)

// NamePair is a given/family name lookup key for batches that carry no
// student identifier of their own.
type NamePair struct {
	GivenName  string
	FamilyName string
}

// InternshipPatch is a sparse update of one internship entry, addressed by
// the owning record and the entry's linked-entity identifier. Nil fields are
// left untouched on the stored entry; the write never replaces the document.
type InternshipPatch struct {
	RecordID         primitive.ObjectID
	LinkedEntityID   string
	Stipend          *string
	Duration         *string
	RegistrationCode *string
	Country          *string
	City             *string
	ForeignCity      *string
}

// MajorCohortUpdate sets the cohort of an already-present major, guarded at
// the store by the major name existing on the record.
type MajorCohortUpdate struct {
	RecordID  primitive.ObjectID
	MajorName string
	Cohort    string
}

// MajorAdd appends a new major, guarded at the store by the major name not
// existing on the record. The guard makes the add idempotent.
type MajorAdd struct {
	RecordID primitive.ObjectID
	Major    student.Major
}

// BulkResult reports the outcome of one bulk write.
type BulkResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
}

// StudentRepository is the persistence gateway the merge engines write
// through. Implementations translate store-level failures, including
// identifier uniqueness violations, into descriptive errors; raw driver
// errors never reach the engines.
//
// Write discipline: upserts from fresh ingestion are ordered so related
// field changes land coherently for observers; enrichment writes are
// unordered so independent updates complete even when one fails.
type StudentRepository interface {
	// FindByInternshipLinkedIDs fetches every record owning an internship
	// entry whose linked-entity identifier is in ids.
	FindByInternshipLinkedIDs(ctx context.Context, ids []string) ([]student.Record, error)

	// FindByNames fetches every record whose given/family name matches any
	// of the pairs.
	FindByNames(ctx context.Context, pairs []NamePair) ([]student.Record, error)

	// BulkUpsertByIdentifier upserts each record keyed by its identifier in
	// one ordered bulk write.
	BulkUpsertByIdentifier(ctx context.Context, records []student.Record) (*BulkResult, error)

	// BulkPatchInternships applies sparse positional updates to matched
	// internship entries in one unordered bulk write.
	BulkPatchInternships(ctx context.Context, patches []InternshipPatch) (*BulkResult, error)

	// BulkUpdateMajorCohorts applies guarded cohort updates in one unordered
	// bulk write; an op whose guard fails is a store-level no-op.
	BulkUpdateMajorCohorts(ctx context.Context, updates []MajorCohortUpdate) (*BulkResult, error)

	// BulkAddMajors applies guarded major additions in one unordered bulk
	// write; an op whose guard fails is a store-level no-op.
	BulkAddMajors(ctx context.Context, adds []MajorAdd) (*BulkResult, error)
}
