package mongodb

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sheetmerge/domain/student"
	"sheetmerge/internal/errors"
	"sheetmerge/ports"
)

// Field paths into the student collection. These mirror the bson tags on
// domain/student and exist here so dotted nested paths are spelled once.
const (
	fieldIdentifier         = "Identifiant OP"
	fieldGivenName          = "Prénom"
	fieldFamilyName         = "Nom"
	fieldInternshipLinkedID = "CONVENTION DE STAGE.Entité liée - Identifiant OP"
	fieldMajors             = "DéfiEtMajeure.majeures"
	fieldMajorName          = "DéfiEtMajeure.majeures.nom"
	fieldMajorCohortPos     = "DéfiEtMajeure.majeures.$.promo"
)

// Positional paths for sparse internship patches; $ resolves to the entry
// matched by the filter's linked-identifier condition.
const (
	pathStipend          = "CONVENTION DE STAGE.$.Indemnités du stage"
	pathDuration         = "CONVENTION DE STAGE.$.Durée"
	pathRegistrationCode = "CONVENTION DE STAGE.$.Code SIRET"
	pathCountry          = "CONVENTION DE STAGE.$.Pays"
	pathCity             = "CONVENTION DE STAGE.$.Ville"
	pathForeignCity      = "CONVENTION DE STAGE.$.Ville (Hors France)"
)

// studentRepository implements the StudentRepository port on a mongo
// collection.
type studentRepository struct {
	coll *mongo.Collection
}

// NewStudentRepository creates a student repository over the given collection.
func NewStudentRepository(coll *mongo.Collection) ports.StudentRepository {
	return &studentRepository{coll: coll}
}

// FindByInternshipLinkedIDs fetches every record owning an internship entry
// whose linked-entity identifier is in ids.
func (r *studentRepository) FindByInternshipLinkedIDs(ctx context.Context, ids []string) ([]student.Record, error) {
	filter := bson.M{fieldInternshipLinkedID: bson.M{"$in": ids}}
	return r.find(ctx, filter, "find by internship linked identifiers")
}

// FindByNames fetches every record whose given/family name matches any pair.
func (r *studentRepository) FindByNames(ctx context.Context, pairs []ports.NamePair) ([]student.Record, error) {
	or := make([]bson.M, 0, len(pairs))
	for _, p := range pairs {
		or = append(or, bson.M{fieldGivenName: p.GivenName, fieldFamilyName: p.FamilyName})
	}
	if len(or) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"$or": or}, "find by names")
}

func (r *studentRepository) find(ctx context.Context, filter bson.M, op string) ([]student.Record, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.StoreError(fmt.Sprintf("%s failed", op), err)
	}
	defer cursor.Close(ctx)

	var records []student.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.StoreError(fmt.Sprintf("%s failed to decode records", op), err)
	}
	return records, nil
}

// BulkUpsertByIdentifier upserts each record keyed by its identifier in one
// ordered bulk write, preserving the relative write order of the batch.
func (r *studentRepository) BulkUpsertByIdentifier(ctx context.Context, records []student.Record) (*ports.BulkResult, error) {
	if len(records) == 0 {
		return &ports.BulkResult{}, nil
	}
	models := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{fieldIdentifier: rec.Identifier}).
			SetUpdate(bson.M{"$set": rec}).
			SetUpsert(true))
	}
	return r.bulkWrite(ctx, models, true, "bulk upsert by identifier")
}

// BulkPatchInternships applies sparse positional updates to matched
// internship entries in one unordered bulk write. Only non-nil fields are
// written; the stored entry is never replaced wholesale.
func (r *studentRepository) BulkPatchInternships(ctx context.Context, patches []ports.InternshipPatch) (*ports.BulkResult, error) {
	if len(patches) == 0 {
		return &ports.BulkResult{}, nil
	}
	models := make([]mongo.WriteModel, 0, len(patches))
	for _, p := range patches {
		set := bson.M{}
		setIfPresent(set, pathStipend, p.Stipend)
		setIfPresent(set, pathDuration, p.Duration)
		setIfPresent(set, pathRegistrationCode, p.RegistrationCode)
		setIfPresent(set, pathCountry, p.Country)
		setIfPresent(set, pathCity, p.City)
		setIfPresent(set, pathForeignCity, p.ForeignCity)
		if len(set) == 0 {
			continue
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": p.RecordID, fieldInternshipLinkedID: p.LinkedEntityID}).
			SetUpdate(bson.M{"$set": set}))
	}
	if len(models) == 0 {
		return &ports.BulkResult{}, nil
	}
	return r.bulkWrite(ctx, models, false, "bulk patch internships")
}

// BulkUpdateMajorCohorts sets the cohort of an existing major on each record,
// guarded by the major name being present. Unordered.
func (r *studentRepository) BulkUpdateMajorCohorts(ctx context.Context, updates []ports.MajorCohortUpdate) (*ports.BulkResult, error) {
	if len(updates) == 0 {
		return &ports.BulkResult{}, nil
	}
	models := make([]mongo.WriteModel, 0, len(updates))
	for _, u := range updates {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": u.RecordID, fieldMajorName: u.MajorName}).
			SetUpdate(bson.M{"$set": bson.M{fieldMajorCohortPos: u.Cohort}}))
	}
	return r.bulkWrite(ctx, models, false, "bulk update major cohorts")
}

// BulkAddMajors appends a new major to each record, guarded by the major name
// being absent so a repeated batch never duplicates a name. Unordered.
func (r *studentRepository) BulkAddMajors(ctx context.Context, adds []ports.MajorAdd) (*ports.BulkResult, error) {
	if len(adds) == 0 {
		return &ports.BulkResult{}, nil
	}
	models := make([]mongo.WriteModel, 0, len(adds))
	for _, a := range adds {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": a.RecordID, fieldMajorName: bson.M{"$ne": a.Major.Name}}).
			SetUpdate(bson.M{"$addToSet": bson.M{fieldMajors: a.Major}}))
	}
	return r.bulkWrite(ctx, models, false, "bulk add majors")
}

// bulkWrite submits the models and translates driver errors. On a partial
// failure the counts of the operations that did land are still returned next
// to the error.
func (r *studentRepository) bulkWrite(ctx context.Context, models []mongo.WriteModel, ordered bool, op string) (*ports.BulkResult, error) {
	res, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(ordered))
	result := toBulkResult(res)
	if err != nil {
		log.Printf("[StudentRepository] %s: %d op(s), error: %v", op, len(models), err)
		return result, translateError(op, err)
	}
	log.Printf("[StudentRepository] %s: %d op(s), matched %d, modified %d, upserted %d",
		op, len(models), result.MatchedCount, result.ModifiedCount, result.UpsertedCount)
	return result, nil
}

func toBulkResult(res *mongo.BulkWriteResult) *ports.BulkResult {
	if res == nil {
		return nil
	}
	return &ports.BulkResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
}

func setIfPresent(set bson.M, path string, value *string) {
	if value != nil {
		set[path] = *value
	}
}

// translateError converts driver failures into descriptive application
// errors; identifier uniqueness violations get their own code so callers can
// report them as batch errors rather than opaque store failures.
func translateError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.DuplicateKey(fmt.Sprintf("%s hit a duplicate student identifier", op), err)
	}
	return errors.StoreError(fmt.Sprintf("%s failed", op), err)
}
