package student

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is the persisted per-student aggregate. The business key is the
// Identifier ("Identifiant OP"), unique across the whole store and distinct
// from the store-assigned _id. The bson field names keep the legacy French
// headers so documents written here line up with the existing collection.
type Record struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Identifier        string             `bson:"Identifiant OP"`
	OriginInstitution string             `bson:"Etablissement d'origine,omitempty"`
	ProgramTrack      string             `bson:"Filière,omitempty"`
	Nationality       string             `bson:"Nationalité,omitempty"`
	FamilyName        string             `bson:"Nom,omitempty"`
	GivenName         string             `bson:"Prénom,omitempty"`
	GraduationYear    int                `bson:"ANNÉE DE DIPLOMATION,omitempty"`

	// Nested collections are independently optional: omitempty keeps a
	// record without internships from carrying an empty array.
	InternshipEntries []InternshipEntry `bson:"CONVENTION DE STAGE,omitempty"`
	ExchangeVisits    []ExchangeVisit   `bson:"UNIVERSITE visitant,omitempty"`
	MajorAssignment   *MajorAssignment  `bson:"DéfiEtMajeure,omitempty"`
}

// InternshipEntry is one internship attached to a student. Entries have no
// identity of their own; within a record they are matched by LinkedEntityID.
type InternshipEntry struct {
	LinkedEntityID   string     `bson:"Entité liée - Identifiant OP"`
	StartDate        *time.Time `bson:"Date de début du stage,omitempty"`
	EndDate          *time.Time `bson:"Date de fin du stage,omitempty"`
	Role             string     `bson:"Stage Fonction occupée,omitempty"`
	Name             string     `bson:"Nom Stage,omitempty"`
	Stipend          string     `bson:"Indemnités du stage,omitempty"`
	Duration         string     `bson:"Durée,omitempty"`
	RegistrationCode string     `bson:"Code SIRET,omitempty"`
	Country          string     `bson:"Pays,omitempty"`
	City             string     `bson:"Ville,omitempty"`
	ForeignCity      string     `bson:"Ville (Hors France),omitempty"`
}

// ExchangeVisit is one mobility period at a host institution.
type ExchangeVisit struct {
	ParentIdentifier string     `bson:"Entité principale - Identifiant OP"`
	StartDate        *time.Time `bson:"Date de début mobilité,omitempty"`
	EndDate          *time.Time `bson:"Date de fin mobilité,omitempty"`
	MobilityType     string     `bson:"Type Mobilité,omitempty"`
	HostInstitution  string     `bson:"Nom mobilité,omitempty"`
}

// MajorAssignment holds the challenge a student joined and the majors taken
// within it. Majors are unique by name within one record.
type MajorAssignment struct {
	Challenge string  `bson:"défi,omitempty"`
	Majors    []Major `bson:"majeures"`
}

// Major is one major entry with its cohort label.
type Major struct {
	Name   string `bson:"nom"`
	Cohort string `bson:"promo"`
}

// FindInternshipByLinkedID returns a pointer to the internship entry whose
// linked-entity identifier matches, or nil when no entry matches.
func (r *Record) FindInternshipByLinkedID(linkedID string) *InternshipEntry {
	for i := range r.InternshipEntries {
		if r.InternshipEntries[i].LinkedEntityID == linkedID {
			return &r.InternshipEntries[i]
		}
	}
	return nil
}

// HasMajor reports whether the record already carries a major with the given
// name.
func (r *Record) HasMajor(name string) bool {
	if r.MajorAssignment == nil {
		return false
	}
	for _, m := range r.MajorAssignment.Majors {
		if m.Name == name {
			return true
		}
	}
	return false
}

// NameKey derives the "given-name family-name" lookup key used by the
// major-assignment match.
func (r *Record) NameKey() string {
	return NameKey(r.GivenName, r.FamilyName)
}

// NameKey joins a given and family name into the canonical lookup key.
func NameKey(givenName, familyName string) string {
	return strings.TrimSpace(givenName) + " " + strings.TrimSpace(familyName)
}
