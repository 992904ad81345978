package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sheetmerge/domain/sheet"
	"sheetmerge/domain/student"
	"sheetmerge/ports"
)

func majorBundle(rows ...sheet.Row) sheet.SheetBundle {
	return sheet.SheetBundle{{sheet.SheetMajor: rows}}
}

func majorRow(givenName, familyName, cohort, majorName string) sheet.Row {
	return sheet.Row{
		sheet.ColGivenName:  givenName,
		sheet.ColFamilyName: familyName,
		sheet.ColCohort:     cohort,
		sheet.ColMajorName:  majorName,
	}
}

func storedMarie(majors ...student.Major) student.Record {
	rec := student.Record{
		ID:         primitive.NewObjectID(),
		Identifier: "OP1",
		GivenName:  "Marie",
		FamilyName: "Curie",
	}
	if len(majors) > 0 {
		rec.MajorAssignment = &student.MajorAssignment{Challenge: "Défi Energie", Majors: majors}
	}
	return rec
}

func TestAssign_ExistingMajorBecomesCohortUpdate(t *testing.T) {
	rec := storedMarie(student.Major{Name: "Data", Cohort: "2023"})
	repo := &mockStudentRepository{}
	repo.On("FindByNames", mock.Anything, []ports.NamePair{{GivenName: "Marie", FamilyName: "Curie"}}).
		Return([]student.Record{rec}, nil)
	var updates []ports.MajorCohortUpdate
	repo.On("BulkUpdateMajorCohorts", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updates = args.Get(1).([]ports.MajorCohortUpdate)
		}).
		Return(&ports.BulkResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	svc := NewMajorAssignmentService(repo)
	result := svc.Assign(context.Background(), majorBundle(majorRow("Marie", "Curie", "2024", "Data")))

	assert.Empty(t, result.Errors)
	assert.Contains(t, result.Message, "successfully modified 1 document(s)")
	require.Len(t, updates, 1)
	assert.Equal(t, rec.ID, updates[0].RecordID)
	assert.Equal(t, "Data", updates[0].MajorName)
	assert.Equal(t, "2024", updates[0].Cohort)
	repo.AssertNotCalled(t, "BulkAddMajors", mock.Anything, mock.Anything)
}

func TestAssign_NewMajorBecomesAdd(t *testing.T) {
	rec := storedMarie(student.Major{Name: "Data", Cohort: "2023"})
	repo := &mockStudentRepository{}
	repo.On("FindByNames", mock.Anything, mock.Anything).
		Return([]student.Record{rec}, nil)
	var adds []ports.MajorAdd
	repo.On("BulkAddMajors", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			adds = args.Get(1).([]ports.MajorAdd)
		}).
		Return(&ports.BulkResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	svc := NewMajorAssignmentService(repo)
	result := svc.Assign(context.Background(), majorBundle(majorRow("Marie", "Curie", "2024", "Robotique")))

	assert.Empty(t, result.Errors)
	require.Len(t, adds, 1)
	assert.Equal(t, student.Major{Name: "Robotique", Cohort: "2024"}, adds[0].Major)
	repo.AssertNotCalled(t, "BulkUpdateMajorCohorts", mock.Anything, mock.Anything)
}

func TestAssign_AmbiguousMatchSkipsRow(t *testing.T) {
	recA := storedMarie()
	recB := storedMarie()
	repo := &mockStudentRepository{}
	repo.On("FindByNames", mock.Anything, mock.Anything).
		Return([]student.Record{recA, recB}, nil)

	svc := NewMajorAssignmentService(repo)
	result := svc.Assign(context.Background(), majorBundle(majorRow("Marie", "Curie", "2024", "Data")))

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "ambiguous match")
	assert.Contains(t, result.Message, "no documents were modified")
	repo.AssertNotCalled(t, "BulkUpdateMajorCohorts", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "BulkAddMajors", mock.Anything, mock.Anything)
}

func TestAssign_NoMatchingStudent(t *testing.T) {
	repo := &mockStudentRepository{}
	repo.On("FindByNames", mock.Anything, mock.Anything).
		Return([]student.Record{}, nil)

	svc := NewMajorAssignmentService(repo)
	result := svc.Assign(context.Background(), majorBundle(majorRow("Marie", "Curie", "2024", "Data")))

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no matching student found")
	assert.Contains(t, result.Errors[0], sheet.ColGivenName+` "Marie"`)
	assert.Contains(t, result.Errors[0], sheet.ColFamilyName+` "Curie"`)
}

func TestAssign_ValidationRejectsBeforeStoreAccess(t *testing.T) {
	repo := &mockStudentRepository{}
	svc := NewMajorAssignmentService(repo)

	missingField := sheet.Row{
		sheet.ColGivenName:  "Marie",
		sheet.ColFamilyName: "Curie",
		sheet.ColCohort:     "2024",
	}
	result := svc.Assign(context.Background(), majorBundle(missingField))

	assert.Equal(t, "validation failed with errors", result.Message)
	assert.NotEmpty(t, result.Errors)
	repo.AssertNotCalled(t, "FindByNames", mock.Anything, mock.Anything)

	wrongType := majorRow("Marie", "Curie", "", "Data")
	wrongType[sheet.ColCohort] = 2024.0
	result = svc.Assign(context.Background(), majorBundle(wrongType))

	assert.Equal(t, "validation failed with errors", result.Message)
	repo.AssertNotCalled(t, "FindByNames", mock.Anything, mock.Anything)
}

func TestAssign_BlankFieldIsRowError(t *testing.T) {
	rec := storedMarie()
	repo := &mockStudentRepository{}
	repo.On("FindByNames", mock.Anything, mock.Anything).
		Return([]student.Record{rec}, nil)

	svc := NewMajorAssignmentService(repo)
	result := svc.Assign(context.Background(), majorBundle(majorRow("Marie", "Curie", "  ", "Data")))

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "insufficient data")
	repo.AssertNotCalled(t, "BulkAddMajors", mock.Anything, mock.Anything)
}

func TestAssign_MalformedBundleShape(t *testing.T) {
	repo := &mockStudentRepository{}
	svc := NewMajorAssignmentService(repo)

	result := svc.Assign(context.Background(), sheet.SheetBundle{})
	assert.Equal(t, "validation failed with errors", result.Message)
	assert.Contains(t, result.Errors, "input data should contain exactly one sheet object")

	result = svc.Assign(context.Background(), sheet.SheetBundle{{"Beta": nil}})
	assert.Contains(t, result.Errors, `missing "Alpha" sheet in input data`)
}
