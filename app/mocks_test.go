package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sheetmerge/domain/student"
	"sheetmerge/ports"
)

// mockStudentRepository is a testify mock of the persistence gateway.
type mockStudentRepository struct {
	mock.Mock
}

func (m *mockStudentRepository) FindByInternshipLinkedIDs(ctx context.Context, ids []string) ([]student.Record, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]student.Record), args.Error(1)
}

func (m *mockStudentRepository) FindByNames(ctx context.Context, pairs []ports.NamePair) ([]student.Record, error) {
	args := m.Called(ctx, pairs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]student.Record), args.Error(1)
}

func (m *mockStudentRepository) BulkUpsertByIdentifier(ctx context.Context, records []student.Record) (*ports.BulkResult, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.BulkResult), args.Error(1)
}

func (m *mockStudentRepository) BulkPatchInternships(ctx context.Context, patches []ports.InternshipPatch) (*ports.BulkResult, error) {
	args := m.Called(ctx, patches)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.BulkResult), args.Error(1)
}

func (m *mockStudentRepository) BulkUpdateMajorCohorts(ctx context.Context, updates []ports.MajorCohortUpdate) (*ports.BulkResult, error) {
	args := m.Called(ctx, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.BulkResult), args.Error(1)
}

func (m *mockStudentRepository) BulkAddMajors(ctx context.Context, adds []ports.MajorAdd) (*ports.BulkResult, error) {
	args := m.Called(ctx, adds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.BulkResult), args.Error(1)
}
