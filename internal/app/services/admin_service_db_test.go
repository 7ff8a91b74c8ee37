//go:build testutil
// +build testutil

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/app/repositories"
	"github.com/kaan/markbook/internal/app/services"
	"github.com/kaan/markbook/internal/pkg/apperrors"
	"github.com/kaan/markbook/internal/pkg/filestorage"
	"github.com/kaan/markbook/internal/testutil/testdb"
)

type fixture struct {
	handle *testdb.DBHandle
	repos  *repositories.Repositories
	admin  *services.AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)

	repos := repositories.NewRepositories(h.Pool)
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	admin := services.NewAdminService(h.Pool, repos.StudentRepository, repos.SubjectRepository, repos.MarkRepository, storage, zerolog.Nop())

	return &fixture{handle: h, repos: repos, admin: admin}
}

func (f *fixture) seedStudent(t *testing.T, rollNo, name string) *models.Student {
	t.Helper()
	student := &models.Student{RollNo: rollNo, Name: name, PasswordHash: "x"}
	if err := f.repos.StudentRepository.Create(context.Background(), student); err != nil {
		t.Fatal(err)
	}
	return student
}

func (f *fixture) seedSubject(t *testing.T, name string) *models.Subject {
	t.Helper()
	subject := &models.Subject{Name: name}
	if err := f.repos.SubjectRepository.Create(context.Background(), subject); err != nil {
		t.Fatal(err)
	}
	return subject
}

func (f *fixture) seedMark(t *testing.T, studentID, subjectID int64, score float64) {
	t.Helper()
	mark := &models.Mark{StudentID: studentID, SubjectID: subjectID, Score: score}
	if err := f.repos.MarkRepository.Upsert(context.Background(), mark); err != nil {
		t.Fatal(err)
	}
}

func TestAdminService_DeleteStudentCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.seedStudent(t, "A1", "Alice")
	bob := f.seedStudent(t, "B2", "Bob")
	math := f.seedSubject(t, "Math")
	physics := f.seedSubject(t, "Physics")

	f.seedMark(t, alice.ID, math.ID, 90)
	f.seedMark(t, alice.ID, physics.ID, 75)
	f.seedMark(t, bob.ID, math.ID, 60)

	if err := f.admin.DeleteStudent(ctx, alice.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := f.repos.StudentRepository.GetByID(ctx, alice.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound after delete", err)
	}

	count, err := f.repos.MarkRepository.CountByStudent(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("orphaned marks for deleted student: %d", count)
	}

	count, err = f.repos.MarkRepository.CountByStudent(ctx, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("another student's marks affected: want 1 remaining, got %d", count)
	}
}

func TestAdminService_DeleteStudentMissing(t *testing.T) {
	f := newFixture(t)

	if err := f.admin.DeleteStudent(context.Background(), 12345); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestAdminService_DeleteSubjectCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.seedStudent(t, "A1", "Alice")
	math := f.seedSubject(t, "Math")
	physics := f.seedSubject(t, "Physics")

	f.seedMark(t, alice.ID, math.ID, 90)
	f.seedMark(t, alice.ID, physics.ID, 75)

	if err := f.admin.DeleteSubject(ctx, math.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := f.repos.SubjectRepository.GetByID(ctx, math.ID); !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound after delete", err)
	}

	marks, err := f.repos.MarkRepository.ListByStudent(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(marks) != 1 {
		t.Fatalf("marks = %d, want 1 (only the other subject's mark survives)", len(marks))
	}
	if marks[0].SubjectID != physics.ID {
		t.Errorf("surviving mark references subject %d, want %d", marks[0].SubjectID, physics.ID)
	}
}

func TestAdminService_SaveMarkRejectsBadScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.seedStudent(t, "A1", "Alice")
	math := f.seedSubject(t, "Math")

	for _, score := range []string{"", "abc", "NaN", "Inf", "-Inf"} {
		if _, err := f.admin.SaveMark(ctx, alice.ID, math.ID, score); !errors.Is(err, apperrors.ErrInvalidScore) {
			t.Errorf("SaveMark(%q) err = %v, want ErrInvalidScore", score, err)
		}
	}

	count, err := f.repos.MarkRepository.CountByStudent(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("invalid input wrote %d marks, want 0", count)
	}
}

func TestAdminService_SaveMarkUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.seedStudent(t, "A1", "Alice")
	math := f.seedSubject(t, "Math")

	if _, err := f.admin.SaveMark(ctx, 9999, math.ID, "50"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
	if _, err := f.admin.SaveMark(ctx, alice.ID, 9999, "50"); !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound", err)
	}
}
