//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/app/repositories"
	"github.com/kaan/markbook/internal/pkg/apperrors"
	"github.com/kaan/markbook/internal/testutil/testdb"
)

func mustAddStudent(t *testing.T, repo *repositories.StudentRepository, rollNo, name string) *models.Student {
	t.Helper()
	student := &models.Student{
		RollNo:       rollNo,
		Name:         name,
		PasswordHash: "x",
	}
	if err := repo.Create(context.Background(), student); err != nil {
		t.Fatal(err)
	}
	return student
}

func mustAddSubject(t *testing.T, repo *repositories.SubjectRepository, name string) *models.Subject {
	t.Helper()
	subject := &models.Subject{Name: name}
	if err := repo.Create(context.Background(), subject); err != nil {
		t.Fatal(err)
	}
	return subject
}

func TestStudentRepository_RollNoUnique(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	repo := repositories.NewStudentRepository(h.Pool)
	mustAddStudent(t, repo, "A1", "Alice")

	dup := &models.Student{RollNo: "A1", Name: "Someone Else", PasswordHash: "x"}
	if err := repo.Create(context.Background(), dup); !errors.Is(err, apperrors.ErrRollNoExists) {
		t.Fatalf("err = %v, want ErrRollNoExists", err)
	}

	students, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 1 {
		t.Errorf("students = %d, want 1 (duplicate must not insert)", len(students))
	}
}

func TestStudentRepository_GetAllOrderedByRollNo(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	repo := repositories.NewStudentRepository(h.Pool)
	mustAddStudent(t, repo, "C3", "Carol")
	mustAddStudent(t, repo, "A1", "Alice")
	mustAddStudent(t, repo, "B2", "Bob")

	students, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, s := range students {
		got = append(got, s.RollNo)
	}
	want := []string{"A1", "B2", "C3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSubjectRepository_NameUnique(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	repo := repositories.NewSubjectRepository(h.Pool)
	mustAddSubject(t, repo, "Math")

	dup := &models.Subject{Name: "Math"}
	if err := repo.Create(context.Background(), dup); !errors.Is(err, apperrors.ErrSubjectExists) {
		t.Fatalf("err = %v, want ErrSubjectExists", err)
	}

	subjects, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 1 {
		t.Errorf("subjects = %d, want 1 (duplicate must not insert)", len(subjects))
	}
}

func TestMarkRepository_UpsertOverwritesInPlace(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	studentRepo := repositories.NewStudentRepository(h.Pool)
	subjectRepo := repositories.NewSubjectRepository(h.Pool)
	markRepo := repositories.NewMarkRepository(h.Pool)

	student := mustAddStudent(t, studentRepo, "A1", "Alice")
	subject := mustAddSubject(t, subjectRepo, "Math")

	first := &models.Mark{StudentID: student.ID, SubjectID: subject.ID, Score: 60}
	if err := markRepo.Upsert(context.Background(), first); err != nil {
		t.Fatal(err)
	}

	second := &models.Mark{StudentID: student.ID, SubjectID: subject.ID, Score: 85}
	if err := markRepo.Upsert(context.Background(), second); err != nil {
		t.Fatal(err)
	}

	marks, err := markRepo.ListByStudent(context.Background(), student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(marks) != 1 {
		t.Fatalf("marks = %d, want exactly 1 row for the pair", len(marks))
	}
	if marks[0].Score != 85 {
		t.Errorf("score = %v, want 85 (last write wins)", marks[0].Score)
	}
	if marks[0].ID != first.ID {
		t.Errorf("mark id changed on upsert: %d -> %d", first.ID, marks[0].ID)
	}
}

func TestStudentRepository_UpdatePassword(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	repo := repositories.NewStudentRepository(h.Pool)
	student := mustAddStudent(t, repo, "A1", "Alice")

	if err := repo.UpdatePassword(context.Background(), student.ID, "newhash"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(context.Background(), student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.PasswordHash != "newhash" {
		t.Errorf("password hash = %q, want %q", got.PasswordHash, "newhash")
	}

	if err := repo.UpdatePassword(context.Background(), 9999, "x"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentRepository_GetByRollNoMissing(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	repo := repositories.NewStudentRepository(h.Pool)
	student, err := repo.GetByRollNo(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if student != nil {
		t.Errorf("student = %v, want nil for a missing roll number", student)
	}
}
