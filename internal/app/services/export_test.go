package services

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/kaan/markbook/internal/app/models"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestBuildMarksCSV_SingleStudentSingleSubject(t *testing.T) {
	students := []*models.Student{{ID: 1, RollNo: "A1", Name: "Alice"}}
	subjects := []*models.Subject{{ID: 10, Name: "Math"}}
	marks := []*models.Mark{{StudentID: 1, SubjectID: 10, Score: 90}}

	data, err := BuildMarksCSV(students, subjects, marks)
	if err != nil {
		t.Fatal(err)
	}

	rows := parseCSV(t, data)
	want := [][]string{
		{"Roll No", "Student Name", "Math"},
		{"A1", "Alice", "90"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestBuildMarksCSV_EmptyCellsForMissingMarks(t *testing.T) {
	students := []*models.Student{
		{ID: 1, RollNo: "A1", Name: "Alice"},
		{ID: 2, RollNo: "B2", Name: "Bob"},
	}
	subjects := []*models.Subject{
		{ID: 10, Name: "Math"},
		{ID: 11, Name: "Physics"},
	}
	marks := []*models.Mark{
		{StudentID: 1, SubjectID: 10, Score: 90},
		{StudentID: 2, SubjectID: 11, Score: 72.5},
	}

	data, err := BuildMarksCSV(students, subjects, marks)
	if err != nil {
		t.Fatal(err)
	}

	rows := parseCSV(t, data)
	want := [][]string{
		{"Roll No", "Student Name", "Math", "Physics"},
		{"A1", "Alice", "90", ""},
		{"B2", "Bob", "", "72.5"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestBuildMarksCSV_DeterministicForSameContents(t *testing.T) {
	students := []*models.Student{
		{ID: 1, RollNo: "A1", Name: "Alice"},
		{ID: 2, RollNo: "B2", Name: "Bob"},
	}
	subjects := []*models.Subject{
		{ID: 10, Name: "Math"},
		{ID: 11, Name: "Physics"},
	}
	// Mark order differs between the two calls; output must not.
	marksA := []*models.Mark{
		{StudentID: 1, SubjectID: 10, Score: 90},
		{StudentID: 2, SubjectID: 10, Score: 55},
	}
	marksB := []*models.Mark{
		{StudentID: 2, SubjectID: 10, Score: 55},
		{StudentID: 1, SubjectID: 10, Score: 90},
	}

	dataA, err := BuildMarksCSV(students, subjects, marksA)
	if err != nil {
		t.Fatal(err)
	}
	dataB, err := BuildMarksCSV(students, subjects, marksB)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(dataA, dataB) {
		t.Error("export must be deterministic given the same store contents")
	}
}

func TestBuildMarksCSV_NoStudents(t *testing.T) {
	data, err := BuildMarksCSV(nil, []*models.Subject{{ID: 1, Name: "Math"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	rows := parseCSV(t, data)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"Roll No", "Student Name", "Math"}) {
		t.Errorf("header = %v", rows[0])
	}
}
