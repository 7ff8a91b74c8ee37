package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/kaan/markbook/internal/app/models"
)

// BuildMarksCSV renders the export for the given store contents. The output
// is deterministic: callers pass students ordered by roll number and
// subjects in catalog order, and each cell holds the student's score for
// that subject or stays empty when no mark exists.
func BuildMarksCSV(students []*models.Student, subjects []*models.Subject, marks []*models.Mark) ([]byte, error) {
	// Index scores by (student, subject) so row assembly is a lookup, not
	// a scan per cell.
	scores := make(map[[2]int64]float64, len(marks))
	for _, m := range marks {
		scores[[2]int64{m.StudentID, m.SubjectID}] = m.Score
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, 2+len(subjects))
	header = append(header, "Roll No", "Student Name")
	for _, subject := range subjects {
		header = append(header, subject.Name)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, student := range students {
		row := make([]string, 0, 2+len(subjects))
		row = append(row, student.RollNo, student.Name)
		for _, subject := range subjects {
			if score, ok := scores[[2]int64{student.ID, subject.ID}]; ok {
				row = append(row, formatScore(score))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// formatScore renders scores the way they were entered: integral values
// without a trailing ".0".
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
