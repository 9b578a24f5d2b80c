package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type stubAssignmentReader struct {
	assignments []models.AssignmentDetail
}

func (s *stubAssignmentReader) ListByTeacher(ctx context.Context, teacherID string) ([]models.AssignmentDetail, error) {
	var out []models.AssignmentDetail
	for _, assignment := range s.assignments {
		if assignment.TeacherID == teacherID {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (s *stubAssignmentReader) ListByTeacherAndSubject(ctx context.Context, teacherID, subjectID string) ([]models.AssignmentDetail, error) {
	var out []models.AssignmentDetail
	for _, assignment := range s.assignments {
		if assignment.TeacherID == teacherID && assignment.SubjectID == subjectID {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (s *stubAssignmentReader) FindByID(ctx context.Context, id string) (*models.AssignmentDetail, error) {
	for i := range s.assignments {
		if s.assignments[i].ID == id {
			return &s.assignments[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

type stubCohortReader struct {
	students []models.Student
}

func (s *stubCohortReader) ListByBatchAndDiscipline(ctx context.Context, batch, discipline string) ([]models.Student, error) {
	var out []models.Student
	for _, student := range s.students {
		if student.Batch == batch && student.Discipline == discipline {
			out = append(out, student)
		}
	}
	return out, nil
}

type stubMarkReader struct {
	records []models.MarkRecord
}

func (s *stubMarkReader) ListByAssignmentIDs(ctx context.Context, assignmentIDs []string) ([]models.MarkRecord, error) {
	allowed := make(map[string]bool, len(assignmentIDs))
	for _, id := range assignmentIDs {
		allowed[id] = true
	}
	var out []models.MarkRecord
	for _, record := range s.records {
		if allowed[record.AssignmentID] {
			out = append(out, record)
		}
	}
	return out, nil
}

func testAssignment(id, teacherID string, start, end int) models.AssignmentDetail {
	return models.AssignmentDetail{
		Assignment: models.Assignment{
			ID:        id,
			TeacherID: teacherID,
			SubjectID: "subject-1",
			Batch:     "2023-2027",
			StartRoll: start,
			EndRoll:   end,
		},
		SubjectCode:    "CS301",
		SubjectName:    "Operating Systems",
		DisciplineName: "Computer Science",
	}
}

func testStudent(id, enrollNo string) models.Student {
	return models.Student{
		ID:         id,
		EnrollNo:   enrollNo,
		Name:       "Student " + id,
		Batch:      "2023-2027",
		Discipline: "Computer Science",
	}
}

func TestRosterServiceCoveredStudents(t *testing.T) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 10),
	}}
	students := &stubCohortReader{students: []models.Student{
		testStudent("student-1", "005CS2023"),
		testStudent("student-2", "011CS2023"),
		testStudent("student-3", "002CS2023"),
		testStudent("student-4", "ABCCS2023"),
	}}
	svc := NewRosterService(assignments, students, &stubMarkReader{}, nil)

	covered, err := svc.CoveredStudents(context.Background(), "teacher-1", "assign-1")
	require.NoError(t, err)
	require.Len(t, covered, 2)
	assert.Equal(t, "002CS2023", covered[0].EnrollNo)
	assert.Equal(t, "005CS2023", covered[1].EnrollNo)
}

func TestRosterServiceCoveredStudentsOtherTeacher(t *testing.T) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 10),
	}}
	svc := NewRosterService(assignments, &stubCohortReader{}, &stubMarkReader{}, nil)

	_, err := svc.CoveredStudents(context.Background(), "teacher-2", "assign-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another teacher")
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestRosterServiceCovers(t *testing.T) {
	svc := NewRosterService(nil, nil, nil, nil)
	assignment := testAssignment("assign-1", "teacher-1", 5, 15)

	inRange := testStudent("student-1", "010CS2023")
	assert.True(t, svc.Covers(&assignment, &inRange))

	outOfRange := testStudent("student-2", "016CS2023")
	assert.False(t, svc.Covers(&assignment, &outOfRange))

	wrongBatch := testStudent("student-3", "010CS2023")
	wrongBatch.Batch = "2022-2026"
	assert.False(t, svc.Covers(&assignment, &wrongBatch))

	unparseableRoll := testStudent("student-4", "XYZCS2023")
	assert.False(t, svc.Covers(&assignment, &unparseableRoll))
}

func TestRosterServiceRoster(t *testing.T) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 10),
		testAssignment("assign-2", "teacher-1", 5, 20),
	}}
	students := &stubCohortReader{students: []models.Student{
		testStudent("student-1", "003CS2023"),
		testStudent("student-2", "007CS2023"),
		testStudent("student-3", "015CS2023"),
	}}
	mid := 20
	end := 45
	marks := &stubMarkReader{records: []models.MarkRecord{
		{StudentID: "student-2", AssignmentID: "assign-1", MidSem: &mid, EndSem: &end},
		{StudentID: "student-3", AssignmentID: "assign-2", MidSem: &mid},
	}}
	svc := NewRosterService(assignments, students, marks, nil)

	roster, err := svc.Roster(context.Background(), "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, 3, roster.Summary.TotalStudents)
	assert.Equal(t, 2, roster.Summary.TotalAssignments)
	require.Len(t, roster.Students, 3)

	// Ordered by roll number; student-2 sits in both ranges.
	assert.Equal(t, "003CS2023", roster.Students[0].EnrollNo)
	assert.Len(t, roster.Students[0].Assignments, 1)
	assert.Equal(t, models.MarkStatusPending, roster.Students[0].Assignments[0].Status)

	assert.Equal(t, "007CS2023", roster.Students[1].EnrollNo)
	assert.Len(t, roster.Students[1].Assignments, 2)
	assert.Equal(t, models.MarkStatusCompleted, roster.Students[1].Assignments[0].Status)
	assert.Equal(t, models.MarkStatusPending, roster.Students[1].Assignments[1].Status)

	assert.Equal(t, "015CS2023", roster.Students[2].EnrollNo)
	require.Len(t, roster.Students[2].Assignments, 1)
	assert.Equal(t, models.MarkStatusPartial, roster.Students[2].Assignments[0].Status)
}
