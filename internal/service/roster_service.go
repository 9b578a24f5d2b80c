package service

import (
	"context"
	"database/sql"
	"sort"

	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type rosterAssignmentReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AssignmentDetail, error)
	FindByID(ctx context.Context, id string) (*models.AssignmentDetail, error)
}

type cohortReader interface {
	ListByBatchAndDiscipline(ctx context.Context, batch, discipline string) ([]models.Student, error)
}

type markReader interface {
	ListByAssignmentIDs(ctx context.Context, assignmentIDs []string) ([]models.MarkRecord, error)
}

// RosterService resolves which students an assignment covers, in both
// directions: students for one assignment and the full roster of a teacher.
type RosterService struct {
	assignments rosterAssignmentReader
	students    cohortReader
	marks       markReader
	logger      *zap.Logger
}

// NewRosterService constructs RosterService.
func NewRosterService(assignments rosterAssignmentReader, students cohortReader, marks markReader, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{assignments: assignments, students: students, marks: marks, logger: logger}
}

// CoveredStudents returns the students whose roll numbers fall inside one
// assignment's range, ordered by roll number. Only the requesting teacher
// may resolve their own assignment.
func (s *RosterService) CoveredStudents(ctx context.Context, teacherID, assignmentID string) ([]models.CoveredStudent, error) {
	assignment, err := s.ownedAssignment(ctx, teacherID, assignmentID)
	if err != nil {
		return nil, err
	}
	cohort, err := s.students.ListByBatchAndDiscipline(ctx, assignment.Batch, assignment.DisciplineName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
	}
	covered := make([]models.CoveredStudent, 0, len(cohort))
	for _, student := range cohort {
		roll := student.RollNumber()
		if roll < assignment.StartRoll || roll > assignment.EndRoll {
			continue
		}
		covered = append(covered, models.CoveredStudent{
			ID:         student.ID,
			EnrollNo:   student.EnrollNo,
			Name:       student.Name,
			RollNumber: roll,
		})
	}
	sort.Slice(covered, func(i, j int) bool { return covered[i].RollNumber < covered[j].RollNumber })
	return covered, nil
}

// Covers reports whether the assignment's roll range includes the student.
// The student must belong to the assignment's batch and discipline.
func (s *RosterService) Covers(assignment *models.AssignmentDetail, student *models.Student) bool {
	if student.Batch != assignment.Batch || student.Discipline != assignment.DisciplineName {
		return false
	}
	roll := student.RollNumber()
	return roll >= assignment.StartRoll && roll <= assignment.EndRoll
}

// Roster builds the reverse view: every student covered by at least one of
// the teacher's assignments, with per-assignment mark status attached.
func (s *RosterService) Roster(ctx context.Context, teacherID string) (*models.Roster, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	assignmentIDs := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		assignmentIDs = append(assignmentIDs, assignment.ID)
	}
	records, err := s.marks.ListByAssignmentIDs(ctx, assignmentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}
	marksByKey := make(map[string]models.MarkRecord, len(records))
	for _, record := range records {
		marksByKey[record.StudentID+"|"+record.AssignmentID] = record
	}

	// Cohorts repeat across a teacher's assignments; fetch each once.
	cohorts := make(map[string][]models.Student)
	byStudent := make(map[string]*models.RosterStudent)
	for i := range assignments {
		assignment := assignments[i]
		cohortKey := assignment.Batch + "|" + assignment.DisciplineName
		cohort, ok := cohorts[cohortKey]
		if !ok {
			cohort, err = s.students.ListByBatchAndDiscipline(ctx, assignment.Batch, assignment.DisciplineName)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
			}
			cohorts[cohortKey] = cohort
		}
		for _, student := range cohort {
			roll := student.RollNumber()
			if roll < assignment.StartRoll || roll > assignment.EndRoll {
				continue
			}
			entry, ok := byStudent[student.ID]
			if !ok {
				entry = &models.RosterStudent{
					ID:         student.ID,
					Name:       student.Name,
					EnrollNo:   student.EnrollNo,
					RollNumber: roll,
					Batch:      student.Batch,
					Discipline: student.Discipline,
				}
				byStudent[student.ID] = entry
			}
			rosterAssignment := models.RosterAssignment{
				ID:          assignment.ID,
				Subject:     assignment.SubjectName,
				SubjectCode: assignment.SubjectCode,
				Batch:       assignment.Batch,
				Status:      models.MarkStatusPending,
			}
			if record, ok := marksByKey[student.ID+"|"+assignment.ID]; ok {
				rosterAssignment.MidSem = record.MidSem
				rosterAssignment.EndSem = record.EndSem
				rosterAssignment.Total = record.Total
				rosterAssignment.Status = markStatus(record)
			}
			entry.Assignments = append(entry.Assignments, rosterAssignment)
		}
	}

	students := make([]models.RosterStudent, 0, len(byStudent))
	for _, entry := range byStudent {
		students = append(students, *entry)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].RollNumber != students[j].RollNumber {
			return students[i].RollNumber < students[j].RollNumber
		}
		return students[i].EnrollNo < students[j].EnrollNo
	})

	return &models.Roster{
		Students: students,
		Summary: models.RosterSummary{
			TotalStudents:    len(students),
			TotalAssignments: len(assignments),
		},
	}, nil
}

func (s *RosterService) ownedAssignment(ctx context.Context, teacherID, assignmentID string) (*models.AssignmentDetail, error) {
	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if assignment.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "assignment belongs to another teacher")
	}
	return assignment, nil
}

// Completed needs both exam components; anything with one of them is
// partial.
func markStatus(record models.MarkRecord) models.MarkStatus {
	switch {
	case record.MidSem != nil && record.EndSem != nil:
		return models.MarkStatusCompleted
	case record.MidSem != nil || record.EndSem != nil:
		return models.MarkStatusPartial
	default:
		return models.MarkStatusPending
	}
}
