package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OAtulA/student-epr/internal/models"
)

func newMarkMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func markRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "assignment_id", "mid_sem", "end_sem", "internal", "total", "created_at", "updated_at",
	})
}

func intPtr(v int) *int { return &v }

func TestMarkRepositoryUpsertComputesTotal(t *testing.T) {
	db, mock, cleanup := newMarkMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectQuery("INSERT INTO marks").
		WithArgs(sqlmock.AnyArg(), "student-1", "assign-1", 18, 40, nil, 58, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(markRows().
			AddRow("mark-1", "student-1", "assign-1", 18, 40, nil, 58, time.Now(), time.Now()))

	stored, err := repo.Upsert(context.Background(), &models.Mark{
		StudentID:    "student-1",
		AssignmentID: "assign-1",
		MidSem:       intPtr(18),
		EndSem:       intPtr(40),
	})
	require.NoError(t, err)
	require.NotNil(t, stored.Total)
	assert.Equal(t, 58, *stored.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryUpsertAllNilScores(t *testing.T) {
	db, mock, cleanup := newMarkMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectQuery("INSERT INTO marks").
		WithArgs(sqlmock.AnyArg(), "student-1", "assign-1", nil, nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(markRows().
			AddRow("mark-1", "student-1", "assign-1", nil, nil, nil, nil, time.Now(), time.Now()))

	stored, err := repo.Upsert(context.Background(), &models.Mark{
		StudentID:    "student-1",
		AssignmentID: "assign-1",
	})
	require.NoError(t, err)
	assert.Nil(t, stored.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryBulkUpsert(t *testing.T) {
	db, mock, cleanup := newMarkMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO marks").
		WithArgs(sqlmock.AnyArg(), "student-1", "assign-1", 15, nil, nil, 15, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(markRows().
			AddRow("mark-1", "student-1", "assign-1", 15, nil, nil, 15, time.Now(), time.Now()))
	mock.ExpectQuery("INSERT INTO marks").
		WithArgs(sqlmock.AnyArg(), "student-2", "assign-1", 12, nil, nil, 12, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(markRows().
			AddRow("mark-2", "student-2", "assign-1", 12, nil, nil, 12, time.Now(), time.Now()))
	mock.ExpectCommit()

	stored, err := repo.BulkUpsert(context.Background(), []*models.Mark{
		{StudentID: "student-1", AssignmentID: "assign-1", MidSem: intPtr(15)},
		{StudentID: "student-2", AssignmentID: "assign-1", MidSem: intPtr(12)},
	})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryBulkUpsertRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newMarkMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO marks").
		WithArgs(sqlmock.AnyArg(), "student-1", "assign-1", 15, nil, nil, 15, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.BulkUpsert(context.Background(), []*models.Mark{
		{StudentID: "student-1", AssignmentID: "assign-1", MidSem: intPtr(15)},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryListByAssignmentIDs(t *testing.T) {
	db, mock, cleanup := newMarkMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	rows := sqlmock.NewRows([]string{
		"mark_id", "student_id", "student_name", "enroll_no", "batch", "discipline",
		"assignment_id", "subject_id", "subject_code", "subject_name",
		"mid_sem", "end_sem", "internal", "total",
	}).AddRow("mark-1", "student-1", "Ravi Kumar", "007CS2023", "2023-2027", "Computer Science",
		"assign-1", "subject-1", "CS301", "Operating Systems", 18, 40, 9, 67)
	mock.ExpectQuery("FROM marks m").
		WithArgs("assign-1").
		WillReturnRows(rows)

	records, err := repo.ListByAssignmentIDs(context.Background(), []string{"assign-1"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "007CS2023", records[0].EnrollNo)
	assert.Equal(t, 67, records[0].TotalOrZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryListByAssignmentIDsEmpty(t *testing.T) {
	db, _, cleanup := newMarkMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	records, err := repo.ListByAssignmentIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
