package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OAtulA/student-epr/internal/models"
)

type stubAdviceRepo struct {
	entries []models.AdviceDetail
	likes   map[string]map[string]bool
}

func (s *stubAdviceRepo) Create(ctx context.Context, advice *models.Advice) error {
	advice.ID = "advice-new"
	detail := models.AdviceDetail{Advice: *advice, StudentName: "Author", StudentBatch: "2022-2026"}
	s.entries = append(s.entries, detail)
	return nil
}

func (s *stubAdviceRepo) ListForDiscipline(ctx context.Context, discipline, viewerStudentID string) ([]models.AdviceDetail, error) {
	return s.entries, nil
}

func (s *stubAdviceRepo) CountForDiscipline(ctx context.Context, discipline string) (int, error) {
	return len(s.entries), nil
}

func (s *stubAdviceRepo) FindByID(ctx context.Context, id string) (*models.Advice, error) {
	for _, entry := range s.entries {
		if entry.ID == id {
			advice := entry.Advice
			return &advice, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdviceRepo) ToggleLike(ctx context.Context, adviceID, studentID string) (bool, error) {
	if s.likes == nil {
		s.likes = make(map[string]map[string]bool)
	}
	if s.likes[adviceID] == nil {
		s.likes[adviceID] = make(map[string]bool)
	}
	liked := !s.likes[adviceID][studentID]
	s.likes[adviceID][studentID] = liked
	return liked, nil
}

func (s *stubAdviceRepo) CountLikes(ctx context.Context, adviceID string) (int, error) {
	count := 0
	for _, liked := range s.likes[adviceID] {
		if liked {
			count++
		}
	}
	return count, nil
}

func adviceEntry(id, text string, subjectCode *string, createdAt time.Time) models.AdviceDetail {
	isGeneral := subjectCode == nil
	return models.AdviceDetail{
		Advice: models.Advice{
			ID:        id,
			StudentID: "author-1",
			IsGeneral: isGeneral,
			Advice:    text,
			CreatedAt: createdAt,
		},
		SubjectCode:  subjectCode,
		StudentName:  "Senior Student",
		StudentBatch: "2022-2026",
	}
}

func viewer() *models.Student {
	student := testStudent("student-1", "005CS2023")
	return &student
}

func TestAdviceServiceFeed(t *testing.T) {
	code := "CS301"
	repo := &stubAdviceRepo{entries: []models.AdviceDetail{
		adviceEntry("advice-1", "revise past papers before the end sem", &code, time.Now()),
		adviceEntry("advice-2", "attend every lab session without fail", nil, time.Now()),
	}}
	svc := NewAdviceService(repo, &stubSubjectFinder{}, nil, nil, nil)

	feed, err := svc.Feed(context.Background(), viewer())
	require.NoError(t, err)
	assert.Equal(t, 2, feed.Summary.TotalAdvice)
	assert.Equal(t, 1, feed.Summary.GeneralAdvice)
	assert.Equal(t, 1, feed.Summary.SubjectAdvice)
	assert.Equal(t, []string{"CS301"}, feed.Subjects)
	assert.Equal(t, []string{"2022-2026"}, feed.Batches)
}

func TestAdviceServiceStats(t *testing.T) {
	code := "CS301"
	latest := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubAdviceRepo{entries: []models.AdviceDetail{
		adviceEntry("advice-1", "revise past papers before the end sem", &code, latest.Add(-time.Hour)),
		adviceEntry("advice-2", "attend every lab session without fail", nil, latest),
		adviceEntry("advice-3", "form study groups early in the semester", nil, latest.Add(-2*time.Hour)),
	}}
	svc := NewAdviceService(repo, &stubSubjectFinder{}, nil, nil, nil)

	stats, err := svc.Stats(context.Background(), viewer())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalAdvice)
	assert.True(t, stats.AIReady)
	assert.Equal(t, 2, stats.ThemesCount)
	assert.Equal(t, latest, stats.LastUpdated)
}

func TestAdviceServiceStatsNotAIReady(t *testing.T) {
	repo := &stubAdviceRepo{entries: []models.AdviceDetail{
		adviceEntry("advice-1", "attend every lab session without fail", nil, time.Now()),
	}}
	svc := NewAdviceService(repo, &stubSubjectFinder{}, nil, nil, nil)

	stats, err := svc.Stats(context.Background(), viewer())
	require.NoError(t, err)
	assert.False(t, stats.AIReady)
}

func TestAdviceServiceCreateGeneral(t *testing.T) {
	repo := &stubAdviceRepo{}
	svc := NewAdviceService(repo, &stubSubjectFinder{}, nil, nil, nil)

	advice, err := svc.Create(context.Background(), "student-1", CreateAdviceRequest{
		Advice: "start assignments the week they are released",
	})
	require.NoError(t, err)
	assert.True(t, advice.IsGeneral)
	assert.Nil(t, advice.SubjectID)
}

func TestAdviceServiceCreateRejectsShortText(t *testing.T) {
	svc := NewAdviceService(&stubAdviceRepo{}, &stubSubjectFinder{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), "student-1", CreateAdviceRequest{Advice: "too short"})
	require.Error(t, err)
}

func TestAdviceServiceToggleLike(t *testing.T) {
	repo := &stubAdviceRepo{entries: []models.AdviceDetail{
		adviceEntry("advice-1", "attend every lab session without fail", nil, time.Now()),
	}}
	svc := NewAdviceService(repo, &stubSubjectFinder{}, nil, nil, nil)

	liked, err := svc.ToggleLike(context.Background(), "student-1", "advice-1")
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.Likes)

	unliked, err := svc.ToggleLike(context.Background(), "student-1", "advice-1")
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.Likes)
}

func TestAdviceServiceSummarizeFallback(t *testing.T) {
	code := "CS301"
	repo := &stubAdviceRepo{entries: []models.AdviceDetail{
		adviceEntry("advice-1", "revise past papers before the end sem", &code, time.Now()),
	}}
	svc := NewAdviceService(repo, &stubSubjectFinder{}, nil, nil, nil)

	answer, err := svc.Summarize(context.Background(), viewer())
	require.NoError(t, err)
	assert.Equal(t, 1, answer.AdviceCount)
	assert.Contains(t, answer.Answer, "revise past papers")
	assert.Contains(t, answer.Answer, "[CS301]")
}

func TestAdviceServiceAskRequiresQuestion(t *testing.T) {
	svc := NewAdviceService(&stubAdviceRepo{}, &stubSubjectFinder{}, nil, nil, nil)

	_, err := svc.Ask(context.Background(), viewer(), "")
	require.Error(t, err)
}
