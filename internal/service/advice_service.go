package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/ai"
	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type adviceRepo interface {
	Create(ctx context.Context, advice *models.Advice) error
	ListForDiscipline(ctx context.Context, discipline, viewerStudentID string) ([]models.AdviceDetail, error)
	CountForDiscipline(ctx context.Context, discipline string) (int, error)
	FindByID(ctx context.Context, id string) (*models.Advice, error)
	ToggleLike(ctx context.Context, adviceID, studentID string) (bool, error)
	CountLikes(ctx context.Context, adviceID string) (int, error)
}

type adviceSubjectFinder interface {
	FindByID(ctx context.Context, id string) (*models.SubjectDetail, error)
}

// CreateAdviceRequest shares a tip, either general or tied to a subject.
type CreateAdviceRequest struct {
	SubjectID *string `json:"subject_id"`
	Advice    string  `json:"advice" validate:"required,min=10,max=1000"`
}

// LikeResult reports the state of an advice entry after a like toggle.
type LikeResult struct {
	AdviceID string `json:"advice_id"`
	Liked    bool   `json:"liked"`
	Likes    int    `json:"likes"`
}

// AIAnswer wraps a generated answer with pool context.
type AIAnswer struct {
	Answer      string    `json:"answer"`
	AdviceCount int       `json:"advice_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AdviceService manages the peer advice pool and its AI summaries.
type AdviceService struct {
	advice     adviceRepo
	subjects   adviceSubjectFinder
	summarizer ai.Summarizer
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewAdviceService constructs AdviceService.
func NewAdviceService(advice adviceRepo, subjects adviceSubjectFinder, summarizer ai.Summarizer, validate *validator.Validate, logger *zap.Logger) *AdviceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if summarizer == nil {
		summarizer = ai.NewFallbackSummarizer()
	}
	return &AdviceService{
		advice:     advice,
		subjects:   subjects,
		summarizer: summarizer,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// Create shares advice authored by the student. Advice without a subject is
// general.
func (s *AdviceService) Create(ctx context.Context, studentID string, req CreateAdviceRequest) (*models.Advice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid advice payload")
	}
	if req.SubjectID != nil && *req.SubjectID != "" {
		if _, err := s.subjects.FindByID(ctx, *req.SubjectID); err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
		}
	}
	advice := &models.Advice{
		StudentID: studentID,
		SubjectID: normalizeSubjectID(req.SubjectID),
		IsGeneral: req.SubjectID == nil || *req.SubjectID == "",
		Advice:    req.Advice,
	}
	if err := s.advice.Create(ctx, advice); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create advice")
	}
	return advice, nil
}

// Feed returns the advice visible to the student with filter values and
// counts.
func (s *AdviceService) Feed(ctx context.Context, student *models.Student) (*models.AdviceFeed, error) {
	entries, err := s.advice.ListForDiscipline(ctx, student.Discipline, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list advice")
	}

	feed := &models.AdviceFeed{Advice: entries, Subjects: []string{}, Batches: []string{}}
	subjects := make(map[string]bool)
	batches := make(map[string]bool)
	for _, entry := range entries {
		feed.Summary.TotalAdvice++
		if entry.IsGeneral {
			feed.Summary.GeneralAdvice++
		} else {
			feed.Summary.SubjectAdvice++
			if entry.SubjectCode != nil {
				subjects[*entry.SubjectCode] = true
			}
		}
		batches[entry.StudentBatch] = true
	}
	for code := range subjects {
		feed.Subjects = append(feed.Subjects, code)
	}
	for batch := range batches {
		feed.Batches = append(feed.Batches, batch)
	}
	sort.Strings(feed.Subjects)
	sort.Strings(feed.Batches)
	return feed, nil
}

// Stats summarises the advice pool for the student's discipline. The AI
// endpoints need at least three entries to produce useful output.
func (s *AdviceService) Stats(ctx context.Context, student *models.Student) (*models.AdviceStats, error) {
	entries, err := s.advice.ListForDiscipline(ctx, student.Discipline, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list advice")
	}
	stats := &models.AdviceStats{TotalAdvice: len(entries), AIReady: len(entries) >= 3}
	themes := make(map[string]bool)
	for _, entry := range entries {
		if entry.CreatedAt.After(stats.LastUpdated) {
			stats.LastUpdated = entry.CreatedAt
		}
		if entry.SubjectCode != nil {
			themes[*entry.SubjectCode] = true
		} else {
			themes["general"] = true
		}
	}
	stats.ThemesCount = len(themes)
	return stats, nil
}

// ToggleLike flips the student's like on an advice entry.
func (s *AdviceService) ToggleLike(ctx context.Context, studentID, adviceID string) (*LikeResult, error) {
	if _, err := s.advice.FindByID(ctx, adviceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "advice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load advice")
	}
	liked, err := s.advice.ToggleLike(ctx, adviceID, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle like")
	}
	likes, err := s.advice.CountLikes(ctx, adviceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count likes")
	}
	return &LikeResult{AdviceID: adviceID, Liked: liked, Likes: likes}, nil
}

// Summarize condenses the discipline's advice pool into themed guidance.
func (s *AdviceService) Summarize(ctx context.Context, student *models.Student) (*AIAnswer, error) {
	pool, err := s.advicePool(ctx, student)
	if err != nil {
		return nil, err
	}
	answer, err := s.summarizer.Summarize(ctx, pool)
	if err != nil {
		s.logger.Warn("advice summary failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarize advice")
	}
	return &AIAnswer{Answer: answer, AdviceCount: len(pool), GeneratedAt: s.now().UTC()}, nil
}

// Ask answers a question grounded in the discipline's advice pool.
func (s *AdviceService) Ask(ctx context.Context, student *models.Student, question string) (*AIAnswer, error) {
	if question == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "question required")
	}
	pool, err := s.advicePool(ctx, student)
	if err != nil {
		return nil, err
	}
	answer, err := s.summarizer.Ask(ctx, pool, question)
	if err != nil {
		s.logger.Warn("advice question failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to answer question")
	}
	return &AIAnswer{Answer: answer, AdviceCount: len(pool), GeneratedAt: s.now().UTC()}, nil
}

func (s *AdviceService) advicePool(ctx context.Context, student *models.Student) ([]string, error) {
	entries, err := s.advice.ListForDiscipline(ctx, student.Discipline, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list advice")
	}
	pool := make([]string, 0, len(entries))
	for _, entry := range entries {
		text := entry.Advice.Advice
		if entry.SubjectCode != nil {
			text = "[" + *entry.SubjectCode + "] " + text
		}
		pool = append(pool, text)
	}
	return pool, nil
}

func normalizeSubjectID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
