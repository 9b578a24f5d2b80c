package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

// Thresholds applied to the total score.
const (
	passingTotal     = 40
	distinctionTotal = 75
	attentionTotal   = 30
)

type performanceAssignmentReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AssignmentDetail, error)
	ListByTeacherAndSubject(ctx context.Context, teacherID, subjectID string) ([]models.AssignmentDetail, error)
	FindByID(ctx context.Context, id string) (*models.AssignmentDetail, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type reportObserver interface {
	ObserveReport(kind string, cached bool, duration time.Duration)
}

// PerformanceService aggregates marks into reports for teachers.
type PerformanceService struct {
	assignments performanceAssignmentReader
	marks       markReader
	cache       cacheStore
	metrics     reportObserver
	cacheTTL    time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewPerformanceService constructs PerformanceService. A nil cache disables
// report caching; a nil metrics observer disables instrumentation.
func NewPerformanceService(assignments performanceAssignmentReader, marks markReader, cache cacheStore, metrics reportObserver, cacheTTL time.Duration, logger *zap.Logger) *PerformanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &PerformanceService{
		assignments: assignments,
		marks:       marks,
		cache:       cache,
		metrics:     metrics,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Report aggregates the teacher's marks. With an assignment id the scope is
// that assignment plus a batch comparison across the teacher's other
// allocations of the same subject; without one the scope is all of the
// teacher's assignments.
func (s *PerformanceService) Report(ctx context.Context, teacherID, assignmentID string) (*models.PerformanceReport, error) {
	start := s.now()
	key := fmt.Sprintf("performance:%s:%s", teacherID, cacheScope(assignmentID))
	var cached models.PerformanceReport
	if s.cacheGet(ctx, key, &cached) {
		s.observe("performance", true, start)
		return &cached, nil
	}

	var scoped []models.AssignmentDetail
	var comparison []models.AssignmentDetail
	if assignmentID != "" {
		assignment, err := s.ownedAssignment(ctx, teacherID, assignmentID)
		if err != nil {
			return nil, err
		}
		scoped = []models.AssignmentDetail{*assignment}
		comparison, err = s.assignments.ListByTeacherAndSubject(ctx, teacherID, assignment.SubjectID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject assignments")
		}
	} else {
		all, err := s.assignments.ListByTeacher(ctx, teacherID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
		}
		scoped = all
		comparison = all
	}

	records, err := s.recordsFor(ctx, scoped)
	if err != nil {
		return nil, err
	}
	report := buildReport(records)
	if assignmentID != "" {
		report.AssignmentID = assignmentID
		report.AssignmentName = scoped[0].SubjectName
	}

	comparisonRecords, err := s.recordsFor(ctx, comparison)
	if err != nil {
		return nil, err
	}
	report.BatchComparison = buildBatchComparison(comparisonRecords)

	s.cacheSet(ctx, key, report)
	s.observe("performance", false, start)
	return report, nil
}

// LowPerformers lists students below the passing total across the teacher's
// assignments, optionally filtered to one assignment.
func (s *PerformanceService) LowPerformers(ctx context.Context, teacherID, assignmentID string) (*models.LowPerformerReport, error) {
	start := s.now()
	key := fmt.Sprintf("lowperformers:%s:%s", teacherID, cacheScope(assignmentID))
	var cached models.LowPerformerReport
	if s.cacheGet(ctx, key, &cached) {
		s.observe("low_performers", true, start)
		return &cached, nil
	}

	var scoped []models.AssignmentDetail
	filteredBy := "all"
	if assignmentID != "" {
		assignment, err := s.ownedAssignment(ctx, teacherID, assignmentID)
		if err != nil {
			return nil, err
		}
		scoped = []models.AssignmentDetail{*assignment}
		filteredBy = assignment.SubjectCode
	} else {
		all, err := s.assignments.ListByTeacher(ctx, teacherID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
		}
		scoped = all
	}

	records, err := s.recordsFor(ctx, scoped)
	if err != nil {
		return nil, err
	}
	report := buildLowPerformerReport(records, filteredBy)

	s.cacheSet(ctx, key, report)
	s.observe("low_performers", false, start)
	return report, nil
}

// InvalidateTeacher drops the teacher's cached reports after mark changes.
func (s *PerformanceService) InvalidateTeacher(ctx context.Context, teacherID string) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{
		fmt.Sprintf("performance:%s:*", teacherID),
		fmt.Sprintf("lowperformers:%s:*", teacherID),
	} {
		if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
			s.logger.Warn("report cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func (s *PerformanceService) recordsFor(ctx context.Context, assignments []models.AssignmentDetail) ([]models.MarkRecord, error) {
	ids := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.ID)
	}
	records, err := s.marks.ListByAssignmentIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}
	return records, nil
}

func (s *PerformanceService) ownedAssignment(ctx context.Context, teacherID, assignmentID string) (*models.AssignmentDetail, error) {
	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	if assignment.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "assignment belongs to another teacher")
	}
	return assignment, nil
}

func (s *PerformanceService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if err != appErrors.ErrCacheMiss {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (s *PerformanceService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *PerformanceService) observe(kind string, cached bool, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveReport(kind, cached, s.now().Sub(start))
}

func cacheScope(assignmentID string) string {
	if assignmentID == "" {
		return "all"
	}
	return assignmentID
}

func buildReport(records []models.MarkRecord) *models.PerformanceReport {
	report := &models.PerformanceReport{
		SubjectWise:      []models.SubjectStat{},
		MarkDistribution: distribution(records),
		BatchComparison:  []models.BatchStat{},
	}
	if len(records) == 0 {
		return report
	}

	sum := 0
	for _, record := range records {
		total := record.TotalOrZero()
		sum += total
		if total >= passingTotal {
			report.PassedStudents++
		}
		if total >= distinctionTotal {
			report.DistinctionStudents++
		}
	}
	report.TotalStudents = len(records)
	report.AverageMarks = float64(sum) / float64(len(records))
	report.SubjectWise = buildSubjectStats(records)
	return report
}

func buildSubjectStats(records []models.MarkRecord) []models.SubjectStat {
	grouped := make(map[string][]models.MarkRecord)
	for _, record := range records {
		grouped[record.SubjectCode] = append(grouped[record.SubjectCode], record)
	}
	codes := make([]string, 0, len(grouped))
	for code := range grouped {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	stats := make([]models.SubjectStat, 0, len(codes))
	for _, code := range codes {
		group := grouped[code]
		sum, highest, lowest, passed := 0, math.MinInt, math.MaxInt, 0
		for _, record := range group {
			total := record.TotalOrZero()
			sum += total
			if total > highest {
				highest = total
			}
			if total < lowest {
				lowest = total
			}
			if total >= passingTotal {
				passed++
			}
		}
		stats = append(stats, models.SubjectStat{
			Subject:        group[0].SubjectName,
			Code:           code,
			Average:        float64(sum) / float64(len(group)),
			Highest:        highest,
			Lowest:         lowest,
			PassPercentage: float64(passed) / float64(len(group)) * 100,
		})
	}
	return stats
}

// distribution buckets totals into the five portal ranges. The first bucket
// includes 0; each later bucket excludes its lower bound.
func distribution(records []models.MarkRecord) []models.RangeBucket {
	buckets := []models.RangeBucket{
		{Range: "0-20"}, {Range: "21-40"}, {Range: "41-60"}, {Range: "61-80"}, {Range: "81-100"},
	}
	for _, record := range records {
		total := record.TotalOrZero()
		switch {
		case total <= 20:
			buckets[0].Count++
		case total <= 40:
			buckets[1].Count++
		case total <= 60:
			buckets[2].Count++
		case total <= 80:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}

// buildBatchComparison emits one row per distinct batch. The subject label
// names the single subject in scope, or "Overall" when the scope spans more.
func buildBatchComparison(records []models.MarkRecord) []models.BatchStat {
	sums := make(map[string]int)
	counts := make(map[string]int)
	subjects := make(map[string]bool)
	for _, record := range records {
		sums[record.Batch] += record.TotalOrZero()
		counts[record.Batch]++
		subjects[record.SubjectCode] = true
	}
	label := "Overall"
	if len(subjects) == 1 {
		for code := range subjects {
			label = code
		}
	}
	batches := make([]string, 0, len(sums))
	for batch := range sums {
		batches = append(batches, batch)
	}
	sort.Strings(batches)
	stats := make([]models.BatchStat, 0, len(batches))
	for _, batch := range batches {
		stats = append(stats, models.BatchStat{
			Batch:   batch,
			Subject: label,
			Average: roundHalfUp(float64(sums[batch]) / float64(counts[batch])),
		})
	}
	return stats
}

func buildLowPerformerReport(records []models.MarkRecord, filteredBy string) *models.LowPerformerReport {
	report := &models.LowPerformerReport{
		LowPerformers: []models.LowPerformer{},
		Subjects:      []string{},
		FilteredBy:    filteredBy,
	}
	if len(records) == 0 {
		return report
	}

	seen := make(map[string]bool)
	subjects := make(map[string]bool)
	sum := 0
	for _, record := range records {
		total := record.TotalOrZero()
		sum += total
		subjects[record.SubjectCode] = true
		if total >= passingTotal {
			continue
		}
		dedupeKey := record.StudentID + "|" + record.SubjectCode
		if seen[dedupeKey] {
			continue
		}
		seen[dedupeKey] = true
		report.LowPerformers = append(report.LowPerformers, models.LowPerformer{
			ID:                record.StudentID,
			Name:              record.StudentName,
			EnrollNo:          record.EnrollNo,
			RollNumber:        models.ParseRollNumber(record.EnrollNo),
			Batch:             record.Batch,
			Discipline:        record.Discipline,
			Subject:           record.SubjectName,
			SubjectCode:       record.SubjectCode,
			AssignmentID:      record.AssignmentID,
			MidSem:            record.MidSem,
			EndSem:            record.EndSem,
			Total:             total,
			NeedsAttention:    total < attentionTotal,
			ImprovementNeeded: int(math.Ceil(float64(passingTotal - total))),
		})
	}
	sort.Slice(report.LowPerformers, func(i, j int) bool {
		return report.LowPerformers[i].Total < report.LowPerformers[j].Total
	})

	report.TotalStudents = len(records)
	report.LowPerformerCount = len(report.LowPerformers)
	report.AveragePerformance = float64(sum) / float64(len(records))
	for code := range subjects {
		report.Subjects = append(report.Subjects, code)
	}
	sort.Strings(report.Subjects)
	return report
}
