package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type userWriter interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateTeacher(ctx context.Context, user *models.User, teacher *models.Teacher) error
	CreateStudent(ctx context.Context, user *models.User, student *models.Student) error
}

type teacherChecker interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByUserID(ctx context.Context, userID string) (*models.Teacher, error)
	ExistsByTeacherID(ctx context.Context, teacherID string) (bool, error)
}

type studentChecker interface {
	List(ctx context.Context) ([]models.Student, error)
	ExistsByEnrollNo(ctx context.Context, enrollNo string) (bool, error)
}

// CreateTeacherRequest registers a teacher account with its profile.
type CreateTeacherRequest struct {
	Email       string    `json:"email" validate:"required,email"`
	Password    string    `json:"password" validate:"required,min=8"`
	TeacherID   string    `json:"teacher_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	JoiningDate time.Time `json:"joining_date" validate:"required"`
}

// CreateStudentRequest registers a student account with its profile.
type CreateStudentRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	EnrollNo   string `json:"enroll_no" validate:"required,min=3"`
	Name       string `json:"name" validate:"required"`
	Batch      string `json:"batch" validate:"required"`
	Discipline string `json:"discipline" validate:"required"`
}

// UserService provisions teacher and student accounts.
type UserService struct {
	users     userWriter
	teachers  teacherChecker
	students  studentChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(users userWriter, teachers teacherChecker, students studentChecker, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, teachers: teachers, students: students, validator: validate, logger: logger}
}

// CreateTeacher registers a teacher account.
func (s *UserService) CreateTeacher(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}
	taken, err := s.teachers.ExistsByTeacherID(ctx, req.TeacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher id")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher id already registered")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: req.Email, PasswordHash: hash, Role: models.RoleTeacher}
	teacher := &models.Teacher{TeacherID: req.TeacherID, Name: req.Name, JoiningDate: req.JoiningDate}
	if err := s.users.CreateTeacher(ctx, user, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.TeacherID))
	return teacher, nil
}

// CreateStudent registers a student account.
func (s *UserService) CreateStudent(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !models.ValidBatch(req.Batch) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "batch must be in YYYY-YYYY format")
	}
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}
	taken, err := s.students.ExistsByEnrollNo(ctx, req.EnrollNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "enrollment number already registered")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: req.Email, PasswordHash: hash, Role: models.RoleStudent}
	student := &models.Student{EnrollNo: req.EnrollNo, Name: req.Name, Batch: req.Batch, Discipline: req.Discipline}
	if err := s.users.CreateStudent(ctx, user, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.logger.Info("student registered", zap.String("enroll_no", student.EnrollNo))
	return student, nil
}

// ListTeachers returns all teacher profiles.
func (s *UserService) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, nil
}

// TeacherProfile resolves the teacher record of an authenticated user.
func (s *UserService) TeacherProfile(ctx context.Context, userID string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// ListStudents returns all student profiles.
func (s *UserService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

func (s *UserService) checkEmailFree(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	return string(hash), nil
}
