package service

import (
	"math"
	"time"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/repository"
)

// ── Model → DTO 转换与公共计算 ──

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func fmtDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func fmtDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// round1 四舍五入保留 1 位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 四舍五入保留 2 位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// attendanceRate 出勤率 = present / total × 100，无记录时为 0
func attendanceRate(present, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(present) / float64(total) * 100)
}

// ratingText 综合评分的文字等级
func ratingText(rating float64) string {
	switch {
	case rating >= 4.5:
		return "Excellent"
	case rating >= 3.5:
		return "Very Good"
	case rating >= 2.5:
		return "Good"
	case rating >= 1.5:
		return "Acceptable"
	default:
		return "Weak"
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		DateOfBirth:    fmtDatePtr(u.DateOfBirth),
		Gender:         u.Gender,
		Address:        u.Address,
		IsActive:       u.IsActive,
		CreatedAt:      fmtDateTime(u.CreatedAt),
	}
}

func toCourseResponse(c *model.Course, enrolledCount int64) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:            c.CourseID,
		Name:          c.Name,
		Description:   c.Description,
		DurationHours: c.DurationHours,
		StartDate:     fmtDatePtr(c.StartDate),
		EndDate:       fmtDatePtr(c.EndDate),
		Fee:           c.Fee,
		MaxStudents:   c.MaxStudents,
		EnrolledCount: enrolledCount,
		IsActive:      c.IsActive,
		CreatedAt:     fmtDateTime(c.CreatedAt),
	}
	if c.TeacherID != nil {
		resp.TeacherID = *c.TeacherID
	}
	if c.Teacher != nil {
		resp.TeacherName = c.Teacher.FullName
	}
	return resp
}

func toEnrollmentResponse(e *model.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:            e.EnrollmentID,
		StudentID:     e.StudentID,
		CourseID:      e.CourseID,
		EnrolledAt:    fmtDateTime(e.EnrolledAt),
		PaymentStatus: e.PaymentStatus,
		AmountPaid:    e.AmountPaid,
		IsActive:      e.IsActive,
	}
	if e.Student != nil {
		resp.StudentName = e.Student.FullName
	}
	if e.Course != nil {
		resp.CourseName = e.Course.Name
		resp.CourseFee = e.Course.Fee
	}
	return resp
}

func toSessionResponse(s *model.AttendanceSession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:          s.SessionID,
		CourseID:    s.CourseID,
		SessionDate: fmtDate(s.SessionDate),
		SessionTime: s.SessionTime,
		Topic:       s.Topic,
		CreatedAt:   fmtDateTime(s.CreatedAt),
	}
	if s.Course != nil {
		resp.CourseName = s.Course.Name
	}
	return resp
}

func toAttendanceRecordResponse(a *model.Attendance) dto.AttendanceRecordResponse {
	resp := dto.AttendanceRecordResponse{
		ID:        a.AttendanceID,
		StudentID: a.StudentID,
		SessionID: a.SessionID,
		Status:    a.Status,
		Notes:     a.Notes,
	}
	if a.Student != nil {
		resp.StudentName = a.Student.FullName
	}
	if a.Session != nil {
		resp.SessionDate = fmtDate(a.Session.SessionDate)
		if a.Session.Course != nil {
			resp.CourseName = a.Session.Course.Name
		}
	}
	return resp
}

func toGradeResponse(g *model.Grade) dto.GradeResponse {
	resp := dto.GradeResponse{
		ID:             g.GradeID,
		StudentID:      g.StudentID,
		CourseID:       g.CourseID,
		AssignmentName: g.AssignmentName,
		Grade:          g.Grade,
		MaxGrade:       g.MaxGrade,
		GradeType:      g.GradeType,
		Notes:          g.Notes,
		RecordedAt:     fmtDateTime(g.RecordedAt),
	}
	if g.Student != nil {
		resp.StudentName = g.Student.FullName
	}
	if g.Course != nil {
		resp.CourseName = g.Course.Name
	}
	return resp
}

func toEvaluationResponse(e *model.TeacherEvaluation) dto.EvaluationResponse {
	resp := dto.EvaluationResponse{
		ID:              e.EvaluationID,
		CourseID:        e.CourseID,
		TeacherID:       e.TeacherID,
		TeachingQuality: e.TeachingQuality,
		Communication:   e.Communication,
		Punctuality:     e.Punctuality,
		Knowledge:       e.Knowledge,
		Interaction:     e.Interaction,
		OverallRating:   e.OverallRating,
		RatingText:      ratingText(e.OverallRating),
		Comments:        e.Comments,
		Suggestions:     e.Suggestions,
		IsAnonymous:     e.IsAnonymous,
		CreatedAt:       fmtDateTime(e.CreatedAt),
	}
	if e.Course != nil {
		resp.CourseName = e.Course.Name
	}
	if e.Teacher != nil {
		resp.TeacherName = e.Teacher.FullName
	}
	return resp
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.NotificationID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: fmtDateTime(n.CreatedAt),
	}
}

func toAttendanceStats(c repository.AttendanceCounts) dto.AttendanceStatsResponse {
	return dto.AttendanceStatsResponse{
		Total:          c.Total,
		Present:        c.Present,
		Absent:         c.Absent,
		Late:           c.Late,
		Excused:        c.Excused,
		AttendanceRate: attendanceRate(c.Present, c.Total),
	}
}

// [自证通过] internal/service/convert.go
