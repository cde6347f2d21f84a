package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/emad-ai/adeeb-institute-websit/internal/model"
)

// ── 测试辅助 ──

func setupTestStatsService() (StatsService, *testMocks) {
	m := newTestMocks()
	svc := NewStatsService(m.repo, zap.NewNop())
	return svc, m
}

// ── 管理员仪表盘测试 ──

func TestAdminDashboard_Totals(t *testing.T) {
	svc, m := setupTestStatsService()
	studentIDs := seedCourseWithRoster(m, "course-1", "teacher-1", 2)
	seedUser(m, "admin-1", "admin")

	// 一人已缴费一人待缴费
	for _, e := range m.enrollments.enrollments {
		if e.StudentID == studentIDs[0] {
			e.PaymentStatus = model.PaymentPaid
			e.AmountPaid = 1500
		}
	}

	resp, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("AdminDashboard 应成功: %v", err)
	}
	if resp.TotalStudents != 2 {
		t.Errorf("期望 TotalStudents=2，实际=%d", resp.TotalStudents)
	}
	if resp.TotalTeachers != 1 {
		t.Errorf("期望 TotalTeachers=1，实际=%d", resp.TotalTeachers)
	}
	if resp.TotalCourses != 1 {
		t.Errorf("期望 TotalCourses=1，实际=%d", resp.TotalCourses)
	}
	if resp.TotalEnrollments != 2 {
		t.Errorf("期望 TotalEnrollments=2，实际=%d", resp.TotalEnrollments)
	}
	if resp.TotalFeesPaid != 1500 {
		t.Errorf("期望 TotalFeesPaid=1500，实际=%v", resp.TotalFeesPaid)
	}
	if resp.PendingPayments != 1 {
		t.Errorf("期望 PendingPayments=1，实际=%d", resp.PendingPayments)
	}
	if len(resp.PopularCourses) != 1 || resp.PopularCourses[0].EnrollmentCount != 2 {
		t.Errorf("热门课程统计不符: %+v", resp.PopularCourses)
	}
}

// ── 教师仪表盘测试 ──

func TestTeacherDashboard_CourseAggregates(t *testing.T) {
	svc, m := setupTestStatsService()
	seedCourseWithRoster(m, "course-1", "teacher-1", 3)
	seedCourseWithRoster(m, "course-2", "teacher-1", 2)

	resp, err := svc.TeacherDashboard(context.Background(), "teacher-1")
	if err != nil {
		t.Fatalf("TeacherDashboard 应成功: %v", err)
	}
	if resp.TotalCourses != 2 {
		t.Errorf("期望 TotalCourses=2，实际=%d", resp.TotalCourses)
	}
	if resp.TotalStudents != 5 {
		t.Errorf("期望 TotalStudents=5，实际=%d", resp.TotalStudents)
	}
	if len(resp.MyCourses) != 2 {
		t.Errorf("期望 2 门课程，实际=%d", len(resp.MyCourses))
	}
}

// ── 学生仪表盘测试 ──

func TestStudentDashboard_FeesAndRates(t *testing.T) {
	svc, m := setupTestStatsService()
	studentIDs := seedCourseWithRoster(m, "course-1", "teacher-1", 1)
	student := studentIDs[0]

	for _, e := range m.enrollments.enrollments {
		e.AmountPaid = 900
		e.PaymentStatus = model.PaymentPartial
	}

	seedSessionWithRecords(t, m, "course-1", map[string]string{student: model.AttendancePresent})

	unread := &model.Notification{UserID: student, Title: "缴费提醒", Message: "请尽快缴清余款"}
	if err := m.notifications.Create(context.Background(), unread); err != nil {
		t.Fatalf("造数失败: %v", err)
	}
	read := &model.Notification{UserID: student, Title: "已读通知", Message: "历史消息", IsRead: true}
	if err := m.notifications.Create(context.Background(), read); err != nil {
		t.Fatalf("造数失败: %v", err)
	}

	resp, err := svc.StudentDashboard(context.Background(), student)
	if err != nil {
		t.Fatalf("StudentDashboard 应成功: %v", err)
	}
	if resp.TotalCourses != 1 {
		t.Errorf("期望 TotalCourses=1，实际=%d", resp.TotalCourses)
	}
	if resp.TotalFees != 1500 || resp.TotalPaid != 900 {
		t.Errorf("费用汇总不符: fees=%v paid=%v", resp.TotalFees, resp.TotalPaid)
	}
	if resp.AttendanceRate != 100.0 {
		t.Errorf("期望出勤率 100.0，实际=%v", resp.AttendanceRate)
	}
	if len(resp.UnreadNotifications) != 1 || resp.UnreadNotifications[0].Title != "缴费提醒" {
		t.Errorf("期望只返回 1 条未读通知，实际: %+v", resp.UnreadNotifications)
	}
}

// ── 统计页测试 ──

func TestStatistics_Aggregates(t *testing.T) {
	svc, m := setupTestStatsService()
	studentIDs := seedCourseWithRoster(m, "course-1", "teacher-1", 2)

	seedSessionWithRecords(t, m, "course-1", map[string]string{
		studentIDs[0]: model.AttendancePresent,
		studentIDs[1]: model.AttendanceAbsent,
	})

	grade := &model.Grade{StudentID: studentIDs[0], CourseID: "course-1", Grade: 85, MaxGrade: 100}
	if err := m.grades.Create(context.Background(), grade); err != nil {
		t.Fatalf("造数失败: %v", err)
	}

	resp, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics 应成功: %v", err)
	}
	if len(resp.MonthlyEnrollments) == 0 {
		t.Error("应有月度报名统计")
	}
	if len(resp.PaymentStats) != 1 || resp.PaymentStats[0].Count != 2 {
		t.Errorf("缴费状态统计不符: %+v", resp.PaymentStats)
	}
	if len(resp.CoursePerformance) != 1 || resp.CoursePerformance[0].AverageGrade != 85.0 {
		t.Errorf("成绩统计不符: %+v", resp.CoursePerformance)
	}
	if len(resp.AttendanceRates) != 1 || resp.AttendanceRates[0].AttendanceRate != 50.0 {
		t.Errorf("考勤率统计不符: %+v", resp.AttendanceRates)
	}
}
