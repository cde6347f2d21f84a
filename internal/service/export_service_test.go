package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"go.uber.org/zap"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *testMocks) {
	m := newTestMocks()
	svc := NewExportService(m.repo, zap.NewNop())
	return svc, m
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatal("CSV 输出应以 UTF-8 BOM 开头")
	}
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	if err != nil {
		t.Fatalf("CSV 解析失败: %v", err)
	}
	return rows
}

// ── 学生导出测试 ──

func TestExportStudentsCSV_IncludesInactive(t *testing.T) {
	svc, m := setupTestExportService()
	seedUser(m, "s1", "student")
	seedUser(m, "s2", "student").IsActive = false
	seedUser(m, "t1", "teacher")

	data, err := svc.ExportStudentsCSV(context.Background())
	if err != nil {
		t.Fatalf("ExportStudentsCSV 应成功: %v", err)
	}

	rows := parseCSV(t, data)
	// 表头 + 2 名学生（含停用），教师不出现在花名册里
	if len(rows) != 3 {
		t.Fatalf("期望 3 行（表头+2 学生），实际=%d", len(rows))
	}
	if rows[0][0] != "Username" {
		t.Errorf("首行应为表头，实际=%v", rows[0])
	}

	statuses := map[string]bool{}
	for _, row := range rows[1:] {
		statuses[row[5]] = true
	}
	if !statuses["active"] || !statuses["inactive"] {
		t.Errorf("导出应同时包含 active 与 inactive 学生，实际=%v", statuses)
	}
}

func TestExportStudentsCSV_EmptyOnlyHeader(t *testing.T) {
	svc, _ := setupTestExportService()

	data, err := svc.ExportStudentsCSV(context.Background())
	if err != nil {
		t.Fatalf("ExportStudentsCSV 应成功: %v", err)
	}
	rows := parseCSV(t, data)
	if len(rows) != 1 {
		t.Errorf("无学生时应只有表头行，实际=%d", len(rows))
	}
}

// ── 课程导出测试 ──

func TestExportCoursesCSV_EnrolledCount(t *testing.T) {
	svc, m := setupTestExportService()
	studentIDs := seedCourseWithRoster(m, "course-1", "teacher-1", 2)
	_ = studentIDs

	data, err := svc.ExportCoursesCSV(context.Background())
	if err != nil {
		t.Fatalf("ExportCoursesCSV 应成功: %v", err)
	}

	rows := parseCSV(t, data)
	if len(rows) != 2 {
		t.Fatalf("期望 2 行（表头+1 课程），实际=%d", len(rows))
	}
	if rows[1][4] != "2" {
		t.Errorf("期望报名人数列为 2，实际=%s", rows[1][4])
	}
	if rows[1][2] != "1500.00" {
		t.Errorf("期望费用列为 1500.00，实际=%s", rows[1][2])
	}
}

// ── 考勤报表测试 ──

func TestAttendanceReportCSV_PerStudentRows(t *testing.T) {
	svc, m := setupTestExportService()
	studentIDs := seedCourseWithRoster(m, "course-1", "teacher-1", 2)

	// 一个场次：第一名学生出勤，第二名缺勤
	session := seedSessionWithRecords(t, m, "course-1", map[string]string{
		studentIDs[0]: "present",
		studentIDs[1]: "absent",
	})
	_ = session

	data, err := svc.AttendanceReportCSV(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("AttendanceReportCSV 应成功: %v", err)
	}

	rows := parseCSV(t, data)
	if len(rows) != 3 {
		t.Fatalf("期望 3 行（表头+2 学生），实际=%d", len(rows))
	}

	rates := map[string]string{}
	for _, row := range rows[1:] {
		rates[row[0]] = row[6]
	}
	if rates["测试用户-"+studentIDs[0]] != "100.0" {
		t.Errorf("出勤学生的出勤率应为 100.0，实际=%s", rates["测试用户-"+studentIDs[0]])
	}
	if rates["测试用户-"+studentIDs[1]] != "0.0" {
		t.Errorf("缺勤学生的出勤率应为 0.0，实际=%s", rates["测试用户-"+studentIDs[1]])
	}
}

// ── PDF 报表测试 ──

func TestStatisticsReportPDF_NotEmpty(t *testing.T) {
	svc, m := setupTestExportService()
	seedCourseWithRoster(m, "course-1", "teacher-1", 1)

	data, err := svc.StatisticsReportPDF(context.Background())
	if err != nil {
		t.Fatalf("StatisticsReportPDF 应成功: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("PDF 输出不应为空")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("输出应为 PDF 格式")
	}
}
