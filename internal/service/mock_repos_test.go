package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email, excludeID string) (bool, error) {
	for _, u := range m.users {
		if u.UserID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, f repository.UserListFilter) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status == "active" && !u.IsActive {
			continue
		}
		if f.Status == "inactive" && u.IsActive {
			continue
		}
		if f.Keyword != "" && !strings.Contains(u.Username, f.Keyword) &&
			!strings.Contains(u.FullName, f.Keyword) {
			continue
		}
		all = append(all, *u)
	}
	return all, int64(len(all)), nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Role == role && u.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) ListActiveByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role && u.IsActive {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetActiveByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok && c.IsActive {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) List(_ context.Context, f repository.CourseListFilter) ([]model.Course, int64, error) {
	var all []model.Course
	for _, c := range m.courses {
		if f.ActiveOnly && !c.IsActive {
			continue
		}
		if f.TeacherID != "" && (c.TeacherID == nil || *c.TeacherID != f.TeacherID) {
			continue
		}
		if f.Keyword != "" && !strings.Contains(c.Name, f.Keyword) {
			continue
		}
		all = append(all, *c)
	}
	return all, int64(len(all)), nil
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.IsActive && c.TeacherID != nil && *c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, c := range m.courses {
		if c.IsActive {
			count++
		}
	}
	return count, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
	users       *mockUserRepo
	courses     *mockCourseRepo
	seq         int
}

func newMockEnrollmentRepo(users *mockUserRepo, courses *mockCourseRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{
		enrollments: make(map[string]*model.Enrollment),
		users:       users,
		courses:     courses,
	}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	if e.EnrollmentID == "" {
		m.seq++
		e.EnrollmentID = fmt.Sprintf("enroll-%d", m.seq)
	}
	m.enrollments[e.EnrollmentID] = e
	return nil
}

func (m *mockEnrollmentRepo) fill(e *model.Enrollment) *model.Enrollment {
	copied := *e
	if u, ok := m.users.users[e.StudentID]; ok {
		copied.Student = u
	}
	if c, ok := m.courses.courses[e.CourseID]; ok {
		copied.Course = c
	}
	return &copied
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return m.fill(e), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetActive(_ context.Context, studentID, courseID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.IsActive && e.StudentID == studentID && e.CourseID == courseID {
			return m.fill(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) Update(_ context.Context, e *model.Enrollment) error {
	stored := *e
	stored.Student = nil
	stored.Course = nil
	m.enrollments[e.EnrollmentID] = &stored
	return nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.IsActive && e.StudentID == studentID {
			result = append(result, *m.fill(e))
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.IsActive && e.CourseID == courseID {
			result = append(result, *m.fill(e))
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListActiveStudents(_ context.Context, courseID string) ([]model.User, error) {
	var result []model.User
	for _, e := range m.enrollments {
		if !e.IsActive || e.CourseID != courseID {
			continue
		}
		if u, ok := m.users.users[e.StudentID]; ok && u.IsActive {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) CountActiveByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, e := range m.enrollments {
		if e.IsActive && e.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockEnrollmentRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, e := range m.enrollments {
		if e.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *mockEnrollmentRepo) SumFees(_ context.Context) (float64, error) {
	var total float64
	for _, e := range m.enrollments {
		if e.IsActive {
			if c, ok := m.courses.courses[e.CourseID]; ok {
				total += c.Fee
			}
		}
	}
	return total, nil
}

func (m *mockEnrollmentRepo) SumAmountPaid(_ context.Context) (float64, error) {
	var total float64
	for _, e := range m.enrollments {
		if e.IsActive {
			total += e.AmountPaid
		}
	}
	return total, nil
}

func (m *mockEnrollmentRepo) Recent(_ context.Context, limit int) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.IsActive && len(result) < limit {
			result = append(result, *m.fill(e))
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) MonthlyCounts(_ context.Context, since time.Time) ([]repository.MonthlyEnrollmentCount, error) {
	byMonth := make(map[string]*repository.MonthlyEnrollmentCount)
	for _, e := range m.enrollments {
		if e.EnrolledAt.Before(since) {
			continue
		}
		key := e.EnrolledAt.Format("2006-01")
		if row, ok := byMonth[key]; ok {
			row.Count++
		} else {
			byMonth[key] = &repository.MonthlyEnrollmentCount{
				Year:  e.EnrolledAt.Year(),
				Month: int(e.EnrolledAt.Month()),
				Count: 1,
			}
		}
	}
	var result []repository.MonthlyEnrollmentCount
	for _, row := range byMonth {
		result = append(result, *row)
	}
	return result, nil
}

func (m *mockEnrollmentRepo) PaymentStats(_ context.Context) ([]repository.PaymentStatusCount, error) {
	byStatus := make(map[string]*repository.PaymentStatusCount)
	for _, e := range m.enrollments {
		if !e.IsActive {
			continue
		}
		if row, ok := byStatus[e.PaymentStatus]; ok {
			row.Count++
			row.TotalPaid += e.AmountPaid
		} else {
			byStatus[e.PaymentStatus] = &repository.PaymentStatusCount{
				PaymentStatus: e.PaymentStatus,
				Count:         1,
				TotalPaid:     e.AmountPaid,
			}
		}
	}
	var result []repository.PaymentStatusCount
	for _, row := range byStatus {
		result = append(result, *row)
	}
	return result, nil
}

func (m *mockEnrollmentRepo) PopularCourses(_ context.Context, limit int) ([]repository.CoursePopularityRow, error) {
	byCourse := make(map[string]*repository.CoursePopularityRow)
	for _, e := range m.enrollments {
		if !e.IsActive {
			continue
		}
		if row, ok := byCourse[e.CourseID]; ok {
			row.Enrolled++
		} else {
			name := ""
			if c, ok := m.courses.courses[e.CourseID]; ok {
				name = c.Name
			}
			byCourse[e.CourseID] = &repository.CoursePopularityRow{
				CourseID:   e.CourseID,
				CourseName: name,
				Enrolled:   1,
			}
		}
	}
	var result []repository.CoursePopularityRow
	for _, row := range byCourse {
		if len(result) < limit {
			result = append(result, *row)
		}
	}
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	sessions map[string]*model.AttendanceSession
	records  map[string]*model.Attendance
	users    *mockUserRepo
	courses  *mockCourseRepo
	seq      int

	// 置为非 nil 时 UpdateRecords 整批报错且不落任何记录
	updateRecordsErr error
}

func newMockAttendanceRepo(users *mockUserRepo, courses *mockCourseRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		sessions: make(map[string]*model.AttendanceSession),
		records:  make(map[string]*model.Attendance),
		users:    users,
		courses:  courses,
	}
}

func (m *mockAttendanceRepo) CreateSession(_ context.Context, s *model.AttendanceSession) error {
	if s.SessionID == "" {
		m.seq++
		s.SessionID = fmt.Sprintf("session-%d", m.seq)
	}
	stored := *s
	stored.Course = nil
	m.sessions[s.SessionID] = &stored
	return nil
}

func (m *mockAttendanceRepo) fillSession(s *model.AttendanceSession) *model.AttendanceSession {
	copied := *s
	if c, ok := m.courses.courses[s.CourseID]; ok {
		copied.Course = c
	}
	return &copied
}

func (m *mockAttendanceRepo) GetSessionByID(_ context.Context, id string) (*model.AttendanceSession, error) {
	if s, ok := m.sessions[id]; ok {
		return m.fillSession(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetSessionByCourseDate(_ context.Context, courseID string, date time.Time) (*model.AttendanceSession, error) {
	for _, s := range m.sessions {
		if s.CourseID == courseID && s.SessionDate.Format("2006-01-02") == date.Format("2006-01-02") {
			return m.fillSession(s), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListSessions(_ context.Context, f repository.SessionListFilter) ([]model.AttendanceSession, int64, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		if f.CourseID != "" && s.CourseID != f.CourseID {
			continue
		}
		if f.Date != nil && s.SessionDate.Format("2006-01-02") != f.Date.Format("2006-01-02") {
			continue
		}
		result = append(result, *m.fillSession(s))
	}
	return result, int64(len(result)), nil
}

func (m *mockAttendanceRepo) UpdateSession(_ context.Context, s *model.AttendanceSession) error {
	stored := *s
	stored.Course = nil
	m.sessions[s.SessionID] = &stored
	return nil
}

func (m *mockAttendanceRepo) CreateRecord(_ context.Context, r *model.Attendance) error {
	if r.AttendanceID == "" {
		m.seq++
		r.AttendanceID = fmt.Sprintf("att-%d", m.seq)
	}
	stored := *r
	stored.Student = nil
	stored.Session = nil
	m.records[r.AttendanceID] = &stored
	return nil
}

func (m *mockAttendanceRepo) fillRecord(r *model.Attendance) *model.Attendance {
	copied := *r
	if u, ok := m.users.users[r.StudentID]; ok {
		copied.Student = u
	}
	if s, ok := m.sessions[r.SessionID]; ok {
		copied.Session = m.fillSession(s)
	}
	return &copied
}

func (m *mockAttendanceRepo) GetRecord(_ context.Context, sessionID, studentID string) (*model.Attendance, error) {
	for _, r := range m.records {
		if r.SessionID == sessionID && r.StudentID == studentID {
			return m.fillRecord(r), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) UpdateRecords(_ context.Context, records []*model.Attendance) error {
	if m.updateRecordsErr != nil {
		return m.updateRecordsErr
	}
	for _, r := range records {
		stored := *r
		stored.Student = nil
		stored.Session = nil
		m.records[r.AttendanceID] = &stored
	}
	return nil
}

func (m *mockAttendanceRepo) ListRecordsBySession(_ context.Context, sessionID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.SessionID == sessionID {
			result = append(result, *m.fillRecord(r))
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListRecordsByStudentCourse(_ context.Context, studentID, courseID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.StudentID != studentID {
			continue
		}
		if s, ok := m.sessions[r.SessionID]; ok && s.CourseID == courseID {
			result = append(result, *m.fillRecord(r))
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) countWhere(match func(r *model.Attendance) bool) repository.AttendanceCounts {
	var counts repository.AttendanceCounts
	for _, r := range m.records {
		if !match(r) {
			continue
		}
		counts.Total++
		switch r.Status {
		case model.AttendancePresent:
			counts.Present++
		case model.AttendanceAbsent:
			counts.Absent++
		case model.AttendanceLate:
			counts.Late++
		case model.AttendanceExcused:
			counts.Excused++
		}
	}
	return counts
}

func (m *mockAttendanceRepo) CountsByStudentCourse(_ context.Context, studentID, courseID string) (repository.AttendanceCounts, error) {
	return m.countWhere(func(r *model.Attendance) bool {
		if r.StudentID != studentID {
			return false
		}
		s, ok := m.sessions[r.SessionID]
		return ok && s.CourseID == courseID
	}), nil
}

func (m *mockAttendanceRepo) CountsByStudent(_ context.Context, studentID string) (repository.AttendanceCounts, error) {
	return m.countWhere(func(r *model.Attendance) bool {
		return r.StudentID == studentID
	}), nil
}

func (m *mockAttendanceRepo) CountsByCourse(_ context.Context, courseID string) (repository.AttendanceCounts, error) {
	return m.countWhere(func(r *model.Attendance) bool {
		s, ok := m.sessions[r.SessionID]
		return ok && s.CourseID == courseID
	}), nil
}

func (m *mockAttendanceRepo) CountsByTeacherMonth(_ context.Context, teacherID string, year, month int) (repository.AttendanceCounts, error) {
	return m.countWhere(func(r *model.Attendance) bool {
		s, ok := m.sessions[r.SessionID]
		if !ok || s.SessionDate.Year() != year || int(s.SessionDate.Month()) != month {
			return false
		}
		c, ok := m.courses.courses[s.CourseID]
		return ok && c.TeacherID != nil && *c.TeacherID == teacherID
	}), nil
}

func (m *mockAttendanceRepo) CountsByMonth(_ context.Context, year, month int) (repository.AttendanceCounts, error) {
	return m.countWhere(func(r *model.Attendance) bool {
		s, ok := m.sessions[r.SessionID]
		return ok && s.SessionDate.Year() == year && int(s.SessionDate.Month()) == month
	}), nil
}

func (m *mockAttendanceRepo) CourseAttendanceStats(_ context.Context) ([]repository.CourseAttendanceRow, error) {
	byCourse := make(map[string]*repository.CourseAttendanceRow)
	for _, r := range m.records {
		s, ok := m.sessions[r.SessionID]
		if !ok {
			continue
		}
		row, ok := byCourse[s.CourseID]
		if !ok {
			name := ""
			if c, ok := m.courses.courses[s.CourseID]; ok {
				name = c.Name
			}
			row = &repository.CourseAttendanceRow{CourseID: s.CourseID, CourseName: name}
			byCourse[s.CourseID] = row
		}
		row.Total++
		if r.Status == model.AttendancePresent {
			row.Present++
		}
	}
	var result []repository.CourseAttendanceRow
	for _, row := range byCourse {
		result = append(result, *row)
	}
	return result, nil
}

func (m *mockAttendanceRepo) RecentSessionsByTeacher(_ context.Context, teacherID string, limit int) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		c, ok := m.courses.courses[s.CourseID]
		if !ok || c.TeacherID == nil || *c.TeacherID != teacherID {
			continue
		}
		if len(result) < limit {
			result = append(result, *m.fillSession(s))
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) UpcomingSessionsByStudent(_ context.Context, studentID string, from time.Time, limit int) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		if s.SessionDate.Before(from.Truncate(24 * time.Hour)) {
			continue
		}
		for _, r := range m.records {
			if r.SessionID == s.SessionID && r.StudentID == studentID && len(result) < limit {
				result = append(result, *m.fillSession(s))
				break
			}
		}
	}
	return result, nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades  map[string]*model.Grade
	users   *mockUserRepo
	courses *mockCourseRepo
	seq     int
}

func newMockGradeRepo(users *mockUserRepo, courses *mockCourseRepo) *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[string]*model.Grade), users: users, courses: courses}
}

func (m *mockGradeRepo) Create(_ context.Context, g *model.Grade) error {
	if g.GradeID == "" {
		m.seq++
		g.GradeID = fmt.Sprintf("grade-%d", m.seq)
	}
	stored := *g
	stored.Student = nil
	stored.Course = nil
	m.grades[g.GradeID] = &stored
	return nil
}

func (m *mockGradeRepo) fill(g *model.Grade) *model.Grade {
	copied := *g
	if u, ok := m.users.users[g.StudentID]; ok {
		copied.Student = u
	}
	if c, ok := m.courses.courses[g.CourseID]; ok {
		copied.Course = c
	}
	return &copied
}

func (m *mockGradeRepo) GetByID(_ context.Context, id string) (*model.Grade, error) {
	if g, ok := m.grades[id]; ok {
		return m.fill(g), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) List(_ context.Context, f repository.GradeListFilter) ([]model.Grade, int64, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if f.CourseID != "" && g.CourseID != f.CourseID {
			continue
		}
		if f.StudentID != "" && g.StudentID != f.StudentID {
			continue
		}
		if f.GradeType != "" && g.GradeType != f.GradeType {
			continue
		}
		result = append(result, *m.fill(g))
	}
	return result, int64(len(result)), nil
}

func (m *mockGradeRepo) average(match func(g *model.Grade) bool) (float64, int64) {
	var sum float64
	var count int64
	for _, g := range m.grades {
		if match(g) {
			sum += g.Grade
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}

func (m *mockGradeRepo) AverageByStudentCourse(_ context.Context, studentID, courseID string) (float64, int64, error) {
	avg, count := m.average(func(g *model.Grade) bool {
		return g.StudentID == studentID && g.CourseID == courseID
	})
	return avg, count, nil
}

func (m *mockGradeRepo) AverageByStudent(_ context.Context, studentID string) (float64, int64, error) {
	avg, count := m.average(func(g *model.Grade) bool {
		return g.StudentID == studentID
	})
	return avg, count, nil
}

func (m *mockGradeRepo) CoursePerformance(_ context.Context) ([]repository.CoursePerformanceRow, error) {
	type agg struct {
		sum   float64
		count int64
	}
	byCourse := make(map[string]*agg)
	for _, g := range m.grades {
		if row, ok := byCourse[g.CourseID]; ok {
			row.sum += g.Grade
			row.count++
		} else {
			byCourse[g.CourseID] = &agg{sum: g.Grade, count: 1}
		}
	}
	var result []repository.CoursePerformanceRow
	for courseID, row := range byCourse {
		name := ""
		if c, ok := m.courses.courses[courseID]; ok {
			name = c.Name
		}
		result = append(result, repository.CoursePerformanceRow{
			CourseID:   courseID,
			CourseName: name,
			Average:    row.sum / float64(row.count),
			Count:      row.count,
		})
	}
	return result, nil
}

func (m *mockGradeRepo) RecentByStudent(_ context.Context, studentID string, limit int) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID == studentID && len(result) < limit {
			result = append(result, *m.fill(g))
		}
	}
	return result, nil
}

func (m *mockGradeRepo) RecentByTeacher(_ context.Context, teacherID string, limit int) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		c, ok := m.courses.courses[g.CourseID]
		if !ok || c.TeacherID == nil || *c.TeacherID != teacherID {
			continue
		}
		if len(result) < limit {
			result = append(result, *m.fill(g))
		}
	}
	return result, nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct {
	evaluations map[string]*model.TeacherEvaluation
	users       *mockUserRepo
	courses     *mockCourseRepo
	seq         int
}

func newMockEvaluationRepo(users *mockUserRepo, courses *mockCourseRepo) *mockEvaluationRepo {
	return &mockEvaluationRepo{
		evaluations: make(map[string]*model.TeacherEvaluation),
		users:       users,
		courses:     courses,
	}
}

func (m *mockEvaluationRepo) Create(_ context.Context, e *model.TeacherEvaluation) error {
	if e.EvaluationID == "" {
		m.seq++
		e.EvaluationID = fmt.Sprintf("eval-%d", m.seq)
	}
	stored := *e
	stored.Student = nil
	stored.Teacher = nil
	stored.Course = nil
	m.evaluations[e.EvaluationID] = &stored
	return nil
}

func (m *mockEvaluationRepo) fill(e *model.TeacherEvaluation) *model.TeacherEvaluation {
	copied := *e
	if u, ok := m.users.users[e.TeacherID]; ok {
		copied.Teacher = u
	}
	if c, ok := m.courses.courses[e.CourseID]; ok {
		copied.Course = c
	}
	return &copied
}

func (m *mockEvaluationRepo) Get(_ context.Context, studentID, teacherID, courseID string) (*model.TeacherEvaluation, error) {
	for _, e := range m.evaluations {
		if e.StudentID == studentID && e.TeacherID == teacherID && e.CourseID == courseID {
			return m.fill(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) ListByStudent(_ context.Context, studentID string) ([]model.TeacherEvaluation, error) {
	var result []model.TeacherEvaluation
	for _, e := range m.evaluations {
		if e.StudentID == studentID {
			result = append(result, *m.fill(e))
		}
	}
	return result, nil
}

func (m *mockEvaluationRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.TeacherEvaluation, error) {
	var result []model.TeacherEvaluation
	for _, e := range m.evaluations {
		if e.TeacherID == teacherID {
			result = append(result, *m.fill(e))
		}
	}
	return result, nil
}

func (m *mockEvaluationRepo) AverageByTeacher(_ context.Context, teacherID string) (float64, int64, error) {
	var sum float64
	var count int64
	for _, e := range m.evaluations {
		if e.TeacherID == teacherID {
			sum += e.OverallRating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.seq++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	}
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	for i := range ns {
		if err := m.Create(ctx, &ns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	var all []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			all = append(all, *n)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	documents map[string]*model.Document
	seq       int
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{documents: make(map[string]*model.Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, d *model.Document) error {
	if d.DocumentID == "" {
		m.seq++
		d.DocumentID = fmt.Sprintf("doc-%d", m.seq)
	}
	m.documents[d.DocumentID] = d
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.documents[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) ListByUser(_ context.Context, userID string) ([]model.Document, error) {
	var result []model.Document
	for _, d := range m.documents {
		if d.UserID == userID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id string) error {
	delete(m.documents, id)
	return nil
}

// ── 测试环境组装 ──

type testMocks struct {
	users         *mockUserRepo
	courses       *mockCourseRepo
	enrollments   *mockEnrollmentRepo
	attendance    *mockAttendanceRepo
	grades        *mockGradeRepo
	evaluations   *mockEvaluationRepo
	notifications *mockNotificationRepo
	documents     *mockDocumentRepo
	repo          *repository.Repository
}

// newTestMocks 组装全 mock 的仓储聚合；db 为 nil，BeginTx 返回空事务
func newTestMocks() *testMocks {
	users := newMockUserRepo()
	courses := newMockCourseRepo()
	enrollments := newMockEnrollmentRepo(users, courses)
	attendance := newMockAttendanceRepo(users, courses)
	grades := newMockGradeRepo(users, courses)
	evaluations := newMockEvaluationRepo(users, courses)
	notifications := newMockNotificationRepo()
	documents := newMockDocumentRepo()

	return &testMocks{
		users:         users,
		courses:       courses,
		enrollments:   enrollments,
		attendance:    attendance,
		grades:        grades,
		evaluations:   evaluations,
		notifications: notifications,
		documents:     documents,
		repo: &repository.Repository{
			User:         users,
			Course:       courses,
			Enrollment:   enrollments,
			Attendance:   attendance,
			Grade:        grades,
			Evaluation:   evaluations,
			Notification: notifications,
			Document:     documents,
		},
	}
}

// ── 公共造数辅助 ──

func seedUser(m *testMocks, id, role string) *model.User {
	user := &model.User{
		UserID:   id,
		Username: id,
		Email:    id + "@test.com",
		Role:     role,
		FullName: "测试用户-" + id,
		IsActive: true,
	}
	m.users.users[id] = user
	return user
}

func seedCourse(m *testMocks, id string, teacherID *string, maxStudents int) *model.Course {
	course := &model.Course{
		CourseID:    id,
		Name:        "测试课程-" + id,
		TeacherID:   teacherID,
		Fee:         1500,
		MaxStudents: maxStudents,
		IsActive:    true,
	}
	m.courses.courses[id] = course
	return course
}

func seedEnrollment(m *testMocks, id, studentID, courseID string) *model.Enrollment {
	enrollment := &model.Enrollment{
		EnrollmentID:  id,
		StudentID:     studentID,
		CourseID:      courseID,
		EnrolledAt:    time.Now(),
		PaymentStatus: model.PaymentPending,
		IsActive:      true,
	}
	m.enrollments.enrollments[id] = enrollment
	return enrollment
}

// seedSessionWithRecords 造一个考勤场次并按给定状态写入记录
func seedSessionWithRecords(t *testing.T, m *testMocks, courseID string, statuses map[string]string) *model.AttendanceSession {
	t.Helper()
	session := &model.AttendanceSession{
		CourseID:    courseID,
		SessionDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := m.attendance.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("造数失败: %v", err)
	}
	for studentID, status := range statuses {
		record := &model.Attendance{StudentID: studentID, SessionID: session.SessionID, Status: status}
		if err := m.attendance.CreateRecord(context.Background(), record); err != nil {
			t.Fatalf("造数失败: %v", err)
		}
	}
	return session
}
