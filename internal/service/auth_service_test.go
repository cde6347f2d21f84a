package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/emad-ai/adeeb-institute-websit/config"
	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/pkg/jwt"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			BaseURL: "http://localhost:8080",
		},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
			DefaultPassword:         "Adeeb@2026",
		},
	}
}

func setupTestAuthService() (AuthService, *testMocks) {
	cfg := testConfig()
	m := newTestMocks()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, m.repo, jwtMgr, nil, zap.NewNop())
	return svc, m
}

func seedStudentWithPassword(m *testMocks, id, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := seedUser(m, id, "student")
	user.PasswordHash = string(hash)
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.RefreshToken == "" {
		t.Error("RefreshToken 不应为空")
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
	if result.User.Role != "student" {
		t.Errorf("期望 Role=student，实际=%s", result.User.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "wrong_password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nonexistent",
		Password: "password123",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "password123")
	m.users.users["student-1"].IsActive = false

	// 凭证正确也必须拒绝
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "password123",
	})

	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("期望 ErrAccountDisabled，实际: %v", err)
	}
}

// ── 注册测试 ──

func validRegisterRequest(courseID string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:    "newstudent",
		Email:       "newstudent@test.com",
		Password:    "password123",
		FullName:    "新学生",
		Phone:       "0912345678",
		DateOfBirth: "2000-05-20",
		Gender:      "male",
		CourseID:    courseID,
	}
}

func TestRegister_Success(t *testing.T) {
	svc, m := setupTestAuthService()
	seedCourse(m, "course-1", nil, 30)

	result, err := svc.Register(context.Background(), validRegisterRequest("course-1"))

	if err != nil {
		t.Fatalf("Register 应成功，但返回错误: %v", err)
	}
	if result.CourseName != "测试课程-course-1" {
		t.Errorf("期望返回课程名，实际=%s", result.CourseName)
	}

	// 用户与报名记录必须同时落库
	user, err := m.users.GetByUsername(context.Background(), "newstudent")
	if err != nil {
		t.Fatalf("注册后应能查到用户: %v", err)
	}
	if user.Role != "student" {
		t.Errorf("期望注册角色为 student，实际=%s", user.Role)
	}
	if _, err := m.enrollments.GetActive(context.Background(), user.UserID, "course-1"); err != nil {
		t.Errorf("注册后应存在生效的报名记录: %v", err)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, m := setupTestAuthService()
	seedCourse(m, "course-1", nil, 30)
	seedStudentWithPassword(m, "existing", "password123")

	req := validRegisterRequest("course-1")
	req.Username = "existing"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

func TestRegister_CourseNotOpen(t *testing.T) {
	svc, m := setupTestAuthService()
	seedCourse(m, "course-1", nil, 30).IsActive = false

	_, err := svc.Register(context.Background(), validRegisterRequest("course-1"))
	if !errors.Is(err, ErrCourseNotOpen) {
		t.Errorf("期望 ErrCourseNotOpen，实际: %v", err)
	}

	// 注册被拒后不应遗留用户
	if _, err := m.users.GetByUsername(context.Background(), "newstudent"); err == nil {
		t.Error("注册失败后不应存在用户记录")
	}
}

func TestRegister_CourseFull(t *testing.T) {
	svc, m := setupTestAuthService()
	seedCourse(m, "course-1", nil, 2)
	seedUser(m, "s1", "student")
	seedUser(m, "s2", "student")
	seedEnrollment(m, "e1", "s1", "course-1")
	seedEnrollment(m, "e2", "s2", "course-1")

	_, err := svc.Register(context.Background(), validRegisterRequest("course-1"))
	if !errors.Is(err, ErrCourseFull) {
		t.Errorf("期望 ErrCourseFull，实际: %v", err)
	}
}

func TestRegister_InvalidDateOfBirth(t *testing.T) {
	svc, m := setupTestAuthService()
	seedCourse(m, "course-1", nil, 30)

	req := validRegisterRequest("course-1")
	req.DateOfBirth = "20/05/2000"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

// ── 刷新 Token 测试 ──

func TestRefreshToken_Success(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 用 access token 换发必须被拒
	_, err = svc.RefreshToken(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestRefreshToken_DisabledAccount(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	m.users.users["student-1"].IsActive = false

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("期望 ErrAccountDisabled，实际: %v", err)
	}
}

// ── 退出登录测试 ──

func TestLogout_NoRedisDegrades(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Redis 不可用时退出登录直接成功
	if err := svc.Logout(context.Background(), login.AccessToken); err != nil {
		t.Errorf("Logout 应降级成功: %v", err)
	}
}

func TestLogout_InvalidTokenIgnored(t *testing.T) {
	svc, _ := setupTestAuthService()

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Errorf("无效 token 的 Logout 不应报错: %v", err)
	}
}

// ── 修改密码测试 ──

func TestChangePassword_Success(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "old_password")

	err := svc.ChangePassword(context.Background(), "student-1", &dto.ChangePasswordRequest{
		CurrentPassword: "old_password",
		NewPassword:     "new_password",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码生效，旧密码失效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "new_password",
	}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student-1",
		Password: "old_password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码登录应失败，实际: %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, m := setupTestAuthService()
	seedStudentWithPassword(m, "student-1", "old_password")

	err := svc.ChangePassword(context.Background(), "student-1", &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new_password",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("期望 ErrWrongPassword，实际: %v", err)
	}
}
