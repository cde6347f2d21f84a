package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *testMocks) {
	m := newTestMocks()
	svc := NewUserService(testConfig(), m.repo, zap.NewNop())
	return svc, m
}

// ── 创建账号测试 ──

func TestCreateUser_DefaultPassword(t *testing.T) {
	svc, m := setupTestUserService()

	resp, err := svc.CreateUser(context.Background(), model.RoleStudent, &dto.CreateUserRequest{
		Username: "newstudent",
		Email:    "newstudent@test.com",
		FullName: "新学生",
	})
	if err != nil {
		t.Fatalf("CreateUser 应成功: %v", err)
	}
	if resp.Role != model.RoleStudent {
		t.Errorf("期望 Role=student，实际=%s", resp.Role)
	}

	// 初始密码为系统默认值
	user, err := m.users.GetByUsername(context.Background(), "newstudent")
	if err != nil {
		t.Fatalf("创建后应能查到用户: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Adeeb@2026")); err != nil {
		t.Error("初始密码应为配置的默认密码")
	}
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "existing", "student")

	_, err := svc.CreateUser(context.Background(), model.RoleStudent, &dto.CreateUserRequest{
		Username: "existing",
		Email:    "other@test.com",
		FullName: "重名学生",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

func TestCreateUser_EmailTaken(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "existing", "student") // email: existing@test.com

	_, err := svc.CreateUser(context.Background(), model.RoleTeacher, &dto.CreateUserRequest{
		Username: "brand-new",
		Email:    "existing@test.com",
		FullName: "新教师",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("邮箱重复期望 ErrUsernameTaken，实际: %v", err)
	}
}

func TestCreateUser_InvalidDateOfBirth(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.CreateUser(context.Background(), model.RoleStudent, &dto.CreateUserRequest{
		Username:    "newstudent",
		Email:       "newstudent@test.com",
		FullName:    "新学生",
		DateOfBirth: "32/13/1999",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

// ── 更新用户测试 ──

func TestUpdateUser_UniquenessExcludesSelf(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "student-1", "student")

	// 用户名未变，只改姓名，不应触发占用检查失败
	name := "改名后"
	username := "student-1"
	resp, err := svc.UpdateUser(context.Background(), "student-1", &dto.UpdateUserRequest{
		Username: &username,
		FullName: &name,
	})
	if err != nil {
		t.Fatalf("UpdateUser 应成功: %v", err)
	}
	if resp.FullName != "改名后" {
		t.Errorf("期望姓名更新为 改名后，实际=%s", resp.FullName)
	}
}

func TestUpdateUser_UsernameConflict(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "student-1", "student")
	seedUser(m, "student-2", "student")

	username := "student-2"
	_, err := svc.UpdateUser(context.Background(), "student-1", &dto.UpdateUserRequest{
		Username: &username,
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	name := "无人"
	_, err := svc.UpdateUser(context.Background(), "missing", &dto.UpdateUserRequest{FullName: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── 停用账号测试 ──

func TestDeactivateUser_SoftDelete(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "student-1", "student")

	if err := svc.DeactivateUser(context.Background(), "student-1"); err != nil {
		t.Fatalf("DeactivateUser 应成功: %v", err)
	}

	// 软删除：记录保留，仅停用
	user := m.users.users["student-1"]
	if user == nil {
		t.Fatal("停用不应物理删除用户")
	}
	if user.IsActive {
		t.Error("停用后 IsActive 应为 false")
	}

	// 幂等
	if err := svc.DeactivateUser(context.Background(), "student-1"); err != nil {
		t.Errorf("重复停用应为幂等操作: %v", err)
	}
}

// ── 重置密码测试 ──

func TestResetPassword_BackToDefault(t *testing.T) {
	svc, m := setupTestUserService()
	user := seedUser(m, "student-1", "student")
	hash, _ := bcrypt.GenerateFromPassword([]byte("custom-password"), bcrypt.MinCost)
	user.PasswordHash = string(hash)

	if err := svc.ResetPassword(context.Background(), "student-1"); err != nil {
		t.Fatalf("ResetPassword 应成功: %v", err)
	}

	updated := m.users.users["student-1"]
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("Adeeb@2026")); err != nil {
		t.Error("重置后密码应为默认密码")
	}
}

// ── 列表测试 ──

func TestListUsers_RoleAndStatusFilter(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "s1", "student")
	seedUser(m, "s2", "student").IsActive = false
	seedUser(m, "t1", "teacher")

	list, total, err := svc.ListUsers(context.Background(), model.RoleStudent, &dto.UserListRequest{})
	if err != nil {
		t.Fatalf("ListUsers 应成功: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("期望学生共 2 人（含停用），实际 total=%d len=%d", total, len(list))
	}

	req := &dto.UserListRequest{}
	req.Status = "active"
	list, _, err = svc.ListUsers(context.Background(), model.RoleStudent, req)
	if err != nil {
		t.Fatalf("ListUsers 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("过滤 active 后期望 1 人，实际=%d", len(list))
	}
}
