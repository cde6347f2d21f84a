package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
)

// ── 测试辅助 ──

func setupTestNotificationService() (NotificationService, *testMocks) {
	m := newTestMocks()
	svc := NewNotificationService(m.repo, zap.NewNop())
	return svc, m
}

// ── 通知测试 ──

func TestNotify_CreatesUnread(t *testing.T) {
	svc, m := setupTestNotificationService()

	svc.Notify(context.Background(), "user-1", "标题", "内容")

	count, err := m.notifications.CountUnread(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CountUnread 应成功: %v", err)
	}
	if count != 1 {
		t.Errorf("期望 1 条未读，实际=%d", count)
	}
}

func TestList_MarksAllRead(t *testing.T) {
	svc, _ := setupTestNotificationService()

	svc.Notify(context.Background(), "user-1", "通知一", "内容一")
	svc.Notify(context.Background(), "user-1", "通知二", "内容二")
	svc.Notify(context.Background(), "user-2", "别人的通知", "内容")

	list, total, err := svc.List(context.Background(), "user-1", &dto.PaginationRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("期望 2 条通知，实际 total=%d len=%d", total, len(list))
	}

	// 拉取即视为已读
	count, err := svc.UnreadCount(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("UnreadCount 应成功: %v", err)
	}
	if count != 0 {
		t.Errorf("拉取后未读数应为 0，实际=%d", count)
	}

	// 别人的未读不受影响
	count, _ = svc.UnreadCount(context.Background(), "user-2")
	if count != 1 {
		t.Errorf("其他用户未读数不应变化，实际=%d", count)
	}
}

func TestListUnread_DoesNotMarkRead(t *testing.T) {
	svc, _ := setupTestNotificationService()

	svc.Notify(context.Background(), "user-1", "通知一", "内容一")

	list, err := svc.ListUnread(context.Background(), "user-1", 5)
	if err != nil {
		t.Fatalf("ListUnread 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("期望 1 条未读，实际=%d", len(list))
	}

	// 预览不改变已读状态
	count, _ := svc.UnreadCount(context.Background(), "user-1")
	if count != 1 {
		t.Errorf("预览后未读数应仍为 1，实际=%d", count)
	}
}

func TestListUnread_SkipsRead(t *testing.T) {
	svc, _ := setupTestNotificationService()

	svc.Notify(context.Background(), "user-1", "旧通知", "内容")
	if _, _, err := svc.List(context.Background(), "user-1", &dto.PaginationRequest{}); err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	svc.Notify(context.Background(), "user-1", "新通知", "内容")

	list, err := svc.ListUnread(context.Background(), "user-1", 5)
	if err != nil {
		t.Fatalf("ListUnread 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望仅 1 条未读，实际=%d", len(list))
	}
	if list[0].Title != "新通知" {
		t.Errorf("期望未读为 新通知，实际=%s", list[0].Title)
	}
}
