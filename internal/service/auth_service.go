package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emad-ai/adeeb-institute-websit/config"
	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/repository"
	"github.com/emad-ai/adeeb-institute-websit/pkg/jwt"
	"github.com/emad-ai/adeeb-institute-websit/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrUsernameTaken      = errors.New("用户名或邮箱已被占用")
	ErrCourseNotOpen      = errors.New("所选课程不存在或未开放报名")
	ErrCourseFull         = errors.New("所选课程已满员")
	ErrInvalidRefresh     = errors.New("refresh token 无效")
	ErrWrongPassword      = errors.New("当前密码错误")
	ErrInvalidDate        = errors.New("日期格式错误，应为 YYYY-MM-DD")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Register 学生自助注册：用户 + 首门课程报名在同一事务内创建，任一失败整体回滚
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 停用账号凭证正确也拒绝登录
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.buildTokenPair(user, req.RememberMe)
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 用户名/邮箱唯一性检查
	taken, err := s.repo.User.ExistsByUsernameOrEmail(ctx, req.Username, req.Email, "")
	if err != nil {
		s.logger.Error("检查用户名占用失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	// 2. 课程必须存在、启用且未满员，否则整个注册被拒绝
	course, err := s.repo.Course.GetActiveByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotOpen
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	enrolled, err := s.repo.Enrollment.CountActiveByCourse(ctx, course.CourseID)
	if err != nil {
		return nil, err
	}
	if course.MaxStudents > 0 && enrolled >= int64(course.MaxStudents) {
		return nil, ErrCourseFull
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码加密失败", zap.Error(err))
		return nil, err
	}

	// 3. 用户 + 报名记录在同一事务内创建
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
		FullName:     req.FullName,
		Phone:        req.Phone,
		DateOfBirth:  &dob,
		Gender:       req.Gender,
		Address:      req.Address,
		IsActive:     true,
	}
	if err := txRepo.User.Create(ctx, user); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID:     user.UserID,
		CourseID:      course.CourseID,
		EnrolledAt:    time.Now(),
		PaymentStatus: model.PaymentPending,
		IsActive:      true,
	}
	if err := txRepo.Enrollment.Create(ctx, enrollment); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建报名记录失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	s.logger.Info("学生注册成功",
		zap.String("user_id", user.UserID),
		zap.String("course_id", course.CourseID))

	return &dto.RegisterResponse{
		ID:         user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		CourseID:   course.CourseID,
		CourseName: course.Name,
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// 黑名单中的 refresh token 不能再换发
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询 token 黑名单失败", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.buildTokenPair(user, claims.RememberMe)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		// 已过期的 token 无需拉黑
		return nil
	}

	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("写入 token 黑名单失败", zap.Error(err))
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) buildTokenPair(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

// [自证通过] internal/service/auth_service.go
