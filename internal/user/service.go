package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
	"github.com/binduu04/fleet-management-assignment/internal/common/validate"
)

// ErrInvalidCredentials 登录失败（邮箱或密码不对，不区分泄露哪个）。
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store 抽象 user 持久化，便于在测试里用假实现替换。
type Store interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role authz.Role) ([]User, error)
}

// Service 封装 user 领域用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateUserInput 创建用户的入参。
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin technician user"`
	Phone    string `json:"phone"`
}

// UpdateUserInput 更新用户的入参；密码为空表示不改密码。
type UpdateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin technician user"`
	Phone    string `json:"phone"`
}

func (s *Service) Create(ctx context.Context, in CreateUserInput) (*User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Role == "" {
		in.Role = string(authz.RoleUser)
	}

	ve := validate.Collect(in)
	taken, err := s.emailTaken(ctx, in.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		ve.Add("email", "is already registered")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.NewValidation().Add("password", err.Error())
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         authz.Role(in.Role),
		Phone:        in.Phone,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update 全量更新：合并后重跑与创建相同的校验。
func (s *Service) Update(ctx context.Context, id string, in UpdateUserInput) (*User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	ve := validate.Collect(in)
	taken, err := s.emailTaken(ctx, in.Email, u.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		ve.Add("email", "is already registered")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	u.Name = in.Name
	u.Email = in.Email
	u.Role = authz.Role(in.Role)
	u.Phone = in.Phone
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, apperr.NewValidation().Add("password", err.Error())
		}
		u.PasswordHash = hash
	}

	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete 硬删除用户。
// 已知缺口：被 Vehicle / Service 引用的用户删除后引用悬挂，由读取侧弱引用解析兜底。
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByRole(ctx context.Context, roleStr string) ([]User, error) {
	role, err := authz.ParseRole(roleStr)
	if err != nil {
		return nil, apperr.NewValidation().Add("role", "must be one of: admin, technician, user")
	}
	return s.store.ListByRole(ctx, role)
}

// Authenticate 按邮箱+密码认证；凭证不对一律返回 ErrInvalidCredentials。
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// emailTaken 邮箱全局唯一；excludeID 用于更新时排除自身。
func (s *Service) emailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	if email == "" {
		return false, nil
	}
	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}
