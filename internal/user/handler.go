package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	commonauth "github.com/binduu04/fleet-management-assignment/internal/common/auth"
	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
	"github.com/binduu04/fleet-management-assignment/internal/common/config"
	"github.com/binduu04/fleet-management-assignment/internal/common/server"
)

// Handler user 相关的 HTTP 入口（认证 + 用户管理）。
type Handler struct {
	svc     *Service
	authCfg config.AuthConfig
}

func NewHandler(svc *Service, authCfg config.AuthConfig) *Handler {
	return &Handler{svc: svc, authCfg: authCfg}
}

// RegisterRoutes 挂载路由。用户管理全部 admin-only（见角色策略表）。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	ag := r.Group("/api/auth")
	ag.POST("/login", h.Login)
	ag.GET("/me", h.Me)

	ug := r.Group("/api/users")
	ug.GET("", server.RequireAction(authz.ActionUserList), h.List)
	ug.POST("", server.RequireAction(authz.ActionUserWrite), h.Create)
	ug.GET("/:id", server.RequireAction(authz.ActionUserRead), h.Get)
	ug.PUT("/:id", server.RequireAction(authz.ActionUserWrite), h.Update)
	ug.DELETE("/:id", server.RequireAction(authz.ActionUserWrite), h.Delete)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 邮箱+密码换取 access token。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email/password required"})
		return
	}

	u, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
			return
		}
		server.Fail(c, err)
		return
	}

	ttl := time.Duration(h.authCfg.TokenTTLHours) * time.Hour
	token, exp, err := commonauth.GenerateAccessToken(h.authCfg, u.ID, string(u.Role), ttl)
	if err != nil {
		server.Fail(c, err)
		return
	}

	server.OK(c, gin.H{
		"token":     token,
		"expiresAt": exp.Unix(),
		"user":      u,
	})
}

// Me 返回当前登录用户。
func (h *Handler) Me(c *gin.Context) {
	actor, ok := server.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing auth"})
		return
	}
	u, err := h.svc.Get(c.Request.Context(), actor.ID)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, u)
}

// List 用户列表；?role= 过滤指定角色。
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if role := c.Query("role"); role != "" {
		users, err := h.svc.ListByRole(ctx, role)
		if err != nil {
			server.Fail(c, err)
			return
		}
		server.OKCount(c, len(users), users)
		return
	}
	users, err := h.svc.List(ctx)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OKCount(c, len(users), users)
}

func (h *Handler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, u)
}

func (h *Handler) Create(c *gin.Context) {
	var in CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	u, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.Created(c, u)
}

func (h *Handler) Update(c *gin.Context) {
	var in UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, u)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, err)
		return
	}
	server.OKMessage(c, "User deleted successfully")
}
