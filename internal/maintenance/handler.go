package maintenance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
	"github.com/binduu04/fleet-management-assignment/internal/common/server"
)

// Handler 工单相关的 HTTP 入口。
type Handler struct {
	mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

// RegisterRoutes 挂载路由。CRUD admin-only；状态更新 admin/technician；
// “我的工单”“统计”按各自的角色策略放开。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	sg := r.Group("/api/services")
	sg.GET("", server.RequireAction(authz.ActionServiceList), h.List)
	sg.POST("", server.RequireAction(authz.ActionServiceWrite), h.Create)
	sg.GET("/:id", server.RequireAction(authz.ActionServiceRead), h.Get)
	sg.PUT("/:id", server.RequireAction(authz.ActionServiceWrite), h.Update)
	sg.DELETE("/:id", server.RequireAction(authz.ActionServiceWrite), h.Delete)
	sg.PUT("/:id/status", server.RequireAction(authz.ActionServiceStatus), h.UpdateStatus)

	r.GET("/api/technician/services", server.RequireAction(authz.ActionServiceMineTech), h.TechnicianServices)
	r.GET("/api/my/services", server.RequireAction(authz.ActionServiceMineUser), h.MyServices)
	r.GET("/api/stats/services", server.RequireAction(authz.ActionServiceStats), h.Stats)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	services, err := h.mgr.List(ctx)
	if err != nil {
		server.Fail(c, err)
		return
	}
	views, err := h.mgr.ResolveAll(ctx, services)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OKCount(c, len(views), views)
}

func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.mgr.Get(ctx, c.Param("id"))
	if err != nil {
		server.Fail(c, err)
		return
	}
	view, err := h.mgr.Resolve(ctx, s)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, view)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := server.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing auth"})
		return
	}
	var in ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s, err := h.mgr.Create(c.Request.Context(), actor, in)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.Created(c, s)
}

func (h *Handler) Update(c *gin.Context) {
	var in ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s, err := h.mgr.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, s)
}

// UpdateStatus 技师/管理员更新工单状态（可附带备注）。
func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := server.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing auth"})
		return
	}
	var in StatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s, err := h.mgr.UpdateStatus(c.Request.Context(), actor, c.Param("id"), in)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, s)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.mgr.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, err)
		return
	}
	server.OKMessage(c, "Service deleted successfully")
}

// TechnicianServices 指派给当前技师的工单。
func (h *Handler) TechnicianServices(c *gin.Context) {
	actor, ok := server.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing auth"})
		return
	}
	ctx := c.Request.Context()
	services, err := h.mgr.TechnicianServices(ctx, actor.ID)
	if err != nil {
		server.Fail(c, err)
		return
	}
	views, err := h.mgr.ResolveAll(ctx, services)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OKCount(c, len(views), views)
}

// MyServices 当前用户名下车辆的工单。
func (h *Handler) MyServices(c *gin.Context) {
	actor, ok := server.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing auth"})
		return
	}
	ctx := c.Request.Context()
	services, err := h.mgr.UserServices(ctx, actor.ID)
	if err != nil {
		server.Fail(c, err)
		return
	}
	views, err := h.mgr.ResolveAll(ctx, services)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OKCount(c, len(views), views)
}

// Stats 按状态和类型的两组分组计数。
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.mgr.Stats(c.Request.Context())
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, stats)
}
