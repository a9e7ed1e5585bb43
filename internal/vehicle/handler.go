package vehicle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
	"github.com/binduu04/fleet-management-assignment/internal/common/server"
)

// Handler vehicle 相关的 HTTP 入口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 挂载路由。增删改 admin-only；“我的车辆”对全部角色开放。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	vg := r.Group("/api/vehicles")
	vg.GET("", server.RequireAction(authz.ActionVehicleList), h.List)
	vg.POST("", server.RequireAction(authz.ActionVehicleWrite), h.Create)
	vg.GET("/:id", server.RequireAction(authz.ActionVehicleRead), h.Get)
	vg.PUT("/:id", server.RequireAction(authz.ActionVehicleWrite), h.Update)
	vg.DELETE("/:id", server.RequireAction(authz.ActionVehicleWrite), h.Delete)
	vg.PUT("/:id/assign", server.RequireAction(authz.ActionVehicleWrite), h.Assign)

	r.GET("/api/my/vehicles", server.RequireAction(authz.ActionVehicleMine), h.Mine)
	r.GET("/api/users/:id/vehicles", server.RequireAction(authz.ActionVehicleList), h.ListByUser)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	vehicles, err := h.svc.List(ctx)
	if err != nil {
		server.Fail(c, err)
		return
	}
	views, err := h.svc.ResolveAll(ctx, vehicles, false)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OKCount(c, len(views), views)
}

func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	v, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		server.Fail(c, err)
		return
	}
	view, err := h.svc.Resolve(ctx, v, true)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, view)
}

func (h *Handler) Create(c *gin.Context) {
	var in VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	v, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.Created(c, v)
}

func (h *Handler) Update(c *gin.Context) {
	var in VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	v, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, v)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, err)
		return
	}
	server.OKMessage(c, "Vehicle deleted successfully")
}

type assignRequest struct {
	UserID string `json:"userId"`
}

// Assign 分配/取消分配车辆。
func (h *Handler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	ctx := c.Request.Context()
	v, err := h.svc.Assign(ctx, c.Param("id"), req.UserID)
	if err != nil {
		server.Fail(c, err)
		return
	}
	view, err := h.svc.Resolve(ctx, v, false)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OK(c, view)
}

// Mine 当前用户名下的车辆。
func (h *Handler) Mine(c *gin.Context) {
	actor, ok := server.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing auth"})
		return
	}
	vehicles, err := h.svc.ListByAssignee(c.Request.Context(), actor.ID)
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OKCount(c, len(vehicles), vehicles)
}

// ListByUser 指定用户名下的车辆（admin 查询）。
func (h *Handler) ListByUser(c *gin.Context) {
	vehicles, err := h.svc.ListByAssignee(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Fail(c, err)
		return
	}
	server.OKCount(c, len(vehicles), vehicles)
}
