package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/dto"
	"libraryhub/internal/middleware"
	"libraryhub/internal/service"
)

type UserHandler struct {
	svc       service.UserService
	borrowSvc service.BorrowService
}

func NewUserHandler(svc service.UserService, borrowSvc service.BorrowService) *UserHandler {
	return &UserHandler{svc: svc, borrowSvc: borrowSvc}
}

// RegisterRoutes wires the user management surface. Fine-grained checks
// (who may manage whom) live in the service; the staff gate here only
// shields listing and creation.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", middleware.RequireStaff(), h.List)
	rg.POST("/", middleware.RequireStaff(), h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.DELETE("/:id/force", h.ForceDelete)
	rg.GET("/:id/borrows", h.ListBorrows)
}

func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Create(c.Request.Context(), actor, service.CreateUserInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		Role:               req.Role,
		MustChangePassword: req.MustChangePassword,
		PictureURL:         req.PictureURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, pageSize := dto.Pagination(c)

	users, total, err := h.svc.List(c.Request.Context(), actor, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": users, "total": total, "page": page})
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), service.UpdateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		PictureURL: req.PictureURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ForceDelete is the cascading variant. The second confirmation step is
// the confirm query parameter, which must repeat the target's email
// verbatim.
func (h *UserHandler) ForceDelete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id := c.Param("id")
	target, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("confirm") != target.Email {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation does not match target email"})
		return
	}

	if err := h.svc.ForceDelete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListBorrows(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	borrows, err := h.borrowSvc.ListByUser(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[dto.BorrowResponse]{
		Items: dto.FromBorrows(borrows, time.Now()),
		Total: int64(len(borrows)),
		Page:  1,
	})
}

// ChangePassword is registered outside the password-change gate so a
// fresh account can actually clear its temporary password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
