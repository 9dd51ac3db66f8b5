package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/dto"
	"libraryhub/internal/middleware"
	"libraryhub/internal/service"
)

type AuthorHandler struct {
	svc service.AuthorService
}

func NewAuthorHandler(svc service.AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:id", h.Get)
	rg.POST("/", middleware.RequireStaff(), h.Create)
	rg.PUT("/:id", middleware.RequireStaff(), h.Update)
	rg.DELETE("/:id", middleware.RequireStaff(), h.Delete)
}

func (h *AuthorHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := h.svc.Create(c.Request.Context(), actor, service.AuthorInput{Name: req.Name, Bio: req.Bio})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, author)
}

func (h *AuthorHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	author, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, author)
}

func (h *AuthorHandler) List(c *gin.Context) {
	page, pageSize := dto.Pagination(c)

	authors, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": authors, "total": total, "page": page})
}

func (h *AuthorHandler) Search(c *gin.Context) {
	page, pageSize := dto.Pagination(c)

	authors, total, err := h.svc.Search(c.Request.Context(), c.Query("q"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": authors, "total": total, "page": page})
}

func (h *AuthorHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := h.svc.Update(c.Request.Context(), actor, id, service.AuthorInput{Name: req.Name, Bio: req.Bio})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, author)
}

func (h *AuthorHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
