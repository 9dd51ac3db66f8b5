package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/dto"
	"libraryhub/internal/middleware"
	"libraryhub/internal/service"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:id", h.Get)
	rg.POST("/", middleware.RequireStaff(), h.Create)
	rg.PUT("/:id", middleware.RequireStaff(), h.Update)
	rg.DELETE("/:id", middleware.RequireStaff(), h.Delete)
}

func (h *BookHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.svc.Create(c.Request.Context(), actor, bookInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	book, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) List(c *gin.Context) {
	page, pageSize := dto.Pagination(c)

	books, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": books, "total": total, "page": page})
}

func (h *BookHandler) Search(c *gin.Context) {
	page, pageSize := dto.Pagination(c)

	books, total, err := h.svc.Search(c.Request.Context(), c.Query("q"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": books, "total": total, "page": page})
}

func (h *BookHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.svc.Update(c.Request.Context(), actor, id, bookInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func bookInput(req dto.BookRequest) service.BookInput {
	return service.BookInput{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Description: req.Description,
		PublishedAt: req.PublishedAt,
		CoverURL:    req.CoverURL,
		Pages:       req.Pages,
		Quantity:    req.Quantity,
		AuthorIDs:   req.AuthorIDs,
		CategoryIDs: req.CategoryIDs,
	}
}
