package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/dto"
	"libraryhub/internal/middleware"
	"libraryhub/internal/models"
	"libraryhub/internal/service"
)

type BorrowHandler struct {
	svc service.BorrowService
}

func NewBorrowHandler(svc service.BorrowService) *BorrowHandler {
	return &BorrowHandler{svc: svc}
}

func (h *BorrowHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/", h.Create)
	rg.GET("/", middleware.RequireStaff(), h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/return", h.Return)
}

// Create records a loan: the borrow row is inserted and the book's
// availability decremented in one transaction.
func (h *BorrowHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	borrow, err := h.svc.Create(c.Request.Context(), actor, service.CreateBorrowInput{
		UserID:  req.UserID,
		BookID:  req.BookID,
		DueDate: req.DueDate,
		Note:    req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBorrow(*borrow, time.Now()))
}

func (h *BorrowHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borrow id"})
		return
	}

	borrow, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBorrow(*borrow, time.Now()))
}

func (h *BorrowHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, pageSize := dto.Pagination(c)

	var status *models.BorrowStatus
	if raw := c.Query("status"); raw != "" {
		s := models.BorrowStatus(raw)
		if s != models.StatusBorrowed && s != models.StatusReturned && s != models.StatusOverdue {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		status = &s
	}

	borrows, total, err := h.svc.List(c.Request.Context(), actor, service.ListBorrowsInput{
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[dto.BorrowResponse]{
		Items: dto.FromBorrows(borrows, time.Now()),
		Total: total,
		Page:  page,
	})
}

func (h *BorrowHandler) Return(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borrow id"})
		return
	}

	borrow, err := h.svc.Return(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBorrow(*borrow, time.Now()))
}
