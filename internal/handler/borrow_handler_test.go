package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/dto"
	"libraryhub/internal/models"
	"libraryhub/internal/repository"
	"libraryhub/internal/service"
)

type mockBorrowService struct {
	mock.Mock
}

func (m *mockBorrowService) Create(ctx context.Context, actor service.Actor, input service.CreateBorrowInput) (*models.Borrow, error) {
	args := m.Called(ctx, actor, input)
	if b := args.Get(0); b != nil {
		return b.(*models.Borrow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBorrowService) Return(ctx context.Context, actor service.Actor, borrowID int64) (*models.Borrow, error) {
	args := m.Called(ctx, actor, borrowID)
	if b := args.Get(0); b != nil {
		return b.(*models.Borrow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBorrowService) Get(ctx context.Context, actor service.Actor, borrowID int64) (*models.Borrow, error) {
	args := m.Called(ctx, actor, borrowID)
	if b := args.Get(0); b != nil {
		return b.(*models.Borrow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBorrowService) List(ctx context.Context, actor service.Actor, input service.ListBorrowsInput) ([]models.Borrow, int64, error) {
	args := m.Called(ctx, actor, input)
	var list []models.Borrow
	if v := args.Get(0); v != nil {
		list = v.([]models.Borrow)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockBorrowService) ListByUser(ctx context.Context, actor service.Actor, userID string) ([]models.Borrow, error) {
	args := m.Called(ctx, actor, userID)
	var list []models.Borrow
	if v := args.Get(0); v != nil {
		list = v.([]models.Borrow)
	}
	return list, args.Error(1)
}

// newBorrowRouter wires the handler behind a stub auth middleware that
// injects the given actor, the way AuthMiddleware would after token
// validation.
func newBorrowRouter(svc service.BorrowService, actor service.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("actor", actor)
		c.Next()
	})
	h := NewBorrowHandler(svc)
	h.RegisterRoutes(r.Group("/api/borrows"))
	return r
}

func TestBorrowHandler_Create(t *testing.T) {
	actor := service.Actor{ID: "user-1", Role: models.RoleUser}
	due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	svc := new(mockBorrowService)
	svc.On("Create", mock.Anything, actor, mock.MatchedBy(func(in service.CreateBorrowInput) bool {
		return in.UserID == "user-1" && in.BookID == 7 && in.DueDate.Equal(due)
	})).Return(&models.Borrow{
		ID:         1,
		UserID:     "user-1",
		BookID:     7,
		BorrowedAt: time.Now(),
		DueDate:    due,
		Status:     models.StatusBorrowed,
	}, nil)

	r := newBorrowRouter(svc, actor)
	payload, err := json.Marshal(dto.CreateBorrowRequest{UserID: "user-1", BookID: 7, DueDate: due})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/borrows/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.BorrowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusBorrowed, resp.Status)
	assert.Equal(t, int64(7), resp.BookID)
}

func TestBorrowHandler_Create_NoCopies(t *testing.T) {
	actor := service.Actor{ID: "user-1", Role: models.RoleUser}

	svc := new(mockBorrowService)
	svc.On("Create", mock.Anything, actor, mock.Anything).
		Return(nil, repository.ErrBookUnavailable)

	r := newBorrowRouter(svc, actor)
	payload, err := json.Marshal(dto.CreateBorrowRequest{
		UserID:  "user-1",
		BookID:  7,
		DueDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/borrows/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBorrowHandler_Create_BadDueDate(t *testing.T) {
	actor := service.Actor{ID: "user-1", Role: models.RoleUser}

	svc := new(mockBorrowService)
	svc.On("Create", mock.Anything, actor, mock.Anything).
		Return(nil, service.ErrInvalidDueDate)

	r := newBorrowRouter(svc, actor)
	payload, err := json.Marshal(dto.CreateBorrowRequest{
		UserID:  "user-1",
		BookID:  7,
		DueDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/borrows/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBorrowHandler_Return(t *testing.T) {
	actor := service.Actor{ID: "user-1", Role: models.RoleUser}
	returnedAt := time.Now()

	svc := new(mockBorrowService)
	svc.On("Return", mock.Anything, actor, int64(42)).
		Return(&models.Borrow{
			ID:         42,
			UserID:     "user-1",
			BookID:     7,
			DueDate:    returnedAt.Add(72 * time.Hour),
			ReturnedAt: &returnedAt,
			Status:     models.StatusReturned,
		}, nil)

	r := newBorrowRouter(svc, actor)
	req := httptest.NewRequest(http.MethodPost, "/api/borrows/42/return", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.BorrowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusReturned, resp.Status)
	assert.NotNil(t, resp.ReturnedAt)
}

func TestBorrowHandler_Return_AlreadyReturned(t *testing.T) {
	actor := service.Actor{ID: "user-1", Role: models.RoleUser}

	svc := new(mockBorrowService)
	svc.On("Return", mock.Anything, actor, int64(42)).
		Return(nil, repository.ErrAlreadyReturned)

	r := newBorrowRouter(svc, actor)
	req := httptest.NewRequest(http.MethodPost, "/api/borrows/42/return", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBorrowHandler_List_StaffGate(t *testing.T) {
	patron := service.Actor{ID: "user-1", Role: models.RoleUser}
	r := newBorrowRouter(new(mockBorrowService), patron)

	req := httptest.NewRequest(http.MethodGet, "/api/borrows/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// RequireStaff rejects before the handler runs.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBorrowHandler_List_OverdueFilter(t *testing.T) {
	librarian := service.Actor{ID: "staff-1", Role: models.RoleLibrarian}
	status := models.StatusOverdue

	svc := new(mockBorrowService)
	svc.On("List", mock.Anything, librarian, service.ListBorrowsInput{
		Status:   &status,
		Page:     1,
		PageSize: 20,
	}).Return([]models.Borrow{
		{ID: 1, UserID: "user-1", BookID: 7, DueDate: time.Now().Add(-48 * time.Hour), Status: models.StatusBorrowed},
	}, int64(1), nil)

	r := newBorrowRouter(svc, librarian)
	req := httptest.NewRequest(http.MethodGet, "/api/borrows/?status=OVERDUE", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListResponse[dto.BorrowResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	// The stored status is BORROWED; the response derives OVERDUE.
	assert.Equal(t, models.StatusOverdue, resp.Items[0].Status)
}

func TestBorrowHandler_List_InvalidStatus(t *testing.T) {
	librarian := service.Actor{ID: "staff-1", Role: models.RoleLibrarian}
	r := newBorrowRouter(new(mockBorrowService), librarian)

	req := httptest.NewRequest(http.MethodGet, "/api/borrows/?status=LOST", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBorrowHandler_Get_InvalidID(t *testing.T) {
	actor := service.Actor{ID: "user-1", Role: models.RoleUser}
	r := newBorrowRouter(new(mockBorrowService), actor)

	req := httptest.NewRequest(http.MethodGet, "/api/borrows/not-a-number", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
