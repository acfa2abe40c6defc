package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"futuboard/internal/auth"
	"futuboard/internal/handler"
	"futuboard/internal/model"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.BoardRepositoryInterface = (*MockBoardRepository)(nil)

func setupBoardRouter(repo *MockBoardRepository, issuer *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewBoardHandler(repo, issuer)

	r := gin.Default()
	r.POST("/boards", h.Create)
	r.POST("/boards/:boardId", h.CheckPassword)
	r.GET("/boards/:boardId", h.GetByID)
	r.PUT("/boards/:boardId/password", h.UpdatePassword)
	return r
}

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret-key", time.Hour, true)
}

func mustHash(t *testing.T, password string) string {
	hash, err := auth.HashPassword(password)
	assert.NoError(t, err)
	return hash
}

func TestBoardHandler_Create(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())
	boardID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Board")).Return(nil)

	body, _ := json.Marshal(map[string]string{
		"id":       boardID.String(),
		"title":    "Sprint board",
		"password": "hunter2",
	})
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var got handler.BoardResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, boardID.String(), got.BoardID)
	assert.Equal(t, "Sprint board", got.Title)
	repo.AssertExpectations(t)
}

func TestBoardHandler_Create_MissingPassword(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())

	body, _ := json.Marshal(map[string]string{
		"id":    uuid.New().String(),
		"title": "Sprint board",
	})
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBoardHandler_CheckPassword_Success(t *testing.T) {
	repo := new(MockBoardRepository)
	issuer := testIssuer()
	router := setupBoardRouter(repo, issuer)

	boardID := uuid.New()
	board := &model.Board{
		BoardID:      boardID,
		Title:        "Sprint board",
		PasswordHash: mustHash(t, "hunter2"),
	}
	repo.On("GetByID", mock.Anything, boardID).Return(board, nil)

	body, _ := json.Marshal(map[string]string{"password": "hunter2"})
	req, _ := http.NewRequest("POST", "/boards/"+boardID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var got struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.True(t, got.Success)

	// The issued token must open exactly this board
	tokenBoardID, err := issuer.ParseToken(got.Token)
	assert.NoError(t, err)
	assert.Equal(t, boardID, tokenBoardID)
}

func TestBoardHandler_CheckPassword_WrongPassword(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())

	boardID := uuid.New()
	board := &model.Board{
		BoardID:      boardID,
		PasswordHash: mustHash(t, "hunter2"),
	}
	repo.On("GetByID", mock.Anything, boardID).Return(board, nil)

	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	req, _ := http.NewRequest("POST", "/boards/"+boardID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var got map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.NotContains(t, got, "token")
}

func TestBoardHandler_CheckPassword_BoardNotFound(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())

	boardID := uuid.New()
	repo.On("GetByID", mock.Anything, boardID).Return(nil, repository.ErrBoardNotFound)

	body, _ := json.Marshal(map[string]string{"password": "hunter2"})
	req, _ := http.NewRequest("POST", "/boards/"+boardID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBoardHandler_UpdatePassword_WrongOldPassword(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())

	boardID := uuid.New()
	board := &model.Board{
		BoardID:      boardID,
		PasswordHash: mustHash(t, "hunter2"),
	}
	repo.On("GetByID", mock.Anything, boardID).Return(board, nil)

	body, _ := json.Marshal(map[string]string{
		"old_password":     "wrong",
		"new_password":     "swordfish",
		"confirm_password": "swordfish",
	})
	req, _ := http.NewRequest("PUT", "/boards/"+boardID.String()+"/password", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Wrong old password")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBoardHandler_UpdatePassword_ConfirmationMismatch(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())

	boardID := uuid.New()
	board := &model.Board{
		BoardID:      boardID,
		PasswordHash: mustHash(t, "hunter2"),
	}
	repo.On("GetByID", mock.Anything, boardID).Return(board, nil)

	body, _ := json.Marshal(map[string]string{
		"old_password":     "hunter2",
		"new_password":     "swordfish",
		"confirm_password": "sword-fish",
	})
	req, _ := http.NewRequest("PUT", "/boards/"+boardID.String()+"/password", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Passwords do not match")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBoardHandler_UpdatePassword_Success(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())

	boardID := uuid.New()
	board := &model.Board{
		BoardID:      boardID,
		PasswordHash: mustHash(t, "hunter2"),
	}
	repo.On("GetByID", mock.Anything, boardID).Return(board, nil)

	var saved *model.Board
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Board")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*model.Board)
		}).
		Return(nil)

	body, _ := json.Marshal(map[string]string{
		"old_password":     "hunter2",
		"new_password":     "swordfish",
		"confirm_password": "swordfish",
	})
	req, _ := http.NewRequest("PUT", "/boards/"+boardID.String()+"/password", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotNil(t, saved)
	assert.True(t, auth.VerifyPassword("swordfish", saved.PasswordHash))
	assert.False(t, auth.VerifyPassword("hunter2", saved.PasswordHash))
	repo.AssertExpectations(t)
}

func TestBoardHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockBoardRepository)
	router := setupBoardRouter(repo, testIssuer())

	boardID := uuid.New()
	repo.On("GetByID", mock.Anything, boardID).Return(nil, repository.ErrBoardNotFound)

	req, _ := http.NewRequest("GET", "/boards/"+boardID.String(), nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
