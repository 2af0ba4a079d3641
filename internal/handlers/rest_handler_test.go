package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boardSync/configs"
	"boardSync/internal/enums"
	"boardSync/internal/models"
	"boardSync/internal/services"
	"boardSync/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBroadcaster captures publishes without a running relay.
type recordingBroadcaster struct {
	events []string
	boards []uuid.UUID
}

func (b *recordingBroadcaster) Publish(event string, boardID uuid.UUID, payload interface{}) error {
	b.events = append(b.events, event)
	b.boards = append(b.boards, boardID)
	return nil
}

type restTestEnv struct {
	router      *gin.Engine
	config      *configs.Config
	broadcaster *recordingBroadcaster
	authRepo    *fakeAuthRepo
	boardRepo   *fakeBoardRepo
	noteRepo    *fakeNoteRepo
}

func newRestTestEnv() *restTestEnv {
	gin.SetMode(gin.TestMode)

	v := viper.New()
	v.Set("jwt.secret", "rest-test-secret")
	v.Set("jwt.expiration_time", 3600)
	config := &configs.Config{Viper: v}

	authRepo := newFakeAuthRepo()
	boardRepo := newFakeBoardRepo()
	noteRepo := newFakeNoteRepo()
	broadcaster := &recordingBroadcaster{}

	rh := NewRestHandler(
		services.NewAuthenticationService(authRepo, config),
		services.NewBoardService(boardRepo),
		services.NewNoteService(noteRepo),
		broadcaster,
		config,
	)

	router := gin.New()
	api := router.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", rh.Register)
	auth.POST("/login", rh.Login)
	auth.GET("/me", rh.MustAuthenticateMiddleware(), rh.Me)
	boards := api.Group("/boards", rh.MustAuthenticateMiddleware())
	boards.GET("/my", rh.GetMyBoards)
	boards.POST("", rh.CreateBoard)
	boards.DELETE("/:boardId", rh.DeleteBoard)
	boards.GET("/:boardId/notes", rh.GetBoardNotes)
	boards.GET("/:boardId/members", rh.GetBoardMembers)
	boards.POST("/:boardId/members", rh.AddBoardMember)
	boards.DELETE("/:boardId/members/:userId", rh.RemoveBoardMember)

	return &restTestEnv{
		router:      router,
		config:      config,
		broadcaster: broadcaster,
		authRepo:    authRepo,
		boardRepo:   boardRepo,
		noteRepo:    noteRepo,
	}
}

func (env *restTestEnv) tokenFor(user *models.User) string {
	token, err := utils.CreateJwtToken(user.ID, user.Email, user.Name, env.config.JwtKey(), time.Now().Add(time.Hour))
	if err != nil {
		panic(err)
	}
	return token
}

func (env *restTestEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, path, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, request)
	return recorder
}

func TestRest_RegisterAndLogin(t *testing.T) {
	env := newRestTestEnv()

	response := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, response.Code)
	// The hash never leaves the server.
	assert.NotContains(t, response.Body.String(), "password")

	response = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "token")

	response = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestRest_RegisterRejectsDuplicateEmail(t *testing.T) {
	env := newRestTestEnv()
	body := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	}

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/auth/register", "", body).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/api/auth/register", "", body).Code)
}

func TestRest_MeRequiresAuth(t *testing.T) {
	env := newRestTestEnv()
	user := env.authRepo.addUser("Alice")

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/auth/me", "", nil).Code)

	response := env.do(http.MethodGet, "/api/auth/me", env.tokenFor(user), nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), user.Email)
}

func TestRest_CreateBoard(t *testing.T) {
	env := newRestTestEnv()
	user := env.authRepo.addUser("Owner")
	token := env.tokenFor(user)

	response := env.do(http.MethodPost, "/api/boards", token, map[string]string{"title": "Roadmap"})
	require.Equal(t, http.StatusCreated, response.Code)
	assert.Contains(t, response.Body.String(), "Roadmap")

	response = env.do(http.MethodPost, "/api/boards", token, map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestRest_GetMyBoards(t *testing.T) {
	env := newRestTestEnv()
	user := env.authRepo.addUser("Owner")
	env.boardRepo.addBoard(user.ID, "Mine")
	env.boardRepo.addBoard(uuid.New(), "Not mine")

	response := env.do(http.MethodGet, "/api/boards/my", env.tokenFor(user), nil)

	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "Mine")
	assert.NotContains(t, response.Body.String(), "Not mine")
}

func TestRest_DeleteBoardBroadcastsToRoom(t *testing.T) {
	env := newRestTestEnv()
	owner := env.authRepo.addUser("Owner")
	board := env.boardRepo.addBoard(owner.ID, "Doomed")

	response := env.do(http.MethodDelete, "/api/boards/"+board.ID.String(), env.tokenFor(owner), nil)

	require.Equal(t, http.StatusOK, response.Code)
	require.Len(t, env.broadcaster.events, 1)
	assert.Equal(t, enums.SOCKET_EVENT_BOARD_DELETED, env.broadcaster.events[0])
	assert.Equal(t, board.ID, env.broadcaster.boards[0])
}

func TestRest_DeleteBoardOwnerOnly(t *testing.T) {
	env := newRestTestEnv()
	stranger := env.authRepo.addUser("Stranger")
	board := env.boardRepo.addBoard(uuid.New(), "Private")

	response := env.do(http.MethodDelete, "/api/boards/"+board.ID.String(), env.tokenFor(stranger), nil)

	assert.Equal(t, http.StatusForbidden, response.Code)
	assert.Empty(t, env.broadcaster.events)
}

func TestRest_DeleteUnknownBoard(t *testing.T) {
	env := newRestTestEnv()
	user := env.authRepo.addUser("User")

	response := env.do(http.MethodDelete, "/api/boards/"+uuid.NewString(), env.tokenFor(user), nil)

	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestRest_GetBoardNotes(t *testing.T) {
	env := newRestTestEnv()
	user := env.authRepo.addUser("Reader")
	board := env.boardRepo.addBoard(user.ID, "Board")
	env.noteRepo.addBoard(board.ID)
	env.noteRepo.seedNote(board.ID, "fallback snapshot")
	token := env.tokenFor(user)

	response := env.do(http.MethodGet, "/api/boards/"+board.ID.String()+"/notes", token, nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "fallback snapshot")

	response = env.do(http.MethodGet, "/api/boards/not-a-uuid/notes", token, nil)
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestRest_MemberLifecycle(t *testing.T) {
	env := newRestTestEnv()
	owner := env.authRepo.addUser("Owner")
	member := env.authRepo.addUser("Member")
	board := env.boardRepo.addBoard(owner.ID, "Shared")
	ownerToken := env.tokenFor(owner)
	membersPath := fmt.Sprintf("/api/boards/%s/members", board.ID)

	response := env.do(http.MethodPost, membersPath, ownerToken, map[string]string{"user_id": member.ID.String()})
	require.Equal(t, http.StatusCreated, response.Code)

	// Duplicate add is rejected.
	response = env.do(http.MethodPost, membersPath, ownerToken, map[string]string{"user_id": member.ID.String()})
	assert.Equal(t, http.StatusBadRequest, response.Code)

	// The member can list, a stranger cannot.
	response = env.do(http.MethodGet, membersPath, env.tokenFor(member), nil)
	assert.Equal(t, http.StatusOK, response.Code)
	stranger := env.authRepo.addUser("Stranger")
	response = env.do(http.MethodGet, membersPath, env.tokenFor(stranger), nil)
	assert.Equal(t, http.StatusForbidden, response.Code)

	// Only the owner removes members.
	removePath := fmt.Sprintf("%s/%s", membersPath, member.ID)
	response = env.do(http.MethodDelete, removePath, env.tokenFor(member), nil)
	assert.Equal(t, http.StatusForbidden, response.Code)
	response = env.do(http.MethodDelete, removePath, ownerToken, nil)
	assert.Equal(t, http.StatusOK, response.Code)
	response = env.do(http.MethodDelete, removePath, ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, response.Code)
}
