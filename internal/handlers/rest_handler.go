package handlers

import (
	"log"
	"net/http"

	"boardSync/configs"
	"boardSync/internal/enums"
	"boardSync/internal/errs"
	"boardSync/internal/models"
	socketModels "boardSync/internal/models/socket"
	"boardSync/internal/msgs"
	"boardSync/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestHandler struct {
	authService  *services.AuthenticationService
	boardService *services.BoardService
	noteService  *services.NoteService
	broadcaster  Broadcaster
	config       *configs.Config
}

func NewRestHandler(
	authService *services.AuthenticationService,
	boardService *services.BoardService,
	noteService *services.NoteService,
	broadcaster Broadcaster,
	config *configs.Config,
) *RestHandler {
	return &RestHandler{
		authService:  authService,
		boardService: boardService,
		noteService:  noteService,
		broadcaster:  broadcaster,
		config:       config,
	}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /api/auth/register [post]
func (rh *RestHandler) Register(ctx *gin.Context) {
	var errors []error

	var user models.User
	if err := ctx.BindJSON(&user); err != nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	created, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		errors = append(errors, registerErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
		Data:    created.ToUserResponse(),
	})
}

// Login godoc
// @Summary      Login to an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /api/auth/login [post]
func (rh *RestHandler) Login(ctx *gin.Context) {
	var errors []error

	var loginData models.LoginRequestBody
	if err := ctx.BindJSON(&loginData); err != nil {
		log.Println("Error login data json binding:", err)
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    loginResponse,
	})
}

func (rh *RestHandler) Me(ctx *gin.Context) {
	userID := rh.userID(ctx)
	user, err := rh.authService.GetUserByID(userID)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUserNotFound},
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user.ToUserResponse(),
	})
}

// GetMyBoards godoc
// @Summary      List boards owned by or shared with the caller
// @Tags         boards
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /api/boards/my [get]
func (rh *RestHandler) GetMyBoards(ctx *gin.Context) {
	boards, boardErrs := rh.boardService.GetUserBoards(rh.userID(ctx))
	if len(boardErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  boardErrs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    boards,
	})
}

func (rh *RestHandler) CreateBoard(ctx *gin.Context) {
	var body models.CreateBoardRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	board, boardErrs := rh.boardService.CreateBoard(rh.userID(ctx), body.Title)
	if len(boardErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  boardErrs,
		})
		return
	}

	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    board,
	})
}

// DeleteBoard removes the board and tells every connection in its room.
func (rh *RestHandler) DeleteBoard(ctx *gin.Context) {
	boardID, ok := rh.boardIDParam(ctx)
	if !ok {
		return
	}
	actorID := rh.userID(ctx)

	deleteErrs := rh.boardService.DeleteBoard(boardID, actorID)
	if len(deleteErrs) > 0 {
		status := http.StatusBadRequest
		if services.IsNotFound(deleteErrs) {
			status = http.StatusNotFound
		} else if deleteErrs[0] == errs.ErrOnlyOwnerCanDelete {
			status = http.StatusForbidden
		}
		ctx.AbortWithStatusJSON(status, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  deleteErrs,
		})
		return
	}

	if err := rh.broadcaster.Publish(enums.SOCKET_EVENT_BOARD_DELETED, boardID, socketModels.BoardDeletedPayload{
		BoardID: boardID,
		ActorID: actorID,
	}); err != nil {
		log.Printf("Error publishing board:deleted: %v", err)
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgBoardDeleted,
	})
}

// GetBoardNotes is the REST fallback snapshot, a read path only; mutation
// truth stays on the socket.
func (rh *RestHandler) GetBoardNotes(ctx *gin.Context) {
	boardID, ok := rh.boardIDParam(ctx)
	if !ok {
		return
	}

	notes, noteErrs := rh.noteService.GetNotesSnapshot(boardID)
	if len(noteErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  noteErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    notes,
	})
}

func (rh *RestHandler) GetBoardMembers(ctx *gin.Context) {
	boardID, ok := rh.boardIDParam(ctx)
	if !ok {
		return
	}

	members, memberErrs := rh.boardService.GetMembers(boardID, rh.userID(ctx))
	if len(memberErrs) > 0 {
		ctx.AbortWithStatusJSON(restStatus(memberErrs), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  memberErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    members,
	})
}

func (rh *RestHandler) AddBoardMember(ctx *gin.Context) {
	boardID, ok := rh.boardIDParam(ctx)
	if !ok {
		return
	}

	var body models.AddMemberRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}
	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	member, memberErrs := rh.boardService.AddMember(boardID, rh.userID(ctx), userID, body.Role)
	if len(memberErrs) > 0 {
		ctx.AbortWithStatusJSON(restStatus(memberErrs), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  memberErrs,
		})
		return
	}

	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    member,
	})
}

func (rh *RestHandler) RemoveBoardMember(ctx *gin.Context) {
	boardID, ok := rh.boardIDParam(ctx)
	if !ok {
		return
	}
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	memberErrs := rh.boardService.RemoveMember(boardID, rh.userID(ctx), userID)
	if len(memberErrs) > 0 {
		ctx.AbortWithStatusJSON(restStatus(memberErrs), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  memberErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgMemberRemoved,
	})
}

func (rh *RestHandler) userID(ctx *gin.Context) uuid.UUID {
	if id, exists := ctx.Get("user_id"); exists {
		if userID, ok := id.(uuid.UUID); ok {
			return userID
		}
	}
	return uuid.Nil
}

func (rh *RestHandler) boardIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	boardID, err := uuid.Parse(ctx.Param("boardId"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidBoardId},
		})
		return uuid.Nil, false
	}
	return boardID, true
}

func restStatus(errorList []error) int {
	if services.IsNotFound(errorList) {
		return http.StatusNotFound
	}
	for _, err := range errorList {
		switch err {
		case errs.ErrForbidden, errs.ErrOnlyOwnerCanDelete, errs.ErrOnlyOwnerCanManage:
			return http.StatusForbidden
		}
	}
	return http.StatusBadRequest
}
