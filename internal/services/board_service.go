package services

import (
	"errors"

	"boardSync/internal/errs"
	"boardSync/internal/models"

	"github.com/google/uuid"
)

type BoardService struct {
	boardRepo BoardRepository
}

func NewBoardService(boardRepo BoardRepository) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
	}
}

func (bs *BoardService) CreateBoard(ownerID uuid.UUID, title string) (*models.Board, []error) {
	var errors []error
	if title == "" {
		errors = append(errors, errs.ErrTitleRequired)
		return nil, errors
	}
	board := &models.Board{
		Title:   title,
		OwnerID: &ownerID,
	}
	created, err := bs.boardRepo.CreateBoard(board)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	return created, nil
}

func (bs *BoardService) GetUserBoards(userID uuid.UUID) ([]models.BoardSummary, []error) {
	boards, err := bs.boardRepo.GetUserBoards(userID)
	if err != nil {
		return nil, []error{err}
	}
	return boards, nil
}

// AuthorizeJoin validates room access: the board must exist and the user
// must be its owner or a member. Returns ErrBoardNotFound or ErrForbidden.
func (bs *BoardService) AuthorizeJoin(boardID, userID uuid.UUID) error {
	board, err := bs.boardRepo.GetBoardByID(boardID)
	if err != nil {
		return err
	}
	if board.IsOwnedBy(userID) {
		return nil
	}
	isMember, err := bs.boardRepo.IsBoardMember(boardID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return errs.ErrForbidden
	}
	return nil
}

// DeleteBoard removes the board with its notes and members. Owner only.
func (bs *BoardService) DeleteBoard(boardID, userID uuid.UUID) []error {
	board, err := bs.boardRepo.GetBoardByID(boardID)
	if err != nil {
		return []error{err}
	}
	if !board.IsOwnedBy(userID) {
		return []error{errs.ErrOnlyOwnerCanDelete}
	}
	if err := bs.boardRepo.DeleteBoard(boardID); err != nil {
		return []error{err}
	}
	return nil
}

func (bs *BoardService) AddMember(boardID, actorID, userID uuid.UUID, role string) (*models.BoardMember, []error) {
	board, err := bs.boardRepo.GetBoardByID(boardID)
	if err != nil {
		return nil, []error{err}
	}
	if !board.IsOwnedBy(actorID) {
		return nil, []error{errs.ErrOnlyOwnerCanManage}
	}
	exists, err := bs.boardRepo.IsBoardMember(boardID, userID)
	if err != nil {
		return nil, []error{err}
	}
	if exists {
		return nil, []error{errs.ErrMemberAlreadyExists}
	}
	if role == "" {
		role = models.BoardRoleMember
	}
	member, err := bs.boardRepo.AddMember(&models.BoardMember{
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
	})
	if err != nil {
		return nil, []error{err}
	}
	return member, nil
}

func (bs *BoardService) RemoveMember(boardID, actorID, userID uuid.UUID) []error {
	board, err := bs.boardRepo.GetBoardByID(boardID)
	if err != nil {
		return []error{err}
	}
	if !board.IsOwnedBy(actorID) {
		return []error{errs.ErrOnlyOwnerCanManage}
	}
	if err := bs.boardRepo.RemoveMember(boardID, userID); err != nil {
		return []error{err}
	}
	return nil
}

func (bs *BoardService) GetMembers(boardID, userID uuid.UUID) ([]models.BoardMember, []error) {
	if err := bs.AuthorizeJoin(boardID, userID); err != nil {
		return nil, []error{err}
	}
	members, err := bs.boardRepo.GetBoardMembers(boardID)
	if err != nil {
		return nil, []error{err}
	}
	return members, nil
}

// IsNotFound reports whether the error list carries a board-not-found.
func IsNotFound(errorList []error) bool {
	for _, err := range errorList {
		if errors.Is(err, errs.ErrBoardNotFound) || errors.Is(err, errs.ErrNoteNotFound) {
			return true
		}
	}
	return false
}
