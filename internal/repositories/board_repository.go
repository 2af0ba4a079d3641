package repositories

import (
	"errors"

	"boardSync/internal/errs"
	"boardSync/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{
		db: db,
	}
}

func (br *BoardRepository) CreateBoard(board *models.Board) (*models.Board, error) {
	if err := br.db.Create(board).Error; err != nil {
		return nil, err
	}
	return board, nil
}

func (br *BoardRepository) GetBoardByID(boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	if err := br.db.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// GetUserBoards returns boards the user owns or is a member of, most
// recently updated first, each with its note count.
func (br *BoardRepository) GetUserBoards(userID uuid.UUID) ([]models.BoardSummary, error) {
	var boards []models.Board
	err := br.db.
		Where("owner_id = ? OR id IN (SELECT board_id FROM board_members WHERE user_id = ?)", userID, userID).
		Order("updated_at DESC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]models.BoardSummary, 0, len(boards))
	for _, board := range boards {
		var count int64
		if err := br.db.Model(&models.Note{}).Where("board_id = ?", board.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, models.BoardSummary{Board: board, NoteCount: count})
	}
	return summaries, nil
}

// DeleteBoard removes the board with its notes and member rows in one
// transaction.
func (br *BoardRepository) DeleteBoard(boardID uuid.UUID) error {
	return br.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, "id = ?", boardID).Error
	})
}

func (br *BoardRepository) IsBoardMember(boardID, userID uuid.UUID) (bool, error) {
	var count int64
	err := br.db.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *BoardRepository) AddMember(member *models.BoardMember) (*models.BoardMember, error) {
	if err := br.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (br *BoardRepository) RemoveMember(boardID, userID uuid.UUID) error {
	result := br.db.Where("board_id = ? AND user_id = ?", boardID, userID).Delete(&models.BoardMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrMemberNotFound
	}
	return nil
}

func (br *BoardRepository) GetBoardMembers(boardID uuid.UUID) ([]models.BoardMember, error) {
	var members []models.BoardMember
	err := br.db.
		Preload("User").
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
