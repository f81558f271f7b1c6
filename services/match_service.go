package services

import (
	"errors"
	"log"

	"github.com/ngtkana/senseki-db/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// createMatchAttempts bounds the retry loop for match-order conflicts. Two
// concurrent creates in the same session can compute the same next order; the
// unique index rejects the loser and we recompute instead of failing the
// request.
const createMatchAttempts = 3

type MatchService struct {
	DB *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

func matchToResponse(m models.Match, names map[int]string) models.MatchResponse {
	return models.MatchResponse{
		ID:                    m.ID,
		SessionID:             m.SessionID,
		CharacterID:           m.CharacterID,
		OpponentCharacterID:   m.OpponentCharacterID,
		CharacterName:         names[m.CharacterID],
		OpponentCharacterName: names[m.OpponentCharacterID],
		Result:                m.Result,
		MatchOrder:            m.MatchOrder,
		Comment:               m.Comment,
	}
}

// nextMatchOrder computes the order for a new match: one past the session's
// current maximum, 1 for an empty session. Deletions are never compacted, so
// the value can skip over gaps.
func nextMatchOrder(tx *gorm.DB, sessionID int) (int, error) {
	var maxOrder int
	err := tx.Model(&models.Match{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(match_order), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// applyMatchPatch merges a field-level update into a match row. Nil fields
// are left alone; session id and match order are immutable.
func applyMatchPatch(m *models.Match, req models.UpdateMatchRequest) {
	if req.CharacterID != nil {
		m.CharacterID = *req.CharacterID
	}
	if req.OpponentCharacterID != nil {
		m.OpponentCharacterID = *req.OpponentCharacterID
	}
	if req.Result != nil {
		m.Result = *req.Result
	}
	if req.Comment != nil {
		m.Comment = req.Comment
	}
}

// CreateMatch records a match at the end of its session's ledger. Order
// allocation and insert run in one transaction; a duplicate-order conflict is
// retried with a recomputed order.
func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	var req models.CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if !req.Result.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "result must be 'win' or 'loss'"})
	}
	if req.CharacterID == 0 || req.OpponentCharacterID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "character_id and opponent_character_id are required"})
	}

	var match models.Match
	var err error
	for attempt := 1; attempt <= createMatchAttempts; attempt++ {
		match = models.Match{
			SessionID:           req.SessionID,
			CharacterID:         req.CharacterID,
			OpponentCharacterID: req.OpponentCharacterID,
			Result:              req.Result,
			Comment:             req.Comment,
		}
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			order, orderErr := nextMatchOrder(tx, req.SessionID)
			if orderErr != nil {
				return orderErr
			}
			match.MatchOrder = order
			return tx.Create(&match).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		log.Printf("⚠️ match_order conflict in session %d (attempt %d), recomputing", req.SessionID, attempt)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session or character not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create match"})
	}

	names, err := characterNames(s.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch characters"})
	}
	return c.Status(fiber.StatusCreated).JSON(matchToResponse(match, names))
}

// GetMatchesBySession returns a session's matches ordered by match_order.
func (s *MatchService) GetMatchesBySession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("session_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}

	var matches []models.Match
	if err := s.DB.Where("session_id = ?", sessionID).Order("match_order asc").Find(&matches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch matches"})
	}

	names, err := characterNames(s.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch characters"})
	}

	response := make([]models.MatchResponse, 0, len(matches))
	for _, match := range matches {
		response = append(response, matchToResponse(match, names))
	}
	return c.JSON(response)
}

// UpdateMatch applies a field-level patch and echoes the authoritative row.
func (s *MatchService) UpdateMatch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match id"})
	}

	var req models.UpdateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Result != nil && !req.Result.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "result must be 'win' or 'loss'"})
	}

	var match models.Match
	if err := s.DB.First(&match, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
	}

	applyMatchPatch(&match, req)
	if err := s.DB.Save(&match).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update match"})
	}

	names, err := characterNames(s.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch characters"})
	}
	return c.JSON(matchToResponse(match, names))
}

// DeleteMatch removes one match. Remaining matches keep their order values.
func (s *MatchService) DeleteMatch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match id"})
	}

	var match models.Match
	if err := s.DB.First(&match, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
	}

	if err := s.DB.Delete(&match).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete match"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
