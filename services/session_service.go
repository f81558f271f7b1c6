package services

import (
	"errors"
	"time"

	"github.com/ngtkana/senseki-db/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

func sessionToResponse(s models.Session, stats models.SessionStats) models.SessionResponse {
	return models.SessionResponse{
		ID:           s.ID,
		SessionDate:  s.SessionDate.Format(models.DateLayout),
		Title:        s.Title,
		Notes:        s.Notes,
		StartGSP:     s.StartGSP,
		EndGSP:       s.EndGSP,
		SessionStats: stats,
	}
}

// GetAllSessions returns every session, newest first, each with its derived
// win/loss stats.
func (s *SessionService) GetAllSessions(c *fiber.Ctx) error {
	var sessions []models.Session
	if err := s.DB.Preload("Matches").Order("session_date desc, id desc").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch sessions"})
	}

	response := make([]models.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, sessionToResponse(session, models.TallyMatches(session.Matches)))
	}
	return c.JSON(response)
}

// GetSessionByID returns a single session with its stats. Same tally as the
// list view — one implementation, two callers.
func (s *SessionService) GetSessionByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}

	var session models.Session
	if err := s.DB.Preload("Matches").First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch session"})
	}

	return c.JSON(sessionToResponse(session, models.TallyMatches(session.Matches)))
}

// CreateSession creates a new session from a date plus optional title, notes
// and GSP bookends.
func (s *SessionService) CreateSession(c *fiber.Ctx) error {
	var req models.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	sessionDate, err := time.Parse(models.DateLayout, req.SessionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_date must be YYYY-MM-DD"})
	}

	session := models.Session{
		SessionDate: sessionDate,
		Title:       req.Title,
		Notes:       req.Notes,
		StartGSP:    req.StartGSP,
		EndGSP:      req.EndGSP,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(sessionToResponse(session, models.SessionStats{}))
}

// UpdateSession applies a partial update; omitted fields stay untouched.
func (s *SessionService) UpdateSession(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}

	var req models.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var session models.Session
	if err := s.DB.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch session"})
	}

	if req.SessionDate != nil {
		sessionDate, err := time.Parse(models.DateLayout, *req.SessionDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_date must be YYYY-MM-DD"})
		}
		session.SessionDate = sessionDate
	}
	if req.Title != nil {
		session.Title = req.Title
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if req.StartGSP != nil {
		session.StartGSP = req.StartGSP
	}
	if req.EndGSP != nil {
		session.EndGSP = req.EndGSP
	}

	if err := s.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update session"})
	}

	// Echo the session with freshly derived stats
	var matches []models.Match
	if err := s.DB.Where("session_id = ?", session.ID).Find(&matches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch session matches"})
	}
	return c.JSON(sessionToResponse(session, models.TallyMatches(matches)))
}

// DeleteSession removes a session; matches and GSP records go with it via
// the cascade constraints.
func (s *SessionService) DeleteSession(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}

	var session models.Session
	if err := s.DB.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch session"})
	}

	if err := s.DB.Delete(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete session"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
