package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	scoreService "github.com/OVECJOE/sos/internals/features/scoring/score/service"
	helper "github.com/OVECJOE/sos/internals/helpers"
)

type ScoreController struct {
	DB *gorm.DB
}

func NewScoreController(db *gorm.DB) *ScoreController {
	return &ScoreController{DB: db}
}

// POST /api/u/meetings/:id/penalize-no-shows
func (ctrl *ScoreController) PenalizeNoShows(c *fiber.Ctx) error {
	meetingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid meeting id")
	}

	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	result, err := scoreService.PenalizeNoShows(ctrl.DB, meetingID, callerID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "No-show sweep complete", result)
}

// POST /api/u/score/recalculate
func (ctrl *ScoreController) RecalculateMyScore(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	newScore, ok, err := scoreService.UpdateUserSocialScore(ctrl.DB, userID)
	if err != nil {
		log.Println("[ERROR] Failed to recalculate score:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to recalculate score")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonOK(c, "Score recalculated", fiber.Map{
		"social_score": newScore,
		"score_ratio":  scoreService.ScoreRatio(newScore),
	})
}
