package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/usecase"
	"github.com/govindp47/smarthire/internal/util"
	"github.com/govindp47/smarthire/internal/worker"
	"gorm.io/gorm"
)

type ScoringHandler struct {
	uc *usecase.ScoringUsecase
}

func NewScoringHandler(uc *usecase.ScoringUsecase) *ScoringHandler {
	return &ScoringHandler{uc: uc}
}

func (h *ScoringHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/resumes/:id/score", h.TriggerScore)
	app.Post("/jobs/:id/score-all", h.TriggerScoreAll)
	app.Get("/jobs/:id/leaderboard", h.Leaderboard)
}

func (h *ScoringHandler) TriggerScore(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume id",
		}, err)
	}

	result, err := h.uc.TriggerScore(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotParsed):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "resume must be parsed before scoring",
			}, err)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "resume not found",
			})
		case errors.Is(err, worker.ErrQueueFull):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusServiceUnavailable,
				Message: "processing queue is full, try again later",
			}, err)
		default:
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "cannot trigger scoring",
			}, err)
		}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: result.Message,
		Data:    result,
	})
}

func (h *ScoringHandler) TriggerScoreAll(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	result, err := h.uc.TriggerScoreAll(c.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "job not found",
			})
		case errors.Is(err, worker.ErrQueueFull):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusServiceUnavailable,
				Message: "processing queue is full, try again later",
			}, err)
		default:
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "cannot trigger batch scoring",
			}, err)
		}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: result.Message,
		Data:    result,
	})
}

func (h *ScoringHandler) Leaderboard(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}
	limit := c.QueryInt("limit", 20)

	entries, err := h.uc.Leaderboard(c.Context(), jobID, limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "job not found",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot get leaderboard",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get leaderboard",
		Data:    entries,
	})
}
