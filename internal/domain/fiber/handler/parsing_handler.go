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

type ParsingHandler struct {
	uc *usecase.ParsingUsecase
}

func NewParsingHandler(uc *usecase.ParsingUsecase) *ParsingHandler {
	return &ParsingHandler{uc: uc}
}

func (h *ParsingHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/resumes/:id/parse", h.TriggerParse)
	app.Post("/jobs/:id/parse-all", h.TriggerParseAll)
}

func (h *ParsingHandler) TriggerParse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume id",
		}, err)
	}

	result, err := h.uc.TriggerParse(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAlreadyRunning):
			// Idempotent trigger, report the current state without error.
			return util.SuccessResponse(c, util.SuccessResponseFormat{
				Message: result.Message,
				Data:    result,
			})
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
				Message: "cannot trigger parsing",
			}, err)
		}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: result.Message,
		Data:    result,
	})
}

func (h *ParsingHandler) TriggerParseAll(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	result, err := h.uc.TriggerParseAll(c.Context(), jobID)
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
				Details: result,
			}, err)
		default:
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "cannot trigger batch parsing",
			}, err)
		}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: result.Message,
		Data:    result,
	})
}
