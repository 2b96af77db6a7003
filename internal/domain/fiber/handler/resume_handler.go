package handler

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/response"
	"github.com/govindp47/smarthire/internal/usecase"
	"github.com/govindp47/smarthire/internal/util"
	"gorm.io/gorm"
)

const maxResumeSize = 5 * 1024 * 1024

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/jobs/:id/resumes", h.Upload)
	app.Get("/jobs/:id/resumes", h.ListByJob)
	app.Get("/resumes/:id", h.Get)
	app.Get("/resumes/:id/profile", h.GetProfile)
	app.Delete("/resumes/:id", h.Delete)
}

func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}
	if file.Size > maxResumeSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file size is too large (max 5MB)",
		})
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if ext != "pdf" && ext != "docx" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "unsupported file type, only pdf and docx are accepted",
		})
	}

	src, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot open uploaded file",
		}, err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}

	resume, err := h.uc.Upload(c.Context(), jobID, file.Filename, ext, data)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "job not found",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot upload resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success upload resume",
		Data:    resume,
	})
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume id",
		}, err)
	}

	resume, err := h.uc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "resume not found",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot get resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get resume",
		Data:    resume,
	})
}

func (h *ResumeHandler) GetProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume id",
		}, err)
	}

	profile, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "parsed profile not found",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot get parsed profile",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get parsed profile",
		Data:    profile,
	})
}

func (h *ResumeHandler) ListByJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	resumes, total, err := h.uc.ListByJob(c.Context(), jobID, page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot list resumes",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list resumes",
		Data:       resumes,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume id",
		}, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "resume not found",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot delete resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete resume",
	})
}
