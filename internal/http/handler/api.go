package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"audiodrop/internal/http/middleware"
	"audiodrop/internal/service"
)

// ListAudio godoc
// @Summary List audio files, newest first
// @Tags audio
// @Produce json
// @Success 200 {object} service.AudioListResult
// @Failure 401 {object} errorPayload
// @Router /api/audio [get]
func ListAudio(svc service.AudioService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			logError(log, c, "list_audio_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "error fetching audio files")
		}
		return c.JSON(res)
	}
}

// LatestAudio godoc
// @Summary Most recently uploaded audio file
// @Tags audio
// @Produce json
// @Success 200 {object} model.AudioFile
// @Failure 404 {object} errorPayload
// @Router /api/audio/latest [get]
func LatestAudio(svc service.AudioService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := svc.Latest(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no audio available")
			}
			logError(log, c, "latest_audio_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "error fetching audio files")
		}
		return c.JSON(f)
	}
}

// UploadAudio godoc
// @Summary Upload one audio file (multipart field "file")
// @Tags audio
// @Accept mpfd
// @Produce json
// @Success 201 {object} model.AudioFile
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/audio [post]
func UploadAudio(svc service.AudioService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		rec, err := svc.Upload(c.UserContext(), middleware.SessionFromCtx(c), f, fh.Filename, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrUploadInProgress) {
				return writeError(c, fiber.StatusConflict, "UPLOAD_IN_PROGRESS", "an upload is already in progress")
			}
			logError(log, c, "upload_audio_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "error uploading file")
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// DeleteAudio godoc
// @Summary Delete an audio file record
// @Tags audio
// @Param id path string true "audio file id"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/audio/{id} [delete]
func DeleteAudio(svc service.AudioService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "audio file not found")
			}
			logError(log, c, "delete_audio_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "error deleting file")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func logError(log *zap.Logger, c *fiber.Ctx, event string, err error) {
	log.Error(event,
		zap.String("request_id", requestIDFromCtx(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
}
