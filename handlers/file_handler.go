package handlers

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

const (
	maxUploadBytes = 5 << 20
	thumbnailWidth = 256
)

type FileHandler struct {
	userRepo *repository.UserRepository
}

func NewFileHandler(userRepo *repository.UserRepository) *FileHandler {
	return &FileHandler{
		userRepo: userRepo,
	}
}

// UploadAvatar godoc
// @Summary Upload profile photo
// @Description Accepts a JPEG or PNG, stores the original and a resized thumbnail in GridFS, and points the user's image at the thumbnail
// @Tags File
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (max 5 MB)"
// @Success 200 {object} object{message=string,file_id=string,thumbnail_id=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /files/avatar [post]
func (h *FileHandler) UploadAvatar(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file exceeds 5 MB"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open upload"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read upload"})
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is not a valid JPEG or PNG image"})
	}

	thumb := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode thumbnail"})
	}

	bucket, err := config.GetGridFSBucket()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to access file storage"})
	}

	fileID, err := bucket.UploadFromStream(fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}
	thumbID, err := bucket.UploadFromStream("thumb_"+fileHeader.Filename, bytes.NewReader(thumbBuf.Bytes()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store thumbnail"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.userRepo.UpdateUser(ctx, claims.UserID, bson.M{"image": "/api/v1/files/" + thumbID.Hex()}); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID.Hex()).Msg("failed to link avatar to user")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "avatar uploaded",
		"file_id":      fileID.Hex(),
		"thumbnail_id": thumbID.Hex(),
	})
}

// GetFile godoc
// @Summary Serve a stored file
// @Tags File
// @Produce octet-stream
// @Param id path string true "File ObjectID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /files/{id} [get]
func (h *FileHandler) GetFile(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	bucket, err := config.GetGridFSBucket()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to access file storage"})
	}

	stream, err := bucket.OpenDownloadStream(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}
	defer stream.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stream); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(buf.Bytes()))
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+stream.GetFile().Name+`"`)
	return c.Send(buf.Bytes())
}
