package media

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/services/storage"
	"github.com/collegehub/cms-api/utils/pdfvalidation"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

const maxUploadSize = 50 * 1024 * 1024

var mediaTypeByExtension = map[string]string{
	".jpg":  model.MediaTypeImage,
	".jpeg": model.MediaTypeImage,
	".png":  model.MediaTypeImage,
	".gif":  model.MediaTypeImage,
	".webp": model.MediaTypeImage,
	".svg":  model.MediaTypeImage,
	".mp4":  model.MediaTypeVideo,
	".webm": model.MediaTypeVideo,
	".pdf":  model.MediaTypeDocument,
}

// MediaHandler handles the media library
type MediaHandler struct {
	db        *gorm.DB
	store     storage.Storage
	validator *validation.Validator
}

// NewMediaHandler creates a new media handler. store is the object-store
// backend, or the local backend when no object store is configured.
func NewMediaHandler(db *gorm.DB, store storage.Storage) *MediaHandler {
	return &MediaHandler{
		db:        db,
		store:     store,
		validator: validation.NewValidator(),
	}
}

// UpdateMediaRequest represents the request body for media metadata
type UpdateMediaRequest struct {
	Title   string `json:"title" validate:"omitempty,max=255"`
	AltText string `json:"alt_text" validate:"omitempty,max=255"`
}

// ListMedia handles GET /api/v1/media
func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "40"))

	query := h.db.Model(&model.MediaAsset{})
	if mediaType := c.Query("type"); mediaType != "" {
		query = query.Where("media_type = ?", mediaType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count media assets")
	}

	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var assets []model.MediaAsset
	if err := query.Order("id DESC").Limit(pagination.PerPage).Offset(offset).Find(&assets).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch media assets")
	}

	return response.Paginated(c, assets, pagination)
}

// Upload handles POST /api/v1/media. PDFs are validated against the
// brochure limits before they are stored.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Missing file")
	}
	if file.Size > maxUploadSize {
		return response.BadRequest(c, "File exceeds the 50MB upload limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mediaType, ok := mediaTypeByExtension[ext]
	if !ok {
		return response.BadRequest(c, "Unsupported file type")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	if mediaType == model.MediaTypeDocument {
		result, err := pdfvalidation.ValidatePDFBytes(data, pdfvalidation.BrochureLimits)
		if err != nil {
			return response.InternalServerError(c, "Failed to validate PDF")
		}
		if !result.Valid {
			return response.BadRequest(c, result.Error)
		}
	}

	key := storage.GenerateKey("media", file.Filename)
	url, err := h.store.Save(c.Context(), key, data, storage.ContentTypeFor(file.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store file")
	}

	asset := model.MediaAsset{
		FileURL:   url,
		Title:     c.FormValue("title", file.Filename),
		AltText:   c.FormValue("alt_text"),
		MediaType: mediaType,
		Meta: datatypes.JSONMap{
			"key":           key,
			"original_name": file.Filename,
			"size":          file.Size,
		},
	}
	if err := h.db.Create(&asset).Error; err != nil {
		return response.InternalServerError(c, "Failed to save media asset")
	}

	return response.Created(c, asset)
}

// UpdateMedia handles PUT /api/v1/media/:id
func (h *MediaHandler) UpdateMedia(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid media id")
	}

	var req UpdateMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var asset model.MediaAsset
	if err := h.db.First(&asset, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Media asset not found")
		}
		return response.InternalServerError(c, "Failed to fetch media asset")
	}

	if req.Title != "" {
		asset.Title = req.Title
	}
	if req.AltText != "" {
		asset.AltText = req.AltText
	}

	if err := h.db.Save(&asset).Error; err != nil {
		return response.InternalServerError(c, "Failed to update media asset")
	}

	return response.Success(c, asset)
}

// DeleteMedia handles DELETE /api/v1/media/:id, removing the stored
// object as well when its key is known.
func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid media id")
	}

	var asset model.MediaAsset
	if err := h.db.First(&asset, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Media asset not found")
		}
		return response.InternalServerError(c, "Failed to fetch media asset")
	}

	if key, ok := asset.Meta["key"].(string); ok && key != "" {
		// Best effort: the row goes away even if the object store refuses
		h.store.Delete(c.Context(), key)
	}

	if err := h.db.Delete(&asset).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete media asset")
	}

	return response.NoContent(c)
}
