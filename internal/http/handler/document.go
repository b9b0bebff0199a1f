package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/model"
	"docvault/internal/service"
)

// DocumentHandler serves the document CRUD and download surface.
type DocumentHandler struct {
	docs service.DocumentService
}

// NewDocumentHandler constructs a new DocumentHandler.
func NewDocumentHandler(docs service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// List returns one page of documents under the requested filter.
//
// Query parameters: page, limit, search, category, type, origin.
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid page")
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid limit")
	}

	res, err := h.docs.List(c.UserContext(), service.ListQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: model.Category(c.Query("category")),
		Type:     model.DocType(c.Query("type")),
		Origin:   model.Origin(c.Query("origin")),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(res)
}

// Get returns a document's metadata, or streams its file when the download
// query flag is set.
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	if c.QueryBool("download") {
		return h.download(c, id)
	}

	doc, err := h.docs.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(doc)
}

// download streams the blob as an attachment named after the document title.
func (h *DocumentHandler) download(c *fiber.Ctx, id string) error {
	dl, err := h.docs.Download(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	name := strings.ReplaceAll(dl.Document.Title, `"`, "")
	c.Set(fiber.HeaderContentType, service.PDFContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, name))
	// fasthttp closes the stream once the body is sent.
	return c.SendStream(dl.Content, int(dl.Size))
}

// Upload creates a document from a multipart form.
//
// Form fields: file (required), title (required), category (required),
// type, origin, file_number.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "cannot open uploaded file")
	}
	defer f.Close()

	doc, err := h.docs.Upload(c.UserContext(), service.UploadInput{
		Reader:           f,
		OriginalFilename: fh.Filename,
		ContentType:      fh.Header.Get(fiber.HeaderContentType),
		Size:             fh.Size,
		Title:            c.FormValue("title"),
		FileNumber:       c.FormValue("file_number"),
		Category:         model.Category(c.FormValue("category")),
		Type:             model.DocType(c.FormValue("type")),
		Origin:           model.Origin(c.FormValue("origin")),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

type updateDocumentRequest struct {
	Title      *string `json:"title"`
	FileNumber *string `json:"file_number"`
	Category   *string `json:"category"`
	Type       *string `json:"type"`
	Origin     *string `json:"origin"`
}

// Update applies a partial metadata update. The stored file is immutable.
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	var req updateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request body")
	}

	in := service.UpdateInput{
		Title:      req.Title,
		FileNumber: req.FileNumber,
	}
	if req.Category != nil {
		cat := model.Category(*req.Category)
		in.Category = &cat
	}
	if req.Type != nil {
		typ := model.DocType(*req.Type)
		in.Type = &typ
	}
	if req.Origin != nil {
		org := model.Origin(*req.Origin)
		in.Origin = &org
	}

	doc, err := h.docs.Update(c.UserContext(), id, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(doc)
}

// Delete removes a document and its stored file.
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	if err := h.docs.Delete(c.UserContext(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
