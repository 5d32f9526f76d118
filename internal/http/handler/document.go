package handler

import (
	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/http/middleware"
	"facilityassist/internal/service"
)

// ListDocuments returns one page of active documents, newest first.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, size, err := pageParams(c)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, err.Error())
		}

		res, err := svc.List(c.UserContext(), page, size)
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "documents retrieved", res)
	}
}

// ListAllDocuments returns every active document as a single page.
func ListAllDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListAll(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "documents retrieved", res)
	}
}

// GetDocument returns full metadata for a single active document.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "invalid id format")
		}

		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "document retrieved", doc)
	}
}

// DownloadDocument streams the stored file bytes back to the caller with
// the original file name as attachment disposition. Downloads bypass the
// envelope: the body is the file itself.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "invalid id format")
		}

		dl, err := svc.Download(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}

		c.Set(fiber.HeaderContentType, dl.FileType)
		c.Attachment(dl.FileName)
		return c.Send(dl.Content)
	}
}

// UploadDocument accepts a multipart form with a required file part plus
// title and optional description fields.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		req := service.UploadDocumentRequest{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Reader:      f,
		}

		doc, err := svc.Upload(c.UserContext(), middleware.PrincipalFrom(c), req)
		if err != nil {
			return serviceError(c, err)
		}
		return respond(c, fiber.StatusCreated, "document uploaded", doc)
	}
}
