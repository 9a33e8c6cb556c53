package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

func readAttachment(fh *multipart.FileHeader) (domain.Attachment, error) {
	if fh.Size > maxUploadBytes {
		return domain.Attachment{}, fmt.Errorf("%w: %s is larger than %d MB", domain.ErrValidation, fh.Filename, maxUploadBytes>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return domain.Attachment{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return domain.Attachment{}, err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return domain.Attachment{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}

// formFile reads a required single-file field.
func formFile(c *gin.Context, field string) (domain.Attachment, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return readAttachment(fh)
}

// formFiles reads a repeated file field; media_files and media_files[] are
// both accepted. A body that is not multipart carries no files.
func formFiles(c *gin.Context, field string) ([]domain.Attachment, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	headers := append(form.File[field], form.File[field+"[]"]...)
	files := make([]domain.Attachment, 0, len(headers))
	for _, fh := range headers {
		a, err := readAttachment(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, a)
	}
	return files, nil
}
