package baserow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
)

// Thumbnail is one rendered preview of an uploaded image.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
}

// Thumbnails groups the preview sizes Baserow generates for images.
type Thumbnails struct {
	Tiny  Thumbnail `json:"tiny"`
	Small Thumbnail `json:"small"`
}

// File describes an uploaded user file as stored by Baserow. The
// returned value (not the original upload) is what gets attached to
// file-typed fields.
type File struct {
	URL         string      `json:"url"`
	Thumbnails  *Thumbnails `json:"thumbnails"`
	Name        string      `json:"name"`
	Size        int64       `json:"size"`
	MimeType    string      `json:"mime_type"`
	IsImage     bool        `json:"is_image"`
	ImageWidth  *int        `json:"image_width"`
	ImageHeight *int        `json:"image_height"`
	UploadedAt  string      `json:"uploaded_at"`
}

// UploadFile uploads the contents of r as filename.
// POST /api/user-files/upload-file/
//
// The MIME type is guessed from the filename extension, falling back
// to application/octet-stream.
func (c *Baserow) UploadFile(ctx context.Context, r io.Reader, filename string) (*File, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentTypeFor(filename))
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/user-files/upload-file/", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(&buf)
	req.ContentLength = int64(buf.Len())
	req.Header.Set("Content-Type", form.FormDataContentType())

	var file File
	if err := c.doJSON(req, &file); err != nil {
		return nil, err
	}
	c.logger.Debug("file uploaded", "name", file.Name, "size", file.Size)
	return &file, nil
}

// UploadFileViaURL asks the server to download and store the file at
// fileURL. POST /api/user-files/upload-via-url/
func (c *Baserow) UploadFileViaURL(ctx context.Context, fileURL string) (*File, error) {
	parsed, err := url.ParseRequestURI(fileURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileURL, fileURL)
	}

	body := map[string]string{"url": parsed.String()}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/user-files/upload-via-url/", nil, body)
	if err != nil {
		return nil, err
	}

	var file File
	if err := c.doJSON(req, &file); err != nil {
		return nil, err
	}
	c.logger.Debug("file uploaded via url", "name", file.Name, "source", parsed.String())
	return &file, nil
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
