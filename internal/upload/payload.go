package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/deckify/deckify-uploader/internal/model"
)

// FieldName is the form field every selected file is appended under
const FieldName = "files"

// Payload is a ready-to-send multipart/form-data body
type Payload struct {
	Body        []byte
	ContentType string
}

// BuildPayload appends each file, in selection order, as a "files" part that
// carries the original filename and content.
func BuildPayload(selection model.Selection) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, f := range selection {
		if err := appendFile(w, f); err != nil {
			return nil, fmt.Errorf("adding file %d (%s): %w", i, f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	return &Payload{
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	}, nil
}

func appendFile(w *multipart.Writer, f model.SelectedFile) error {
	part, err := w.CreateFormFile(FieldName, f.Name)
	if err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(part, rc)
	return err
}
