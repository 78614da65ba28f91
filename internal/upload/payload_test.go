package upload

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckify/deckify-uploader/internal/model"
)

type part struct {
	field    string
	filename string
	content  string
}

func readParts(t *testing.T, p *Payload) []part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(p.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(strings.NewReader(string(p.Body)), params["boundary"])
	var parts []part
	for {
		pt, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(pt)
		require.NoError(t, err)
		parts = append(parts, part{field: pt.FormName(), filename: pt.FileName(), content: string(data)})
	}
	return parts
}

func TestBuildPayload(t *testing.T) {
	sel := model.Selection{
		model.NewMemorySelection("slide-1.png", []byte{0x89, 'P', 'N', 'G'}),
		model.NewMemorySelection("scan 2.jpg", []byte("jpeg")),
		model.NewMemorySelection("slide-1.png", []byte("dup name")),
	}

	p, err := BuildPayload(sel)
	require.NoError(t, err)

	parts := readParts(t, p)
	require.Len(t, parts, 3)
	assert.Equal(t, part{FieldName, "slide-1.png", "\x89PNG"}, parts[0])
	assert.Equal(t, part{FieldName, "scan 2.jpg", "jpeg"}, parts[1])
	assert.Equal(t, part{FieldName, "slide-1.png", "dup name"}, parts[2])
}

func TestBuildPayloadEmpty(t *testing.T) {
	p, err := BuildPayload(nil)
	require.NoError(t, err)
	assert.Empty(t, readParts(t, p))
}

func TestBuildPayloadOpenError(t *testing.T) {
	boom := errors.New("permission denied")
	sel := model.Selection{
		model.NewReaderSelection("locked.png", -1, func() (io.ReadCloser, error) { return nil, boom }),
	}

	_, err := BuildPayload(sel)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "locked.png")
}
