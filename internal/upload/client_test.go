package upload

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckify/deckify-uploader/internal/model"
)

func TestResolveUploadURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
		wantErr  bool
	}{
		{"http://localhost:5000", "http://localhost:5000/upload", false},
		{"http://localhost:5000/", "http://localhost:5000/upload", false},
		{"https://deckify.example.com/app/index.html", "https://deckify.example.com/upload", false},
		{"  http://10.0.0.2:8080  ", "http://10.0.0.2:8080/upload", false},
		{"", "", true},
		{"ftp://files.example.com", "", true},
		{"http://", "", true},
		{"localhost:5000", "", true},
	}

	for _, tt := range tests {
		got, err := ResolveUploadURL(tt.endpoint)
		if tt.wantErr {
			assert.Error(t, err, tt.endpoint)
			continue
		}
		require.NoError(t, err, tt.endpoint)
		assert.Equal(t, tt.want, got, tt.endpoint)
	}
}

func TestNewClientInvalidEndpoint(t *testing.T) {
	c, err := NewClient(Config{Endpoint: "not a url"})
	require.Error(t, err)
	require.Nil(t, c)
}

func TestClientUploadSuccess(t *testing.T) {
	rec := &recorder{}
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := rec.record(r); err != nil {
			t.Errorf("reading upload: %v", err)
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
		w.Header().Set("Content-Disposition", `attachment; filename=output_1234.pptx`)
		_, _ = w.Write([]byte("PK\x03\x04deck"))
	})

	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+UploadPath, c.URL())

	resp, err := c.Upload(context.Background(), model.Selection{
		model.NewMemorySelection("a.png", []byte("A")),
		model.NewMemorySelection("b.png", []byte("B")),
	})
	require.NoError(t, err)

	require.Equal(t, 1, rec.Hits())
	assert.True(t, strings.HasPrefix(rec.ContentType(0), "multipart/form-data; boundary="))
	assert.Equal(t, []uploadedFile{{"a.png", "A"}, {"b.png", "B"}}, rec.Upload(0))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "output_1234.pptx", resp.Filename)
	assert.Equal(t, "PK\x03\x04deck", string(resp.Body))
	assert.Contains(t, resp.ContentType, "presentationml")
}

func TestClientUploadWrongMethodRouted(t *testing.T) {
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {})

	resp, err := http.Get(srv.URL + UploadPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestClientUploadAnySuccessStatus(t *testing.T) {
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("blob"))
	})

	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	resp, err := c.Upload(context.Background(), model.Selection{model.NewMemorySelection("a.png", nil)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, DefaultArtifactName, resp.Filename)
}

func TestClientUploadStatusError(t *testing.T) {
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Invalid file type: notes.txt. Only images are allowed."}`))
	})

	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	resp, err := c.Upload(context.Background(), model.Selection{model.NewMemorySelection("notes.txt", []byte("x"))})
	require.Nil(t, resp)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "Invalid file type: notes.txt. Only images are allowed.", statusErr.Message)
	assert.Equal(t, "upload failed with status: 400", err.Error())
}

func TestClientUploadTimeout(t *testing.T) {
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	c, err := NewClient(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), model.Selection{model.NewMemorySelection("a.png", nil)})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestClientUploadInactivityTimeout(t *testing.T) {
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	c, err := NewClient(Config{Endpoint: srv.URL, InactivityTimeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), model.Selection{model.NewMemorySelection("a.png", nil)})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestClientUploadCanceled(t *testing.T) {
	arrived := make(chan struct{})
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-arrived
		cancel()
	}()

	_, err = c.Upload(ctx, model.Selection{model.NewMemorySelection("a.png", nil)})
	require.ErrorIs(t, err, ErrCanceled)
}

func TestClientUploadNetworkFailure(t *testing.T) {
	srv := newUploadServer(t, func(w http.ResponseWriter, r *http.Request) {})
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{Endpoint: url})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), model.Selection{model.NewMemorySelection("a.png", nil)})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.False(t, errors.Is(err, ErrCanceled))

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestAttachmentName(t *testing.T) {
	tests := map[string]string{
		"":                                    DefaultArtifactName,
		"inline":                              DefaultArtifactName,
		"attachment; filename=deck.pptx":      "deck.pptx",
		`attachment; filename="my deck.pptx"`: "my deck.pptx",
		"attachment; filename*=UTF-8''%D0%BF%D1%80%D0%B5%D0%B7.pptx": "през.pptx",
	}
	for header, want := range tests {
		assert.Equal(t, want, attachmentName(header), header)
	}
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "No files uploaded.", serverMessage([]byte(`{"error": "No files uploaded."}`)))
	assert.Equal(t, "Internal Server Error", serverMessage([]byte("Internal Server Error\n")))
	assert.Equal(t, "", serverMessage(nil))
}
