package upload

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/deckify/deckify-uploader/internal/artifact"
)

// newUploadServer serves handler on POST /upload only
func newUploadServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc(UploadPath, handler).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// uploadedFile is one "files" part as seen by the server
type uploadedFile struct {
	Name    string
	Content string
}

type fakeView struct {
	mu               sync.Mutex
	events           []string
	indicatorVisible bool
	downloadVisible  bool
	submitEnabled    bool
	link             string
	notifications    []string
	indicatorShown   int
}

func newFakeView() *fakeView {
	return &fakeView{submitEnabled: true}
}

func (v *fakeView) record(event string) {
	v.events = append(v.events, event)
}

func (v *fakeView) ShowIndicator() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("show-indicator")
	v.indicatorVisible = true
	v.indicatorShown++
}

func (v *fakeView) HideIndicator() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("hide-indicator")
	v.indicatorVisible = false
}

func (v *fakeView) RevealDownload(a artifact.Artifact) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("reveal-download")
	v.downloadVisible = true
	v.link = a.URL
}

func (v *fakeView) HideDownload() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("hide-download")
	v.downloadVisible = false
}

func (v *fakeView) Notify(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("notify")
	v.notifications = append(v.notifications, message)
}

func (v *fakeView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if enabled {
		v.record("enable-submit")
	} else {
		v.record("disable-submit")
	}
	v.submitEnabled = enabled
}

func (v *fakeView) snapshot() fakeView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fakeView{
		events:           append([]string(nil), v.events...),
		indicatorVisible: v.indicatorVisible,
		downloadVisible:  v.downloadVisible,
		submitEnabled:    v.submitEnabled,
		link:             v.link,
		notifications:    append([]string(nil), v.notifications...),
		indicatorShown:   v.indicatorShown,
	}
}

// recorder captures what the mocked endpoint received
type recorder struct {
	mu           sync.Mutex
	hits         int
	contentTypes []string
	uploads      [][]uploadedFile
}

func (rec *recorder) record(r *http.Request) error {
	var files []uploadedFile
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return err
	}
	for _, fh := range r.MultipartForm.File[FieldName] {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return err
		}
		files = append(files, uploadedFile{Name: fh.Filename, Content: string(data)})
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.hits++
	rec.contentTypes = append(rec.contentTypes, r.Header.Get("Content-Type"))
	rec.uploads = append(rec.uploads, files)
	return nil
}

func (rec *recorder) Hits() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.hits
}

func (rec *recorder) Upload(i int) []uploadedFile {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.uploads[i]
}

func (rec *recorder) ContentType(i int) string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.contentTypes[i]
}

// serveArtifact returns a handler that records the request and answers with body
func serveArtifact(t *testing.T, rec *recorder, filename string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rec.record(r); err != nil {
			t.Errorf("reading upload: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if filename != "" {
			w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(body)
	}
}
