package model

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestUploadTask_GetDisplayName(t *testing.T) {
	tests := []struct {
		artifact string
		files    []string
		expected string
	}{
		{"slides.pptx", []string{"a.png"}, "slides.pptx"},
		{"", []string{"a.png"}, "a.png"},
		{"", []string{"a.png", "b.png", "c.png"}, "a.png (+2)"},
		{"", nil, "upload-1"},
	}

	for _, test := range tests {
		task := &UploadTask{
			ID:           "upload-1",
			ArtifactName: test.artifact,
			FileNames:    test.files,
		}
		result := task.GetDisplayName()
		if result != test.expected {
			t.Errorf("GetDisplayName() with artifact='%s', files=%v = '%s', expected '%s'",
				test.artifact, test.files, result, test.expected)
		}
	}
}

func TestUploadTask_Duration(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	task := &UploadTask{StartedAt: start, FinishedAt: start.Add(3 * time.Second)}

	if d := task.Duration(); d != 3*time.Second {
		t.Errorf("Expected duration 3s, got %v", d)
	}

	empty := &UploadTask{}
	if d := empty.Duration(); d != 0 {
		t.Errorf("Expected zero duration for unstarted task, got %v", d)
	}
}

func TestNewFileSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	f, err := NewFileSelection(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if f.Name != "photo.jpg" {
		t.Errorf("Expected name 'photo.jpg', got '%s'", f.Name)
	}
	if f.Size != int64(len("jpeg-bytes")) {
		t.Errorf("Expected size %d, got %d", len("jpeg-bytes"), f.Size)
	}

	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Expected no error opening file, got %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "jpeg-bytes" {
		t.Errorf("Unexpected content: %q", data)
	}
}

func TestNewFileSelection_Missing(t *testing.T) {
	_, err := NewFileSelection(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestSelection(t *testing.T) {
	sel := Selection{
		NewMemorySelection("a.png", []byte("aa")),
		NewMemorySelection("b.png", []byte("bbb")),
	}

	if sel.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", sel.Len())
	}

	names := sel.Names()
	if len(names) != 2 || names[0] != "a.png" || names[1] != "b.png" {
		t.Errorf("Unexpected names: %v", names)
	}

	if sel.TotalSize() != 5 {
		t.Errorf("Expected total size 5, got %d", sel.TotalSize())
	}

	sel = append(sel, NewReaderSelection("c.png", -1, nil))
	if sel.TotalSize() != -1 {
		t.Errorf("Expected unknown total size, got %d", sel.TotalSize())
	}
}

func TestSelectedFile_OpenWithoutOpener(t *testing.T) {
	var f SelectedFile
	if _, err := f.Open(); err == nil {
		t.Error("Expected error opening zero SelectedFile")
	}
}
