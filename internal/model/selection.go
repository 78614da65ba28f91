package model

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// SelectedFile is one file picked by the user. The content is opaque and is
// only read when the upload payload is built.
type SelectedFile struct {
	Name string
	Size int64 // -1 if unknown
	open func() (io.ReadCloser, error)
}

// NewFileSelection creates a SelectedFile backed by a file on disk.
// The name sent to the server is the base name of the path.
func NewFileSelection(path string) (SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SelectedFile{}, err
	}
	return SelectedFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// NewMemorySelection creates a SelectedFile from an in-memory buffer
func NewMemorySelection(name string, content []byte) SelectedFile {
	return SelectedFile{
		Name: name,
		Size: int64(len(content)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// NewReaderSelection creates a SelectedFile from an opener, e.g. a URI
// returned by a platform file dialog.
func NewReaderSelection(name string, size int64, open func() (io.ReadCloser, error)) SelectedFile {
	return SelectedFile{Name: name, Size: size, open: open}
}

// Open returns a fresh reader over the file content
func (f SelectedFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, os.ErrInvalid
	}
	return f.open()
}

// Selection is the ordered list of files chosen for one submission
type Selection []SelectedFile

// Len returns the number of selected files
func (s Selection) Len() int {
	return len(s)
}

// Names returns the file names in selection order
func (s Selection) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}

// TotalSize returns the sum of known file sizes, or -1 if any size is unknown
func (s Selection) TotalSize() int64 {
	var total int64
	for _, f := range s {
		if f.Size < 0 {
			return -1
		}
		total += f.Size
	}
	return total
}
