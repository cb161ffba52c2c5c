package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/pdftext/format"
	"github.com/tsawler/pdftext/validate"
)

// File is a candidate document: a name, a declared MIME type, a declared
// size and the bytes behind them.
type File struct {
	Name   string
	Type   string // declared MIME type, e.g. "application/pdf"
	Size   int64  // declared size in bytes
	Reader io.Reader
}

// FileFromBytes wraps data held in memory.
func FileFromBytes(name, mimeType string, data []byte) *File {
	return &File{
		Name:   name,
		Type:   mimeType,
		Size:   int64(len(data)),
		Reader: bytes.NewReader(data),
	}
}

// FileFromPath opens a file on disk. The MIME type comes from the file
// extension, falling back to the magic bytes when the extension is not
// recognized. The file is closed once its bytes have been read by an
// extraction, or by Close.
func FileFromPath(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	f := format.Detect(path)
	if f == format.Unknown {
		head := make([]byte, 1024)
		n, err := io.ReadFull(fh, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			fh.Close()
			return nil, err
		}
		f = format.DetectFromMagic(head[:n])
		if _, err := fh.Seek(0, io.SeekStart); err != nil {
			fh.Close()
			return nil, err
		}
	}

	return &File{
		Name:   filepath.Base(path),
		Type:   f.MIMEType(),
		Size:   info.Size(),
		Reader: fh,
	}, nil
}

// Close closes the underlying reader if it is an io.Closer. It is safe to
// call Close more than once.
func (f *File) Close() error {
	if f == nil || f.Reader == nil {
		return nil
	}
	c, ok := f.Reader.(io.Closer)
	if !ok {
		return nil
	}
	f.Reader = nil
	return c.Close()
}

// info returns the descriptor checked by the validation gate; nil for a
// nil File.
func (f *File) info() *validate.FileInfo {
	if f == nil {
		return nil
	}
	return &validate.FileInfo{Name: f.Name, Type: f.Type, Size: f.Size}
}

// Validate runs the validation gate on f: it must exist, be declared as a
// PDF, be at most 50MB and not be empty. The returned error, if any, is a
// *validate.Error whose message is the violated rule.
func Validate(f *File) error {
	return validate.File(f.info())
}

// readAll reads the file's bytes, never more than the size limit, and
// closes the reader. The declared size is not trusted.
func (f *File) readAll() ([]byte, error) {
	if f.Reader == nil {
		return nil, &validate.Error{File: f.Name, Err: validate.ErrEmpty}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f.Reader, validate.MaxFileSize+1))
	if err != nil {
		return nil, &DocumentLoadError{File: f.Name, Err: fmt.Errorf("read: %w", err)}
	}
	if len(data) > validate.MaxFileSize {
		return nil, &validate.Error{File: f.Name, Err: validate.ErrTooLarge}
	}
	if len(data) == 0 {
		return nil, &validate.Error{File: f.Name, Err: validate.ErrEmpty}
	}
	return data, nil
}
