// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"io/fs"
	"sync"
	"text/template"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	path string

	openOnce sync.Once
	openErr  error
	fs       fs.FS
	file     io.ReadCloser
}

// NewFileReader configures a FileReader.
func NewFileReader(fs fs.FS, path string) *FileReader {
	return &FileReader{
		path: path,
		fs:   fs,
	}
}

// Read implements the Read interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}

// FileSource is a Source backed by a file whose format is
// implied by its extension.
type FileSource struct {
	fs    fs.FS
	path  string
	funcs template.FuncMap
}

// FileOption configures a [FileSource].
type FileOption func(*FileSource)

// TemplateFuncs renders the file as a text/template using funcs
// before it is decoded.
func TemplateFuncs(funcs template.FuncMap) FileOption {
	return func(fs *FileSource) {
		fs.funcs = funcs
	}
}

// File returns a Source which decodes the file at path within fsys.
func File(fsys fs.FS, path string, opts ...FileOption) FileSource {
	src := FileSource{
		fs:   fsys,
		path: path,
	}
	for _, opt := range opts {
		opt(&src)
	}
	return src
}

// Apply implements the Source interface.
func (src FileSource) Apply(store Store) error {
	f, err := FormatOf(src.path)
	if err != nil {
		return err
	}

	var r io.Reader = NewFileReader(src.fs, src.path)
	if src.funcs != nil {
		opts := make([]RenderTextTemplateOption, 0, len(src.funcs))
		for name, fn := range src.funcs {
			opts = append(opts, TemplateFunc(name, fn))
		}
		r = RenderTextTemplate(r, opts...)
	}

	dec, err := f.Decode(r)
	if err != nil {
		return err
	}
	return dec.Apply(store)
}
