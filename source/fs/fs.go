// Package fs reads images for batch recognition from an [fs.FS] tree.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/opengs/tesswrap/source"
)

type FS struct {
	fs         fs.FS
	root       string
	uuid       string
	skipHidden bool
}

type Option func(*FS)

// Skips files and folders whose name starts with a dot
func WithSkipHidden() Option {
	return func(f *FS) {
		f.skipHidden = true
	}
}

// Source over the file or folder at root. Folders are walked recursively in lexical order.
func New(fsys fs.FS, root string, uuid string, opts ...Option) *FS {
	f := &FS{
		fs:   fsys,
		root: root,
		uuid: uuid,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FS) UUID() string {
	return f.uuid
}

func (f *FS) Open() (source.Iterator, error) {
	if _, err := fs.Stat(f.fs, f.root); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open %q", f.root), err)
	}
	return &fsIterator{
		fs:         f.fs,
		walker:     newWalker(f.fs, f.root),
		skipHidden: f.skipHidden,
	}, nil
}

func (f *FS) NotifyRecognitionStarted(ctx context.Context, event source.RecognitionStartedEvent) error {
	return nil
}
func (f *FS) NotifyRecognitionDone(ctx context.Context, event source.RecognitionDoneEvent) error {
	return nil
}

type fsIterator struct {
	fs         fs.FS
	walker     *walker
	skipHidden bool
	locker     sync.Mutex
}

func hidden(p string) bool {
	name := path.Base(p)
	return name != "." && strings.HasPrefix(name, ".")
}

func (i *fsIterator) Next(ctx context.Context) (source.FileHandler, error) {
	i.locker.Lock()
	defer i.locker.Unlock()

	for i.walker.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i.walker.Err() != nil {
			return nil, i.walker.Err()
		}

		entry := i.walker.Entry()
		if i.skipHidden && hidden(i.walker.Path()) {
			if entry.IsDir() {
				i.walker.SkipDir()
			}
			continue
		}
		if entry.IsDir() {
			continue
		}

		fileInfo, err := entry.Info()
		if err != nil {
			return nil, errors.Join(errors.New("error while reading file info"), err)
		}

		etag := fmt.Sprintf("%s_%d", fileInfo.ModTime().UTC().Format("20060102T150405.000000000"), fileInfo.Size())
		return &fsFileHandler{
			fs:   i.fs,
			etag: etag,
			path: i.walker.Path(),
		}, nil
	}

	if i.walker.Err() != nil {
		return nil, i.walker.Err()
	}
	return nil, io.EOF
}

func (i *fsIterator) Close() error {
	return nil
}

type fsFileHandler struct {
	fs   fs.FS
	fp   fs.File
	path string
	etag string
}

func (h *fsFileHandler) Etag() string {
	return h.etag
}

func (h *fsFileHandler) Path() string {
	return h.path
}

func (h *fsFileHandler) Close() error {
	if h.fp != nil {
		return h.fp.Close()
	}
	return nil
}

// Opens the file lazily on first read
func (h *fsFileHandler) Read(p []byte) (n int, err error) {
	if h.fp == nil {
		fp, err := h.fs.Open(h.path)
		if err != nil {
			return 0, errors.Join(errors.New("failed to open file for reading"), err)
		}
		h.fp = fp
	}
	return h.fp.Read(p)
}
