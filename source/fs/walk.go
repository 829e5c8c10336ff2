package fs

import (
	"io/fs"
	"path"
)

// Depth first walker that can be resumed between calls, unlike [fs.WalkDir]
type walker struct {
	fsys    fs.FS
	cur     visit
	stack   []visit
	descend bool
}

type visit struct {
	path  string
	entry fs.DirEntry
	err   error
}

func newWalker(fsys fs.FS, root string) *walker {
	info, err := fs.Stat(fsys, root)
	var entry fs.DirEntry
	if err == nil {
		entry = fs.FileInfoToDirEntry(info)
	}
	return &walker{
		fsys:  fsys,
		stack: []visit{{path: root, entry: entry, err: err}},
	}
}

func (w *walker) Next() bool {
	if w.descend && w.cur.err == nil && w.cur.entry.IsDir() {
		dir, err := fs.ReadDir(w.fsys, w.cur.path)
		for i := len(dir) - 1; i >= 0; i-- {
			p := path.Join(w.cur.path, dir[i].Name())
			w.stack = append(w.stack, visit{path: p, entry: dir[i]})
		}
		if err != nil {
			// second visit of the folder reports the ReadDir error
			w.cur.err = err
			w.stack = append(w.stack, w.cur)
		}
	}

	if len(w.stack) == 0 {
		w.descend = false
		return false
	}
	i := len(w.stack) - 1
	w.cur = w.stack[i]
	w.stack = w.stack[:i]
	w.descend = true
	return true
}

func (w *walker) Path() string {
	return w.cur.path
}

func (w *walker) Entry() fs.DirEntry {
	return w.cur.entry
}

func (w *walker) Err() error {
	return w.cur.err
}

// Do not descend into the current folder
func (w *walker) SkipDir() {
	w.descend = false
}
