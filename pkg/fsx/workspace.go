package fsx

import (
	"context"
	"strings"
)

// Workspace is a directory inside a FileSystem owned by one unit of work.
// Everything written through it is removed by Cleanup.
type Workspace struct {
	fs   FileSystem
	root string
}

// NewWorkspace scopes fs to root.
func NewWorkspace(fs FileSystem, root string) *Workspace {
	return &Workspace{fs: fs, root: strings.Trim(root, "/")}
}

// Root is the workspace directory relative to the file system.
func (w *Workspace) Root() string { return w.root }

// Path resolves name inside the workspace.
func (w *Workspace) Path(name string) string {
	return w.fs.Join(w.root, name)
}

// Write stores data under name and returns its full path.
func (w *Workspace) Write(ctx context.Context, name string, data []byte) (string, error) {
	p := w.Path(name)
	if err := w.fs.WriteFile(ctx, p, data); err != nil {
		return "", err
	}
	return p, nil
}

// Read loads a path previously returned by Write.
func (w *Workspace) Read(ctx context.Context, path string) ([]byte, error) {
	return w.fs.ReadFile(ctx, path)
}

// Exists reports whether path is present.
func (w *Workspace) Exists(ctx context.Context, path string) (bool, error) {
	return w.fs.Exists(ctx, path)
}

// Cleanup removes the workspace directory.
func (w *Workspace) Cleanup(ctx context.Context) error {
	return w.fs.DeleteDir(ctx, w.root)
}
