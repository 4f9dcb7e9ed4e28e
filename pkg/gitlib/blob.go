package gitlib

import (
	"bytes"
	"context"
	"io"

	git2go "github.com/libgit2/git2go/v34"
)

// Blob wraps a libgit2 blob.
type Blob struct {
	blob *git2go.Blob
}

// Hash returns the blob hash.
func (b *Blob) Hash() Hash {
	return HashFromOid(b.blob.Id())
}

// Size returns the blob size in bytes.
func (b *Blob) Size() int64 {
	return b.blob.Size()
}

// Contents returns the blob contents.
func (b *Blob) Contents() []byte {
	return b.blob.Contents()
}

// Free releases the blob resources.
func (b *Blob) Free() {
	if b.blob != nil {
		b.blob.Free()
		b.blob = nil
	}
}

// File is a blob reachable from a tree at a path.
type File struct {
	Name string
	Hash Hash
	Mode git2go.Filemode
	repo *Repository
}

// IsSymlink reports whether the file is a symbolic link.
func (f *File) IsSymlink() bool {
	return f.Mode == git2go.FilemodeLink
}

// Contents returns a copy of the file contents.
func (f *File) Contents(ctx context.Context) ([]byte, error) {
	blob, err := f.repo.LookupBlob(ctx, f.Hash)
	if err != nil {
		return nil, err
	}
	defer blob.Free()

	return bytes.Clone(blob.Contents()), nil
}

// Reader returns a reader over the file contents.
func (f *File) Reader(ctx context.Context) (io.Reader, error) {
	contents, err := f.Contents(ctx)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(contents), nil
}
