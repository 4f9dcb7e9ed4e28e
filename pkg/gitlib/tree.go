package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Tree wraps a libgit2 tree.
type Tree struct {
	tree *git2go.Tree
	repo *Repository
}

// Hash returns the tree hash.
func (t *Tree) Hash() Hash {
	return HashFromOid(t.tree.Id())
}

// EntryCount returns the number of direct entries.
func (t *Tree) EntryCount() uint64 {
	return t.tree.EntryCount()
}

// EntryByIndex returns the direct entry at i, or nil when out of range.
func (t *Tree) EntryByIndex(i uint64) *TreeEntry {
	entry := t.tree.EntryByIndex(i)
	if entry == nil {
		return nil
	}

	return &TreeEntry{entry: entry}
}

// EntryByPath returns the entry at a slash-separated path.
func (t *Tree) EntryByPath(path string) (*TreeEntry, error) {
	entry, err := t.tree.EntryByPath(path)
	if err != nil {
		return nil, fmt.Errorf("entry by path: %w", err)
	}

	return &TreeEntry{entry: entry}, nil
}

// Walk calls fn for every blob below the tree with its full path.
// Subtrees that cannot be read are skipped.
func (t *Tree) Walk(fn func(path string, entry *TreeEntry) error) error {
	return walkTree(t, "", fn)
}

func walkTree(tree *Tree, prefix string, fn func(path string, entry *TreeEntry) error) error {
	for i := range tree.EntryCount() {
		entry := tree.EntryByIndex(i)
		if entry == nil {
			continue
		}

		path := entry.Name()
		if prefix != "" {
			path = prefix + "/" + path
		}

		switch entry.Type() {
		case git2go.ObjectBlob:
			cbErr := fn(path, entry)
			if cbErr != nil {
				return cbErr
			}
		case git2go.ObjectTree:
			walkErr := walkSubtree(tree.repo, entry.Hash(), path, fn)
			if walkErr != nil {
				return walkErr
			}
		default:
		}
	}

	return nil
}

func walkSubtree(repo *Repository, hash Hash, path string, fn func(path string, entry *TreeEntry) error) error {
	subtree, lookupErr := repo.LookupTree(hash)
	if lookupErr != nil {
		return nil //nolint:nilerr // unreadable subtrees are skipped
	}
	defer subtree.Free()

	return walkTree(subtree, path, fn)
}

// Files returns every blob below the tree.
func (t *Tree) Files() ([]*File, error) {
	var files []*File

	err := t.Walk(func(path string, entry *TreeEntry) error {
		files = append(files, &File{
			Name: path,
			Hash: entry.Hash(),
			Mode: entry.Mode(),
			repo: t.repo,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Free releases the tree resources.
func (t *Tree) Free() {
	if t.tree != nil {
		t.tree.Free()
		t.tree = nil
	}
}

// TreeEntry wraps a libgit2 tree entry.
type TreeEntry struct {
	entry *git2go.TreeEntry
}

// Name returns the entry name.
func (e *TreeEntry) Name() string {
	return e.entry.Name
}

// Hash returns the entry object hash.
func (e *TreeEntry) Hash() Hash {
	return HashFromOid(e.entry.Id)
}

// Type returns the entry type.
func (e *TreeEntry) Type() git2go.ObjectType {
	return e.entry.Type
}

// Mode returns the git file mode of the entry.
func (e *TreeEntry) Mode() git2go.Filemode {
	return e.entry.Filemode
}

// IsBlob reports whether the entry is a blob.
func (e *TreeEntry) IsBlob() bool {
	return e.entry.Type == git2go.ObjectBlob
}
