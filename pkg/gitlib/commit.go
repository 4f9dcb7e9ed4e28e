package gitlib

import (
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Commit is a commit whose tree the extractor walks.
type Commit struct {
	commit *git2go.Commit
	repo   *Repository
}

// Hash identifies the commit.
func (c *Commit) Hash() Hash {
	return HashFromOid(c.commit.Id())
}

// Author is who wrote the commit, with the offset it was recorded in.
func (c *Commit) Author() Signature {
	return signatureFrom(c.commit.Author())
}

// Summary is the first line of the commit message.
func (c *Commit) Summary() string {
	first, _, _ := strings.Cut(c.commit.Message(), "\n")

	return strings.TrimSpace(first)
}

// Tree is the commit's root tree. The caller frees it.
func (c *Commit) Tree() (*Tree, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("commit %s tree: %w", c.Hash(), err)
	}

	return &Tree{tree: tree, repo: c.repo}, nil
}

// Files lists every blob reachable from the commit's root tree in path order.
func (c *Commit) Files() ([]*File, error) {
	root, err := c.Tree()
	if err != nil {
		return nil, err
	}
	defer root.Free()

	return root.Files()
}

// Free releases the libgit2 handle. It is safe to call twice.
func (c *Commit) Free() {
	if c.commit == nil {
		return
	}

	c.commit.Free()
	c.commit = nil
}
