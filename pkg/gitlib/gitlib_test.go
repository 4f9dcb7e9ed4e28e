package gitlib_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codefolio/pkg/gitlib"
)

// testRepo wraps a scratch repository for integration tests.
type testRepo struct {
	t      *testing.T
	path   string
	native *git2go.Repository
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(repo.Free)

	return &testRepo{t: t, path: dir, native: repo}
}

func (tr *testRepo) createFile(name, content string) {
	tr.t.Helper()

	path := filepath.Join(tr.path, name)

	require.NoError(tr.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(tr.t, os.WriteFile(path, []byte(content), 0o644))
}

// commit stages all files and commits them as author at when.
func (tr *testRepo) commit(message, author string, when time.Time) gitlib.Hash {
	tr.t.Helper()

	index, err := tr.native.Index()
	require.NoError(tr.t, err)

	defer index.Free()

	require.NoError(tr.t, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
	require.NoError(tr.t, index.Write())

	treeID, err := index.WriteTree()
	require.NoError(tr.t, err)

	tree, err := tr.native.LookupTree(treeID)
	require.NoError(tr.t, err)

	defer tree.Free()

	sig := &git2go.Signature{Name: author, Email: author + "@example.com", When: when}

	var parents []*git2go.Commit

	head, err := tr.native.Head()
	if err == nil {
		headCommit, lookupErr := tr.native.LookupCommit(head.Target())
		require.NoError(tr.t, lookupErr)

		parents = append(parents, headCommit)

		head.Free()
	}

	oid, err := tr.native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	require.NoError(tr.t, err)

	for _, parent := range parents {
		parent.Free()
	}

	return gitlib.HashFromOid(oid)
}

func (tr *testRepo) open() *gitlib.Repository {
	tr.t.Helper()

	repo, err := gitlib.OpenRepository(tr.path)
	require.NoError(tr.t, err)

	tr.t.Cleanup(repo.Free)

	return repo
}

var pst = time.FixedZone("PST", -8*60*60)

func TestOpenRepository(t *testing.T) {
	t.Parallel()

	tr := newTestRepo(t)
	repo := tr.open()

	assert.Equal(t, tr.path, repo.Path())
}

func TestOpenRepository_Errors(t *testing.T) {
	t.Parallel()

	_, err := gitlib.OpenRepository("https://github.com/example/repo")
	require.ErrorIs(t, err, gitlib.ErrRemoteNotSupported)

	_, err = gitlib.OpenRepository("git@github.com:example/repo.git")
	require.ErrorIs(t, err, gitlib.ErrRemoteNotSupported)

	_, err = gitlib.OpenRepository(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestHeadCommit(t *testing.T) {
	t.Parallel()

	tr := newTestRepo(t)
	tr.createFile("index.html", "<html>\n</html>\n")
	when := time.Date(2025, 2, 4, 17, 5, 0, 0, pst)
	hash := tr.commit("first", "alice", when)

	repo := tr.open()

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, head)

	commit, err := repo.HeadCommit(context.Background())
	require.NoError(t, err)

	defer commit.Free()

	assert.Equal(t, hash, commit.Hash())
	assert.Equal(t, "first", commit.Summary())
	assert.Equal(t, "alice", commit.Author().Name)
	assert.True(t, when.Equal(commit.Author().When))
	assert.Equal(t, "-08:00", commit.Author().Offset())
}

func TestLookupCommit_Canceled(t *testing.T) {
	t.Parallel()

	tr := newTestRepo(t)
	tr.createFile("a.txt", "a\n")
	hash := tr.commit("a", "alice", time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.open().LookupCommit(ctx, hash)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCommitFiles(t *testing.T) {
	t.Parallel()

	tr := newTestRepo(t)
	tr.createFile("index.html", "<p>hi</p>\n")
	tr.createFile("lib/global.js", "let x = 1;\n")
	tr.createFile("lib/deep/style.css", "body {}\n")
	tr.commit("files", "alice", time.Now())

	commit, err := tr.open().HeadCommit(context.Background())
	require.NoError(t, err)

	defer commit.Free()

	files, err := commit.Files()
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"index.html", "lib/deep/style.css", "lib/global.js"}, names)

	contents, err := files[2].Contents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "let x = 1;\n", string(contents))
	assert.False(t, files[2].IsSymlink())
}

func TestTreeEntryByPath(t *testing.T) {
	t.Parallel()

	tr := newTestRepo(t)
	tr.createFile("lib/global.js", "let x = 1;\n")
	tr.commit("files", "alice", time.Now())

	commit, err := tr.open().HeadCommit(context.Background())
	require.NoError(t, err)

	defer commit.Free()

	tree, err := commit.Tree()
	require.NoError(t, err)

	defer tree.Free()

	entry, err := tree.EntryByPath("lib/global.js")
	require.NoError(t, err)
	assert.Equal(t, "global.js", entry.Name())
	assert.True(t, entry.IsBlob())

	_, err = tree.EntryByPath("nope.js")
	require.Error(t, err)

	assert.Nil(t, tree.EntryByIndex(99))
}

func TestBlame(t *testing.T) {
	t.Parallel()

	tr := newTestRepo(t)

	tr.createFile("main.js", "one\ntwo\n")
	first := tr.commit("first", "alice", time.Date(2025, 2, 4, 9, 0, 0, 0, pst))

	tr.createFile("main.js", "one\ntwo\nthree\n")
	second := tr.commit("second", "bob", time.Date(2025, 2, 5, 22, 30, 0, 0, time.UTC))

	hunks, err := tr.open().Blame(context.Background(), "main.js")
	require.NoError(t, err)
	require.Len(t, hunks, 2)

	assert.Equal(t, first, hunks[0].Commit)
	assert.Equal(t, 1, hunks[0].StartLine)
	assert.Equal(t, 2, hunks[0].Lines)
	assert.Equal(t, "alice", hunks[0].Author.Name)

	assert.Equal(t, second, hunks[1].Commit)
	assert.Equal(t, 3, hunks[1].StartLine)
	assert.Equal(t, "+00:00", hunks[1].Author.Offset())

	h, ok := gitlib.Line(hunks, 3)
	require.True(t, ok)
	assert.Equal(t, second, h.Commit)

	_, ok = gitlib.Line(hunks, 4)
	assert.False(t, ok)
}

func TestBlame_MissingFile(t *testing.T) {
	t.Parallel()

	tr := newTestRepo(t)
	tr.createFile("a.txt", "a\n")
	tr.commit("a", "alice", time.Now())

	_, err := tr.open().Blame(context.Background(), "missing.txt")
	require.Error(t, err)
}
