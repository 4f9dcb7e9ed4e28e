package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codefolio/internal/extract"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
)

var pst = time.FixedZone("PST", -8*60*60)

// scratchRepo builds a repository with two commits by different authors.
func scratchRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(repo.Free)

	write := func(name, content string) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	commit := func(message, author string, when time.Time) {
		index, indexErr := repo.Index()
		require.NoError(t, indexErr)

		defer index.Free()

		require.NoError(t, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
		require.NoError(t, index.Write())

		treeID, treeErr := index.WriteTree()
		require.NoError(t, treeErr)

		tree, lookupErr := repo.LookupTree(treeID)
		require.NoError(t, lookupErr)

		defer tree.Free()

		sig := &git2go.Signature{Name: author, Email: author + "@example.com", When: when}

		var parents []*git2go.Commit

		if head, headErr := repo.Head(); headErr == nil {
			parent, parentErr := repo.LookupCommit(head.Target())
			require.NoError(t, parentErr)

			parents = append(parents, parent)

			head.Free()
		}

		_, commitErr := repo.CreateCommit("HEAD", sig, sig, message, tree, parents...)
		require.NoError(t, commitErr)

		for _, p := range parents {
			p.Free()
		}
	}

	write("index.html", "<body>\n  <p>hi</p>\n</body>\n")
	write("node_modules/d3/d3.js", "module.exports = {};\n")
	commit("initial", "alice", time.Date(2025, 2, 4, 17, 5, 0, 0, pst))

	write("src/main.js", "function f() {\n    return 1;\n}\n")
	commit("add script", "bob", time.Date(2025, 2, 6, 9, 30, 15, 0, time.UTC))

	return dir
}

func TestExtract(t *testing.T) {
	t.Parallel()

	dir := scratchRepo(t)

	res, err := extract.Extract(context.Background(), dir, extract.Options{IndentWidth: 2})
	require.NoError(t, err)

	assert.False(t, res.Cached)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Records, 6)

	first := res.Records[0]
	assert.Equal(t, "index.html", first.File)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "html", first.Type)
	assert.Equal(t, "alice", first.Author)
	assert.Equal(t, "2025-02-04", first.Date)
	assert.Equal(t, "17:05:00", first.Time)
	assert.Equal(t, "-08:00", first.Timezone)
	assert.Equal(t, 6, first.Length)

	assert.Equal(t, 1, res.Records[1].Depth)

	script := res.Records[4]
	assert.Equal(t, "src/main.js", script.File)
	assert.Equal(t, "js", script.Type)
	assert.Equal(t, "bob", script.Author)
	assert.Equal(t, "+00:00", script.Timezone)
	assert.Equal(t, 2, script.Depth)

	coll := commits.Aggregate(res.Records, commits.Options{})
	require.Equal(t, 2, coll.Len())
	assert.Equal(t, 3, coll.Summaries()[0].TotalLines)
	assert.Empty(t, commits.Conflicts(res.Records))
}

func TestExtract_Languages(t *testing.T) {
	t.Parallel()

	res, err := extract.Extract(context.Background(), scratchRepo(t), extract.Options{Languages: true})
	require.NoError(t, err)

	types := map[string]bool{}
	for _, r := range res.Records {
		types[r.Type] = true
	}

	assert.True(t, types["html"])
	assert.True(t, types["javascript"])
}

func TestExtract_Cache(t *testing.T) {
	t.Parallel()

	dir := scratchRepo(t)
	cache := extract.NewCache(filepath.Join(t.TempDir(), "cache"))
	opts := extract.Options{IndentWidth: 2, Cache: cache}

	fresh, err := extract.Extract(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.False(t, fresh.Cached)

	cached, err := extract.Extract(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, fresh.Head, cached.Head)
	require.Len(t, cached.Records, len(fresh.Records))
	assert.True(t, fresh.Records[0].Datetime.Equal(cached.Records[0].Datetime))

	opts.IndentWidth = 4

	other, err := extract.Extract(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.False(t, other.Cached)
}

func TestExtract_RoundTripsThroughCSV(t *testing.T) {
	t.Parallel()

	res, err := extract.Extract(context.Background(), scratchRepo(t), extract.Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "loc.csv")
	require.NoError(t, loc.Save(path, res.Records))

	store, err := loc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, len(res.Records), store.Len())
}

func TestExtract_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := extract.Extract(context.Background(), t.TempDir(), extract.Options{})
	require.Error(t, err)
}
