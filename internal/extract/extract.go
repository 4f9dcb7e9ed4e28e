// Package extract builds the line dataset from a git repository: every line
// of every file at HEAD, attributed by blame to the commit that last changed it.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sumatoshi-tech/codefolio/pkg/gitlib"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
)

// Record field layouts.
const (
	dateLayout = time.DateOnly
	timeLayout = time.TimeOnly
)

// Options configures an extraction.
type Options struct {
	// IndentWidth is the number of spaces per depth level.
	IndentWidth int
	// Languages selects enry language names instead of file extensions as line types.
	Languages bool
	// SkipPrefixes lists path prefixes that are left out.
	SkipPrefixes []string
	// Cache, when set, is consulted before and filled after extraction.
	Cache *Cache
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}

// Result is the output of an extraction.
type Result struct {
	Head    string
	Records []loc.Record
	Files   int
	Skipped int
	Cached  bool
}

// Extract opens the repository at repoPath and emits one record per line of
// every file at HEAD.
func Extract(ctx context.Context, repoPath string, opts Options) (*Result, error) {
	repo, err := gitlib.OpenRepository(repoPath)
	if err != nil {
		return nil, err
	}
	defer repo.Free()

	head, err := repo.Head()
	if err != nil {
		return nil, err
	}

	logger := opts.logger().With("repo", repoPath, "head", head.String())

	key := cacheKey(head, opts)

	if opts.Cache != nil {
		cached, ok := opts.Cache.Get(key)
		if ok {
			logger.DebugContext(ctx, "extraction cache hit", "records", len(cached.Records))

			cached.Cached = true

			return cached, nil
		}
	}

	res, err := extractHead(ctx, repo, head, opts, logger)
	if err != nil {
		return nil, err
	}

	if opts.Cache != nil {
		putErr := opts.Cache.Put(key, res)
		if putErr != nil {
			logger.WarnContext(ctx, "extraction cache write failed", "error", putErr)
		}
	}

	return res, nil
}

func extractHead(ctx context.Context, repo *gitlib.Repository, head gitlib.Hash, opts Options, logger *slog.Logger) (*Result, error) {
	commit, err := repo.LookupCommit(ctx, head)
	if err != nil {
		return nil, err
	}
	defer commit.Free()

	logger.DebugContext(ctx, "walking head",
		"summary", commit.Summary(), "author", commit.Author().Name, "date", commit.Author().When)

	files, err := commit.Files()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	res := &Result{Head: head.String()}
	started := time.Now()

	for _, file := range files {
		records, skipped, fileErr := extractFile(ctx, repo, file, opts)
		if fileErr != nil {
			return nil, fmt.Errorf("%s: %w", file.Name, fileErr)
		}

		if skipped {
			res.Skipped++

			continue
		}

		res.Files++
		res.Records = append(res.Records, records...)
	}

	logger.InfoContext(ctx, "extracted dataset",
		"files", res.Files, "skipped", res.Skipped, "lines", len(res.Records),
		"duration", time.Since(started))

	return res, nil
}

func extractFile(ctx context.Context, repo *gitlib.Repository, file *gitlib.File, opts Options) ([]loc.Record, bool, error) {
	if file.IsSymlink() {
		return nil, true, nil
	}

	contents, err := file.Contents(ctx)
	if err != nil {
		return nil, false, err
	}

	if Skip(file.Name, contents, opts.SkipPrefixes) {
		return nil, true, nil
	}

	lines := SplitLines(contents)
	if len(lines) == 0 {
		return nil, false, nil
	}

	hunks, err := repo.Blame(ctx, file.Name)
	if err != nil {
		return nil, false, err
	}

	fileType := FileType(file.Name, contents, opts.Languages)
	records := make([]loc.Record, 0, len(lines))

	for i, text := range lines {
		lineNo := i + 1

		hunk, ok := gitlib.Line(hunks, lineNo)
		if !ok {
			continue
		}

		records = append(records, lineRecord(file.Name, lineNo, text, fileType, hunk, opts.IndentWidth))
	}

	return records, false, nil
}

func lineRecord(file string, lineNo int, text, fileType string, hunk gitlib.BlameHunk, indentWidth int) loc.Record {
	when := hunk.Author.When

	return loc.Record{
		Commit:   hunk.Commit.String(),
		File:     file,
		Line:     lineNo,
		Depth:    Depth(text, indentWidth),
		Length:   Length(text),
		Type:     fileType,
		Author:   hunk.Author.Name,
		Date:     when.Format(dateLayout),
		Time:     when.Format(timeLayout),
		Timezone: gitlib.FormatOffset(when),
		Datetime: when,
	}
}
