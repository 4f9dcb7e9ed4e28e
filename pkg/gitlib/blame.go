package gitlib

import (
	"context"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// BlameHunk is a run of consecutive lines last changed by the same commit.
type BlameHunk struct {
	Commit    Hash
	Author    Signature
	StartLine int // 1-based line number in the blamed revision.
	Lines     int
}

// Blame attributes every line of path at HEAD to the commit that last changed
// it. Hunks are returned in line order.
func (r *Repository) Blame(ctx context.Context, path string) ([]BlameHunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts, err := git2go.DefaultBlameOptions()
	if err != nil {
		return nil, fmt.Errorf("blame options: %w", err)
	}

	blame, err := r.repo.BlameFile(path, &opts)
	if err != nil {
		return nil, fmt.Errorf("blame %s: %w", path, err)
	}
	defer blame.Free()

	count := blame.HunkCount()
	hunks := make([]BlameHunk, 0, count)

	for i := range count {
		hunk, hunkErr := blame.HunkByIndex(i)
		if hunkErr != nil {
			return nil, fmt.Errorf("blame %s hunk %d: %w", path, i, hunkErr)
		}

		hunks = append(hunks, BlameHunk{
			Commit:    HashFromOid(hunk.FinalCommitId),
			Author:    signatureFrom(hunk.FinalSignature),
			StartLine: int(hunk.FinalStartLineNumber),
			Lines:     int(hunk.LinesInHunk),
		})
	}

	return hunks, nil
}

// Line returns the hunk covering 1-based line n, or false when none does.
func Line(hunks []BlameHunk, n int) (BlameHunk, bool) {
	for _, h := range hunks {
		if n >= h.StartLine && n < h.StartLine+h.Lines {
			return h, true
		}
	}

	return BlameHunk{}, false
}
