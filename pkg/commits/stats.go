package commits

import (
	"math"
	"sort"

	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
)

// InfoStats summarizes the dataset for the commit info panel.
type InfoStats struct {
	TotalLOC          int     `json:"totalLoc"          yaml:"total_loc"`
	TotalCommits      int     `json:"totalCommits"      yaml:"total_commits"`
	Files             int     `json:"files"             yaml:"files"`
	MaxDepth          int     `json:"maxDepth"          yaml:"max_depth"`
	AverageDepth      float64 `json:"averageDepth"      yaml:"average_depth"`
	AverageFileLength int     `json:"averageFileLength" yaml:"average_file_length"`
}

// Stats computes the info panel figures. The average file length is the mean
// over files of their highest line number, rounded.
func Stats(store *loc.Store, coll *Collection) InfoStats {
	stats := InfoStats{
		TotalLOC:     store.Len(),
		TotalCommits: coll.Len(),
	}

	if store.Len() == 0 {
		return stats
	}

	depthSum := 0
	fileMax := make(map[string]int)

	store.Each(func(rec loc.Record) {
		depthSum += rec.Depth
		stats.MaxDepth = max(stats.MaxDepth, rec.Depth)

		if cur, ok := fileMax[rec.File]; !ok || rec.Line > cur {
			fileMax[rec.File] = rec.Line
		}
	})

	stats.Files = len(fileMax)
	stats.AverageDepth = float64(depthSum) / float64(store.Len())

	lengthSum := 0
	for _, n := range fileMax {
		lengthSum += n
	}

	stats.AverageFileLength = int(math.Round(float64(lengthSum) / float64(len(fileMax))))

	return stats
}

// SortBySize returns a copy of summaries ordered by TotalLines descending, so
// that small points drawn later stay visible on top of large ones.
func SortBySize(summaries []Summary) []Summary {
	out := make([]Summary, len(summaries))
	copy(out, summaries)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalLines > out[j].TotalLines
	})

	return out
}
