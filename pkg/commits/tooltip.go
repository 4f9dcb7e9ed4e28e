package commits

import "time"

const (
	shortIDLen = 7

	fullDateLayout  = "Monday, January 2, 2006"
	shortTimeLayout = "03:04 PM"
)

// TooltipInfo is the content shown when hovering a commit point.
type TooltipInfo struct {
	ShortID string `json:"shortId" yaml:"short_id"`
	URL     string `json:"url" yaml:"url"`
	Date    string `json:"date" yaml:"date"`
	Time    string `json:"time" yaml:"time"`
	Author  string `json:"author" yaml:"author"`
	Lines   int    `json:"lines" yaml:"lines"`
}

// Tooltip formats the hover content for s. A nil loc keeps the commit's own offset.
func Tooltip(s Summary, loc *time.Location) TooltipInfo {
	ts := s.Datetime
	if loc != nil {
		ts = ts.In(loc)
	}

	return TooltipInfo{
		ShortID: ShortID(s.ID),
		URL:     s.URL,
		Date:    ts.Format(fullDateLayout),
		Time:    ts.Format(shortTimeLayout),
		Author:  s.Author,
		Lines:   s.TotalLines,
	}
}

// ShortID abbreviates a commit id to seven characters.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}

	return id[:shortIDLen]
}
