package gitlib

import (
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// Signature is a git author or committer.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

func signatureFrom(sig *git2go.Signature) Signature {
	if sig == nil {
		return Signature{}
	}

	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

// Offset formats the UTC offset of When as "+HH:MM".
func (s Signature) Offset() string {
	return FormatOffset(s.When)
}

// FormatOffset formats the UTC offset of t as "+HH:MM" or "-HH:MM".
func FormatOffset(t time.Time) string {
	const secondsPerMinute, minutesPerHour = 60, 60

	_, offset := t.Zone()

	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	minutes := offset / secondsPerMinute

	return fmt.Sprintf("%c%02d:%02d", sign, minutes/minutesPerHour, minutes%minutesPerHour)
}
