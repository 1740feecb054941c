package model

import "time"

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Poll keeps a per-user vote map so callers can tell a first vote from a
// changed vote before they touch the tallies. XP is only ever awarded for
// first votes; vote changes retally silently.
type Poll struct {
	ID         string            `json:"id"`
	AuthorID   string            `json:"authorId"`
	Author     string            `json:"author"`
	Question   string            `json:"question"`
	Category   string            `json:"category,omitempty"`
	Options    []PollOption      `json:"options"`
	TotalVotes int               `json:"totalVotes"`
	UserVotes  map[string]string `json:"userVotes"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Option returns a pointer into Options for the given option ID, or nil.
func (p *Poll) Option(optionID string) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}
