package dataset

// OptionID is a canonical option identity, one of "A".."E". Identities are
// stable across renders; display order is shuffled elsewhere.
type OptionID string

type Option struct {
	ID   OptionID `json:"id"`
	Text string   `json:"text"`
}

// Question is immutable after build. ID is an MD5 hex digest of the trimmed
// prompt, so regenerating the dataset from the same source keeps persisted
// scores valid. Correct is stripped before a question is served to the UI.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
	Correct OptionID `json:"correct,omitempty"`
}

// Option returns the option with the given identity, if present.
func (q Question) Option(id OptionID) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
