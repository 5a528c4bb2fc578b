package dataset

import (
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// AnswerMap resolves a localized correct-answer marker (lowercased) to a
// canonical option identity. Swap the table to support another alphabet.
type AnswerMap map[string]OptionID

// DefaultAnswerMap accepts Cyrillic а..д and Latin a..e markers.
var DefaultAnswerMap = AnswerMap{
	"а": "A", "б": "B", "в": "C", "г": "D", "д": "E",
	"a": "A", "b": "B", "c": "C", "d": "D", "e": "E",
}

var optionIDs = []OptionID{"A", "B", "C", "D", "E"}

// markerRe matches a leading enumeration marker such as "A) " or "b. ".
var markerRe = regexp.MustCompile(`^[A-Ea-e][.)]\s*`)

// QuestionID derives the stable identifier for a prompt. Two records with
// the same prompt collapse to the same id, and so to one score slot.
func QuestionID(text string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// Builder ingests delimited question records and emits the validated,
// deduplicated question set the engine consumes. Records failing the
// quality gate are dropped, not reported: a missing prompt, zero usable
// options, or a correct marker that does not resolve to a present option
// all exclude the record.
type Builder struct {
	Answers AnswerMap
	Comma   rune
}

func NewBuilder() *Builder {
	return &Builder{Answers: DefaultAnswerMap, Comma: ';'}
}

// Read parses records from r. Layout per record: prompt, up to five option
// columns (A..E by position), then the correct-answer marker.
func (b *Builder) Read(r io.Reader) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.Comma = b.Comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []Question
	seen := map[string]bool{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// malformed row, drop and continue
			continue
		}
		q, ok := b.parseRow(row)
		if !ok || seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out, nil
}

// ReadFile is Read over a source file. A missing or unreadable source is
// the one fatal build error.
func (b *Builder) ReadFile(path string) ([]Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset source: %w", err)
	}
	defer f.Close()
	return b.Read(f)
}

func (b *Builder) parseRow(row []string) (Question, bool) {
	if len(row) < 2 {
		return Question{}, false
	}
	text := strings.TrimSpace(row[0])
	if text == "" {
		return Question{}, false
	}

	var opts []Option
	for i, id := range optionIDs {
		col := i + 1
		if col >= len(row)-1 {
			break
		}
		val := strings.TrimSpace(markerRe.ReplaceAllString(strings.TrimSpace(row[col]), ""))
		if val == "" {
			continue
		}
		opts = append(opts, Option{ID: id, Text: val})
	}
	if len(opts) == 0 {
		return Question{}, false
	}

	marker := strings.ToLower(strings.TrimSpace(row[len(row)-1]))
	correct, ok := b.Answers[marker]
	if !ok {
		return Question{}, false
	}
	q := Question{ID: QuestionID(text), Text: text, Options: opts, Correct: correct}
	if _, ok := q.Option(correct); !ok {
		return Question{}, false
	}
	return q, true
}

// Load reads a built dataset artifact (JSON array of questions) and
// re-validates the invariants the engine relies on.
func Load(path string) ([]Question, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var qs []Question
	if err := json.Unmarshal(buf, &qs); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	for _, q := range qs {
		if q.ID == "" || len(q.Options) == 0 {
			return nil, fmt.Errorf("dataset: invalid question %q", q.Text)
		}
		if _, ok := q.Option(q.Correct); !ok {
			return nil, fmt.Errorf("dataset: question %s has no option %s", q.ID, q.Correct)
		}
	}
	return qs, nil
}

// Write emits the dataset artifact consumed by Load.
func Write(path string, qs []Question) error {
	buf, err := json.MarshalIndent(qs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
