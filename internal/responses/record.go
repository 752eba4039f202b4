package responses

import (
	"encoding/json"
	"strings"
	"time"
)

// Answer is the recorded reply to the prompt.
type Answer string

const (
	AnswerYes Answer = "yes"
	AnswerNo  Answer = "no"
)

// ParseAnswer normalizes loose input to one of the two answers. Anything
// unrecognized counts as a no.
func ParseAnswer(raw string) Answer {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(AnswerYes), "y":
		return AnswerYes
	default:
		return AnswerNo
	}
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// Record is one captured answer. Records are immutable once appended.
type Record struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Answer Answer `json:"answer"`
	Time   string `json:"time"`
	PageAt string `json:"pageAt"`
}

// NewRecord stamps a record at now. ID doubles as the display/sort key.
func NewRecord(name string, answer Answer, pageAt string, now time.Time) Record {
	return Record{
		ID:     now.UnixMilli(),
		Name:   strings.TrimSpace(name),
		Answer: answer,
		Time:   now.UTC().Format(timeLayout),
		PageAt: pageAt,
	}
}

// When returns the stamped creation time, zero if the persisted value
// does not parse.
func (r Record) When() time.Time {
	t, err := time.Parse(timeLayout, r.Time)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UnmarshalJSON coerces a missing or mistyped name to the empty string
// instead of rejecting the record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     int64           `json:"id"`
		Name   json.RawMessage `json:"name"`
		Answer Answer          `json:"answer"`
		Time   string          `json:"time"`
		PageAt string          `json:"pageAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Answer = raw.Answer
	r.Time = raw.Time
	r.PageAt = raw.PageAt
	r.Name = ""
	if len(raw.Name) > 0 {
		var name string
		if err := json.Unmarshal(raw.Name, &name); err == nil {
			r.Name = name
		}
	}
	return nil
}
