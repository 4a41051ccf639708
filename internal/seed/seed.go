// Package seed reads the initial action items from the "data" query
// parameter of a meeting link.
//
// The parameter carries URL-encoded JSON in one of two shapes:
//
//	{"meeting_title": "Q3 Sync", "tasks": [{"task": "Draft doc", "owner": "Ana"}]}
//	[{"task": "Draft doc", "owner": "Ana"}]
//
// Missing task or owner fields become empty strings. Ids in the input are
// ignored; the store assigns fresh ones.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"actionboard/internal/tasks"
)

// Param is the query parameter holding the payload.
const Param = "data"

type Entry struct {
	Task  string
	Owner string
}

type Seed struct {
	MeetingTitle string
	Entries      []Entry
}

// FromURL extracts and parses the data parameter from a link. The link may be
// a full URL, or just its query string. ok is false when the parameter is
// absent, which is not an error.
func FromURL(raw string) (s Seed, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Seed{}, false, nil
	}
	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	} else if strings.Contains(raw, "://") {
		return Seed{}, false, nil
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return Seed{}, false, fmt.Errorf("parse query: %w", err)
	}
	if !values.Has(Param) {
		return Seed{}, false, nil
	}
	s, err = decodeAndParse(values.Get(Param))
	return s, true, err
}

// FromValue parses the data parameter exactly as it appears in a query
// string, before any decoding.
func FromValue(raw string) (Seed, error) {
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return Seed{}, fmt.Errorf("decode %s parameter: %w", Param, err)
	}
	return decodeAndParse(v)
}

// The query layer decodes once; the value itself is URL-encoded JSON and
// gets a second, path-style pass, so a literal '+' stays a plus.
func decodeAndParse(v string) (Seed, error) {
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return Seed{}, fmt.Errorf("decode %s parameter: %w", Param, err)
	}
	return Parse([]byte(decoded))
}

// Parse decodes the JSON payload. It either returns every entry or fails
// without returning any.
func Parse(data []byte) (Seed, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Seed{}, errors.New("empty payload")
	}

	var s Seed
	var list json.RawMessage
	switch data[0] {
	case '[':
		list = data
	case '{':
		var obj struct {
			MeetingTitle text            `json:"meeting_title"`
			Tasks        json.RawMessage `json:"tasks"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return Seed{}, fmt.Errorf("parse payload: %w", err)
		}
		s.MeetingTitle = string(obj.MeetingTitle)
		list = obj.Tasks
	default:
		return Seed{}, errors.New("payload must be an object or an array")
	}

	if len(list) == 0 || string(list) == "null" {
		return s, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(list, &items); err != nil {
		return Seed{}, fmt.Errorf("parse tasks: %w", err)
	}
	s.Entries = make([]Entry, 0, len(items))
	for i, raw := range items {
		e, err := parseEntry(raw)
		if err != nil {
			return Seed{}, fmt.Errorf("task %d: %w", i+1, err)
		}
		s.Entries = append(s.Entries, e)
	}
	return s, nil
}

func parseEntry(raw json.RawMessage) (Entry, error) {
	raw = bytes.TrimSpace(raw)
	if string(raw) == "null" {
		return Entry{}, errors.New("null entry")
	}
	if len(raw) == 0 || raw[0] != '{' {
		// Non-object entries carry no fields.
		return Entry{}, nil
	}
	var item struct {
		Task  text `json:"task"`
		Owner text `json:"owner"`
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return Entry{}, err
	}
	return Entry{Task: string(item.Task), Owner: string(item.Owner)}, nil
}

// Apply appends the entries to the session and sets the meeting title when
// the payload carried one.
func Apply(sess *tasks.Session, s Seed) {
	if s.MeetingTitle != "" {
		sess.MeetingTitle = s.MeetingTitle
	}
	for _, e := range s.Entries {
		sess.Tasks.Add(e.Task, e.Owner)
	}
}

// Load seeds the session from a meeting link. A broken payload is logged and
// otherwise ignored. It returns the number of tasks added.
func Load(sess *tasks.Session, link string) int {
	s, ok, err := FromURL(link)
	if err != nil {
		log.Printf("seed: ignoring %s parameter: %v", Param, err)
		return 0
	}
	if !ok {
		return 0
	}
	Apply(sess, s)
	return len(s.Entries)
}

// LoadValue is Load for a bare parameter value.
func LoadValue(sess *tasks.Session, value string) int {
	if value == "" {
		return 0
	}
	s, err := FromValue(value)
	if err != nil {
		log.Printf("seed: ignoring %s parameter: %v", Param, err)
		return 0
	}
	Apply(sess, s)
	return len(s.Entries)
}

// text accepts any JSON scalar. Strings are taken as-is, null is empty and
// other literals keep their JSON spelling.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null":
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
	default:
		*t = text(b)
	}
	return nil
}
