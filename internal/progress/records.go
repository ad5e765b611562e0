package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// recordSet is the persisted progress map. It remembers key insertion order
// so the stored object and every derived list keep a stable order.
type recordSet struct {
	order []string
	byID  map[string]Record
}

func newRecordSet() *recordSet {
	return &recordSet{byID: make(map[string]Record)}
}

func (rs *recordSet) get(id string) (Record, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// put replaces an existing record in place or appends a new one.
func (rs *recordSet) put(r Record) {
	if _, ok := rs.byID[r.LessonID]; !ok {
		rs.order = append(rs.order, r.LessonID)
	}
	rs.byID[r.LessonID] = r
}

func (rs *recordSet) remove(id string) bool {
	if _, ok := rs.byID[id]; !ok {
		return false
	}
	delete(rs.byID, id)
	rs.order = slices.DeleteFunc(rs.order, func(k string) bool { return k == id })
	return true
}

func (rs *recordSet) list() []Record {
	out := make([]Record, 0, len(rs.order))
	for _, id := range rs.order {
		out = append(out, copyRecord(rs.byID[id]))
	}
	return out
}

func (rs *recordSet) idsWithStatus(s Status) []string {
	ids := make([]string, 0)
	for _, id := range rs.order {
		if rs.byID[id].Status == s {
			ids = append(ids, id)
		}
	}
	return ids
}

func (rs *recordSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range rs.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(rs.byID[id])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the object token by token to capture key order.
// Records stored as not_started are dropped, since absence already means
// that. The object key wins over a disagreeing lessonId field.
func (rs *recordSet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("progress: expected object, got %v", tok)
	}

	fresh := newRecordSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("progress: expected key, got %v", tok)
		}
		var r Record
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("progress: record %q: %w", key, err)
		}
		r.LessonID = key
		if r.Status == NotStarted {
			continue
		}
		fresh.put(r)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*rs = *fresh
	return nil
}

func copyRecord(r Record) Record {
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		r.CompletedAt = &t
	}
	return r
}
