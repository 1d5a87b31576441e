package pipeline

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// KeyCount is one entry of an ordered count mapping.
type KeyCount struct {
	Key   string
	Count int
}

// OrderedCounts is a count mapping whose entry order is significant.
// It marshals to a JSON object with keys in slice order, so rankings
// survive serialization and repeated runs produce identical bytes.
type OrderedCounts []KeyCount

// MarshalJSON implements json.Marshaler.
func (oc OrderedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range oc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// counter accumulates occurrence counts while remembering the order in
// which each key was first seen, so top-N ties break deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

// Add increments the count for key.
func (c *counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Top returns at most n entries sorted by count descending. Entries with
// equal counts keep first-seen order.
func (c *counter) Top(n int) OrderedCounts {
	entries := make(OrderedCounts, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, KeyCount{Key: key, Count: c.counts[key]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
