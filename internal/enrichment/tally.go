package enrichment

import (
	"slices"
	"strconv"
)

// RankedPerson is an actor or director with the number of selected films
// they appear in.
type RankedPerson struct {
	Rank     int    `json:"rank"`
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	ImageURL string `json:"image,omitempty"`
}

// RankedGenre is a genre with the number of selected films tagged with it.
type RankedGenre struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type tallyEntry struct {
	id       int64
	name     string
	count    int
	imageURL string
}

// tally counts occurrences while remembering first-seen order for tie breaks.
type tally struct {
	order   []string
	entries map[string]*tallyEntry
}

func newTally() *tally {
	return &tally{entries: make(map[string]*tallyEntry)}
}

func personKey(p Person) string {
	if p.ID > 0 {
		return "id:" + strconv.FormatInt(p.ID, 10)
	}
	return "name:" + p.Name
}

func (t *tally) addPerson(p Person) {
	if p.Name == "" {
		return
	}
	e := t.entry(personKey(p), p.ID, p.Name)
	e.count++
	if p.ImageURL != "" {
		e.imageURL = p.ImageURL
	}
}

func (t *tally) addName(name string) {
	if name == "" {
		return
	}
	t.entry("name:"+name, 0, name).count++
}

func (t *tally) entry(key string, id int64, name string) *tallyEntry {
	e, ok := t.entries[key]
	if !ok {
		e = &tallyEntry{id: id, name: name}
		t.entries[key] = e
		t.order = append(t.order, key)
	}
	return e
}

// top returns up to n entries by count descending; ties keep first-seen order.
func (t *tally) top(n int) []*tallyEntry {
	ranked := make([]*tallyEntry, 0, len(t.order))
	for _, key := range t.order {
		ranked = append(ranked, t.entries[key])
	}
	slices.SortStableFunc(ranked, func(a, b *tallyEntry) int {
		return b.count - a.count
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (t *tally) topPeople(n int) []RankedPerson {
	top := t.top(n)
	out := make([]RankedPerson, len(top))
	for i, e := range top {
		out[i] = RankedPerson{Rank: i + 1, ID: e.id, Name: e.name, Count: e.count, ImageURL: e.imageURL}
	}
	return out
}

func (t *tally) topGenres(n int) []RankedGenre {
	top := t.top(n)
	out := make([]RankedGenre, len(top))
	for i, e := range top {
		out[i] = RankedGenre{Rank: i + 1, Name: e.name, Count: e.count}
	}
	return out
}
