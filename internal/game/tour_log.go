package game

import (
	"fmt"
	"strings"
	"time"
)

// TourLogEntry is one recorded event of an exploration session.
type TourLogEntry struct {
	At       time.Duration // since the session started
	POI      string        // POI id, or "--" for map-wide events
	Category string        // reveal, poi, card, camera
	Key      string        // specific event name within the category
	Value    string        // human-readable detail
	NumVal   float64       // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[+00.399s] rua_flores       reveal  done            r=574.3
func (e TourLogEntry) String() string {
	return fmt.Sprintf("[+%06.3fs] %-16s %-7s %-15s %s",
		e.At.Seconds(), e.POI, e.Category, e.Key, e.Value)
}

// TourLog collects structured events in order. It is unbounded and
// machine-readable; tests and the tour report query it.
type TourLog struct {
	entries []TourLogEntry
}

// NewTourLog creates an empty log.
func NewTourLog() *TourLog {
	return &TourLog{}
}

// Add records a new entry.
func (tl *TourLog) Add(at time.Duration, poi, category, key, value string, numVal float64) {
	tl.entries = append(tl.entries, TourLogEntry{
		At:       at,
		POI:      poi,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded entries.
func (tl *TourLog) Entries() []TourLogEntry {
	return tl.entries
}

// Query returns the entries about POI id with the given category and key, in
// order. An empty argument matches any value.
func (tl *TourLog) Query(id, category, key string) []TourLogEntry {
	var out []TourLogEntry
	for _, e := range tl.entries {
		if (id == "" || e.POI == id) &&
			(category == "" || e.Category == category) &&
			(key == "" || e.Key == key) {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns entries of any POI matching category and key.
func (tl *TourLog) Filter(category, key string) []TourLogEntry {
	return tl.Query("", category, key)
}

// FilterPOI returns every entry about one POI.
func (tl *TourLog) FilterPOI(id string) []TourLogEntry {
	return tl.Query(id, "", "")
}

// CountCategory returns how many entries match the given category and key.
func (tl *TourLog) CountCategory(category, key string) int {
	return len(tl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (tl *TourLog) LastOf(category, key string) (TourLogEntry, bool) {
	entries := tl.Filter(category, key)
	if len(entries) == 0 {
		return TourLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// RevealFrom returns the reveal started when id was completed: its radius and
// the id of the POI it opened towards ("--" after the last one).
func (tl *TourLog) RevealFrom(id string) (radius float64, next string, ok bool) {
	starts := tl.Query(id, "reveal", "start")
	if len(starts) == 0 {
		return 0, "", false
	}
	e := starts[len(starts)-1]
	next = "--"
	if _, n, found := strings.Cut(e.Value, "next="); found {
		next = n
	}
	return e.NumVal, next, true
}

// Unlocked returns the ids of the POIs that completing id made visible.
func (tl *TourLog) Unlocked(id string) []string {
	var ids []string
	for _, e := range tl.Filter("poi", "visible") {
		if e.Value == "from "+id {
			ids = append(ids, e.POI)
		}
	}
	return ids
}

// Format returns the full log as a single string for t.Log output.
func (tl *TourLog) Format() string {
	var sb strings.Builder
	for _, e := range tl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the registry state.
func (tl *TourLog) Summary(at time.Duration, reg *Registry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at +%.3fs ---\n", at.Seconds())
	fmt.Fprintf(&sb, "POIs: %d  visible=%d  completed=%d\n", reg.Len(), reg.VisibleCount(), reg.CompletedCount())
	fmt.Fprintf(&sb, "Reveals: started=%d  finished=%d\n",
		tl.CountCategory("reveal", "start"), tl.CountCategory("reveal", "done"))
	var hidden []string
	for _, p := range reg.All() {
		if !p.Visible() {
			hidden = append(hidden, p.ID)
		}
	}
	if len(hidden) == 0 {
		sb.WriteString("Hidden: none\n")
	} else {
		fmt.Fprintf(&sb, "Hidden: [%s]\n", strings.Join(hidden, ", "))
	}
	return sb.String()
}
