// merge.go - Merge data.json overrides onto document defaults.
package template

// MergeData returns a copy of doc with the data overrides applied. The
// document itself is left untouched. Lists in data replace, not append.
func MergeData(doc *Document, data *DataSpec) *Document {
	merged := *doc
	if data == nil {
		return &merged
	}

	if doc.Wheel != nil {
		wheel := *doc.Wheel
		if data.Tiles != nil {
			wheel.Tiles = data.Tiles
		}
		if data.Landing != nil {
			spin := SpinSpec{}
			if wheel.Spin != nil {
				spin = *wheel.Spin
			}
			spin.Landing = *data.Landing
			wheel.Spin = &spin
		}
		merged.Wheel = &wheel
	}

	if doc.Graph != nil {
		graph := *doc.Graph
		if data.Title != "" {
			graph.Title = data.Title
		}
		if data.Subtitle != "" {
			graph.Subtitle = data.Subtitle
		}
		entries := graph.Entries
		if data.Entries != nil {
			entries = data.Entries
		}
		graph.Entries = make([]EntrySpec, len(entries))
		copy(graph.Entries, entries)
		for i, e := range graph.Entries {
			if v, ok := data.Values[e.Name]; ok {
				graph.Entries[i].Value = v
			}
		}
		merged.Graph = &graph
	}

	return &merged
}
