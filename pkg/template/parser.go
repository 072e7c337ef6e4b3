// parser.go - Standalone document parsing and example generation.
package template

import (
	"fmt"
	"os"
	"path/filepath"
)

// ParseDocumentFile loads a standalone document JSON file (no bundle).
// Relative asset paths resolve against the file's directory.
func ParseDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc, err := parseDocument(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("parse document JSON: %w", err)
	}
	return doc, nil
}

// GetExampleJSON returns sample wheel and graph documents and a data.json
// for canvaskit init.
func GetExampleJSON() (wheelJSON, graphJSON, dataJSON string) {
	wheelJSON = `{
  "meta": {
    "name": "Sample Wheel",
    "version": "1.0",
    "author": "canvaskit",
    "description": "A small prize wheel"
  },
  "kind": "wheel",
  "output": "wheel.png",
  "wheel": {
    "radius": 300,
    "tileStyle": "#c0392b",
    "textStyle": "white",
    "tiles": [
      { "content": 500 },
      { "content": 250, "fill": "#2980b9" },
      { "content": "BANKRUPT", "fill": "black" },
      { "content": 900, "fill": "#27ae60" },
      { "content": 300, "fill": "#8e44ad" },
      { "content": "LOSE A TURN", "fill": "white", "text": "black" },
      { "content": 700, "fill": "#f39c12" },
      {
        "content": [
          { "content": "ONE", "fill": "#16a085" },
          { "content": "MILLION", "fill": "black" },
          { "content": "ONE", "fill": "#16a085" }
        ]
      }
    ],
    "spin": { "fps": 15, "turns": 3, "landing": 3 }
  }
}`

	graphJSON = `{
  "meta": {
    "name": "Sample Graph",
    "version": "1.0",
    "author": "canvaskit",
    "description": "Weekly leaderboard"
  },
  "kind": "graph",
  "output": "graph.png",
  "graph": {
    "title": "Leaderboard",
    "subtitle": "messages this week",
    "rowHeight": 40,
    "width": 480,
    "hideIcons": true,
    "entries": [
      { "name": "alice", "value": 120, "arrow": "up" },
      { "name": "bob", "value": 95, "color": "#43b581" },
      { "name": "carol", "value": 60, "arrow": "down" }
    ]
  }
}`

	dataJSON = `{
  "title": "Leaderboard - final",
  "values": {
    "alice": 134,
    "carol": 71
  }
}`
	return
}
