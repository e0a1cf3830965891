// Package entities parses and displays named-entity lists returned by a
// language model as JSON.
package entities

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Entity is a single extracted named entity.
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"` // e.g. PERSON, LOCATION, ORGANIZATION, DATE
}

// DecodeError reports model output that is not valid JSON.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("entity output is not valid JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MissingKeyError reports valid JSON that lacks the "entities" key.
type MissingKeyError struct {
	Raw string
}

func (e *MissingKeyError) Error() string {
	return `entity output has no "entities" key`
}

// Parse decodes model output of the form {"entities": [...]}. A decode
// failure and a shape failure are distinct error types so callers can
// display them differently; both are recoverable.
func Parse(text string) ([]Entity, error) {
	var doc struct {
		Entities *[]Entity `json:"entities"`
	}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &DecodeError{Raw: text, Err: err}
	}
	if doc.Entities == nil {
		return nil, &MissingKeyError{Raw: text}
	}
	return *doc.Entities, nil
}

// Render prints one line per entity to out.
func Render(out io.Writer, ents []Entity) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	if len(ents) == 0 {
		fmt.Fprintln(out, "No entities found.")
		return
	}
	for _, ent := range ents {
		green.Fprintf(out, "  %-30s", ent.Text)
		cyan.Fprintf(out, " %s\n", ent.Type)
	}
}

// RenderFailure explains a Parse error to the user without aborting the
// session: the raw model output is echoed so it can be inspected, with a
// hint to retry at a lower temperature.
func RenderFailure(out io.Writer, err error) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	switch e := err.(type) {
	case *DecodeError:
		red.Fprintln(out, "Model output was not valid JSON:")
		fmt.Fprintln(out, e.Raw)
	case *MissingKeyError:
		red.Fprintln(out, `Model output had no "entities" key:`)
		fmt.Fprintln(out, e.Raw)
	default:
		red.Fprintf(out, "Could not read entities: %v\n", err)
	}
	yellow.Fprintln(out, "Try again, or lower the temperature for more consistent JSON.")
}
