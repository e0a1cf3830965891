package entities

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntities(t *testing.T) {
	raw := `{"entities":[{"text":"Joe","type":"PERSON"},{"text":"Christchurch","type":"LOCATION"}]}`

	ents, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, ents, 2)
	assert.Equal(t, Entity{Text: "Joe", Type: "PERSON"}, ents[0])
	assert.Equal(t, Entity{Text: "Christchurch", Type: "LOCATION"}, ents[1])
}

func TestParseEmptyList(t *testing.T) {
	ents, err := Parse(`{"entities":[]}`)
	require.NoError(t, err)
	assert.Empty(t, ents)
}

func TestParseNotJSON(t *testing.T) {
	_, err := Parse("not json")
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "not json", decErr.Raw)
}

func TestParseMissingEntitiesKey(t *testing.T) {
	_, err := Parse(`{"results":[{"text":"Joe","type":"PERSON"}]}`)
	var keyErr *MissingKeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Contains(t, keyErr.Raw, "results")
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []Entity{
		{Text: "Joe", Type: "PERSON"},
		{Text: "Christchurch", Type: "LOCATION"},
	})

	out := buf.String()
	assert.Contains(t, out, "Joe")
	assert.Contains(t, out, "PERSON")
	assert.Contains(t, out, "Christchurch")
	assert.Contains(t, out, "LOCATION")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, nil)
	assert.Contains(t, buf.String(), "No entities found")
}

func TestRenderFailureDecode(t *testing.T) {
	_, err := Parse("not json")
	require.Error(t, err)

	var buf bytes.Buffer
	RenderFailure(&buf, err)

	out := buf.String()
	assert.Contains(t, out, "not valid JSON")
	assert.Contains(t, out, "not json", "raw output must be surfaced")
	assert.Contains(t, out, "temperature")
}

func TestRenderFailureMissingKey(t *testing.T) {
	_, err := Parse(`{"answer":42}`)
	require.Error(t, err)

	var buf bytes.Buffer
	RenderFailure(&buf, err)

	out := buf.String()
	assert.Contains(t, out, `"entities"`)
	assert.Contains(t, out, `{"answer":42}`)
	assert.Contains(t, out, "temperature")
}
