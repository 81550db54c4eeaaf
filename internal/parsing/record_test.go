package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAccessors(t *testing.T) {
	rec := Parse(`{
		"company": "Acme",
		"year": 2021,
		"remote": true,
		"skills": ["Go", 7, null],
		"org": {"name": "Platform"},
		"entries": [{"a": 1}, "skip", {"b": 2}],
		"score": "87",
		"notes": "not a list"
	}`)

	assert.Equal(t, "Acme", rec.String("company"))
	assert.Equal(t, "2021", rec.String("year"))
	assert.Equal(t, "true", rec.String("remote"))
	assert.Equal(t, "", rec.String("missing"))
	assert.Equal(t, "—", rec.StringOr("missing", "—"))
	assert.Equal(t, "Acme", rec.StringOr("company", "—"))

	assert.Equal(t, []string{"Go", "7", ""}, rec.Strings("skills"))
	assert.Nil(t, rec.Strings("notes"))

	assert.Equal(t, "Platform", rec.Map("org").String("name"))
	assert.Nil(t, rec.Map("company"))
	assert.Equal(t, "", rec.Map("missing").String("name"))

	assert.Len(t, rec.Records("entries"), 2)
	assert.Equal(t, "87", rec.String("score"))
}

func TestRecordPop(t *testing.T) {
	rec := Record{"match_notes": Record{"match_score": 80}, "name": "x"}
	notes := rec.Pop("match_notes")
	assert.NotNil(t, notes)
	assert.NotContains(t, rec, "match_notes")
	assert.Nil(t, rec.Pop("match_notes"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "3.5", Stringify(3.5))
	assert.Equal(t, "12", Stringify(float64(12)))
	assert.Equal(t, "false", Stringify(false))
	assert.Equal(t, `{"k":"v"}`, Stringify(map[string]any{"k": "v"}))
	assert.Equal(t, `["a"]`, Stringify([]any{"a"}))
}

func TestRecordJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", Record{"a": 1}.JSON())
}
