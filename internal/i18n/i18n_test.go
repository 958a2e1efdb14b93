package i18n

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/exam"
)

func TestTranslateEnglish(t *testing.T) {
	tr := Must("en")
	if got := tr.T("menu.start"); got != "Start Assessment" {
		t.Errorf("T(menu.start) = %q, want 'Start Assessment'", got)
	}
	if got := tr.T("option.sometimes"); got != "Sometimes" {
		t.Errorf("T(option.sometimes) = %q, want 'Sometimes'", got)
	}
}

func TestTranslateSpanish(t *testing.T) {
	tr := Must("es")
	if got := tr.T("option.always"); got != "Siempre" {
		t.Errorf("T(option.always) = %q, want 'Siempre'", got)
	}
	if got := tr.Td("exam.progress", map[string]any{"Current": 2, "Total": 10}); got != "Pregunta 2 de 10" {
		t.Errorf("Td(exam.progress) = %q", got)
	}
}

func TestPlural(t *testing.T) {
	tr := Must("en")
	assert.Equal(t, "1 assessment", tr.Tp("history.count", 1))
	assert.Equal(t, "4 assessments", tr.Tp("history.count", 4))
}

func TestFallbacks(t *testing.T) {
	tr := Must("fr")
	assert.Equal(t, "Never", tr.T("option.never"))
	assert.Equal(t, "no.such.message", tr.T("no.such.message"))

	_, err := New("not a tag!")
	assert.Error(t, err)
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	assert.True(t, slices.Contains(langs, "en"))
	assert.True(t, slices.Contains(langs, "es"))
}

// every locale must carry the ids the exam package hands out
func TestDomainMessagesPresent(t *testing.T) {
	var ids []string
	for _, o := range exam.Options {
		ids = append(ids, o.MessageID)
	}
	for _, c := range exam.Categories {
		ids = append(ids, c.MessageID)
	}
	for _, b := range []exam.Band{exam.BandExcellent, exam.BandGood, exam.BandAverage, exam.BandRoomToGrow} {
		ids = append(ids, b.MessageID())
	}

	for _, lang := range []string{"en", "es"} {
		data, err := localeFS.ReadFile("locales/" + lang + ".json")
		require.NoError(t, err)
		var messages map[string]any
		require.NoError(t, json.Unmarshal(data, &messages))
		for _, id := range ids {
			if _, ok := messages[id]; !ok {
				t.Errorf("%s.json is missing %q", lang, id)
			}
		}
	}
}
