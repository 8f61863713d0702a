package normalize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/incentive-cli/internal/geo"
	"github.com/hirelens/incentive-cli/internal/model"
)

const testGazetteer = `[
  {
    "name": "Germany",
    "states": [
      {"name": "Berlin", "cities": [{"name": "Berlin"}]},
      {"name": "Bavaria", "cities": [{"name": "München"}]},
      {"name": "Hesse", "cities": [{"name": "Frankfurt"}]},
      {"name": "North Rhine-Westphalia", "cities": [{"name": "Cologne"}]}
    ]
  }
]`

// fakeTranslator maps "SRC->DST:text" to a canned translation and errors on
// everything else so tests notice unexpected calls.
type fakeTranslator struct {
	translations map[string]string
	calls        int
}

func (f *fakeTranslator) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	f.calls++
	if out, ok := f.translations[sourceLang+"->"+targetLang+":"+text]; ok {
		return out, nil
	}
	return "", eris.Errorf("no translation for %q", text)
}

func loadTestGazetteer(t *testing.T) *geo.Gazetteer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.json")
	require.NoError(t, os.WriteFile(path, []byte(testGazetteer), 0o644))
	g, err := geo.Load(path, "Germany")
	require.NoError(t, err)
	return g
}

func TestNormalizeLocationString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain city", input: "Berlin", want: "Berlin"},
		{name: "semicolon separator", input: "Berlin; München", want: "Berlin, München"},
		{name: "slash separator", input: "Berlin/München", want: "Berlin, München"},
		{name: "bullet separator", input: "Berlin • München", want: "Berlin, München"},
		{name: "und conjunction", input: "Berlin und München", want: "Berlin, München"},
		{name: "oder conjunction", input: "Berlin oder München", want: "Berlin, München"},
		{name: "near qualifier stripped", input: "Garching bei München", want: "Garching"},
		{name: "parenthetical stripped", input: "Frankfurt (Main)", want: "Frankfurt"},
		{name: "comma spacing", input: "Berlin ,München", want: "Berlin, München"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeLocationString(tt.input))
		})
	}
}

func TestSplitLocations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "Berlin", want: []string{"Berlin"}},
		{name: "two cities", input: "Berlin, München", want: []string{"Berlin", "München"}},
		{
			name:  "three cities with parenthetical",
			input: "Berlin, Frankfurt (Main), München",
			want:  []string{"Berlin", "Frankfurt (Main)", "München"},
		},
		{
			name:  "comma inside parentheses kept",
			input: "Frankfurt (Oder, Brandenburg), Berlin",
			want:  []string{"Frankfurt (Oder, Brandenburg)", "Berlin"},
		},
		{name: "empty string", input: "", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitLocations(tt.input))
		})
	}
}

func TestStripPostalCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Berlin", StripPostalCode("10115 Berlin"))
	assert.Equal(t, "Berlin", StripPostalCode("Berlin"))
	assert.Equal(t, "Bad Homburg", StripPostalCode("61348 Bad Homburg"))
}

func TestResolveAll(t *testing.T) {
	gazetteer := loadTestGazetteer(t)

	t.Run("resolves known cities", func(t *testing.T) {
		resolver := NewResolver(gazetteer, nil)
		got := resolver.ResolveAll(context.Background(), "Berlin und 80331 München")

		assert.Equal(t, []model.Location{
			{City: "Berlin", State: "Berlin", Country: "Deutschland"},
			{City: "München", State: "Bayern", Country: "Deutschland"},
		}, got)
	})

	t.Run("bundesweit pseudo city", func(t *testing.T) {
		resolver := NewResolver(gazetteer, nil)
		got := resolver.ResolveAll(context.Background(), "Bundesweit")

		assert.Equal(t, []model.Location{
			{City: "Bundesweit", State: "bundesweit", Country: "Deutschland"},
		}, got)
	})

	t.Run("translation fallback keeps original name", func(t *testing.T) {
		translator := &fakeTranslator{translations: map[string]string{
			"de->en:Köln": "Cologne",
		}}
		resolver := NewResolver(gazetteer, translator)
		got := resolver.ResolveAll(context.Background(), "Köln")

		assert.Equal(t, []model.Location{
			{City: "Köln", State: "Nordrhein-Westfalen", Country: "Deutschland"},
		}, got)
	})

	t.Run("unresolvable city keeps name with unknowns", func(t *testing.T) {
		resolver := NewResolver(gazetteer, &fakeTranslator{})
		got := resolver.ResolveAll(context.Background(), "Atlantis")

		assert.Equal(t, []model.Location{
			{City: "Atlantis", State: model.Unknown, Country: model.Unknown},
		}, got)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		resolver := NewResolver(gazetteer, nil)
		assert.Empty(t, resolver.ResolveAll(context.Background(), ""))
	})
}
