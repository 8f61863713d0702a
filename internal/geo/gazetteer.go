// Package geo resolves city names against an offline countries/states/cities
// gazetteer, avoiding network geocoding calls during batch runs.
package geo

import (
	"encoding/json"
	"os"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Place is one gazetteer hit for a city name. State and Country carry the
// gazetteer's English names; callers localize them.
type Place struct {
	City    string
	State   string
	Country string
}

type country struct {
	Name   string `json:"name"`
	States []struct {
		Name   string `json:"name"`
		Cities []struct {
			Name string `json:"name"`
		} `json:"cities"`
	} `json:"states"`
}

// Gazetteer indexes the offline world database by folded city name. Lookups
// prefer the configured home country so that ambiguous names like "Frankfurt"
// resolve domestically first.
type Gazetteer struct {
	home  string
	index map[string][]Place
}

// Load reads the gazetteer JSON file and builds the city index. The file is
// the usual countries+states+cities dump: a list of countries, each with
// states, each with cities.
func Load(path, homeCountry string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open gazetteer %s", path)
	}
	defer f.Close() //nolint:errcheck

	var countries []country
	if err := json.NewDecoder(f).Decode(&countries); err != nil {
		return nil, eris.Wrap(err, "geo: decode gazetteer")
	}

	g := &Gazetteer{home: homeCountry, index: make(map[string][]Place)}
	var cities int
	for _, c := range countries {
		for _, s := range c.States {
			for _, city := range s.Cities {
				key := foldKey(city.Name)
				if key == "" {
					continue
				}
				g.index[key] = append(g.index[key], Place{
					City:    city.Name,
					State:   s.Name,
					Country: c.Name,
				})
				cities++
			}
		}
	}

	zap.L().Info("gazetteer loaded",
		zap.String("path", path),
		zap.Int("countries", len(countries)),
		zap.Int("cities", cities),
	)
	return g, nil
}

// Lookup resolves a city name. Home-country matches win over foreign ones;
// among foreign matches the first gazetteer entry wins. The boolean reports
// whether the city was found at all.
func (g *Gazetteer) Lookup(cityName string) (Place, bool) {
	entries, ok := g.index[foldKey(cityName)]
	if !ok || len(entries) == 0 {
		return Place{}, false
	}
	for _, p := range entries {
		if p.Country == g.home {
			return p, true
		}
	}
	return entries[0], true
}

// foldKey lowercases and strips diacritics so lookups tolerate casing and
// composed/decomposed or accent-free spellings of the same name.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Home returns the configured home country name.
func (g *Gazetteer) Home() string {
	return g.home
}
