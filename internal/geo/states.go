package geo

// bundeslaender maps English (and commonly misspelled) names of the sixteen
// German federal states to their German names. Gazetteer state names are
// English, the persisted rows are German.
var bundeslaender = map[string]string{
	"Bavaria":                       "Bayern",
	"Lower Saxony":                  "Niedersachsen",
	"Baden-Württemberg":             "Baden-Württemberg",
	"Rhineland-Palatinate":          "Rheinland-Pfalz",
	"Saxony":                        "Sachsen",
	"Thuringia":                     "Thüringen",
	"Hesse":                         "Hessen",
	"North Rhine-Westphalia":        "Nordrhein-Westfalen",
	"Saxony-Anhalt":                 "Sachsen-Anhalt",
	"Brandenburg":                   "Brandenburg",
	"Mecklenburg-Western Pomerania": "Mecklenburg-Vorpommern",
	"Hamburg":                       "Hamburg",
	"Schleswig-Holstein":            "Schleswig-Holstein",
	"Saarland":                      "Saarland",
	"Bremen":                        "Bremen",
	"Berlin":                        "Berlin",

	// variations seen in the wild
	"Mecklenburg-Vorpommern": "Mecklenburg-Vorpommern",
	"North Rhine Westphalia": "Nordrhein-Westfalen",
	"Northrhine-Westphalia":  "Nordrhein-Westfalen",
}

// StateDE returns the German name for a federal state. The boolean reports
// whether the name is a known German state; callers fall back to translation
// for foreign states.
func StateDE(name string) (string, bool) {
	de, ok := bundeslaender[name]
	return de, ok
}
