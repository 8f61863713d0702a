package model

// NonIncentive is the pseudo-category used to absorb phrases that describe
// employment terms rather than benefits. It participates in classification
// but is excluded from persisted output.
const NonIncentive = "non_incentive"

// Category is one entry of the incentive taxonomy: a stable name, a handful
// of German example phrases, and a one-paragraph English description used as
// contextual anchor during classification.
type Category struct {
	Name     string   `yaml:"name"`
	Examples []string `yaml:"examples"`
	Context  string   `yaml:"context"`
}

// Taxonomy is an ordered list of categories. Order matters: score ties are
// broken in favor of the earlier category.
type Taxonomy []Category

// Names returns all category names in taxonomy order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// OutputNames returns the category names that appear in persisted results:
// every taxonomy entry except the non_incentive absorber.
func (t Taxonomy) OutputNames() []string {
	names := make([]string, 0, len(t))
	for _, c := range t {
		if c.Name == NonIncentive {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// DefaultTaxonomy returns the built-in German incentive taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{
			Name: "Gehalt_anhand_von_Tarifklassen",
			Examples: []string{
				"Gehalt nach Tarifvertrag",
				"Attraktive Bezahlung nach jeweiligem Tarifvertrag",
				"Tarifliche Vergütung",
				"Vergütung entsprechend Tarifvertrag",
			},
			Context: "Compensation based on collective bargaining agreements or tariff classifications, providing standardized salary structures according to industry standards",
		},
		{
			Name: "Überstundenvergütung",
			Examples: []string{
				"Bezahlte Überstunden",
				"Überstundenausgleich",
				"Vergütung von Mehrarbeit",
				"Nacht- und Feiertagszuschüsse",
			},
			Context: "Compensation for work performed beyond regular working hours, including overtime pay, time off in lieu, or special allowances for night or holiday work",
		},
		{
			Name: "Gehaltserhöhungen",
			Examples: []string{
				"Regelmäßige Gehaltsanpassungen",
				"Jährliche Gehaltssteigerungen",
				"Leistungsbezogene Gehaltserhöhungen",
				"Gehaltsentwicklung nach Karrierestufen",
			},
			Context: "Regular or performance-based salary increases, including annual raises, systematic salary reviews, salary development frameworks, or regular feedback processes that impact compensation",
		},
		{
			Name: "Aktienoptionen_Gewinnbeteiligung",
			Examples: []string{
				"Mitarbeiteraktien zu vergünstigten Konditionen",
				"Aktienbeteiligungsprogramm",
				"Gewinnbeteiligung am Unternehemenserfolg",
				"Optionen zum Erwerb von Unternehmensanteilen",
			},
			Context: "Opportunities for employees to own company shares or stock options, including employee stock purchase plans, equity compensation, or discounted company shares",
		},
		{
			Name: "Boni",
			Examples: []string{
				"Leistungsboni für persönliche Zielerreichung",
				"Verkaufsprovision bei Zielerreichung",
				"Erfolgsprämien für übertroffene Umsatzziele",
				"Projektabschlussprämien",
			},
			Context: "Performance-based additional payments that reward individual or company achievements, typically variable in amount and directly tied to reaching specific targets or goals. Examples include sales commissions, performance bonuses, and profit-sharing payments.",
		},
		{
			Name: "Sonderzahlungen",
			Examples: []string{
				"Leistungsprämien und Bonuszahlungen",
				"Weihnachtsgeld und Urlaubsgeld",
				"Erfolgsbeteiligung am Unternehmensergebnis",
				"Sonderzuwendungen und Gratifikationen",
			},
			Context: "One-time or regular additional payments beyond the normal salary that are typically tied to specific occasions, celebrations, or as general appreciation. These include holiday bonuses, vacation allowances, anniversary payments, and special situation payments like inflation compensation",
		},
		{
			Name: "13. Gehalt",
			Examples: []string{
				"13. Monatsgehalt",
				"Zusätzliches volles Monatsgehalt",
				"13. Gehalt",
				"Jahressonderzahlung in Höhe eines vollen Monatsgehalts",
			},
			Context: "An additional full month's salary paid once per year, separate from regular monthly payments and distinct from other bonuses or special payments",
		},
		{
			Name: "Betriebliche_Altersvorsorge",
			Examples: []string{
				"Betriebliche Altersvorsorge",
				"Beiträge zur Altersvorsorge",
				"Arbeitgeberzuschuss zur Altersvorsorge",
				"Betriebsrente und Pensionsplan",
			},
			Context: "Employer-sponsored retirement plans or pension schemes, including employer contributions to retirement funds, pension plans, or retirement insurance",
		},
		{
			Name: "Flexible_Arbeitsmodelle",
			Examples: []string{
				"Flexible Arbeitszeiten",
				"Gleitzeit mit Kernarbeitszeiten",
				"Individuelle Arbeitszeitmodelle",
				"Vertrauensarbeitszeit",
				"individuell anpassbare Arbeitszeiten",
			},
			Context: "Work arrangements that allow employees to vary when and how they work, including flexible start/end times, compressed work weeks, or trust-based working time",
		},
		{
			Name: "Homeoffice",
			Examples: []string{
				"Homeoffice möglich",
				"Mobiles Arbeiten möglich",
				"Remote Work Option",
				"Hybrides Arbeitsmodell",
				"Homeoffice-Möglichkeit",
			},
			Context: "Ability to work from home or remotely instead of commuting to an office location, including full remote work, hybrid models, or occasional work-from-home options",
		},
		{
			Name: "Weiterbildung_und_Entwicklungsmöglichkeiten",
			Examples: []string{
				"Berufliche Weiterbildungsmöglichkeiten",
				"Fort- und Weiterbildungsangebote",
				"Persönliche und fachliche Entwicklung",
				"Coaching und Trainings",
				"Karriereprogramme",
			},
			Context: "Opportunities for professional growth and skill development, including training programs, educational courses or career advancement paths",
		},
		{
			Name: "Gesundheit_und_Wohlbefinden",
			Examples: []string{
				"Betriebliche Gesundheitsförderung",
				"Zuschuss zum Fitnessstudio",
				"Gesundheitsprogramme und Vorsorgeuntersuchungen",
				"Betriebssport",
				"Lauftreff",
			},
			Context: "Programs and benefits focused on employee health and wellness, including fitness subsidies, wellness programs, company sports or joined sport groups",
		},
		{
			Name: "Finanzielle_Vergünstigungen",
			Examples: []string{
				"Mitarbeiterrabatte auf Produkte",
				"Versicherungsleistungen",
				"Corporate Benefits und Vorteilsprogramme",
				"Finanzielle Zuschüsse und Sonderkonditionen",
				"Rabattangebote",
			},
			Context: "Financial benefits beyond direct compensation, including employee discounts, insurance benefits, corporate perks, or financial subsidies",
		},
		{
			Name: "Mobilitätsangebote",
			Examples: []string{
				"Firmenwagen",
				"Jobticket",
				"Fahrtkostenzuschuss",
				"Leasing",
				"Zuschuss zur Bahn- oder Autofahrt",
				"Job Rad",
			},
			Context: "Benefits related to transportation and commuting, including company cars, public transport subsidies, bicycle leasing, or parking facilities",
		},
		{
			Name: "Verpflegung",
			Examples: []string{
				"Bezuschusstes Betriebsrestaurant",
				"Kostenlose Getränke",
				"Essenszuschuss",
				"Obstkorb und Kaffeeflatrate",
				"Subventioniertes Essen",
			},
			Context: "Food and beverage benefits provided in the workplace, including subsidized meals, free drinks, snacks, or meal allowances",
		},
		{
			Name: "Arbeitsumfeld_Ausstattung",
			Examples: []string{
				"Moderne Büroausstattung",
				"Firmenlaptop und Smartphone",
				"Ergonomischer Arbeitsplatz",
				"Höhenverstellbare Schreibtische",
				"Firmenlaptop",
			},
			Context: "Physical workplace environment and equipment provided to employees, including modern office furniture, technology, ergonomic equipment, or workspace design",
		},
		{
			Name: "Zusätzliche_Urlaubstage",
			Examples: []string{
				"30 Tage Urlaubsanspruch",
				"Zusätzliche Urlaubstage über dem gesetzlichen Minimum",
				"Sonderurlaubstage für besondere Anlässe",
				"Sabbatical-Möglichkeit",
			},
			Context: "Vacation days beyond the legal minimum requirement of 20 days, including extra holiday allowances, special occasion leave, sabbaticals, or extended time off",
		},
		{
			Name: "Familien_Unterstützung",
			Examples: []string{
				"Betriebsnahe Kita und Eltern-Kind Büros",
				"Zuschuss zur Kinderbetreuung",
				"Familienfreundliche Arbeitszeiten",
				"Wiedereinstiegsprogramme nach Elternzeit",
				"Kitaplätze",
			},
			Context: "Benefits that support employees with family responsibilities, including childcare assistance, parental leave, family-friendly work hours, parent-child offices, family services, emergency support, or specific allowances for family events",
		},
		{
			Name: "Onboarding_und_Mentoring_Programme",
			Examples: []string{
				"Individuelle Einarbeitung und Onboarding",
				"Mentorenprogramm für neue Mitarbeiter",
				"Strukturierte Einarbeitung",
				"Patenschaftsprogramm",
				"Mentoring",
				"Onboardingtag und individuelles Einarbeitungsprogramm",
			},
			Context: "Structured programs to help new employees integrate into the company, including orientation processes, mentoring relationships, buddy systems, or training periods",
		},
		{
			Name: "Teamevents_Firmenfeiern",
			Examples: []string{
				"Teamevents",
				"Firmenfeiern und Betriebsausflüge",
				"Teambuilding-Aktivitäten",
				"Gemeinsame Mittagessen und Afterwork-Events",
				"Weihnachstfeiern und Sommerfeste",
				"Kulturevents",
			},
			Context: "Social activities and events organized by the company to foster team spirit and company culture, including team outings, company celebrations, or social gatherings",
		},
		{
			Name: NonIncentive,
			Examples: []string{
				"Gehalt anzeigen",
				"Teilzeit möglich",
				"Feste Anstellung",
				"Tolles Teamwork und ﬂache Hierarchien sichern kurze Kommunikationswege",
				"freundschaftliche Atmosphäre",
				"gemeinsame Zeit",
			},
			Context: "Phrases indicating employment terms and tasks rather than benefits - salary disclosures, employment types (full/part-time), or work tasks that don't constitute additional incentives",
		},
	}
}
