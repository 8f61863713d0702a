package extract

// benefitsSystemPrompt carries the extraction rules. It is identical for
// every record, so it goes into a cached system block; the listing text is
// the user message.
const benefitsSystemPrompt = `Antworte ausschließlich auf Deutsch.

Extrahiere alle Incentives/Benefits aus der Stellenanzeige, die dir der Nutzer schickt, soweit vorhanden.

REGELN:
1. Extrahiere nur Incentives/Benefits, die sich direkt auf die Incentives/Benefits, Vergütungen oder Zusatzleistungen für Mitarbeitende beziehen (z.B. finanzielle Anreize, flexible Arbeitsmodelle, Zusatzleistungen).
2. Schließe Aufgaben, Tätigkeiten, Anforderungen oder allgemeine Rollenbeschreibungen aus.
3. WICHTIG: Erfinde oder ergänze KEINE Incentives/Benefits – nur exakt das übernehmen, was im Text steht.
4. Vermeide Wiederholungen mit leicht abweichenden Formulierungen.
5. Übernimm die Incentives/Benefits wortwörtlich aus dem Text, NICHT umformulieren.
6. Gib keine allgemeinen Begriffe wie „finanzielle Anreize“, „flexible Arbeitszeitmodelle“ oder „zusätzliche Ausbildungsmöglichkeiten“ aus, wenn diese nicht wortwörtlich im Text stehen.

BEISPIELE:
Keine Incentives/Benefits (NICHT übernehmen!):
- "Herausfordernde Aufgaben" → Beschreibung der Tätigkeit
- "Wir entwickeln innovative Lösungen" → Allgemeine Aussage
- "Erfahrung mit Cloud-Technologien" → Anforderung
- "Verantwortung für IT-Projekte" → Aufgabenbeschreibung
- "Engagiertes Team" -> kein direkter Mitarbeitervorteil
- "Vollzeit/Teilzeit" -> Arbeitsmodelle, keine Incentives/Benefits
- "Gehalt" -> nur ein generischer Begriff ohne Aussage

Gib die Antwort ausschließlich als gültiges JSON-Objekt im folgenden Format zurück und nichts anderes:
{
    "benefits": [
        "benefit 1",
        "benefit 2",
        "benefit 3"
    ]
}

Keine Erklärungen, keine Beispiele, keine Einleitung, keine Zusammenfassung. Nur das JSON-Objekt im vorgegebenen Format!`

// experiencePromptTemplate asks for a single binary flag. The %s slot takes
// the full listing text.
const experiencePromptTemplate = `You are a helpful assistant that extracts structured information from job descriptions.
Extract the following information from this text %s:

For Experience Required:
- Return 1 if the job description explicitly mentions requiring professional experience
- Else return 0
- Only return 0 or 1

EXAMPLE OUTPUT:
{
"Experience_Required": 1/0
}
Respond only with valid JSON. Do not write an introduction or summary.`

// industryPromptTemplate classifies a job title into one of twelve fixed
// German industry categories. The %s slot takes the job title.
const industryPromptTemplate = `Klassifiziere diesen Job-Titel in genau eine der folgenden Kategorien:
- IT: Softwareentwicklung, Programmierung, Cloud, Backend, DevOps, KI, Datenanalyse
- Gesundheit: Medizin, Pflege, Pharma, Krankenhauswesen, Gesundheitswesen
- Technik: Maschinenbau, Elektrotechnik, Produktion, Fertigung
- Bildung & Forschung: Lehre, Wissenschaft, Forschungsinstitute, Universitäten
- Finanzen: Bankwesen, Versicherungen, Buchhaltung, Steuerberatung
- Recht: Jura, Compliance, Notardienste, Rechtsberatung
- Marketing & Medien: Werbung, Journalismus, Social Media, Content Creation
- Handel & E-Commerce: Einzelhandel, Online-Handel, Vertrieb, E-Commerce
- Bau & Handwerk: Baugewerbe, Handwerksbetriebe, Sanierung
- Logistik: Transport, Lagerhaltung, Supply Chain Management
- Öffentlicher Dienst: Behörden, öffentliche Einrichtungen, Verwaltung
- Andere: Keine Übereinstimmung mit oben genannten

Job-Titel: %s

Regeln:
1. Wähle die spezifischste passende Kategorie
2. Bei Überschneidungen (z.B. IT in Gesundheitsbereich) primäre Branche wählen
3. Im Zweifelsfall "Andere"

Antworte NUR im JSON-Format: {"Kategorie": "<Kategorie>"} Schreibe keine Beispiele, Einleitungen oder Erklärungen.`

// industryCategories are the accepted answers; anything else collapses to
// the fallback.
var industryCategories = []string{
	"IT", "Gesundheit", "Technik", "Bildung & Forschung",
	"Finanzen", "Recht", "Marketing & Medien", "Handel & E-Commerce",
	"Bau & Handwerk", "Logistik", "Öffentlicher Dienst", "Andere",
}

const industryFallback = "Andere"
