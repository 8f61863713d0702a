package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeModels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "full time",
			text: "Wir suchen Verstärkung in Vollzeit.",
			want: []string{"Vollzeit"},
		},
		{
			name: "compound word matches",
			text: "Eine unbefristete Vollzeitstelle in Berlin.",
			want: []string{"Vollzeit"},
		},
		{
			name: "part time",
			text: "Die Stelle ist halbtags zu besetzen.",
			want: []string{"Teilzeit"},
		},
		{
			name: "both models",
			text: "Zu besetzen in Voll- oder Teilzeit.",
			want: []string{"Vollzeit", "Teilzeit"},
		},
		{
			name: "english phrasing",
			text: "This is a part-time position.",
			want: []string{"Teilzeit"},
		},
		{
			name: "no mention defaults to full time",
			text: "Wir bieten spannende Aufgaben.",
			want: []string{"Vollzeit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TimeModels(tt.text))
		})
	}
}

func TestSeniority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "intern",
			text: "Praktikum im Bereich Marketing",
			want: "Praktikant",
		},
		{
			name: "working student",
			text: "Werkstudent (m/w/d) Softwareentwicklung",
			want: "Werkstudent",
		},
		{
			name: "word boundary respected",
			text: "Praktische Erfahrung mit Datenbanken erwünscht.",
			want: DefaultSeniority,
		},
		{
			name: "regular position",
			text: "Senior Softwareentwickler gesucht",
			want: DefaultSeniority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Seniority(tt.text))
		})
	}
}

func TestEmploymentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		text        string
		companyInfo []string
		want        string
	}{
		{
			name:        "company section wins",
			text:        "Keine Angaben zur Vertragsdauer.",
			companyInfo: []string{"ACME GmbH", "Berlin", "Feste Anstellung, Vollzeit"},
			want:        PermanentEmployment,
		},
		{
			name: "synonym in text",
			text: "Die Stelle ist unbefristet und ab sofort zu besetzen.",
			want: PermanentEmployment,
		},
		{
			name: "word boundary respected",
			text: "Die permanente Weiterbildung ist uns wichtig.",
			want: DefaultEmploymentType,
		},
		{
			name: "no signal defaults to fixed term",
			text: "Projektstelle für zwei Jahre.",
			want: DefaultEmploymentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EmploymentType(tt.text, tt.companyInfo))
		})
	}
}
