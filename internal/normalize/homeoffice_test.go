package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirelens/incentive-cli/internal/source"
)

func TestDetectHomeoffice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]any
		want bool
	}{
		{
			name: "company section flag",
			raw: map[string]any{
				"lists": map[string]any{
					"company": []any{
						[]any{"ACME GmbH", "Berlin", "Feste Anstellung, Homeoffice möglich"},
					},
				},
			},
			want: true,
		},
		{
			name: "mention in body text",
			raw: map[string]any{
				"paragraphs": []any{"Bei uns ist Homeoffice möglich."},
			},
			want: true,
		},
		{
			name: "no mention",
			raw: map[string]any{
				"paragraphs": []any{"Wir arbeiten vor Ort in Berlin."},
			},
			want: false,
		},
		{
			name: "homeoffice without qualifier",
			raw: map[string]any{
				"paragraphs": []any{"Homeoffice nach Absprache."},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectHomeoffice(source.NewRecord(tt.raw)))
		})
	}
}
