package infobox

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		wikitext string
		want     map[string]string
	}{
		{
			name:     "no infobox",
			wikitext: "'''Batman''' is a superhero.",
			want:     map[string]string{},
		},
		{
			name: "simple fields",
			wikitext: `{{Infobox comics character
| character_name = Batman
| publisher      = [[DC Comics]]
| debut          = ''Detective Comics'' #27
}}
'''Batman''' is a superhero.`,
			want: map[string]string{
				"character_name": "Batman",
				"publisher":      "[[DC Comics]]",
				"debut":          "''Detective Comics'' #27",
			},
		},
		{
			name:     "piped link and nested template stay in value",
			wikitext: `{{Infobox person|name=Ada|birth_date={{birth date|1815|12|10}}|spouse=[[William King-Noel|William King]]}}`,
			want: map[string]string{
				"name":       "Ada",
				"birth_date": "{{birth date|1815|12|10}}",
				"spouse":     "[[William King-Noel|William King]]",
			},
		},
		{
			name:     "case insensitive and comments stripped",
			wikitext: "{{short description|x}}\n{{infobox city <!-- a | b = c -->\n| name = Paris <!-- capital -->\n| population = 2102650\n}}",
			want: map[string]string{
				"name":       "Paris",
				"population": "2102650",
			},
		},
		{
			name:     "first equals splits key from value",
			wikitext: "{{Infobox software|website={{URL|https://go.dev/?a=b}}|license=BSD}}",
			want: map[string]string{
				"website": "{{URL|https://go.dev/?a=b}}",
				"license": "BSD",
			},
		},
		{
			name:     "positional and empty keys ignored",
			wikitext: "{{Infobox thing|positional|=orphan|name=Thing}}",
			want: map[string]string{
				"name": "Thing",
			},
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.wikitext)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("field %q = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestParse_Unterminated(t *testing.T) {
	_, err := New().Parse("{{Infobox person|name=Ada|born={{birth date|1815}}")
	if !errors.Is(err, ErrUnterminated) {
		t.Errorf("expected ErrUnterminated, got %v", err)
	}
}
