package question

import (
	"testing"

	"edumuse/internal/acquire"
)

func TestInferIntent(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{text: "Define photosynthesis", want: IntentDefinition},
		{text: "what is the capital of France?", want: IntentDefinition},
		{text: "WHO IS Marie Curie", want: IntentDefinition},
		{text: "Please explain quantum tunneling", want: IntentDefinition},
		{text: "When did the French Revolution start?", want: IntentFactLookup},
		{text: "capital of France", want: IntentFactLookup},
		{text: "", want: IntentFactLookup},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			q := Analyze(tc.text, nil)
			if q.Intent != tc.want {
				t.Fatalf("Analyze(%q).Intent = %q, want %q", tc.text, q.Intent, tc.want)
			}
		})
	}
}

func TestAnalyzeCarriesSourceAndText(t *testing.T) {
	src := &acquire.Acquisition{Text: "body"}
	q := Analyze("what is gravity", src)

	if q.Text != "what is gravity" {
		t.Fatalf("Text = %q", q.Text)
	}
	if q.Source != src {
		t.Fatal("Source pointer not carried through")
	}
	if q.Entities == nil || len(q.Entities) != 0 {
		t.Fatalf("Entities = %#v, want empty non-nil list", q.Entities)
	}
}
