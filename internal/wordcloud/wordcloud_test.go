package wordcloud

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(DefaultStopwords)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace", "   \n\t", nil},
		{"stopwords dropped", "the virus and the host", []string{"virus", "host"}},
		{"lowercased", "Coronavirus SARS", []string{"coronavirus", "sars"}},
		{"numbers dropped, mixed kept", "In 2020 covid-19 spread", []string{"covid-19", "spread"}},
		{"single letters dropped", "a b c viral", []string{"viral"}},
		{"possessive trimmed", "Wuhan's outbreak", []string{"wuhan", "outbreak"}},
		{"nfkc folds ligatures", "\ufb01ndings", []string{"findings"}},
		{"jats markup stripped", "<jats:p>Viral<jats:italic>load</jats:italic></jats:p>", []string{"viral", "load"}},
		{"entities decoded", "cells &amp; tissues", []string{"cells", "tissues"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<p>para</p>", " para "},
		{"a &lt; b", "a < b"},
		{"p < 0.05", "p < 0.05"},
		{"<jats:title>Abstract</jats:title><jats:p>Body", " Abstract  Body"},
	}
	for _, tt := range tests {
		if got := StripMarkup(tt.in); got != tt.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFrequencies(t *testing.T) {
	got := Frequencies([]string{"virus", "host", "virus", "cell", "host", "virus"})
	want := []WordCount{
		{"virus", 3},
		{"host", 2},
		{"cell", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies() = %v, want %v", got, want)
	}

	t.Run("ties broken alphabetically", func(t *testing.T) {
		got := Frequencies([]string{"zeta", "alpha", "mu"})
		words := []string{got[0].Word, got[1].Word, got[2].Word}
		if !reflect.DeepEqual(words, []string{"alpha", "mu", "zeta"}) {
			t.Errorf("order = %v, want alphabetical", words)
		}
	})
}

func TestGenerate_Refusals(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		opts       Options
		wantReason string
	}{
		{"empty text", "", DefaultOptions(), ReasonEmptyText},
		{"whitespace only", "  \n  ", DefaultOptions(), ReasonEmptyText},
		{"only stopwords", "the and of", DefaultOptions(), ReasonEmptyText},
		{"negative width", "virus", Options{Width: -1, Height: 100}, ReasonBadSize},
		{"canvas too small", "virus", Options{Width: 400, Height: 12}, ReasonNothingFits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(tt.text, tt.opts)
			if !res.Refused() {
				t.Fatal("Refused() = false, want true")
			}
			if res.Reason() != tt.wantReason {
				t.Errorf("Reason() = %q, want %q", res.Reason(), tt.wantReason)
			}
			if c, ok := res.Cloud(); ok || c != nil {
				t.Errorf("Cloud() = %v, %v, want nil, false", c, ok)
			}
		})
	}
}

func TestGenerate_Image(t *testing.T) {
	text := strings.Repeat("coronavirus ", 10) + strings.Repeat("vaccine ", 5) + "spike protein"
	opts := DefaultOptions()

	res := Generate(text, opts)
	cloud, ok := res.Cloud()
	if !ok {
		t.Fatalf("Generate() refused: %s", res.Reason())
	}

	if cloud.Width != 800 || cloud.Height != 400 {
		t.Errorf("size = %dx%d, want 800x400", cloud.Width, cloud.Height)
	}
	if len(cloud.Words) != 4 {
		t.Fatalf("placed %d words, want 4", len(cloud.Words))
	}
	if cloud.Words[0].Word != "coronavirus" {
		t.Errorf("largest word = %q, want coronavirus", cloud.Words[0].Word)
	}
	for i := 1; i < len(cloud.Words); i++ {
		if cloud.Words[i].FontSize > cloud.Words[i-1].FontSize {
			t.Errorf("word %d larger than word %d", i, i-1)
		}
	}
	for _, w := range cloud.Words {
		if w.X < 0 || w.Y < 0 || w.X > float64(cloud.Width) || w.Y > float64(cloud.Height) {
			t.Errorf("word %q placed outside canvas at (%v, %v)", w.Word, w.X, w.Y)
		}
	}

	t.Run("deterministic", func(t *testing.T) {
		again, _ := Generate(text, opts).Cloud()
		if !reflect.DeepEqual(cloud, again) {
			t.Error("Generate() is not deterministic")
		}
	})

	t.Run("max words respected", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxWords = 2
		c, ok := Generate(text, opts).Cloud()
		if !ok {
			t.Fatal("Generate() refused")
		}
		if len(c.Words) != 2 {
			t.Errorf("placed %d words, want 2", len(c.Words))
		}
	})
}

func TestCloudSVG(t *testing.T) {
	c, ok := Generate("viral <load> kinetics", Options{}).Cloud()
	if !ok {
		t.Fatal("Generate() refused")
	}

	svg, err := c.SVG()
	if err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`width="800"`,
		`fill="white"`,
		`font-family="DejaVu Sans Mono"`,
		">viral</text>",
		">kinetics</text>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<load>") {
		t.Error("SVG should not contain unescaped markup from input")
	}
}
