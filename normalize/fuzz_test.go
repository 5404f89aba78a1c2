package normalize

import (
	"strings"
	"testing"
)

func FuzzNormalize(f *testing.F) {
	f.Add("great service great")
	f.Add("terrible wait")
	f.Add("Services!")
	f.Add("")
	f.Add("   ")
	f.Add("ｇｒｅａｔ ＳＥＲＶＩＣＥ")
	f.Add("Спасибо за обслуживание")
	f.Add("😀😀 €100")
	f.Add("\xff\xfe")
	f.Add("\x00")
	f.Add("I waited\t\t45   minutes")
	f.Add("İstanbul ß ﬁ")

	normalizers := []Normalizer{
		NewNormalizer(testLemmas, ScopeDocument),
		NewNormalizer(testLemmas, ScopeWord),
		NewNormalizer(nil, ScopeDocument),
	}

	f.Fuzz(func(t *testing.T, s string) {
		for _, n := range normalizers {
			result := n.Normalize(s)

			// Idempotency: applying twice must produce the same result.
			if second := n.Normalize(result); second != result {
				t.Errorf("not idempotent:\ninput:  %q\nfirst:  %q\nsecond: %q", s, result, second)
			}

			// Alphabet: lowercase ASCII letters, digits and single inner spaces.
			if strings.HasPrefix(result, " ") || strings.HasSuffix(result, " ") || strings.Contains(result, "  ") {
				t.Errorf("bad spacing: %q -> %q", s, result)
			}
			for _, r := range result {
				if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ') {
					t.Errorf("unexpected rune %q in %q (input %q)", r, result, s)
				}
			}
		}
	})
}
