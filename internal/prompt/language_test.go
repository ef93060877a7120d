package prompt

import "testing"

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"hola, como estas hoy?", "es"},
		{"bonjour, comment allez vous?", "fr"},
		{"hallo, wie geht es dir? danke!", "de"},
		{"ciao! grazie per tutto", "it"},
		{"ola, bom dia! como vai?", "pt"},
		{"hello there, how are you?", "en"},
		{"", "en"},
		{"x", "en"},
	}
	for _, c := range cases {
		if got := DetectLanguage(c.text); got != c.want {
			t.Fatalf("DetectLanguage(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
