package whatsapp

import "testing"

func TestFormatMessageNoPlaceholders(t *testing.T) {
	template := "Olá! Tudo certo por aí?"
	out := FormatMessage(template, map[string]string{"name": "Acme"})
	if out != template {
		t.Fatalf("expected template unchanged, got %q", out)
	}
}

func TestFormatMessageRepeatedPlaceholder(t *testing.T) {
	out := FormatMessage("{a}-{a}", map[string]string{"a": "x"})
	if out != "x-x" {
		t.Fatalf("expected x-x, got %q", out)
	}
}

func TestFormatMessageUnresolvedLeftVerbatim(t *testing.T) {
	out := FormatMessage("Olá {name}, prazo: {deadline}", map[string]string{"name": "Acme"})
	if out != "Olá Acme, prazo: {deadline}" {
		t.Fatalf("got %q", out)
	}
}

func TestFormatMessageMultipleVariables(t *testing.T) {
	vars := map[string]string{
		"name":     "Acme",
		"progress": "50%",
	}
	out := FormatMessage("{name}: {progress}", vars)
	if out != "Acme: 50%" {
		t.Fatalf("got %q", out)
	}
}

func TestFormatMessageEmptyValue(t *testing.T) {
	out := FormatMessage("a{gap}b", map[string]string{"gap": ""})
	if out != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(11) 98765-4321", "5511987654321"},
		{"1187654321", "55111187654321"}, // 10 digits gets the 5511 prefix
		{"5511987654321", "5511987654321"},
		{"21987654321", "5521987654321"},
	}
	for _, c := range cases {
		if got := NormalizePhone(c.in); got != c.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
