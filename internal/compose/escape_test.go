package compose

import "testing"

func TestEscapeDollar(t *testing.T) {
	cases := map[string]string{
		"PATH=/usr/bin": "PATH=/usr/bin",
		"PASS=a$b":      "PASS=a$$b",
		"X=$$":          "X=$$$$",
		"${HOME}/x":     "$${HOME}/x",
		"":              "",
	}
	for in, want := range cases {
		if got := EscapeDollar(in); got != want {
			t.Fatalf("EscapeDollar(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsISODate(t *testing.T) {
	cases := map[string]bool{
		"2024-03-01":                true,
		"2024-03-01T10:20:30Z":      true,
		"2024-03-01T10:20:30.123Z":  true,
		"2024-03-01T10:20:30+02:00": true,
		"2024-03-01 10:20:30":       true,
		"2024-13-01":                false,
		"1.2.3":                     false,
		"v2024-03-01":               false,
		"":                          false,
	}
	for in, want := range cases {
		if got := IsISODate(in); got != want {
			t.Fatalf("IsISODate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLabelValue(t *testing.T) {
	v := labelValue("2024-03-01T10:20:30Z")
	if v.Style() != StyleSingleQuoted || v.Scalar() != "2024-03-01T10:20:30Z" {
		t.Fatalf("expected single-quoted date, got %v style %v", v.Scalar(), v.Style())
	}
	v = labelValue("cost=$5")
	if v.Style() != StyleDefault || v.Scalar() != "cost=$$5" {
		t.Fatalf("expected escaped plain label, got %v style %v", v.Scalar(), v.Style())
	}
}
