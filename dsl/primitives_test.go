package dsl_test

import (
	"regexp"
	"testing"

	bf "github.com/mikiasgoitom/better-form"
	g "github.com/mikiasgoitom/better-form/dsl"
)

func messages(iss bf.Issues) []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Message)
	}
	return out
}

func TestString_Checks(t *testing.T) {
	p := bf.Root().Key("password")
	s := g.String{MinLength: &g.Length{N: 8}, MaxLength: &g.Length{N: 12}, NonEmpty: "This field is required"}

	if v, iss := s.Check(p, "abcd1234"); len(iss) != 0 || v != "abcd1234" {
		t.Fatalf("expected ok, got v=%v iss=%v", v, iss)
	}

	_, iss := s.Check(p, "")
	got := messages(iss)
	if len(got) != 2 || got[0] != "Must be at least 8 characters" || got[1] != "This field is required" {
		t.Fatalf("unexpected messages %q", got)
	}
	if iss[0].Path.Pointer() != "/password" {
		t.Fatalf("unexpected path %s", iss[0].Path.Pointer())
	}

	_, iss = s.Check(p, 8)
	if len(iss) != 1 || iss[0].Code != bf.CodeInvalidType || iss[0].Message != "Expected string, received number" {
		t.Fatalf("expected invalid_type, got %v", iss)
	}
}

func TestString_RuneLength(t *testing.T) {
	s := g.String{MaxLength: &g.Length{N: 3}}
	if _, iss := s.Check(bf.Root(), "日本語"); len(iss) != 0 {
		t.Fatalf("three runes should fit, got %v", iss)
	}
}

func TestString_Formats(t *testing.T) {
	tests := []struct {
		name string
		node g.String
		in   string
		ok   bool
	}{
		{"pattern ok", g.String{Pattern: regexp.MustCompile(`^\d+$`)}, "123", true},
		{"pattern unanchored", g.String{Pattern: regexp.MustCompile(`\d`)}, "a1b", true},
		{"pattern fail", g.String{Pattern: regexp.MustCompile(`^\d+$`)}, "12a", false},
		{"email ok", g.String{Email: true}, "jane.doe+x@example.co", true},
		{"email no tld", g.String{Email: true}, "jane@localhost", false},
		{"email double dot", g.String{Email: true}, "jane..doe@example.com", false},
		{"email leading dot", g.String{Email: true}, ".jane@example.com", false},
		{"url ok", g.String{URL: true}, "https://example.com/a?b=c", true},
		{"url mailto", g.String{URL: true}, "mailto:jane@example.com", true},
		{"url no scheme", g.String{URL: true}, "example.com", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, iss := tc.node.Check(bf.Root(), tc.in)
			if (len(iss) == 0) != tc.ok {
				t.Fatalf("ok=%v expected, issues=%v", tc.ok, iss)
			}
		})
	}
}

func TestNumber_Checks(t *testing.T) {
	n := g.Number{Min: &g.Limit{Value: 0}, Max: &g.Limit{Value: 100}, Step: 5, TypeMessage: "Must be a number"}
	p := bf.Root().Key("quantity")

	if v, iss := n.Check(p, 15); len(iss) != 0 || v != float64(15) {
		t.Fatalf("15 should pass as float64, got v=%#v iss=%v", v, iss)
	}
	_, iss := n.Check(p, 12)
	if len(iss) != 1 || iss[0].Message != "Must align with step 5" || iss[0].Code != bf.CodeNotMultipleOf {
		t.Fatalf("12 should fail step alignment, got %v", iss)
	}
	_, iss = n.Check(p, 105.0)
	if len(iss) != 1 || iss[0].Message != "Must be less than or equal to 100" {
		t.Fatalf("unexpected %v", iss)
	}
	_, iss = n.Check(p, "15")
	if len(iss) != 1 || iss[0].Message != "Must be a number" {
		t.Fatalf("string must not coerce, got %v", iss)
	}
}

func TestNumber_StepBase(t *testing.T) {
	n := g.Number{Step: 0.5, StepBase: 0.25}
	if _, iss := n.Check(bf.Root(), 1.75); len(iss) != 0 {
		t.Fatalf("1.75 is aligned on 0.25 + k*0.5, got %v", iss)
	}
	if _, iss := n.Check(bf.Root(), 1.5); len(iss) == 0 {
		t.Fatalf("1.5 is not aligned")
	}
}

func TestBool(t *testing.T) {
	if v, iss := (g.Bool{}).Check(bf.Root(), false); len(iss) != 0 || v != false {
		t.Fatalf("false should pass, got %v %v", v, iss)
	}
	_, iss := (g.Bool{TypeMessage: "Must be a boolean"}).Check(bf.Root(), "true")
	if len(iss) != 1 || iss[0].Message != "Must be a boolean" {
		t.Fatalf("unexpected %v", iss)
	}
	_, iss = (g.Bool{}).Check(bf.Root(), 1)
	if len(iss) != 1 || iss[0].Message != "Expected boolean, received number" {
		t.Fatalf("unexpected %v", iss)
	}
}

func TestTemporal(t *testing.T) {
	tests := []struct {
		name string
		node g.Node
		in   any
		msg  string
	}{
		{"date ok", g.Date{}, "2024-02-29", ""},
		{"date with time", g.Date{}, "2024-02-29T10:00:00Z", ""},
		{"date empty", g.Date{}, "", "Date is required"},
		{"date invalid", g.Date{}, "2023-02-30", "Must be a valid ISO date string"},
		{"date garbage", g.Date{}, "tomorrow", "Must be a valid ISO date string"},
		{"datetime ok", g.DateTime{}, "2024-01-02T03:04:05Z", ""},
		{"datetime fraction", g.DateTime{}, "2024-01-02T03:04:05.123Z", ""},
		{"datetime offset", g.DateTime{}, "2024-01-02T03:04:05+09:00", "Invalid datetime"},
		{"datetime date only", g.DateTime{}, "2024-01-02", "Invalid datetime"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, iss := tc.node.Check(bf.Root(), tc.in)
			if tc.msg == "" {
				if len(iss) != 0 || v != tc.in {
					t.Fatalf("expected ok, got v=%v iss=%v", v, iss)
				}
				return
			}
			if len(iss) != 1 || iss[0].Message != tc.msg {
				t.Fatalf("expected %q, got %v", tc.msg, iss)
			}
		})
	}
}
