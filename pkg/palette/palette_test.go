package palette

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Palette
	}{
		{name: "comma separated", input: "#FF5733, #C70039, #900C3F", want: Palette{"#FF5733", "#C70039", "#900C3F"}},
		{name: "case preserved", input: "#ff5733 #AbCdEf", want: Palette{"#ff5733", "#AbCdEf"}},
		{name: "surrounding prose", input: "Sure! Here you go: #112233 and then #445566.", want: Palette{"#112233", "#445566"}},
		{name: "duplicates kept", input: "#000000,#000000", want: Palette{"#000000", "#000000"}},
		{name: "eight digit token keeps first six", input: "#11223344", want: Palette{"#112233"}},
		{name: "adjacent tokens", input: "#111111#222222", want: Palette{"#111111", "#222222"}},
		{name: "short hex ignored", input: "#FFF, #12345", want: nil},
		{name: "missing hash ignored", input: "FF5733", want: nil},
		{name: "non hex digits ignored", input: "#GGGGGG", want: nil},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Extract(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractDoesNotTruncateToRequestedCount(t *testing.T) {
	reply := strings.Repeat("#ABCDEF, ", 12)
	if got := len(Extract(reply)); got != 12 {
		t.Fatalf("len(Extract) = %d, want 12", got)
	}
}

func TestParseUsesFallbackWhenNothingMatches(t *testing.T) {
	got, fallback := Parse("I cannot generate colors.")
	if !fallback {
		t.Fatal("expected fallback flag")
	}

	want := Palette{"#D8BFD8", "#E0FFFF", "#FFE4C4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse fallback = %#v, want %#v", got, want)
	}
}

func TestParseReturnsMatches(t *testing.T) {
	got, fallback := Parse("#FF5733, #C70039, #900C3F")
	if fallback {
		t.Fatal("unexpected fallback")
	}
	if got.String() != "#FF5733, #C70039, #900C3F" {
		t.Fatalf("Parse = %q", got.String())
	}
}

func TestFallbackReturnsIndependentCopies(t *testing.T) {
	first := Fallback()
	first[0] = "#000000"

	if second := Fallback(); second[0] != "#D8BFD8" {
		t.Fatalf("fallback mutated through copy: %v", second)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("sunset", 10)
	if !strings.Contains(prompt, "exactly 10 HEX color codes") {
		t.Fatalf("prompt missing count: %q", prompt)
	}
	if !strings.Contains(prompt, `the theme: "sunset"`) {
		t.Fatalf("prompt missing theme: %q", prompt)
	}
	if !strings.Contains(prompt, "No text, no explanation.") {
		t.Fatalf("prompt missing format instruction: %q", prompt)
	}

	if empty := BuildPrompt("", 5); !strings.Contains(empty, `the theme: ""`) {
		t.Fatalf("empty theme not inserted verbatim: %q", empty)
	}
}

func TestColorIsLight(t *testing.T) {
	tests := []struct {
		color Color
		want  bool
	}{
		{color: "#FFFFFF", want: true},
		{color: "#FFE4C4", want: true},
		{color: "#000000", want: false},
		{color: "#900C3F", want: false},
		{color: "not-a-color", want: true},
	}

	for _, tt := range tests {
		if got := tt.color.IsLight(); got != tt.want {
			t.Fatalf("Color(%q).IsLight() = %v, want %v", tt.color, got, tt.want)
		}
	}
}
