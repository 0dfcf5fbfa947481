package utils

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		restrict bool
		want     string
	}{
		{"slash always removed", "a/b/c", false, "abc"},
		{"restricted chars kept by default", `what? <now>`, false, "what? <now>"},
		{"restricted chars removed", `what? <now>`, true, "what now"},
		{"full restricted set", `a?b<c>d\e:f*g|h"i^j`, true, "abcdefghij"},
		{"mixed slash and restricted", `a/b:c`, true, "abc"},
		{"empty", "", true, ""},
		{"unicode preserved", "夜明け/前", false, "夜明け前"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input, tt.restrict)
			if got != tt.want {
				t.Errorf("Sanitize(%q, %v) = %q, want %q", tt.input, tt.restrict, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{`Erma [91561]`, `a/b?c<d`, "plain title"}
	for _, restrict := range []bool{false, true} {
		for _, in := range inputs {
			once := Sanitize(in, restrict)
			twice := Sanitize(once, restrict)
			if once != twice {
				t.Errorf("Sanitize not idempotent for %q (restrict=%v): %q != %q", in, restrict, once, twice)
			}
		}
	}
}

func TestPadIndex(t *testing.T) {
	tests := []struct {
		index, total int
		want         string
	}{
		{7, 125, "007"},
		{125, 125, "125"},
		{1, 9, "1"},
		{1, 10, "01"},
		{3, 3, "3"},
		{12, 1000, "0012"},
	}

	for _, tt := range tests {
		if got := PadIndex(tt.index, tt.total); got != tt.want {
			t.Errorf("PadIndex(%d, %d) = %q, want %q", tt.index, tt.total, got, tt.want)
		}
	}
}

func TestSeriesDirName(t *testing.T) {
	if got := SeriesDirName("Erma", "91561", false); got != "Erma [91561]" {
		t.Errorf("SeriesDirName = %q, want %q", got, "Erma [91561]")
	}

	// Same title, different id must not collide.
	a := SeriesDirName("Erma", "91561", false)
	b := SeriesDirName("Erma", "91562", false)
	if a == b {
		t.Errorf("Distinct ids collided on %q", a)
	}

	if got := SeriesDirName("What? Now", "1", true); got != "What Now [1]" {
		t.Errorf("SeriesDirName restrict = %q, want %q", got, "What Now [1]")
	}
}

func TestImageFileName(t *testing.T) {
	got := ImageFileName(7, 125, 2, 14, "Pilot", "jpg", false)
	if got != "007-02-Pilot.jpg" {
		t.Errorf("ImageFileName = %q, want %q", got, "007-02-Pilot.jpg")
	}

	got = ImageFileName(1, 3, 1, 2, "A/B", "png", false)
	if got != "1-1-AB.png" {
		t.Errorf("ImageFileName = %q, want %q", got, "1-1-AB.png")
	}
}

func TestProseFileName(t *testing.T) {
	got := ProseFileName(2, 3, "Chapter Two", false)
	if got != "2-Chapter Two.txt" {
		t.Errorf("ProseFileName = %q, want %q", got, "2-Chapter Two.txt")
	}

	got = ProseFileName(10, 100, `Why?`, true)
	if got != "010-Why.txt" {
		t.Errorf("ProseFileName restrict = %q, want %q", got, "010-Why.txt")
	}
}

func TestImageExt(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://us-a.tapas.io/pc/3a/abc.jpg", "jpg"},
		{"https://us-a.tapas.io/pc/3a/abc.png", "png"},
		{"https://example.com/image", "jpg"},
		{"https://example.com/dir.d/image", "jpg"},
		{"://not a url", "jpg"},
		{"https://example.com/a.webp", "webp"},
	}

	for _, tt := range tests {
		if got := ImageExt(tt.url); got != tt.want {
			t.Errorf("ImageExt(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
