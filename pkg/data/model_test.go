package data

import "testing"

func TestSeriesModel(t *testing.T) {
	series := Series{
		ID:     "91561",
		Title:  "Erma",
		Author: "Brandon Santiago",
		Episodes: []Episode{
			{ID: 1886024, Title: "Pilot", Accessible: true, Index: 1},
			{ID: 1886063, Title: "Family Reunion", Accessible: false, Index: 2},
		},
	}

	if series.ID != "91561" {
		t.Errorf("Expected ID '91561', got '%s'", series.ID)
	}

	if series.Author != "Brandon Santiago" {
		t.Errorf("Expected Author 'Brandon Santiago', got '%s'", series.Author)
	}

	if len(series.Episodes) != 2 {
		t.Fatalf("Expected 2 episodes, got %d", len(series.Episodes))
	}

	if series.Episodes[1].Index != 2 {
		t.Errorf("Expected second episode index 2, got %d", series.Episodes[1].Index)
	}

	if series.Episodes[1].Accessible {
		t.Error("Expected second episode to be inaccessible")
	}
}

func TestNewImageGallery(t *testing.T) {
	urls := []string{
		"https://example.com/a.jpg",
		"https://example.com/b.png",
	}

	payload := NewImageGallery(urls)

	if payload.Kind != ImageGallery {
		t.Errorf("Expected kind %v, got %v", ImageGallery, payload.Kind)
	}

	if len(payload.Images) != 2 {
		t.Errorf("Expected 2 images, got %d", len(payload.Images))
	}

	if len(payload.Paragraphs) != 0 {
		t.Errorf("Expected no paragraphs, got %d", len(payload.Paragraphs))
	}
}

func TestNewProse(t *testing.T) {
	payload := NewProse([]string{"First paragraph.", "Second paragraph."})

	if payload.Kind != Prose {
		t.Errorf("Expected kind %v, got %v", Prose, payload.Kind)
	}

	if got := payload.Text(); got != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("Unexpected joined text: %q", got)
	}
}

func TestEmptyProse(t *testing.T) {
	payload := NewProse(nil)

	if payload.Kind != Prose {
		t.Errorf("Expected kind %v, got %v", Prose, payload.Kind)
	}

	if payload.Text() != "" {
		t.Errorf("Expected empty text, got %q", payload.Text())
	}
}

func TestPayloadKindString(t *testing.T) {
	if ImageGallery.String() != "images" {
		t.Errorf("Expected 'images', got %q", ImageGallery.String())
	}

	if Prose.String() != "prose" {
		t.Errorf("Expected 'prose', got %q", Prose.String())
	}
}
