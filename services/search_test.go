package services

import (
	"testing"

	"hotelhub/dto"
	"hotelhub/models"
)

func TestNormalizeInput(t *testing.T) {
	for in, want := range map[string]string{
		"  JEJU ":  "jeju",
		"Café":     "cafe",
		"":         "",
		"Seoul 12": "seoul 12",
	} {
		if got := NormalizeInput(in); got != want {
			t.Errorf("NormalizeInput(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("seoul", "seoul"); got != 1 {
		t.Errorf("identical = %v", got)
	}
	if got := Similarity("", ""); got != 1 {
		t.Errorf("empty = %v", got)
	}
	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("disjoint = %v, want 0", got)
	}
	if near, far := Similarity("busan", "busann"), Similarity("busan", "gangwon"); near <= far || near <= similarityCutoff {
		t.Errorf("near=%v far=%v", near, far)
	}
}

func TestScoreHotels(t *testing.T) {
	summary := func(id uint, name, city string, rating float64) dto.HotelSummary {
		return dto.NewHotelSummary(models.Hotel{ID: id, Name: name, City: city, Rating: rating}, nil)
	}
	hotels := []dto.HotelSummary{
		summary(1, "Ocean Pearl", "Busan", 4.9),
		summary(2, "Seoul Inn", "Seoul", 3.0),
		summary(3, "Seoul Grand", "Seoul", 4.5),
		summary(4, "Mountain Lodge", "Gangwon", 4.0),
	}

	got := ScoreHotels("SEOUL", hotels)
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 2 {
		t.Errorf("order = %d,%d; want 3,2", got[0].ID, got[1].ID)
	}
	if got[0].Score != scoreNameContains+scoreCity {
		t.Errorf("score = %d", got[0].Score)
	}
	if hotels[2].Score != 0 {
		t.Error("input slice was modified")
	}
}
