package vor

import (
	"math"
	"testing"
	"time"

	"github.com/mashley00/venue-webhook/internal/database"
)

func TestAnalyze(t *testing.T) {
	lastUse := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // 30 days later

	events := []database.Event{
		{
			Venue: "Crowne Plaza", City: "tampa", State: "fl",
			EventDate:        lastUse,
			GrossRegistrants: fptr(40), CostPerVerifiedHH: fptr(62),
		},
		{
			Venue: "crowne plaza", City: "tampa", State: "fl",
			EventDate:        time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			GrossRegistrants: fptr(60), CostPerVerifiedHH: fptr(58),
		},
		{
			Venue: "Budget Hall", City: "tampa", State: "fl",
			EventDate:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			GrossRegistrants: fptr(20),
		},
	}

	analysis, err := Analyze(events, "tir", "tampa", "fl", asOf)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if analysis.Venue != "Crowne Plaza" {
		t.Errorf("modal venue = %q, want Crowne Plaza", analysis.Venue)
	}
	if analysis.Market != "Tampa, FL" {
		t.Errorf("market = %q", analysis.Market)
	}
	if analysis.Topic != "TAXES_IN_RETIREMENT_567" {
		t.Errorf("topic = %q", analysis.Topic)
	}
	if analysis.DaysSinceLastUse == nil || *analysis.DaysSinceLastUse != 30 {
		t.Errorf("days since last use = %v, want 30", analysis.DaysSinceLastUse)
	}
	if analysis.PredictedRegistrants == nil || *analysis.PredictedRegistrants != 50 {
		t.Errorf("predicted registrants = %v, want 50", analysis.PredictedRegistrants)
	}

	// mean CPR 60, drifting -0.014/day over 30 days
	want := 60 + cprDecaySlope*30
	if analysis.PredictedCPR == nil || math.Abs(*analysis.PredictedCPR-want) > 0.01 {
		t.Errorf("predicted CPR = %v, want %.2f", analysis.PredictedCPR, want)
	}

	if analysis.MediaOverlay != nil {
		t.Error("no FB data, overlay should be nil")
	}
}

func TestAnalyzeNoEvents(t *testing.T) {
	if _, err := Analyze(nil, "TIR", "Tampa", "FL", time.Now()); err != ErrNoMatchingEvents {
		t.Errorf("err = %v, want ErrNoMatchingEvents", err)
	}
}

func TestAnalyzeModalTieBreak(t *testing.T) {
	events := []database.Event{
		{Venue: "Zeta Hall"},
		{Venue: "Alpha Hall"},
	}

	analysis, err := Analyze(events, "EP", "Tampa", "FL", time.Now())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if analysis.Venue != "Alpha Hall" {
		t.Errorf("tie should resolve alphabetically, got %q", analysis.Venue)
	}
}

func TestMediaOverlay(t *testing.T) {
	events := []database.Event{
		{
			Venue:            "Crowne Plaza",
			FBImpressions:    fptr(100000),
			FBReach:          fptr(50000),
			CPM:              fptr(25),
			GrossRegistrants: fptr(50),
		},
	}

	overlay := mediaOverlay(events)
	if overlay == nil {
		t.Fatal("overlay should be computed from complete FB data")
	}

	if overlay.AvgFrequency != 2 {
		t.Errorf("frequency = %f, want 2", overlay.AvgFrequency)
	}
	if overlay.RegistrantsPer1K != 0.5 {
		t.Errorf("registrants per 1k = %f, want 0.5", overlay.RegistrantsPer1K)
	}
	if overlay.EstimatedCVR != 0.0005 {
		t.Errorf("cvr = %f, want 0.0005", overlay.EstimatedCVR)
	}
	if overlay.EstimatedMediaCPR != 50 {
		t.Errorf("media CPR = %f, want 50", overlay.EstimatedMediaCPR)
	}
	if overlay.AvgCPM != 25 {
		t.Errorf("cpm = %f, want 25", overlay.AvgCPM)
	}
}

func TestMediaOverlaySkipsIncompleteRows(t *testing.T) {
	events := []database.Event{
		{Venue: "A", FBImpressions: fptr(1000)},
		{Venue: "A", CPM: fptr(20)},
	}
	if overlay := mediaOverlay(events); overlay != nil {
		t.Errorf("incomplete rows should not produce an overlay: %+v", overlay)
	}
}
