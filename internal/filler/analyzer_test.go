package filler

import "testing"

func TestAnalyzeEmpty(t *testing.T) {
	r := Analyze("")
	if r.TotalWordCount != 0 {
		t.Errorf("totalWordCount = %d, want 0", r.TotalWordCount)
	}
	if r.TotalFillerCount != 0 {
		t.Errorf("totalFillerCount = %d, want 0", r.TotalFillerCount)
	}
	if r.FillerRatioPercent != 0 {
		t.Errorf("fillerRatioPercent = %v, want 0", r.FillerRatioPercent)
	}
}

func TestAnalyzeWhitespaceOnly(t *testing.T) {
	r := Analyze("   \n\t  ")
	if r.TotalWordCount != 0 {
		t.Errorf("totalWordCount = %d, want 0", r.TotalWordCount)
	}
	if r.FillerRatioPercent != 0 {
		t.Errorf("fillerRatioPercent = %v, want 0", r.FillerRatioPercent)
	}
}

func TestAnalyzeCountsFillers(t *testing.T) {
	r := Analyze("um, like, this is um great")

	if got := r.CountsByWord["um"]; got != 2 {
		t.Errorf("counts[um] = %d, want 2", got)
	}
	if got := r.CountsByWord["like"]; got != 1 {
		t.Errorf("counts[like] = %d, want 1", got)
	}
	if r.TotalWordCount != 6 {
		t.Errorf("totalWordCount = %d, want 6", r.TotalWordCount)
	}
}

func TestAnalyzeWholeWordOnly(t *testing.T) {
	// "like" must not match inside "likely", "um" not inside "umbrella".
	r := Analyze("most likely an umbrella")

	if got := r.CountsByWord["like"]; got != 0 {
		t.Errorf("counts[like] = %d, want 0", got)
	}
	if got := r.CountsByWord["um"]; got != 0 {
		t.Errorf("counts[um] = %d, want 0", got)
	}
	if r.TotalFillerCount != 0 {
		t.Errorf("totalFillerCount = %d, want 0", r.TotalFillerCount)
	}
}

func TestAnalyzeCaseInsensitive(t *testing.T) {
	r := Analyze("Um... LIKE, Actually")

	if got := r.CountsByWord["um"]; got != 1 {
		t.Errorf("counts[um] = %d, want 1", got)
	}
	if got := r.CountsByWord["like"]; got != 1 {
		t.Errorf("counts[like] = %d, want 1", got)
	}
	if got := r.CountsByWord["actually"]; got != 1 {
		t.Errorf("counts[actually] = %d, want 1", got)
	}
}

func TestAnalyzePhrases(t *testing.T) {
	r := Analyze("you know, I mean it was kind of fine")

	if got := r.CountsByWord["you know"]; got != 1 {
		t.Errorf("counts[you know] = %d, want 1", got)
	}
	if got := r.CountsByWord["i mean"]; got != 1 {
		t.Errorf("counts[i mean] = %d, want 1", got)
	}
	if got := r.CountsByWord["kind of"]; got != 1 {
		t.Errorf("counts[kind of] = %d, want 1", got)
	}
}

func TestAnalyzePhraseSpansWhitespaceRuns(t *testing.T) {
	r := Analyze("you  \n know what happened")

	if got := r.CountsByWord["you know"]; got != 1 {
		t.Errorf("counts[you know] = %d, want 1", got)
	}
}

func TestAnalyzeOverlappingEntriesCountIndependently(t *testing.T) {
	// "so" is both a filler on its own and the lead word of the configured
	// phrase, so one occurrence feeds both counts.
	r := AnalyzeWith("so to speak", []string{"so to speak"})

	if got := r.CountsByWord["so"]; got != 1 {
		t.Errorf("counts[so] = %d, want 1", got)
	}
	if got := r.CountsByWord["so to speak"]; got != 1 {
		t.Errorf("counts[so to speak] = %d, want 1", got)
	}
	if r.TotalFillerCount != 2 {
		t.Errorf("totalFillerCount = %d, want 2", r.TotalFillerCount)
	}
}

func TestAnalyzeRatioOneDecimal(t *testing.T) {
	// 1 filler in 3 words = 33.333...% -> 33.3
	r := Analyze("um nothing else")
	if r.FillerRatioPercent != 33.3 {
		t.Errorf("fillerRatioPercent = %v, want 33.3", r.FillerRatioPercent)
	}
}

func TestAnalyzeFillerCountBelowSumOfCounts(t *testing.T) {
	r := Analyze("um like you know well right so okay")

	sum := 0
	for _, n := range r.CountsByWord {
		sum += n
	}
	if r.TotalFillerCount > sum {
		t.Errorf("totalFillerCount = %d exceeds per-word sum %d", r.TotalFillerCount, sum)
	}
}

func TestAnalyzeWithDropsEmptyAndDuplicateExtras(t *testing.T) {
	r := AnalyzeWith("um whatever", []string{"", "um", "whatever"})

	if got := r.CountsByWord["um"]; got != 1 {
		t.Errorf("counts[um] = %d, want 1", got)
	}
	if got := r.CountsByWord["whatever"]; got != 1 {
		t.Errorf("counts[whatever] = %d, want 1", got)
	}
	if r.TotalFillerCount != 2 {
		t.Errorf("totalFillerCount = %d, want 2", r.TotalFillerCount)
	}
}
