package chart

import (
	"os"
	"testing"

	"VolProfiler/internal/model"
)

func TestRenderTemp(t *testing.T) {
	rec := &model.DailyVolatilityRecord{Day: "2026-08-30"}
	for i := range rec.Slots {
		rec.Slots[i] = 0.0001 * float64(i%10)
	}

	path, err := RenderTemp(rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer os.Remove(path)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}
