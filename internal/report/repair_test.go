package report

import (
	"log/slog"
	"os"
	"reflect"
	"testing"

	"newslens/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func day(volume any, topics ...types.SubTopic) types.DailyTrend {
	return types.DailyTrend{Date: "2025-06-05", Volume: volume, SubTopics: topics}
}

func counts(d types.DailyTrend) []int {
	out := make([]int, len(d.SubTopics))
	for i, st := range d.SubTopics {
		out[i] = st.Count.(int)
	}
	return out
}

func percents(d types.DailyTrend) []float64 {
	out := make([]float64, len(d.SubTopics))
	for i, st := range d.SubTopics {
		out[i] = st.Percent
	}
	return out
}

func TestRepairAppendsOtherOnUnderCount(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(10,
		types.SubTopic{Name: "규제", Count: 4},
		types.SubTopic{Name: "투자", Count: 3},
	)}}

	Repair(r, testLogger)

	d := r.DailyTrends[0]
	if got, want := counts(d), []int{4, 3, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("counts = %v, want %v", got, want)
	}
	if d.SubTopics[2].Name != "기타" {
		t.Errorf("appended topic name = %q", d.SubTopics[2].Name)
	}
	if got, want := percents(d), []float64{40.0, 30.0, 30.0}; !reflect.DeepEqual(got, want) {
		t.Errorf("percents = %v, want %v", got, want)
	}
}

func TestRepairReusesExistingOtherTopic(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(10,
		types.SubTopic{Name: "규제", Count: 4},
		types.SubTopic{Name: "기타", Count: 2},
	)}}

	Repair(r, testLogger)

	d := r.DailyTrends[0]
	if len(d.SubTopics) != 2 {
		t.Fatalf("got %d topics, want existing 기타 reused, not appended", len(d.SubTopics))
	}
	if got := d.SubTopics[1].Count.(int); got != 6 {
		t.Errorf("기타 count = %d, want 6", got)
	}
}

func TestRepairClampsLargestOnOverCount(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(10,
		types.SubTopic{Name: "규제", Count: 8},
		types.SubTopic{Name: "투자", Count: 5},
	)}}

	Repair(r, testLogger)

	d := r.DailyTrends[0]
	if got, want := counts(d), []int{5, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("counts = %v, want %v", got, want)
	}
	if got, want := percents(d), []float64{50.0, 50.0}; !reflect.DeepEqual(got, want) {
		t.Errorf("percents = %v, want %v", got, want)
	}
}

func TestRepairNeverGoesNegative(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(1,
		types.SubTopic{Name: "규제", Count: 4},
		types.SubTopic{Name: "투자", Count: 3},
	)}}

	Repair(r, testLogger)

	total := 0
	for _, n := range counts(r.DailyTrends[0]) {
		if n < 0 {
			t.Fatalf("negative count after repair: %v", counts(r.DailyTrends[0]))
		}
		total += n
	}
	if total != 1 {
		t.Errorf("counts sum to %d, want volume 1", total)
	}
}

func TestRepairSynthesizesOtherForEmptyBreakdown(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(7)}}

	Repair(r, testLogger)

	d := r.DailyTrends[0]
	if len(d.SubTopics) != 1 {
		t.Fatalf("got %d topics, want 1 synthesized", len(d.SubTopics))
	}
	st := d.SubTopics[0]
	if st.Name != "기타" || st.Count.(int) != 7 || st.Percent != 100.0 {
		t.Errorf("synthesized topic = %+v", st)
	}
}

func TestRepairCoercesStringNumbers(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day("10",
		types.SubTopic{Name: "규제", Count: "6"},
		types.SubTopic{Name: "투자", Count: float64(4)},
	)}}

	Repair(r, testLogger)

	d := r.DailyTrends[0]
	if got := d.Volume.(int); got != 10 {
		t.Fatalf("volume = %v, want int 10", d.Volume)
	}
	if got, want := counts(d), []int{6, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("counts = %v, want %v", got, want)
	}
}

func TestRepairSkipsUncoercibleVolume(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{
		day("약 30건", types.SubTopic{Name: "규제", Count: 4}),
		day(10, types.SubTopic{Name: "투자", Count: 3}),
	}}

	Repair(r, testLogger)

	// The broken day is left exactly as produced.
	if got := r.DailyTrends[0].Volume.(string); got != "약 30건" {
		t.Errorf("skipped day's volume mutated to %v", r.DailyTrends[0].Volume)
	}
	if got := r.DailyTrends[0].SubTopics[0].Count.(int); got != 4 {
		t.Errorf("skipped day's counts mutated to %v", r.DailyTrends[0].SubTopics[0].Count)
	}
	// The healthy day is still repaired.
	if got, want := counts(r.DailyTrends[1]), []int{3, 7}; !reflect.DeepEqual(got, want) {
		t.Errorf("healthy day counts = %v, want %v", got, want)
	}
}

func TestRepairRetainsUnparseableCounts(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(5,
		types.SubTopic{Name: "규제", Count: "다수"},
		types.SubTopic{Name: "투자", Count: 2},
	)}}

	Repair(r, testLogger)

	d := r.DailyTrends[0]
	if len(d.SubTopics) != 3 {
		t.Fatalf("got %d topics, want unparseable topic retained plus 기타", len(d.SubTopics))
	}
	if got, want := counts(d), []int{0, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("counts = %v, want %v", got, want)
	}
}

func TestRepairIdempotent(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(10,
		types.SubTopic{Name: "규제", Count: 4},
		types.SubTopic{Name: "투자", Count: 3},
	)}}

	Repair(r, testLogger)
	once := make([]types.DailyTrend, len(r.DailyTrends))
	copy(once, r.DailyTrends)
	onceCounts := counts(once[0])
	oncePercents := percents(once[0])

	Repair(r, testLogger)

	if got := counts(r.DailyTrends[0]); !reflect.DeepEqual(got, onceCounts) {
		t.Errorf("second repair changed counts: %v -> %v", onceCounts, got)
	}
	if got := percents(r.DailyTrends[0]); !reflect.DeepEqual(got, oncePercents) {
		t.Errorf("second repair changed percents: %v -> %v", oncePercents, got)
	}
	if got := len(r.DailyTrends[0].SubTopics); got != len(once[0].SubTopics) {
		t.Errorf("second repair changed topic list length: %d -> %d", len(once[0].SubTopics), got)
	}
}

func TestRepairZeroVolumeZeroPercents(t *testing.T) {
	r := &types.Report{DailyTrends: []types.DailyTrend{day(0,
		types.SubTopic{Name: "규제", Count: 3},
	)}}

	Repair(r, testLogger)

	d := r.DailyTrends[0]
	if got := d.SubTopics[0].Count.(int); got != 0 {
		t.Errorf("count = %d, want clamped to 0", got)
	}
	if d.SubTopics[0].Percent != 0 {
		t.Errorf("percent = %v, want 0 for zero volume", d.SubTopics[0].Percent)
	}
}

func TestRepairIgnoresErrorReports(t *testing.T) {
	r := &types.Report{
		Error:       "model not found",
		DailyTrends: []types.DailyTrend{day("bad")},
	}

	Repair(r, testLogger)

	if _, ok := r.DailyTrends[0].Volume.(string); !ok {
		t.Errorf("error-shaped report was mutated")
	}
}
