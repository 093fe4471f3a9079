// Package report post-processes model-produced analysis documents so
// their numbers reconcile with ground truth. The model's per-day
// article volume comes from deterministic counting and is treated as
// authoritative; its topic split is advisory and is force-fit onto the
// volume.
package report

import (
	"encoding/json"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"newslens/internal/types"
)

// otherTopicName labels the catch-all bucket injected when the model's
// breakdown under-counts a day.
const otherTopicName = "기타"

// Repair walks every daily trend and enforces, per day, that sub-topic
// counts sum exactly to the day's volume and percentages sum to ~100.
// Days whose volume cannot be coerced to an integer are left untouched.
// Repair is idempotent: a consistent report passes through unchanged.
func Repair(r *types.Report, logger *slog.Logger) {
	if r == nil || r.IsError() {
		return
	}
	for i := range r.DailyTrends {
		repairDay(&r.DailyTrends[i], logger)
	}
}

func repairDay(day *types.DailyTrend, logger *slog.Logger) {
	volume, ok := coerceInt(day.Volume)
	if !ok || volume < 0 {
		logger.Warn("daily volume not a usable integer, leaving day unrepaired",
			"date", day.Date, "volume", day.Volume)
		return
	}

	if len(day.SubTopics) == 0 {
		if volume > 0 {
			day.SubTopics = []types.SubTopic{{
				Name:    otherTopicName,
				Count:   volume,
				Percent: 100.0,
			}}
		}
		day.Volume = volume
		return
	}

	// Coerce counts in place; unparseable counts become 0 but the topic
	// stays in the list.
	currentSum := 0
	for i := range day.SubTopics {
		n, ok := coerceInt(day.SubTopics[i].Count)
		if !ok || n < 0 {
			n = 0
		}
		day.SubTopics[i].Count = n
		currentSum += n
	}

	switch diff := volume - currentSum; {
	case diff > 0:
		addToOtherTopic(day, diff)
	case diff < 0:
		absorbExcess(day, -diff, logger)
	}

	for i := range day.SubTopics {
		count := day.SubTopics[i].Count.(int)
		if volume > 0 {
			day.SubTopics[i].Percent = round1(float64(count) / float64(volume) * 100)
		} else {
			day.SubTopics[i].Percent = 0
		}
	}
	day.Volume = volume
}

// addToOtherTopic credits an under-count to an existing catch-all topic
// when one exists, appending a fresh one otherwise.
func addToOtherTopic(day *types.DailyTrend, diff int) {
	for i := range day.SubTopics {
		if isOtherTopic(day.SubTopics[i].Name) {
			day.SubTopics[i].Count = day.SubTopics[i].Count.(int) + diff
			return
		}
	}
	day.SubTopics = append(day.SubTopics, types.SubTopic{
		Name:  otherTopicName,
		Count: diff,
	})
}

// absorbExcess shaves an over-count off the largest topics first,
// clamping each at zero. A residual after zeroing everything means the
// volume itself is smaller than any honest split could be; that
// mismatch is logged and left rather than fabricating negative counts.
func absorbExcess(day *types.DailyTrend, excess int, logger *slog.Logger) {
	order := make([]int, len(day.SubTopics))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return day.SubTopics[order[a]].Count.(int) > day.SubTopics[order[b]].Count.(int)
	})

	for _, idx := range order {
		if excess <= 0 {
			break
		}
		count := day.SubTopics[idx].Count.(int)
		take := count
		if take > excess {
			take = excess
		}
		day.SubTopics[idx].Count = count - take
		excess -= take
	}
	if excess > 0 {
		logger.Warn("topic counts exceed daily volume even after zeroing",
			"date", day.Date, "residual", excess)
	}
}

func isOtherTopic(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "기타", "other", "others":
		return true
	}
	return false
}

// coerceInt accepts the numeric shapes model JSON actually produces:
// Go ints, JSON floats, json.Number, and digit strings.
func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
