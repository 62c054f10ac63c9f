// Package normalize converts raw stored contributor documents into the
// canonical rollup record.
//
// The store has carried two schemas over its history: newer documents use
// aggregate field names (totalCommits, totalReviews, ...) while older ones
// use flat singular counters (commits, reviews, ...). All knowledge of that
// heterogeneity lives here; nothing downstream sees raw documents.
//
// Decoding is pure and recovers locally: a missing or null count means zero,
// never an error. Only values that cannot be coerced to a number at all are
// rejected.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/standards-dev/propdash/internal/domain/model"
)

// Field pairs checked in precedence order: aggregate name first, legacy
// flat name as fallback.
var countFields = []struct {
	aggregate string
	legacy    string
	assign    func(*model.Totals, int64)
}{
	{"totalCommits", "commits", func(t *model.Totals, v int64) { t.Commits = v }},
	{"totalPRsOpened", "prsOpened", func(t *model.Totals, v int64) { t.PRsOpened = v }},
	{"totalPRsMerged", "prsMerged", func(t *model.Totals, v int64) { t.PRsMerged = v }},
	{"totalPRsClosed", "prsClosed", func(t *model.Totals, v int64) { t.PRsClosed = v }},
	{"totalReviews", "reviews", func(t *model.Totals, v int64) { t.Reviews = v }},
	{"totalComments", "comments", func(t *model.Totals, v int64) { t.Comments = v }},
	{"totalIssuesOpened", "issuesOpened", func(t *model.Totals, v int64) { t.IssuesOpened = v }},
}

// DecodeRollup converts one raw stored document into a ContributorRollup.
// The input map is never mutated.
func DecodeRollup(doc map[string]any) (model.ContributorRollup, error) {
	var r model.ContributorRollup

	r.Handle = firstString(doc, "handle", "username")
	if r.Handle == "" {
		return model.ContributorRollup{}, fmt.Errorf("%w: document has no handle", ErrMalformedRecord)
	}
	r.DisplayName = firstString(doc, "displayName", "name")
	if r.DisplayName == "" {
		r.DisplayName = r.Handle
	}
	r.AvatarURL = firstString(doc, "avatarUrl", "avatar")
	r.Status = firstString(doc, "activityStatus", "status")

	for _, f := range countFields {
		v, err := countValue(doc, f.aggregate, f.legacy)
		if err != nil {
			return model.ContributorRollup{}, fmt.Errorf("contributor %q: %w", r.Handle, err)
		}
		f.assign(&r.Totals, v)
	}

	if raw, ok := doc["avgResponseHours"]; ok && raw != nil {
		v, err := coerceFloat(raw)
		if err != nil {
			return model.ContributorRollup{}, fmt.Errorf("contributor %q: field avgResponseHours: %w", r.Handle, err)
		}
		r.AvgResponseHours = &v
	}

	timeline, err := decodeTimeline(doc["timeline"])
	if err != nil {
		return model.ContributorRollup{}, fmt.Errorf("contributor %q: %w", r.Handle, err)
	}
	r.Timeline = timeline

	return r, nil
}

// MetricsFromTotals maps lifetime totals onto a canonical metrics record,
// filling in the derived PRs sum. Score is left for the scoring package.
func MetricsFromTotals(t model.Totals) model.ContributorMetrics {
	return model.ContributorMetrics{
		Commits:      t.Commits,
		PRsOpened:    t.PRsOpened,
		PRsMerged:    t.PRsMerged,
		PRsClosed:    t.PRsClosed,
		Reviews:      t.Reviews,
		Comments:     t.Comments,
		IssuesOpened: t.IssuesOpened,
		PRs:          t.PRsOpened + t.PRsMerged + t.PRsClosed,
	}
}

// countValue resolves one counter with aggregate-over-legacy precedence.
// Missing or null resolves to zero.
func countValue(doc map[string]any, aggregate, legacy string) (int64, error) {
	if raw, ok := doc[aggregate]; ok && raw != nil {
		v, err := coerceCount(raw)
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", aggregate, err)
		}
		return v, nil
	}
	if raw, ok := doc[legacy]; ok && raw != nil {
		v, err := coerceCount(raw)
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", legacy, err)
		}
		return v, nil
	}
	return 0, nil
}

// coerceCount accepts the numeric encodings a JSON document store can
// produce. Anything else is a hard error; negative counts are clamped to
// zero since lifetime totals are non-negative by invariant.
func coerceCount(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return max(v, 0), nil
	case int:
		return max(int64(v), 0), nil
	case int32:
		return max(int64(v), 0), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: non-finite count %v", ErrMalformedRecord, v)
		}
		return max(int64(math.Round(v)), 0), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%w: unparseable number %q", ErrMalformedRecord, v.String())
			}
			return max(int64(math.Round(f)), 0), nil
		}
		return max(n, 0), nil
	default:
		return 0, fmt.Errorf("%w: count has type %T", ErrMalformedRecord, raw)
	}
}

func coerceFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: unparseable number %q", ErrMalformedRecord, v.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: value has type %T", ErrMalformedRecord, raw)
	}
}

// decodeTimeline converts the raw timeline array. Entries with an unknown
// kind or unparseable timestamp are skipped rather than failing the whole
// document; the timeline is advisory recent history, not a ledger.
func decodeTimeline(raw any) ([]model.ActivityEvent, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: timeline has type %T", ErrMalformedRecord, raw)
	}
	events := make([]model.ActivityEvent, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ev, ok := decodeEvent(entry)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeEvent(entry map[string]any) (model.ActivityEvent, bool) {
	kind := model.ActivityKind(firstString(entry, "kind", "type"))
	if !kind.Valid() {
		return model.ActivityEvent{}, false
	}
	repo := model.Repo(firstString(entry, "repo", "repository"))

	var ts time.Time
	switch v := entry["ts"].(type) {
	case time.Time:
		ts = v
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return model.ActivityEvent{}, false
		}
		ts = parsed
	default:
		// legacy documents used "timestamp"
		s, ok := entry["timestamp"].(string)
		if !ok {
			return model.ActivityEvent{}, false
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return model.ActivityEvent{}, false
		}
		ts = parsed
	}

	return model.ActivityEvent{Kind: kind, Repo: repo, TS: ts}, true
}

func firstString(doc map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := doc[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
