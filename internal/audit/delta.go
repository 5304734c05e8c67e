package audit

import (
	"fmt"
	"sort"
)

const (
	scoreDeltaTarget   = 10
	scoreDeltaMaxItems = 8
)

type ScoreDeltaItem struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Points   int      `json:"points"`
}

// ScoreDelta is the shortest list of fixes that lifts the score by at least
// scoreDeltaTarget points, heaviest penalties first.
type ScoreDelta struct {
	Headline string           `json:"headline"`
	Gain     int              `json:"gain"`
	Items    []ScoreDeltaItem `json:"items"`
}

// PreviewScoreDelta returns nil when there is nothing to fix.
func PreviewScoreDelta(issues []Issue) *ScoreDelta {
	if len(issues) == 0 {
		return nil
	}

	ranked := append([]Issue(nil), issues...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Severity.Penalty() > ranked[j].Severity.Penalty()
	})

	remaining := 0
	for _, issue := range issues {
		remaining += issue.Severity.Penalty()
	}
	current := clamp(100-remaining, 0, 100)

	delta := &ScoreDelta{Items: []ScoreDeltaItem{}}
	for _, issue := range ranked {
		if len(delta.Items) >= scoreDeltaMaxItems || delta.Gain >= scoreDeltaTarget {
			break
		}
		points := issue.Severity.Penalty()
		remaining -= points
		delta.Items = append(delta.Items, ScoreDeltaItem{
			Code:     issue.Code,
			Message:  issue.Message,
			Severity: issue.Severity,
			Points:   points,
		})
		delta.Gain = clamp(100-remaining, 0, 100) - current
	}
	delta.Headline = fmt.Sprintf("Fix these → score +%d", delta.Gain)
	return delta
}
