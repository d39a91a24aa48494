// internal/services/search.go
package services

import (
	"sort"
	"strings"

	"github.com/javajoker/draft-backend/internal/models"
)

// Search weights per matched field group. Each group counts at most once
// per draft.
const (
	titleWeight         = 3
	descriptionWeight   = 2
	tagWeight           = 2
	specificationWeight = 1
)

type searchHit struct {
	draft   *models.ProductDraft
	score   int
	matches []string
}

// scoreDraft matches query case-insensitively as a substring of each field.
func scoreDraft(d *models.ProductDraft, query string) (int, []string) {
	q := strings.ToLower(query)
	score := 0
	var matches []string

	if strings.Contains(strings.ToLower(d.Title), q) {
		score += titleWeight
		matches = append(matches, "title")
	}
	if strings.Contains(strings.ToLower(d.Description), q) {
		score += descriptionWeight
		matches = append(matches, "description")
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += tagWeight
			matches = append(matches, "tags")
			break
		}
	}
	for k, v := range d.Specifications {
		if strings.Contains(strings.ToLower(k), q) || strings.Contains(strings.ToLower(v), q) {
			score += specificationWeight
			matches = append(matches, "specifications")
			break
		}
	}

	return score, matches
}

// searchDrafts keeps drafts with at least one match, ordered by descending
// score. Ties keep their input order.
func searchDrafts(drafts []*models.ProductDraft, query string) []searchHit {
	hits := make([]searchHit, 0, len(drafts))
	for _, d := range drafts {
		score, matches := scoreDraft(d, query)
		if len(matches) == 0 {
			continue
		}
		hits = append(hits, searchHit{draft: d, score: score, matches: matches})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	return hits
}

func filterDrafts(drafts []*models.ProductDraft, params *ListDraftsParams) []*models.ProductDraft {
	out := make([]*models.ProductDraft, 0, len(drafts))
	for _, d := range drafts {
		if params.UserID != "" && d.UserID != params.UserID {
			continue
		}
		if params.Category != "" && d.Category != params.Category {
			continue
		}
		if params.Condition != "" && d.Condition != params.Condition {
			continue
		}
		if params.MinPrice != nil && d.Price < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && d.Price > *params.MaxPrice {
			continue
		}
		out = append(out, d)
	}
	return out
}

// conditionUnspecified keys drafts without a condition in statistics.
const conditionUnspecified = "UNSPECIFIED"

func computeStatistics(drafts []*models.ProductDraft) *DraftStatistics {
	if len(drafts) == 0 {
		return nil
	}

	stats := &DraftStatistics{
		Categories: make(map[string]int),
		Conditions: make(map[string]int),
	}
	totalQuantity := 0
	for _, d := range drafts {
		stats.Categories[string(d.Category)]++
		condition := string(d.Condition)
		if condition == "" {
			condition = conditionUnspecified
		}
		stats.Conditions[condition]++
		stats.TotalInventoryValue += d.Price * float64(d.Quantity)
		totalQuantity += d.Quantity
	}
	if totalQuantity > 0 {
		stats.AvgPrice = stats.TotalInventoryValue / float64(totalQuantity)
	}
	return stats
}
