package reorder

import (
	"fmt"
	"sort"
	"time"

	"github.com/workshop-ops/reorderflow/internal/catalog"
	"github.com/workshop-ops/reorderflow/internal/session"
)

// PrepareItems trims raw catalog tasks down to the snapshot shape. The list
// endpoint sometimes omits description, so text content is the fallback.
func PrepareItems(tasks []catalog.Task, workspaceFieldID string) []session.CandidateItem {
	items := make([]session.CandidateItem, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		description := task.Description
		if description == "" {
			description = task.TextContent
		}
		workspace, _ := catalog.ExtractField(task, workspaceFieldID)
		items = append(items, session.CandidateItem{
			ID:          task.ID,
			Name:        task.Name,
			Description: description,
			Workspace:   workspace,
		})
	}
	return items
}

// Workspaces returns the unique workspace names present in the snapshot,
// sorted ascending.
func Workspaces(items []session.CandidateItem) []string {
	seen := map[string]bool{}
	var names []string
	for _, item := range items {
		if item.Workspace != "" && !seen[item.Workspace] {
			seen[item.Workspace] = true
			names = append(names, item.Workspace)
		}
	}
	sort.Strings(names)
	return names
}

// FilterByWorkspace restricts items to one workspace. An empty workspace
// means no filter: the input is returned unchanged, in order.
func FilterByWorkspace(items []session.CandidateItem, workspace string) []session.CandidateItem {
	if workspace == "" {
		return items
	}
	var filtered []session.CandidateItem
	for _, item := range items {
		if item.Workspace == workspace {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// findItem looks an item up by id. The bool is false when the id is not in
// the snapshot.
func findItem(items []session.CandidateItem, id string) (session.CandidateItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return session.CandidateItem{}, false
}

// parseDeliveryDate converts a datepicker value (YYYY-MM-DD) to the epoch
// millisecond timestamp of that date's UTC midnight.
func parseDeliveryDate(value string) (int64, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return 0, fmt.Errorf("invalid delivery date %q: %w", value, err)
	}
	return t.UTC().UnixMilli(), nil
}
