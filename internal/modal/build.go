package modal

import (
	"sort"

	"github.com/google/uuid"

	"github.com/workshop-ops/reorderflow/internal/session"
)

// FormSelection is the user's in-progress choices, carried through every
// re-render of the form.
type FormSelection struct {
	Workspace   string // "" means no filter
	ItemID      string // "" means nothing selected
	Description string // description shown for the selected item
}

// ReorderForm builds the reorder modal for the given (already filtered) items
// and the full workspace list, preserving the current selection. Items render
// sorted by name, ascending, case-sensitive.
func ReorderForm(items []session.CandidateItem, workspaces []string, sel FormSelection) View {
	sorted := make([]session.CandidateItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	workspaceElement := &Element{
		Type:        "static_select",
		ActionID:    ActionSelectedWorkspace,
		Placeholder: plain("All Workspaces"),
	}
	for _, ws := range workspaces {
		workspaceElement.Options = append(workspaceElement.Options, Option{Text: Text{Type: "plain_text", Text: ws}, Value: ws})
	}
	if sel.Workspace != "" {
		workspaceElement.InitialOption = &Option{Text: Text{Type: "plain_text", Text: sel.Workspace}, Value: sel.Workspace}
	}

	itemElement := &Element{
		Type:        "static_select",
		ActionID:    ActionSelectedItem,
		Placeholder: plain("Select an item"),
	}
	for _, item := range sorted {
		itemElement.Options = append(itemElement.Options, Option{Text: Text{Type: "plain_text", Text: item.Name}, Value: item.ID})
	}
	if sel.ItemID != "" {
		for _, item := range sorted {
			if item.ID == sel.ItemID {
				itemElement.InitialOption = &Option{Text: Text{Type: "plain_text", Text: item.Name}, Value: sel.ItemID}
				break
			}
		}
	}

	// Slack ignores initial_value changes on a block it has already
	// rendered, so a selection gets a fresh block id to force the refresh.
	descriptionBlockID := BlockDescriptionPrefix
	if sel.ItemID != "" {
		descriptionBlockID = BlockDescriptionPrefix + "_" + uuid.NewString()
	}

	return View{
		Type:       "modal",
		CallbackID: CallbackReorderSubmit,
		Title:      plain("Reorder Item"),
		Submit:     plain("Submit"),
		Blocks: []Block{
			{
				Type:           "input",
				BlockID:        BlockWorkspaceFilter,
				Label:          plain("Filter by Workspace"),
				DispatchAction: true,
				Optional:       true,
				Element:        workspaceElement,
			},
			{
				Type:     "input",
				BlockID:  BlockDeliveryDate,
				Label:    plain("Required Delivery Date"),
				Hint:     plain("Efforts will be made to meet this date, but it is not a guarantee."),
				Optional: true,
				Element: &Element{
					Type:        "datepicker",
					ActionID:    ActionDeliveryDate,
					Placeholder: plain("Select a date"),
				},
			},
			{
				Type:           "input",
				BlockID:        BlockItemSelection,
				Label:          plain("Select an item to reorder"),
				DispatchAction: true,
				Element:        itemElement,
			},
			{
				Type:     "input",
				BlockID:  descriptionBlockID,
				Label:    plain("Description"),
				Optional: true,
				Element: &Element{
					Type:         "plain_text_input",
					ActionID:     ActionDescription,
					Multiline:    true,
					InitialValue: sel.Description,
				},
			},
		},
	}
}

// Loading is the placeholder shown while the catalog loads in the background.
func Loading() View {
	return View{
		Type:       "modal",
		CallbackID: CallbackReorderSubmit,
		Title:      plain("Reorder Item"),
		Blocks: []Block{
			{Type: "section", Text: mrkdwn("Loading items... :hourglass_flowing_sand:")},
		},
	}
}

// Processing is the acknowledgment shown while a submission runs.
func Processing() View {
	return View{
		Type:  "modal",
		Title: plain("Processing..."),
		Close: plain("Close"),
		Blocks: []Block{
			{Type: "section", Text: mrkdwn("Your request is being processed. Please wait. :hourglass_flowing_sand:")},
		},
	}
}

// Success is the terminal view after a request record is created.
func Success() View {
	return View{
		Type:  "modal",
		Title: plain("Success!"),
		Close: plain("Close"),
		Blocks: []Block{
			{Type: "section", Text: mrkdwn("Your purchase request was created successfully.")},
		},
	}
}

// NoItems is the terminal view when the catalog comes back empty.
func NoItems() View {
	return View{
		Type:  "modal",
		Title: plain("No Items Found"),
		Close: plain("Close"),
		Blocks: []Block{
			{Type: "section", Text: mrkdwn("Sorry, no reorderable items were found.")},
		},
	}
}

// Error is the terminal failure view with a one-line human-readable cause.
func Error(msg string) View {
	return View{
		Type:  "modal",
		Title: plain("Error"),
		Close: plain("Close"),
		Blocks: []Block{
			{Type: "section", Text: mrkdwn("An error occurred: " + msg)},
		},
	}
}
