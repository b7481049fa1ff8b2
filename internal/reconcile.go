package internal

import "fmt"

// Plan is the option list a sync intends to write, and the action it represents.
// Changed is false when Options is identical to the list already on the property.
type Plan struct {
	Action  Action
	Options []EnumOption
	Changed bool
}

// Reconcile computes the new option list for an enumeration property.
//   - with no targetID, the list is rebuilt from categories (full replace)
//   - with a targetID and no categories, the option for targetID is removed
//   - with a targetID and one category, that option is created or relabeled
//
// A targeted sync must be given at most one category. It is not treated as a
// removal when the only matching records were skipped.
func Reconcile(existing []EnumOption, categories Categories, targetID string) (Plan, error) {
	var plan Plan

	switch {
	case targetID == "":
		plan.Action = ActionAll
		plan.Options = ReplaceOptions(categories)
	case categories.Len() == 0 && categories.Skipped() > 0:
		return Plan{}, fmt.Errorf("category_id %s matched %d unusable records: %w",
			targetID, categories.Skipped(), ErrIncompleteCategory)
	case categories.Len() == 0:
		plan.Action = ActionDelete
		plan.Options = DeleteOption(existing, targetID)
	case categories.Len() == 1:
		plan.Options, plan.Action = UpsertOption(existing, categories.List()[0])
	default:
		return Plan{}, fmt.Errorf("category_id %s matched %d categories: %w",
			targetID, categories.Len(), ErrTargetNotUnique)
	}

	plan.Changed = !optionsAreEqual(existing, plan.Options)
	return plan, nil
}

// ReplaceOptions builds a visible option per category, ordered as the categories are
func ReplaceOptions(categories Categories) []EnumOption {
	options := make([]EnumOption, 0, categories.Len())
	for i, category := range categories.List() {
		options = append(options, EnumOption{
			Label:        category.Name,
			Value:        category.ID,
			DisplayOrder: i,
			Hidden:       false,
		})
	}
	return options
}

// DeleteOption returns existing without the option whose value is id
func DeleteOption(existing []EnumOption, id string) []EnumOption {
	options := make([]EnumOption, 0, len(existing))
	for _, option := range existing {
		if option.Value != id {
			options = append(options, option)
		}
	}
	return options
}

// UpsertOption relabels the option whose value is category.ID, keeping its
// position, display order and visibility. If there is none, a visible option
// is appended after the existing ones.
func UpsertOption(existing []EnumOption, category Category) ([]EnumOption, Action) {
	options := make([]EnumOption, len(existing), len(existing)+1)
	copy(options, existing)

	for i := range options {
		if options[i].Value == category.ID {
			options[i].Label = category.Name
			return options, ActionUpdate
		}
	}

	options = append(options, EnumOption{
		Label:        category.Name,
		Value:        category.ID,
		DisplayOrder: len(existing),
		Hidden:       false,
	})
	return options, ActionCreate
}

func optionsAreEqual(a, b []EnumOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
