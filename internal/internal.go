package internal

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// RunCategorySync does the following ...
//   - it resolves the object type of the category custom object
//   - it gets the categories (all of them, or only targetID) from that object
//   - it gets the current options of the enumeration property
//   - it computes the new option list and, unless in dry run mode or nothing
//     changed, writes it back
//
// The returned Result is always populated. A non-nil error is a SyncError
// describing why the run failed.
func RunCategorySync(ctx context.Context, logger *zap.Logger, crm CRM, config Config, targetID string) (Result, error) {
	objects := config.Objects

	categoryObjectType, err := crm.ResolveObjectType(ctx, objects.CategoryObjectName)
	if err != nil {
		err = fmt.Errorf("failed to retrieve object type id for %q: %w", objects.CategoryObjectName, err)
		return failed(logger, targetID, err)
	}
	logger.Debug("resolved category object type",
		zap.String("object", objects.CategoryObjectName),
		zap.String("object_type", categoryObjectType))

	categories, err := crm.ListCategories(ctx, CategoryQuery{
		ObjectType:   categoryObjectType,
		NameProperty: objects.CategoryNameProperty,
		IDProperty:   objects.CategoryIDProperty,
		TargetID:     targetID,
	})
	if err != nil {
		err = fmt.Errorf("failed to list product categories, enumeration left unchanged: %w", err)
		return failed(logger, targetID, err)
	}
	logger.Info("found categories in source", zap.Int("count", categories.Len()))

	if targetID == "" && categories.Len() == 0 && !config.Runtime.AllowEmptyReplace {
		return failed(logger, targetID, ErrEmptyReplace)
	}

	existing, err := crm.GetEnumOptions(ctx, objects.ProductObjectType, objects.EnumerationProperty)
	if err != nil {
		err = fmt.Errorf("failed to get property %q: %w", objects.EnumerationProperty, err)
		return failed(logger, targetID, err)
	}
	logger.Info("found options in enumeration property",
		zap.String("property", objects.EnumerationProperty),
		zap.Int("count", len(existing)))

	plan, err := Reconcile(existing, categories, targetID)
	if err != nil {
		return failed(logger, targetID, err)
	}

	result := Result{
		Result:     ResultSuccess,
		Message:    planMessage(objects.EnumerationProperty, plan.Action, targetID),
		CategoryID: targetID,
		Action:     plan.Action,
	}

	if config.Runtime.DryRunMode {
		printPlan(logger, plan)
		result.DryRun = true
		return result, nil
	}

	if !plan.Changed {
		logger.Info("enumeration property already up to date, skipping update",
			zap.String("property", objects.EnumerationProperty))
		return result, nil
	}

	err = crm.UpdateEnumOptions(ctx, objects.ProductObjectType, objects.EnumerationProperty, plan.Options)
	if err != nil {
		err = fmt.Errorf("failed to update property %q: %w", objects.EnumerationProperty, err)
		return failed(logger, targetID, err)
	}

	logger.Info(fmt.Sprintf("Successfully updated enumeration property '%s'.", objects.EnumerationProperty),
		zap.String("action", string(plan.Action)),
		zap.Int("options", len(plan.Options)))

	return result, nil
}

func failed(logger *zap.Logger, targetID string, err error) (Result, error) {
	logger.Error("category sync failed", zap.String("category_id", targetID), zap.Error(err))

	sendAlert := !errors.Is(err, context.Canceled)
	return ErrorResult(targetID, err), SyncError{Message: err, SendAlert: sendAlert}
}

func planMessage(property string, action Action, targetID string) string {
	switch action {
	case ActionAll:
		return fmt.Sprintf("Enumeration property '%s' updated all.", property)
	case ActionCreate:
		return fmt.Sprintf("Enumeration property '%s' created category_id %s.", property, targetID)
	case ActionUpdate:
		return fmt.Sprintf("Enumeration property '%s' updated category_id %s.", property, targetID)
	case ActionDelete:
		return fmt.Sprintf("Enumeration property '%s' deleted category_id %s.", property, targetID)
	}
	return ""
}

func printPlan(logger *zap.Logger, plan Plan) {
	logger.Info("dry run, enumeration property not updated",
		zap.String("action", string(plan.Action)),
		zap.Bool("changed", plan.Changed),
		zap.Int("options", len(plan.Options)))

	for i, option := range plan.Options {
		logger.Info(fmt.Sprintf("  %v) %s", i+1, option.Label),
			zap.String("value", option.Value),
			zap.Int("display_order", option.DisplayOrder),
			zap.Bool("hidden", option.Hidden))
	}
}
