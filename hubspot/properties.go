package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/silinternational/category-sync/internal"
)

// GetEnumOptions fetches a property definition and returns its options.
// Properties that are not enumerations are rejected.
func (h *HubSpot) GetEnumOptions(ctx context.Context, objectType, propertyName string) ([]internal.EnumOption, error) {
	body, err := h.request(ctx, http.MethodGet, propertyPath(objectType, propertyName), nil)
	if err != nil {
		return nil, err
	}

	var property Property
	if err := json.Unmarshal(body, &property); err != nil {
		return nil, fmt.Errorf("error parsing property %s: %w", propertyName, err)
	}

	if property.Type != PropertyTypeEnumeration {
		return nil, fmt.Errorf("%s on %s has type %q: %w", propertyName, objectType, property.Type, internal.ErrNotEnumeration)
	}

	return property.Options, nil
}

// UpdateEnumOptions replaces the whole option list of a property
func (h *HubSpot) UpdateEnumOptions(ctx context.Context, objectType, propertyName string, options []internal.EnumOption) error {
	if options == nil {
		options = []internal.EnumOption{}
	}

	_, err := h.request(ctx, http.MethodPatch, propertyPath(objectType, propertyName), PropertyUpdate{Options: options})
	if err != nil {
		return err
	}

	h.logger.Debug("updated property options",
		zap.String("object_type", objectType),
		zap.String("property", propertyName),
		zap.Int("options", len(options)))
	return nil
}

func propertyPath(objectType, propertyName string) string {
	return fmt.Sprintf(propertiesPath, url.PathEscape(objectType), url.PathEscape(propertyName))
}
