package hubspot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/silinternational/category-sync/internal"
)

// ResolveObjectType lists every object schema in the account and returns the
// objectTypeId of the one called name
func (h *HubSpot) ResolveObjectType(ctx context.Context, name string) (string, error) {
	body, err := h.request(ctx, http.MethodGet, schemasPath, nil)
	if err != nil {
		return "", fmt.Errorf("error listing object schemas: %w", err)
	}

	jsonParsed, err := parseJSON(body)
	if err != nil {
		return "", fmt.Errorf("error parsing object schemas: %w", err)
	}

	results := jsonParsed.Search("results")
	if results == nil {
		return "", errors.New("object schemas response has no results")
	}

	for _, schema := range results.Children() {
		if stringValue(schema, "name") != name {
			continue
		}
		if objectTypeID := stringValue(schema, "objectTypeId"); objectTypeID != "" {
			return objectTypeID, nil
		}
	}

	return "", fmt.Errorf("object type %q: %w", name, internal.ErrObjectTypeNotFound)
}

// ListCategories runs a paginated search over the category object. With a
// TargetID only records whose id property equals it are returned, otherwise
// every record that has a name. A later record with the same name as an
// earlier one replaces its id. Records missing a name or id are counted in
// Categories.Skipped.
func (h *HubSpot) ListCategories(ctx context.Context, query internal.CategoryQuery) (internal.Categories, error) {
	filter := Filter{
		PropertyName: query.NameProperty,
		Operator:     OperatorHasProperty,
	}
	if query.TargetID != "" {
		filter = Filter{
			PropertyName: query.IDProperty,
			Operator:     OperatorEqual,
			Value:        query.TargetID,
		}
	}

	searchRequest := SearchRequest{
		FilterGroups: []FilterGroup{{Filters: []Filter{filter}}},
		Properties:   []string{query.NameProperty, query.IDProperty},
		Limit:        h.PageSize,
	}
	path := fmt.Sprintf(searchPath, url.PathEscape(query.ObjectType))

	var categories internal.Categories
	for page := 1; ; page++ {
		body, err := h.request(ctx, http.MethodPost, path, searchRequest)
		if err != nil {
			return internal.Categories{}, fmt.Errorf("error searching %s, page %d: %w", query.ObjectType, page, err)
		}

		pageCategories, after, err := h.parseSearchPage(body, query)
		if err != nil {
			return internal.Categories{}, fmt.Errorf("error parsing search results, page %d: %w", page, err)
		}
		categories.Merge(pageCategories)

		h.logger.Debug("read category search page",
			zap.Int("page", page),
			zap.Int("count", pageCategories.Len()),
			zap.Int("skipped", pageCategories.Skipped()))

		if after == "" {
			break
		}
		if after == searchRequest.After {
			return internal.Categories{}, fmt.Errorf("search paging cursor %q repeated on page %d", after, page)
		}
		searchRequest.After = after
	}

	return categories, nil
}

// parseSearchPage returns the categories on one page of search results and
// the cursor of the next page, which is empty on the last page
func (h *HubSpot) parseSearchPage(body []byte, query internal.CategoryQuery) (internal.Categories, string, error) {
	jsonParsed, err := parseJSON(body)
	if err != nil {
		return internal.Categories{}, "", err
	}

	results := jsonParsed.Search("results")
	if results == nil {
		return internal.Categories{}, "", errors.New("response has no results")
	}

	var categories internal.Categories
	for _, record := range results.Children() {
		name := stringValue(record, "properties", query.NameProperty)
		id := stringValue(record, "properties", query.IDProperty)
		if name == "" || id == "" {
			h.logger.Warn("skipping category record missing a name or id",
				zap.String("record_id", stringValue(record, "id")),
				zap.String("name", name),
				zap.String("category_id", id))
			categories.Skip()
			continue
		}
		categories.Set(name, id)
	}

	return categories, stringValue(jsonParsed, "paging", "next", "after"), nil
}
