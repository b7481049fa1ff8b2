package hubspot

import (
	"github.com/silinternational/category-sync/internal"
)

const (
	OperatorEqual       = "EQ"
	OperatorHasProperty = "HAS_PROPERTY"

	PropertyTypeEnumeration = "enumeration"
)

const (
	schemasPath    = "/crm/v3/schemas"
	searchPath     = "/crm/v3/objects/%s/search"
	propertiesPath = "/crm/v3/properties/%s/%s"
)

// SearchRequest is the body of a CRM object search
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
	After        string        `json:"after,omitempty"`
}

// FilterGroup is a group of filters combined with AND
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value,omitempty"`
}

// Property is the part of a property definition this client reads
type Property struct {
	Name      string                `json:"name"`
	Label     string                `json:"label"`
	Type      string                `json:"type"`
	FieldType string                `json:"fieldType"`
	GroupName string                `json:"groupName"`
	Options   []internal.EnumOption `json:"options"`
}

// PropertyUpdate only carries options, so the rest of the definition is left as is
type PropertyUpdate struct {
	Options []internal.EnumOption `json:"options"`
}
