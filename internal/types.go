package internal

import (
	"context"
	"errors"
)

var (
	ErrObjectTypeNotFound = errors.New("object type not found")
	ErrNotEnumeration     = errors.New("property is not an enumeration")
	ErrTargetNotUnique    = errors.New("more than one category found for a single category id")
	ErrEmptyReplace       = errors.New("no categories found, refusing to remove every enumeration option")
	ErrIncompleteCategory = errors.New("category record is missing a name, refusing to remove its enumeration option")
)

type Action string

const (
	ActionAll    Action = "all"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionError  Action = "error"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Result is what a run reports back to its caller, printed by the CLI and
// returned as the payload of the Lambda handler.
type Result struct {
	Result     string `json:"result"`
	Message    string `json:"message"`
	CategoryID string `json:"category_id,omitempty"`
	Action     Action `json:"action"`
	RunID      string `json:"run_id,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// ErrorResult builds a failed Result for the given category id
func ErrorResult(categoryID string, err error) Result {
	return Result{
		Result:     ResultError,
		Message:    err.Error(),
		CategoryID: categoryID,
		Action:     ActionError,
	}
}

// EnumOption is one entry in the option list of an enumeration property.
// Value is unique within a property and is the category id.
type EnumOption struct {
	Label        string `json:"label"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"displayOrder"`
	Hidden       bool   `json:"hidden"`
}

type Category struct {
	Name string
	ID   string
}

// CategoryQuery describes which category records to read.
// An empty TargetID means every record that has a name.
type CategoryQuery struct {
	ObjectType   string
	NameProperty string
	IDProperty   string
	TargetID     string
}

// CRM is the remote system holding both the category records and the
// enumeration property they are synced into.
type CRM interface {
	ResolveObjectType(ctx context.Context, name string) (string, error)
	ListCategories(ctx context.Context, query CategoryQuery) (Categories, error)
	GetEnumOptions(ctx context.Context, objectType, propertyName string) ([]EnumOption, error)
	UpdateEnumOptions(ctx context.Context, objectType, propertyName string, options []EnumOption) error
}

type SyncError struct {
	Message   error
	SendAlert bool
}

func (s SyncError) Error() string {
	return s.Message.Error()
}

func (s SyncError) Unwrap() error {
	return s.Message
}
