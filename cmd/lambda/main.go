package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	sync "github.com/silinternational/category-sync"
	"github.com/silinternational/category-sync/internal"
)

// Event is the payload of a workflow custom code action
type Event struct {
	InputFields InputFields `json:"inputFields"`
}

type InputFields struct {
	CategoryID string `json:"category_id"`
}

func main() {
	lambda.Start(handler)
}

// handler always returns the sync Result as the payload, failed syncs included
func handler(ctx context.Context, event Event) (internal.Result, error) {
	return sync.RunSync(ctx, sync.Options{
		CategoryID:  event.InputFields.CategoryID,
		LogEncoding: internal.EncodingJSON,
	}), nil
}
