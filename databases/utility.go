package databases

import (
	"context"
)

// aggregate runs pipeline against coll and drains the cursor into results
func aggregate(ctx context.Context, coll CollectionHelper, pipeline interface{}, results interface{}) error {
	curr, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer curr.Close(ctx)
	return curr.All(ctx, results)
}
