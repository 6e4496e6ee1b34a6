package aws

import "context"

// CollectPages drains an SDK paginator into one slice. The caller wraps
// the paginator's HasMorePages and NextPage methods so one helper
// covers every describe call; a page error aborts the whole collection.
func CollectPages[Output any, Item any](
	ctx context.Context,
	hasMore func() bool,
	nextPage func(context.Context) (Output, error),
	extract func(Output) []Item,
) ([]Item, error) {
	var items []Item
	for hasMore() {
		page, err := nextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, extract(page)...)
	}
	return items, nil
}
