package postgres

import (
	"context"
	"fmt"

	"stockflow/internal/core/tx"
)

const (
	DefaultPageSize   = 1000
	DefaultMaxRecords = 100_000
)

// PageOptions bounds a paged fetch.
type PageOptions struct {
	PageSize   int
	MaxRecords int
}

// DefaultPageOptions returns page size 1000 with a 100 000 record cap.
func DefaultPageOptions() PageOptions {
	return PageOptions{PageSize: DefaultPageSize, MaxRecords: DefaultMaxRecords}
}

func (o PageOptions) normalized() PageOptions {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.MaxRecords <= 0 {
		o.MaxRecords = DefaultMaxRecords
	}
	if o.PageSize > o.MaxRecords {
		o.PageSize = o.MaxRecords
	}
	return o
}

// PageFunc loads at most limit rows starting at offset.
// Implementations must order rows deterministically.
type PageFunc[T any] func(ctx context.Context, limit, offset uint64) ([]T, error)

// PageResult is the outcome of FetchPages.
type PageResult[T any] struct {
	Items []T
	// NextOffset is where a restarted fetch continues.
	NextOffset int
	// Truncated is set when MaxRecords was hit before a short page.
	Truncated bool
}

// FetchPages calls fetch page by page from offset start until a short page
// arrives or MaxRecords rows are collected. On error the rows loaded so far
// are returned together with NextOffset, so the caller can resume.
func FetchPages[T any](ctx context.Context, opts PageOptions, start int, fetch PageFunc[T]) (PageResult[T], error) {
	opts = opts.normalized()
	res := PageResult[T]{NextOffset: start}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		remaining := opts.MaxRecords - len(res.Items)
		if remaining <= 0 {
			res.Truncated = true
			return res, nil
		}
		limit := min(opts.PageSize, remaining)

		page, err := fetch(ctx, uint64(limit), uint64(res.NextOffset))
		if err != nil {
			return res, fmt.Errorf("fetch page at offset %d: %w", res.NextOffset, err)
		}
		if len(page) > limit {
			page = page[:limit]
		}

		res.Items = append(res.Items, page...)
		res.NextOffset += len(page)

		if len(page) < limit {
			return res, nil
		}
	}
}

// FetchAllPages runs FetchPages from offset zero inside a read-only snapshot
// so every page sees the same data.
func FetchAllPages[T any](ctx context.Context, txm tx.ReadOnlyManager, opts PageOptions, fetch PageFunc[T]) (PageResult[T], error) {
	var res PageResult[T]
	err := txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		res, err = FetchPages(ctx, opts, 0, fetch)
		return err
	})
	return res, err
}
