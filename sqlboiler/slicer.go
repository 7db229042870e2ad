// Package sqlboiler runs Relay cursor and skip/take pagination in SQL on top
// of SQLBoiler.
//
// Builder turns a base projection, an ordering and a cursor.Window into a
// single windowed query: the projection becomes a common-table expression
// numbered with ROW_NUMBER(), and the window becomes a bounded WHERE on that
// number. Slicer executes the query through a boil.ContextExecutor and
// finishes the rows with cursor.BuildResult, so a SQL page matches the
// in-memory page of cursor.Slice for the same arguments.
//
// Example usage:
//
//	slicer := sqlboiler.NewSlicer[*models.User](db,
//	    sqlboiler.Projection{
//	        Table:  models.TableNames.Users,
//	        Fields: []string{"id", "name", "created_at"},
//	        Mods:   []qm.QueryMod{models.UserWhere.IsActive.EQ(true)},
//	    },
//	    sqlboiler.RowScannerFunc[*models.User](scanUser),
//	    sqlboiler.WithSortSchema(userSchema),
//	)
//
//	page, err := slicer.Paginate(ctx, args, paging.WithTotalCount())
//
// Set boil.WithDebug(ctx, true) to have the generated SQL written to the
// context's debug writer.
package sqlboiler

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/relay-paging"
	"github.com/nrfta/relay-paging/cursor"
	"github.com/nrfta/relay-paging/offset"
)

// RowScanner materializes one row of a slice query. It returns the entity
// and the value of cursorColumn. In offset mode cursorColumn is empty and
// the returned index is ignored.
type RowScanner[T any] interface {
	ScanRow(rows *sql.Rows, cursorColumn string) (T, int, error)
}

// RowScannerFunc adapts a function to RowScanner.
type RowScannerFunc[T any] func(rows *sql.Rows, cursorColumn string) (T, int, error)

// ScanRow implements RowScanner.
func (f RowScannerFunc[T]) ScanRow(rows *sql.Rows, cursorColumn string) (T, int, error) {
	return f(rows, cursorColumn)
}

// Slicer paginates one projection in SQL.
// It implements both paging.Paginator and paging.OffsetPaginator.
type Slicer[T any] struct {
	exec         boil.ContextExecutor
	projection   Projection
	scanner      RowScanner[T]
	builder      *Builder
	schema       *paging.SortSchema
	defaultOrder []paging.Sort
}

// SlicerOption configures a Slicer.
type SlicerOption func(*slicerConfig)

type slicerConfig struct {
	builderOpts  []BuilderOption
	schema       *paging.SortSchema
	defaultOrder []paging.Sort
}

// WithBuilderOptions passes options to the Builder the slicer uses.
func WithBuilderOptions(opts ...BuilderOption) SlicerOption {
	return func(c *slicerConfig) {
		c.builderOpts = append(c.builderOpts, opts...)
	}
}

// WithSortSchema validates requested sorts against schema and adds its fixed fields.
func WithSortSchema(schema *paging.SortSchema) SlicerOption {
	return func(c *slicerConfig) {
		c.schema = schema
	}
}

// WithDefaultOrder sets the ordering used when a request has no SortBy.
func WithDefaultOrder(sorts ...paging.Sort) SlicerOption {
	return func(c *slicerConfig) {
		c.defaultOrder = sorts
	}
}

var (
	_ paging.Paginator[int]       = (*Slicer[int])(nil)
	_ paging.OffsetPaginator[int] = (*Slicer[int])(nil)
)

// NewSlicer creates a slicer that runs queries for projection on exec.
func NewSlicer[T any](
	exec boil.ContextExecutor,
	projection Projection,
	scanner RowScanner[T],
	opts ...SlicerOption,
) *Slicer[T] {
	cfg := &slicerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Slicer[T]{
		exec:         exec,
		projection:   projection,
		scanner:      scanner,
		builder:      NewBuilder(cfg.builderOpts...),
		schema:       cfg.schema,
		defaultOrder: cfg.defaultOrder,
	}
}

// Paginate returns the page selected by the Relay arguments in args.
//
// All argument errors are returned before any query is sent. Errors from
// the executor are returned unchanged and never retried.
func (s *Slicer[T]) Paginate(
	ctx context.Context,
	args *paging.PageArgs,
	opts ...paging.PaginateOption,
) (*paging.PageResult[T], error) {
	cfg := paging.ApplyPaginateOptions(opts...)

	w, err := cursor.NewWindow(args, cfg)
	if err != nil {
		return nil, err
	}

	orderBy, err := s.orderBy(args.GetSortBy())
	if err != nil {
		return nil, err
	}

	q, err := s.builder.Build(s.projection, orderBy, w, cfg.IncludeTotalCount)
	if err != nil {
		return nil, err
	}

	rows, totalCount, err := s.querySlice(ctx, q)
	if err != nil {
		return nil, err
	}

	return cursor.BuildResult(w, rows, totalCount), nil
}

// PaginateOffset returns the page selected by the skip/take arguments in args.
func (s *Slicer[T]) PaginateOffset(
	ctx context.Context,
	args *paging.OffsetArgs,
	opts ...paging.PaginateOption,
) (*paging.PageResult[T], error) {
	cfg := paging.ApplyPaginateOptions(opts...)

	w, err := offset.NewWindow(args, cfg)
	if err != nil {
		return nil, err
	}

	orderBy, err := s.orderBy(args.GetSortBy())
	if err != nil {
		return nil, err
	}

	q, err := s.builder.BuildOffset(s.projection, orderBy, w, cfg.IncludeTotalCount)
	if err != nil {
		return nil, err
	}

	items, err := s.queryNodes(ctx, q.SQL, q.Args)
	if err != nil {
		return nil, err
	}

	var totalCount *int
	if q.IncludeTotalCount {
		if totalCount, err = s.queryCount(ctx, q.CountSQL, q.CountArgs); err != nil {
			return nil, err
		}
	}

	return offset.BuildResult(w, items, totalCount), nil
}

func (s *Slicer[T]) orderBy(sorts []paging.Sort) ([]paging.Sort, error) {
	if len(sorts) == 0 {
		sorts = s.defaultOrder
	}
	if s.schema != nil {
		return s.schema.OrderBy(sorts)
	}
	return sorts, nil
}

// querySlice runs q and reads the window rows followed by the optional
// count. Multi-statement text is only sent when it carries no bind args;
// otherwise the count is a second query on the same executor.
func (s *Slicer[T]) querySlice(ctx context.Context, q *SliceQuery) ([]paging.IndexedResult[T], *int, error) {
	if !q.SingleRoundTrip() {
		items, err := s.queryIndexed(ctx, q.WindowSQL, q.Args, q.CursorColumn)
		if err != nil {
			return nil, nil, err
		}
		totalCount, err := s.queryCount(ctx, q.CountSQL, q.Args)
		if err != nil {
			return nil, nil, err
		}
		return items, totalCount, nil
	}

	debugQuery(ctx, q.SQL, q.Args)

	rows, err := s.exec.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	items, err := s.scanIndexed(rows, q.CursorColumn)
	if err != nil {
		return nil, nil, err
	}

	if !q.IncludeTotalCount {
		return items, nil, nil
	}

	if !rows.NextResultSet() {
		if err := rows.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, errors.New("slice query returned no total count result set")
	}

	totalCount, err := scanCount(rows)
	if err != nil {
		return nil, nil, err
	}

	return items, totalCount, nil
}

func (s *Slicer[T]) queryIndexed(ctx context.Context, query string, args []any, cursorColumn string) ([]paging.IndexedResult[T], error) {
	debugQuery(ctx, query, args)

	rows, err := s.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanIndexed(rows, cursorColumn)
}

func (s *Slicer[T]) scanIndexed(rows *sql.Rows, cursorColumn string) ([]paging.IndexedResult[T], error) {
	var items []paging.IndexedResult[T]
	for rows.Next() {
		node, index, err := s.scanner.ScanRow(rows, cursorColumn)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan slice row")
		}
		items = append(items, paging.IndexedResult[T]{Index: index, Node: node})
	}

	return items, rows.Err()
}

func (s *Slicer[T]) queryNodes(ctx context.Context, query string, args []any) ([]T, error) {
	debugQuery(ctx, query, args)

	rows, err := s.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []T
	for rows.Next() {
		node, _, err := s.scanner.ScanRow(rows, "")
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan offset row")
		}
		nodes = append(nodes, node)
	}

	return nodes, rows.Err()
}

func (s *Slicer[T]) queryCount(ctx context.Context, query string, args []any) (*int, error) {
	debugQuery(ctx, query, args)

	rows, err := s.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCount(rows)
}

func scanCount(rows *sql.Rows) (*int, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("count query returned no rows")
	}

	var count int64
	if err := rows.Scan(&count); err != nil {
		return nil, errors.Wrap(err, "failed to scan total count")
	}

	n := int(count)
	return &n, nil
}

func debugQuery(ctx context.Context, query string, args []any) {
	if boil.IsDebug(ctx) {
		writer := boil.DebugWriterFrom(ctx)
		fmt.Fprintln(writer, query)
		fmt.Fprintln(writer, args...)
	}
}
