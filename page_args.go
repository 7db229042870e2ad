package paging

import "fmt"

const (
	// DefaultMaxPageSize is the default maximum page size allowed.
	// This protects against resource exhaustion from unreasonably large page requests.
	DefaultMaxPageSize = 1000
)

// Sort is a single ORDER BY directive.
type Sort struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc,omitempty"`
}

// PageArgs represents Relay cursor pagination arguments.
//
// First/After page forward, Last/Before page backward. Both pairs may be
// combined; the window is narrowed by After/Before first, then First, then Last.
type PageArgs struct {
	First  *int    `json:"first,omitempty"`
	After  *string `json:"after,omitempty"`
	Last   *int    `json:"last,omitempty"`
	Before *string `json:"before,omitempty"`
	SortBy []Sort  `json:"sortBy,omitempty"`
}

// OffsetArgs represents skip/take pagination arguments.
type OffsetArgs struct {
	Skip   *int   `json:"skip,omitempty"`
	Take   *int   `json:"take,omitempty"`
	SortBy []Sort `json:"sortBy,omitempty"`
}

// WithSortBy configures a single sort column and direction for pagination.
// It modifies the PageArgs and returns it for method chaining.
// If pa is nil, a new PageArgs is created.
//
// Example:
//
//	args := WithSortBy(nil, "created_at", true)
//	// Results in ORDER BY created_at DESC
func WithSortBy(pa *PageArgs, column string, desc bool) *PageArgs {
	if pa == nil {
		pa = &PageArgs{}
	}

	pa.SortBy = []Sort{{Column: column, Desc: desc}}
	return pa
}

// WithMultiSort configures multiple sort columns with individual directions.
// It modifies the PageArgs and returns it for method chaining.
// If pa is nil, a new PageArgs is created.
//
// Example:
//
//	args := WithMultiSort(nil,
//	    Sort{Column: "created_at", Desc: true},
//	    Sort{Column: "name", Desc: false},
//	)
//	// Results in ORDER BY created_at DESC, name ASC
func WithMultiSort(pa *PageArgs, sorts ...Sort) *PageArgs {
	if pa == nil {
		pa = &PageArgs{}
	}

	pa.SortBy = sorts
	return pa
}

// GetFirst returns the requested forward page size.
func (pa *PageArgs) GetFirst() *int {
	if pa == nil {
		return nil
	}
	return pa.First
}

// GetLast returns the requested backward page size.
func (pa *PageArgs) GetLast() *int {
	if pa == nil {
		return nil
	}
	return pa.Last
}

// GetAfter returns the cursor the page starts after.
func (pa *PageArgs) GetAfter() *string {
	if pa == nil {
		return nil
	}
	return pa.After
}

// GetBefore returns the cursor the page ends before.
func (pa *PageArgs) GetBefore() *string {
	if pa == nil {
		return nil
	}
	return pa.Before
}

// GetSortBy returns the list of sort specifications.
func (pa *PageArgs) GetSortBy() []Sort {
	if pa == nil {
		return nil
	}
	return pa.SortBy
}

// GetSkip returns the number of rows to skip.
func (oa *OffsetArgs) GetSkip() *int {
	if oa == nil {
		return nil
	}
	return oa.Skip
}

// GetTake returns the requested page size.
func (oa *OffsetArgs) GetTake() *int {
	if oa == nil {
		return nil
	}
	return oa.Take
}

// GetSortBy returns the list of sort specifications.
func (oa *OffsetArgs) GetSortBy() []Sort {
	if oa == nil {
		return nil
	}
	return oa.SortBy
}

// PageConfig holds pagination configuration options.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := paging.NewPageConfig().WithMaxSize(500)
//	if err := config.Validate(args); err != nil {
//	    return nil, err
//	}
type PageConfig struct {
	// MaxSize is the maximum allowed page size for First, Last and Take.
	MaxSize int

	// IncludeTotalCount asks the slicer to compute the total number of
	// rows in the unpaginated set. It doubles the query cost in SQL mode.
	IncludeTotalCount bool
}

// NewPageConfig creates a PageConfig with MaxSize set to DefaultMaxPageSize.
func NewPageConfig() *PageConfig {
	return &PageConfig{
		MaxSize: DefaultMaxPageSize,
	}
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// WithTotalCount turns total count computation on and returns the config for chaining.
func (c *PageConfig) WithTotalCount() *PageConfig {
	c.IncludeTotalCount = true
	return c
}

func (c *PageConfig) maxSize() int {
	if c == nil || c.MaxSize <= 0 {
		return DefaultMaxPageSize
	}
	return c.MaxSize
}

// Validate checks First and Last against MaxSize and returns a *PageSizeError
// for the first one that exceeds it. Negative sizes are left to the window
// calculators, which reject them with ErrInvalidArgument.
func (c *PageConfig) Validate(args *PageArgs) error {
	maxSize := c.maxSize()

	if first := args.GetFirst(); first != nil && *first > maxSize {
		return &PageSizeError{Argument: "first", Requested: *first, Maximum: maxSize}
	}
	if last := args.GetLast(); last != nil && *last > maxSize {
		return &PageSizeError{Argument: "last", Requested: *last, Maximum: maxSize}
	}

	return nil
}

// ValidateOffset checks Take against MaxSize.
func (c *PageConfig) ValidateOffset(args *OffsetArgs) error {
	maxSize := c.maxSize()

	if take := args.GetTake(); take != nil && *take > maxSize {
		return &PageSizeError{Argument: "take", Requested: *take, Maximum: maxSize}
	}

	return nil
}

// Validate validates the PageArgs using DefaultMaxPageSize (1000).
//
// For custom limits, use ValidateWith:
//
//	config := paging.NewPageConfig().WithMaxSize(500)
//	if err := args.ValidateWith(config); err != nil {
//	    return nil, err
//	}
func (pa *PageArgs) Validate() error {
	return NewPageConfig().Validate(pa)
}

// ValidateWith validates the PageArgs using a custom PageConfig.
func (pa *PageArgs) ValidateWith(config *PageConfig) error {
	return config.Validate(pa)
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Argument  string
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested %s of %d exceeds maximum allowed page size of %d",
		e.Argument, e.Requested, e.Maximum)
}

// Is reports PageSizeError as an ErrInvalidArgument.
func (e *PageSizeError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// PaginateOption configures a single pagination request.
//
// Example:
//
//	result, err := paginator.Paginate(ctx, args,
//	    paging.WithMaxSize(100),
//	    paging.WithTotalCount(),
//	)
type PaginateOption func(*PageConfig)

// WithMaxSize sets the maximum page size for this request.
func WithMaxSize(size int) PaginateOption {
	return func(c *PageConfig) {
		c.WithMaxSize(size)
	}
}

// WithTotalCount requests the total count of the unpaginated set.
func WithTotalCount() PaginateOption {
	return func(c *PageConfig) {
		c.WithTotalCount()
	}
}

// ApplyPaginateOptions applies functional options and returns a PageConfig.
// This is an internal helper used by all paginators.
func ApplyPaginateOptions(opts ...PaginateOption) *PageConfig {
	cfg := NewPageConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

