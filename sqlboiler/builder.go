package sqlboiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/samber/lo"

	"github.com/nrfta/relay-paging"
	"github.com/nrfta/relay-paging/cursor"
)

const (
	// DefaultCursorColumn is the name of the row-number column added to
	// every cursor slice query. It is suffixed with _1, _2... when the
	// projection already has a field of that name.
	DefaultCursorColumn = "cursor_index"

	baseCTE     = "paging_base"
	numberedCTE = "paging_numbered"
)

// sortColumnRgx matches the column names accepted in an ordering: an
// identifier, optionally qualified by a table name.
var sortColumnRgx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresDialect is the dialect used when none is configured.
var PostgresDialect = drivers.Dialect{
	LQ:                   '"',
	RQ:                   '"',
	UseIndexPlaceholders: true,
	UseSchema:            true,
	UseDefaultKeyword:    true,
}

// Projection is the caller's base query: the table, the fields to select
// and the filter mods (qm.Where, qm.InnerJoin, ...). Ordering and limits are
// added by the builder and must not be part of Mods.
type Projection struct {
	Table  string
	Fields []string
	Mods   []qm.QueryMod
}

// FieldValidator reports which of the candidate fields exist on a table.
// It is the one schema capability the builder needs from the ORM layer.
type FieldValidator interface {
	ValidFields(table string, candidates []string) []string
}

// ColumnLister is implemented by validators that know every column of a
// table. The builder uses it to find the columns behind SELECT *.
type ColumnLister interface {
	TableColumns(table string) []string
}

// Columns is a FieldValidator backed by a table -> columns map, such as the
// <Model>AllColumns slices sqlboiler generates. Tables it does not know are
// passed through unchecked.
type Columns map[string][]string

// TableColumns implements ColumnLister.
func (c Columns) TableColumns(table string) []string {
	return c[table]
}

// ValidFields implements FieldValidator.
func (c Columns) ValidFields(table string, candidates []string) []string {
	cols, ok := c[table]
	if !ok {
		return candidates
	}

	return lo.Filter(candidates, func(field string, _ int) bool {
		return lo.Contains(cols, unqualified(field))
	})
}

// SliceQuery is a generated cursor slice query together with the window it
// was built from, so the rows it returns can be finished with
// cursor.BuildResult without re-deriving anything.
type SliceQuery struct {
	// SQL is WindowSQL followed by CountSQL when IncludeTotalCount is set.
	SQL string

	// WindowSQL selects the window rows and the CursorColumn.
	WindowSQL string

	// CountSQL selects COUNT(*) over the filtered base set.
	CountSQL string

	// Args are the bind arguments of the base projection. WindowSQL and
	// CountSQL each number their placeholders from one.
	Args []any

	CursorColumn      string
	Window            cursor.Window
	IncludeTotalCount bool
}

// SingleRoundTrip reports whether SQL can be sent as one multi-statement
// query. Drivers only accept several statements without bind arguments.
func (q *SliceQuery) SingleRoundTrip() bool {
	return !q.IncludeTotalCount || len(q.Args) == 0
}

// Builder renders slice queries for one SQL dialect. It holds no per-request
// state and is safe for concurrent use.
type Builder struct {
	dialect      drivers.Dialect
	cursorColumn string
	validator    FieldValidator
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDialect sets the identifier quoting and placeholder style.
func WithDialect(dialect drivers.Dialect) BuilderOption {
	return func(b *Builder) {
		b.dialect = dialect
	}
}

// WithCursorColumn sets the preferred name of the row-number column.
func WithCursorColumn(name string) BuilderOption {
	return func(b *Builder) {
		if name != "" {
			b.cursorColumn = name
		}
	}
}

// WithFieldValidator filters projected fields through validator.
func WithFieldValidator(validator FieldValidator) BuilderOption {
	return func(b *Builder) {
		b.validator = validator
	}
}

// NewBuilder creates a Builder for PostgreSQL unless WithDialect says otherwise.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		dialect:      PostgresDialect,
		cursorColumn: DefaultCursorColumn,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the cursor slice query for window w:
//
//	WITH paging_base AS (<projection>),
//	     paging_numbered AS (SELECT ROW_NUMBER() OVER (ORDER BY ...) AS cursor_index, paging_base.* FROM paging_base)
//	SELECT * FROM paging_numbered WHERE <window predicate> ORDER BY cursor_index;
//	[WITH paging_base AS (<projection>) SELECT COUNT(*) FROM paging_base;]
//
// orderBy is mandatory: positions are meaningless without a stable ordering.
func (b *Builder) Build(p Projection, orderBy []paging.Sort, w cursor.Window, includeTotalCount bool) (*SliceQuery, error) {
	if len(orderBy) == 0 {
		return nil, paging.InvalidArgumentf("an ordering is required to slice %q by cursor", p.Table)
	}
	if w == nil {
		return nil, paging.InvalidArgumentf("a window is required to slice %q by cursor", p.Table)
	}

	fields, err := b.projectedFields(p, orderBy)
	if err != nil {
		return nil, err
	}

	baseSQL, args := b.baseQuery(p, fields, nil)
	cursorColumn := b.cursorColumnFor(b.selectedColumns(p, fields))

	quotedCursor := b.quote(cursorColumn)
	with := fmt.Sprintf(
		"WITH %[1]s AS (%[2]s), %[3]s AS (SELECT ROW_NUMBER() OVER (ORDER BY %[4]s) AS %[5]s, %[1]s.* FROM %[1]s)",
		b.quote(baseCTE), baseSQL, b.quote(numberedCTE), b.overClause(orderBy), quotedCursor,
	)

	windowSQL := fmt.Sprintf("%s SELECT * FROM %s", with, b.quote(numberedCTE))
	if predicate := b.predicate(w, quotedCursor); predicate != "" {
		windowSQL += " WHERE " + predicate
	}
	windowSQL += fmt.Sprintf(" ORDER BY %s;", quotedCursor)

	countSQL := fmt.Sprintf("WITH %[1]s AS (%[2]s) SELECT COUNT(*) FROM %[1]s;", b.quote(baseCTE), baseSQL)

	sql := windowSQL
	if includeTotalCount {
		sql = windowSQL + "\n" + countSQL
	}

	return &SliceQuery{
		SQL:               sql,
		WindowSQL:         windowSQL,
		CountSQL:          countSQL,
		Args:              args,
		CursorColumn:      cursorColumn,
		Window:            w,
		IncludeTotalCount: includeTotalCount,
	}, nil
}

// projectedFields returns the fields of the base projection: the valid
// requested fields plus any ordering field that was not requested. An empty
// result means SELECT *.
func (b *Builder) projectedFields(p Projection, orderBy []paging.Sort) ([]string, error) {
	orderCols := lo.Map(orderBy, func(s paging.Sort, _ int) string { return s.Column })

	if bad, found := lo.Find(orderCols, func(col string) bool { return !sortColumnRgx.MatchString(col) }); found {
		return nil, paging.InvalidArgumentf("invalid sort column %q on %q", bad, p.Table)
	}

	if b.validator != nil {
		unknown := strmangle.SetComplement(orderCols, b.validator.ValidFields(p.Table, orderCols))
		if len(unknown) > 0 {
			return nil, paging.InvalidArgumentf("unknown sort field(s) on %q: %s", p.Table, strings.Join(unknown, ", "))
		}
	}

	if len(p.Fields) == 0 {
		return nil, nil
	}

	fields := p.Fields
	if b.validator != nil {
		fields = b.validator.ValidFields(p.Table, fields)
	}

	return lo.Uniq(append(append([]string{}, fields...), strmangle.SetComplement(orderCols, fields)...)), nil
}

// selectedColumns returns the columns the base projection yields. For
// SELECT * they are only known when the validator can list them.
func (b *Builder) selectedColumns(p Projection, fields []string) []string {
	selected := lo.Union(p.Fields, fields)
	if len(fields) > 0 {
		return selected
	}
	if lister, ok := b.validator.(ColumnLister); ok {
		selected = lo.Union(selected, lister.TableColumns(p.Table))
	}
	return selected
}

// baseQuery renders the projection with sqlboiler, without the trailing semicolon.
func (b *Builder) baseQuery(p Projection, fields []string, extra []qm.QueryMod) (string, []any) {
	q := b.newQuery(p, extra)
	if len(fields) > 0 {
		queries.SetSelect(q, fields)
	}

	sql, args := queries.BuildQuery(q)
	return strings.TrimSuffix(strings.TrimSpace(sql), ";"), args
}

func (b *Builder) newQuery(p Projection, extra []qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &b.dialect)
	queries.SetFrom(q, p.Table)
	qm.Apply(q, p.Mods...)
	qm.Apply(q, extra...)
	return q
}

// cursorColumnFor returns the configured cursor column name, renamed until
// it no longer collides with any of fields.
func (b *Builder) cursorColumnFor(fields []string) string {
	taken := func(name string) bool {
		return lo.ContainsBy(fields, func(f string) bool {
			return strings.EqualFold(unqualified(f), name)
		})
	}

	name := b.cursorColumn
	for i := 1; taken(name); i++ {
		name = fmt.Sprintf("%s_%d", b.cursorColumn, i)
	}
	return name
}

func (b *Builder) overClause(orderBy []paging.Sort) string {
	parts := lo.Map(orderBy, func(s paging.Sort, _ int) string {
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		return b.quote(unqualified(s.Column)) + " " + dir
	})
	return strings.Join(parts, ", ")
}

// predicate renders the WHERE clause bounding the cursor column to w. The
// upper bound includes the over-fetched row.
func (b *Builder) predicate(w cursor.Window, col string) string {
	switch w := w.(type) {
	case cursor.Range:
		end := w.FetchEnd()
		switch {
		case w.Start.Valid && end.Valid:
			return fmt.Sprintf("%s BETWEEN %d AND %d", col, w.Start.Int, end.Int)
		case w.Start.Valid:
			return fmt.Sprintf("%s >= %d", col, w.Start.Int)
		case end.Valid:
			return fmt.Sprintf("%s <= %d", col, end.Int)
		}
	case cursor.Tail:
		from := fmt.Sprintf("(SELECT COUNT(*) - %d FROM %s)", w.Last, b.quote(numberedCTE))
		if w.End.Valid {
			from = fmt.Sprintf("LEAST((SELECT COUNT(*) FROM %s), %d) - %d", b.quote(numberedCTE), w.End.Int, w.Last)
		}
		if w.After > 0 {
			from = fmt.Sprintf("GREATEST(%s, %d)", from, w.After)
		}
		if w.End.Valid {
			return fmt.Sprintf("%s > %s AND %s <= %d", col, from, col, w.FetchEnd().Int)
		}
		return fmt.Sprintf("%s > %s", col, from)
	}
	return ""
}

func (b *Builder) quote(ident string) string {
	return strmangle.IdentQuote(b.dialect.LQ, b.dialect.RQ, ident)
}

// unqualified strips a table qualifier: "users.created_at" -> "created_at".
func unqualified(col string) string {
	if i := strings.LastIndexByte(col, '.'); i >= 0 {
		return col[i+1:]
	}
	return col
}
