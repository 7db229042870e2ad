package sqlboiler

import (
	"strings"

	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/samber/lo"

	"github.com/nrfta/relay-paging"
	"github.com/nrfta/relay-paging/offset"
)

// OffsetToQueryMods converts an offset window into SQLBoiler query mods.
//
// The conversion follows these rules:
//   - Skip → qm.Offset(n), omitted when zero
//   - FetchLimit (Take+1) → qm.Limit(n), omitted when unbounded
//   - OrderBy → qm.OrderBy(`"col1" DESC, "col2"`)
//
// Sort columns are quoted for PostgreSQL. Columns that are not plain
// identifiers are left out of the ordering; validate them with a
// paging.SortSchema first.
//
// Example:
//
//	w, _ := offset.Calculate(args)
//	users, err := models.Users(sqlboiler.OffsetToQueryMods(w, orderBy)...).All(ctx, db)
//	page := offset.BuildResult(w, users, nil)
func OffsetToQueryMods(w offset.Window, orderBy []paging.Sort) []qm.QueryMod {
	return offsetQueryMods(PostgresDialect, w, orderBy)
}

func offsetQueryMods(dialect drivers.Dialect, w offset.Window, orderBy []paging.Sort) []qm.QueryMod {
	mods := []qm.QueryMod{}

	if w.Skip > 0 {
		mods = append(mods, qm.Offset(w.Skip))
	}

	if limit := w.FetchLimit(); limit > 0 {
		mods = append(mods, qm.Limit(limit))
	}

	orderBy = lo.Filter(orderBy, func(s paging.Sort, _ int) bool {
		return sortColumnRgx.MatchString(s.Column)
	})
	if len(orderBy) > 0 {
		mods = append(mods, qm.OrderBy(buildOrderByClause(dialect, orderBy)))
	}

	return mods
}

// buildOrderByClause constructs an ORDER BY clause from sort directives.
// Assumes len(orderBy) > 0 (caller must verify).
//
// Example:
//
//	[]paging.Sort{
//	    {Column: "created_at", Desc: true},
//	    {Column: "id", Desc: false},
//	}
//	→ `"created_at" DESC, "id"`
func buildOrderByClause(dialect drivers.Dialect, orderBy []paging.Sort) string {
	return strings.Join(lo.Map(orderBy, func(s paging.Sort, _ int) string {
		col := strmangle.IdentQuote(dialect.LQ, dialect.RQ, s.Column)
		if s.Desc {
			return col + " DESC"
		}
		return col
	}), ", ")
}

// OffsetQuery is a generated skip/take query and its optional count query.
type OffsetQuery struct {
	SQL       string
	Args      []any
	CountSQL  string
	CountArgs []any

	Window            offset.Window
	IncludeTotalCount bool
}

// BuildOffset renders the skip/take query for window w. Ordering is
// optional in offset mode but pages are only repeatable with one.
func (b *Builder) BuildOffset(p Projection, orderBy []paging.Sort, w offset.Window, includeTotalCount bool) (*OffsetQuery, error) {
	fields, err := b.projectedFields(p, orderBy)
	if err != nil {
		return nil, err
	}

	sql, args := b.baseQuery(p, fields, offsetQueryMods(b.dialect, w, orderBy))

	out := &OffsetQuery{
		SQL:               sql + ";",
		Args:              args,
		Window:            w,
		IncludeTotalCount: includeTotalCount,
	}

	if includeTotalCount {
		q := b.newQuery(p, nil)
		queries.SetCount(q)
		out.CountSQL, out.CountArgs = queries.BuildQuery(q)
	}

	return out, nil
}
