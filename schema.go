package paging

import "fmt"

// Direction represents the sort direction for a field.
type Direction bool

const (
	ASC  Direction = false
	DESC Direction = true
)

// fieldSpec defines a single orderable field in a schema.
type fieldSpec struct {
	name      string     // SQL column name: "posts.created_at"
	isFixed   bool       // Fixed vs user-sortable
	direction *Direction // For fixed fields (nil for user-sortable)
	position  int        // Declaration order
}

// SortSchema defines the sortable and fixed fields of a paginated set.
//
// Cursors are ordinal positions, so they only mean something while the
// ordering is total and repeatable. A SortSchema guarantees that by
// rejecting columns the caller did not register and by always adding the
// fixed tie-breaker fields (typically the primary key).
//
// Example:
//
//	var userSchema = paging.NewSortSchema().
//	    FixedField("tenant_id", paging.ASC).
//	    Field("name").
//	    Field("created_at").
//	    FixedField("id", paging.DESC)
type SortSchema struct {
	sortableFields map[string]*fieldSpec
	fixedFields    []*fieldSpec
	allFields      []*fieldSpec
	nextPosition   int
}

// NewSortSchema creates an empty SortSchema.
func NewSortSchema() *SortSchema {
	return &SortSchema{
		sortableFields: make(map[string]*fieldSpec),
		fixedFields:    make([]*fieldSpec, 0),
		allFields:      make([]*fieldSpec, 0),
	}
}

// Field adds a user-sortable field to the schema.
// User-sortable fields can be specified in PageArgs.SortBy at runtime.
func (s *SortSchema) Field(name string) *SortSchema {
	spec := &fieldSpec{
		name:     name,
		position: s.nextPosition,
	}
	s.nextPosition++

	s.sortableFields[name] = spec
	s.allFields = append(s.allFields, spec)

	return s
}

// FixedField adds a fixed field to the schema.
// Fixed fields are always included in the ordering but cannot be chosen by
// users at runtime.
//
// Declaration order matters:
//   - FixedField before Field: prepended (e.g., tenant_id for partitioning)
//   - FixedField after Field: appended (e.g., id for uniqueness)
func (s *SortSchema) FixedField(name string, direction Direction) *SortSchema {
	spec := &fieldSpec{
		name:      name,
		isFixed:   true,
		direction: &direction,
		position:  s.nextPosition,
	}
	s.nextPosition++

	s.fixedFields = append(s.fixedFields, spec)
	s.allFields = append(s.allFields, spec)

	return s
}

// Columns returns every column the schema knows about, in declaration order.
func (s *SortSchema) Columns() []string {
	cols := make([]string, len(s.allFields))
	for i, spec := range s.allFields {
		cols[i] = spec.name
	}
	return cols
}

// OrderBy validates the user's sort choices and returns the complete ordering
// including fixed fields. It fails with ErrInvalidArgument when a sort column
// is not registered in the schema.
//
// Example:
//
//	schema.FixedField("tenant_id", ASC)  // Declared first
//	schema.Field("name")                 // User-sortable
//	schema.FixedField("id", DESC)        // Declared last
//
//	OrderBy([{Column: "name", Desc: true}])
//	// Returns: [tenant_id ASC, name DESC, id DESC]
func (s *SortSchema) OrderBy(userSorts []Sort) ([]Sort, error) {
	for _, sort := range userSorts {
		if _, exists := s.sortableFields[sort.Column]; !exists {
			return nil, InvalidArgumentf("invalid sort field: %s (not registered in schema)", sort.Column)
		}
	}

	return s.buildOrderBy(userSorts), nil
}

func (s *SortSchema) buildOrderBy(userSorts []Sort) []Sort {
	result := make([]Sort, 0, len(userSorts)+len(s.fixedFields))

	firstSortablePos := -1
	lastSortablePos := -1
	for _, spec := range s.allFields {
		if !spec.isFixed {
			if firstSortablePos == -1 {
				firstSortablePos = spec.position
			}
			lastSortablePos = spec.position
		}
	}

	// Only fixed fields registered.
	if firstSortablePos == -1 {
		for _, spec := range s.fixedFields {
			result = append(result, spec.sort())
		}
		return append(result, dedupe(result, userSorts)...)
	}

	for _, spec := range s.fixedFields {
		if spec.position < firstSortablePos {
			result = append(result, spec.sort())
		}
	}

	result = append(result, dedupe(result, userSorts)...)

	for _, spec := range s.fixedFields {
		if spec.position > lastSortablePos {
			result = append(result, spec.sort())
		}
	}

	return result
}

func (f *fieldSpec) sort() Sort {
	return Sort{Column: f.name, Desc: bool(*f.direction)}
}

// dedupe drops sorts whose column is already present in existing.
func dedupe(existing, sorts []Sort) []Sort {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s.Column] = struct{}{}
	}

	out := make([]Sort, 0, len(sorts))
	for _, s := range sorts {
		if _, ok := seen[s.Column]; ok {
			continue
		}
		seen[s.Column] = struct{}{}
		out = append(out, s)
	}
	return out
}

// String renders the ordering as an ORDER BY list, e.g. "created_at DESC, id".
func (s Sort) String() string {
	if s.Desc {
		return fmt.Sprintf("%s DESC", s.Column)
	}
	return s.Column
}
