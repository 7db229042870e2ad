package sqlboiler_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/relay-paging"
	"github.com/nrfta/relay-paging/cursor"
	"github.com/nrfta/relay-paging/offset"
	"github.com/nrfta/relay-paging/sqlboiler"
)

type dbUser struct {
	ID        string
	Name      string
	Age       int
	IsActive  bool
	CreatedAt time.Time
}

func scanDBUser(rows *sql.Rows, cursorColumn string) (*dbUser, int, error) {
	u := &dbUser{}
	index, err := sqlboiler.ScanColumns(rows, cursorColumn, map[string]any{
		"id":         &u.ID,
		"name":       &u.Name,
		"age":        &u.Age,
		"is_active":  &u.IsActive,
		"created_at": &u.CreatedAt,
	})
	return u, index, err
}

func ids(page *paging.PageResult[*dbUser]) []string {
	out := []string{}
	for _, u := range page.Nodes() {
		out = append(out, u.ID)
	}
	return out
}

var _ = Describe("PostgreSQL integration", Ordered, Label("integration"), func() {
	var (
		ctx       context.Context
		container *Container
		userIDs   []string
		all       []*dbUser
		slicer    *sqlboiler.Slicer[*dbUser]
	)

	userSchema := paging.NewSortSchema().
		Field("created_at").
		Field("name").
		Field("age").
		FixedField("id", paging.ASC)

	BeforeAll(func() {
		ctx = context.Background()

		var err error
		container, err = SetupPostgres(ctx)
		Expect(err).ToNot(HaveOccurred())
		GinkgoWriter.Printf("PostgreSQL container started: %s\n", container.ConnStr)

		Expect(CleanupTables(ctx, container.DB)).To(Succeed())
		userIDs, err = SeedUsers(ctx, container.DB, 25)
		Expect(err).ToNot(HaveOccurred())

		slicer = sqlboiler.NewSlicer[*dbUser](container.DB,
			sqlboiler.Projection{
				Table:  "users",
				Fields: []string{"id", "name", "age", "is_active"},
			},
			sqlboiler.RowScannerFunc[*dbUser](scanDBUser),
			sqlboiler.WithSortSchema(userSchema),
			sqlboiler.WithDefaultOrder(paging.Sort{Column: "created_at"}),
			sqlboiler.WithBuilderOptions(sqlboiler.WithFieldValidator(sqlboiler.Columns{
				"users": {"id", "email", "name", "age", "is_active", "created_at"},
			})),
		)

		everything, err := slicer.Paginate(ctx, nil)
		Expect(err).ToNot(HaveOccurred())
		all = everything.Nodes()
	})

	AfterAll(func() {
		if container != nil {
			Expect(container.Terminate(ctx)).To(Succeed())
		}
	})

	It("should return every user in created_at order without arguments", func() {
		Expect(all).To(HaveLen(25))
		for i, u := range all {
			Expect(u.ID).To(Equal(userIDs[i]))
		}
	})

	It("should match the in-memory slicer for every argument combination", func() {
		n := len(all)
		cursors := []*string{nil, strPtr(paging.EncodeCursor(1)), strPtr(paging.EncodeCursor(7)), strPtr(paging.EncodeCursor(n))}
		sizes := []*int{nil, intPtr(0), intPtr(3), intPtr(30)}

		for _, after := range cursors {
			for _, before := range cursors {
				for _, first := range sizes {
					for _, last := range sizes {
						args := &paging.PageArgs{After: after, Before: before, First: first, Last: last}

						memory, memErr := cursor.Slice(all, args, paging.WithTotalCount())
						db, dbErr := slicer.Paginate(ctx, args, paging.WithTotalCount())

						if memErr != nil {
							Expect(dbErr).To(MatchError(memErr.Error()))
							continue
						}
						Expect(dbErr).ToNot(HaveOccurred())

						Expect(ids(db)).To(Equal(ids(memory)), "args %+v", args)
						Expect(db.Cursors()).To(Equal(memory.Cursors()))
						Expect(db.HasNextPage).To(Equal(memory.HasNextPage), "args %+v", args)
						Expect(db.HasPreviousPage).To(Equal(memory.HasPreviousPage), "args %+v", args)
						Expect(*db.TotalCount).To(Equal(n))
					}
				}
			}
		}
	})

	It("should take last from a first page that runs past the end", func() {
		args := &paging.PageArgs{
			After: strPtr(paging.EncodeCursor(20)),
			First: intPtr(10),
			Last:  intPtr(3),
		}

		page, err := slicer.Paginate(ctx, args)

		Expect(err).ToNot(HaveOccurred())
		Expect(ids(page)).To(Equal(userIDs[22:25]))
		Expect(page.HasPreviousPage).To(BeTrue())
		Expect(page.HasNextPage).To(BeFalse())

		memory, err := cursor.Slice(all, args)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(page)).To(Equal(ids(memory)))
	})

	It("should page forward to the end", func() {
		var (
			seen  []string
			after *string
		)
		for pages := 0; pages < 10; pages++ {
			page, err := slicer.Paginate(ctx, &paging.PageArgs{First: intPtr(10), After: after})
			Expect(err).ToNot(HaveOccurred())

			seen = append(seen, ids(page)...)
			if !page.HasNextPage {
				break
			}
			after = page.EndCursor()
		}

		Expect(seen).To(Equal(userIDs))
	})

	It("should sort by a requested column", func() {
		page, err := slicer.Paginate(ctx, paging.WithSortBy(&paging.PageArgs{First: intPtr(5)}, "created_at", true))

		Expect(err).ToNot(HaveOccurred())
		Expect(ids(page)).To(Equal([]string{userIDs[24], userIDs[23], userIDs[22], userIDs[21], userIDs[20]}))
		Expect(page.HasNextPage).To(BeTrue())
	})

	It("should slice a filtered projection", func() {
		active := sqlboiler.NewSlicer[*dbUser](container.DB,
			sqlboiler.Projection{
				Table:  "users",
				Fields: []string{"id", "name", "age", "is_active"},
				Mods:   []qm.QueryMod{qm.Where("is_active = ?", true)},
			},
			sqlboiler.RowScannerFunc[*dbUser](scanDBUser),
			sqlboiler.WithSortSchema(userSchema),
			sqlboiler.WithDefaultOrder(paging.Sort{Column: "created_at"}),
		)

		page, err := active.Paginate(ctx, &paging.PageArgs{Last: intPtr(4)}, paging.WithTotalCount())

		Expect(err).ToNot(HaveOccurred())
		Expect(*page.TotalCount).To(Equal(16))
		Expect(page.Items).To(HaveLen(4))
		Expect(page.Items[3].Index).To(Equal(16))
		for _, u := range page.Nodes() {
			Expect(u.IsActive).To(BeTrue())
		}
		Expect(page.HasPreviousPage).To(BeTrue())
		Expect(page.HasNextPage).To(BeFalse())
	})

	It("should match the in-memory offset slicer", func() {
		for _, skip := range []int{0, 5, 23, 40} {
			for _, take := range []int{1, 5, 30} {
				args := &paging.OffsetArgs{Skip: intPtr(skip), Take: intPtr(take)}

				memory, err := offset.Slice(all, args, paging.WithTotalCount())
				Expect(err).ToNot(HaveOccurred())
				db, err := slicer.PaginateOffset(ctx, args, paging.WithTotalCount())
				Expect(err).ToNot(HaveOccurred())

				Expect(ids(db)).To(Equal(ids(memory)))
				Expect(db.Cursors()).To(Equal(memory.Cursors()))
				Expect(db.HasNextPage).To(Equal(memory.HasNextPage))
				Expect(db.HasPreviousPage).To(Equal(memory.HasPreviousPage))
				Expect(*db.TotalCount).To(Equal(25))
			}
		}
	})
})
