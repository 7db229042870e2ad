package cursor_test

import (
	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/relay-paging"
	"github.com/nrfta/relay-paging/cursor"
)

// relaySlice applies the Relay connection algorithm directly to 1..n:
// drop everything up to after and from before on, keep the first `first`,
// then keep the last `last`.
func relaySlice(n int, after, before, first, last null.Int) []int {
	edges := sequence(n)
	if after.Valid {
		edges = filter(edges, func(i int) bool { return i > after.Int })
	}
	if before.Valid {
		edges = filter(edges, func(i int) bool { return i < before.Int })
	}
	if first.Valid && len(edges) > first.Int {
		edges = edges[:first.Int]
	}
	if last.Valid && len(edges) > last.Int {
		edges = edges[len(edges)-last.Int:]
	}
	return edges
}

func filter(items []int, keep func(int) bool) []int {
	out := []int{}
	for _, i := range items {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}

func optional(n int) []null.Int {
	values := []null.Int{{}}
	for i := 0; i <= n; i++ {
		values = append(values, null.IntFrom(i))
	}
	return values
}

var _ = Describe("Slice", func() {
	var items []int

	BeforeEach(func() {
		items = sequence(100)
	})

	Describe("boundary scenarios", func() {
		It("should return the head page for first=10", func() {
			page, err := cursor.Slice(items, &paging.PageArgs{First: intPtr(10)})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Nodes()).To(Equal(span(1, 10)))
			Expect(page.HasPreviousPage).To(BeFalse())
			Expect(page.HasNextPage).To(BeTrue())
		})

		It("should return the next page for first=10 after item 10", func() {
			page, err := cursor.Slice(items, &paging.PageArgs{
				First: intPtr(10),
				After: strPtr(paging.EncodeCursor(10)),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Nodes()).To(Equal(span(11, 20)))
			Expect(page.HasPreviousPage).To(BeTrue())
			Expect(page.HasNextPage).To(BeTrue())
		})

		It("should return the tail page for last=10", func() {
			page, err := cursor.Slice(items, &paging.PageArgs{Last: intPtr(10)})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Nodes()).To(Equal(span(91, 100)))
			Expect(page.HasPreviousPage).To(BeTrue())
			Expect(page.HasNextPage).To(BeFalse())
		})

		It("should narrow first=5 with last=2", func() {
			page, err := cursor.Slice(items, &paging.PageArgs{First: intPtr(5), Last: intPtr(2)})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Nodes()).To(Equal([]int{4, 5}))
			Expect(page.HasPreviousPage).To(BeTrue())
			Expect(page.HasNextPage).To(BeTrue())
		})

		It("should take last=3 from a first=10 page that runs past the end", func() {
			page, err := cursor.Slice(items, &paging.PageArgs{
				After: strPtr(paging.EncodeCursor(95)),
				First: intPtr(10),
				Last:  intPtr(3),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Nodes()).To(Equal([]int{98, 99, 100}))
			Expect(page.HasPreviousPage).To(BeTrue())
			Expect(page.HasNextPage).To(BeFalse())
		})

		It("should keep only the after cursor bound when first and last exceed the rest", func() {
			page, err := cursor.Slice(items, &paging.PageArgs{
				After: strPtr(paging.EncodeCursor(98)),
				First: intPtr(10),
				Last:  intPtr(3),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Nodes()).To(Equal([]int{99, 100}))
			Expect(page.HasNextPage).To(BeFalse())
		})

		It("should reject first=-1", func() {
			page, err := cursor.Slice(items, &paging.PageArgs{First: intPtr(-1)})

			Expect(page).To(BeNil())
			Expect(errors.Is(err, paging.ErrInvalidArgument)).To(BeTrue())
		})
	})

	It("should report no next page on the last forward page", func() {
		page, err := cursor.Slice(items, &paging.PageArgs{
			First: intPtr(10),
			After: strPtr(paging.EncodeCursor(90)),
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(page.Nodes()).To(Equal(span(91, 100)))
		Expect(page.HasNextPage).To(BeFalse())
	})

	It("should page backwards with before", func() {
		page, err := cursor.Slice(items, &paging.PageArgs{
			Last:   intPtr(10),
			Before: strPtr(paging.EncodeCursor(91)),
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(page.Nodes()).To(Equal(span(81, 90)))
		Expect(page.HasPreviousPage).To(BeTrue())
		Expect(page.HasNextPage).To(BeTrue())
	})

	It("should keep the after bound for last without before", func() {
		page, err := cursor.Slice(sequence(4), &paging.PageArgs{
			Last:  intPtr(3),
			After: strPtr(paging.EncodeCursor(2)),
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(page.Nodes()).To(Equal([]int{3, 4}))
	})

	It("should return an empty page past the end", func() {
		page, err := cursor.Slice(items, &paging.PageArgs{
			First: intPtr(10),
			After: strPtr(paging.EncodeCursor(150)),
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(page.Items).To(BeEmpty())
		Expect(page.HasNextPage).To(BeFalse())
		Expect(page.HasPreviousPage).To(BeFalse())
	})

	It("should return the whole sequence with no arguments", func() {
		page, err := cursor.Slice(items, nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(page.Nodes()).To(Equal(items))
		Expect(page.HasNextPage).To(BeFalse())
		Expect(page.HasPreviousPage).To(BeFalse())
		Expect(page.TotalCount).To(BeNil())
	})

	It("should handle an empty sequence", func() {
		page, err := cursor.Slice([]int{}, &paging.PageArgs{Last: intPtr(5)})

		Expect(err).ToNot(HaveOccurred())
		Expect(page.Items).To(BeEmpty())
		Expect(page.HasPreviousPage).To(BeFalse())
	})

	It("should compute the total count on request", func() {
		page, err := cursor.Slice(items, &paging.PageArgs{First: intPtr(1)}, paging.WithTotalCount())

		Expect(err).ToNot(HaveOccurred())
		Expect(*page.TotalCount).To(Equal(100))
	})

	It("should assign cursors from positions in the full sequence", func() {
		page, err := cursor.Slice(items, &paging.PageArgs{
			First: intPtr(3),
			After: strPtr(paging.EncodeCursor(41)),
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(page.Cursors()).To(Equal([]string{
			paging.EncodeCursor(42),
			paging.EncodeCursor(43),
			paging.EncodeCursor(44),
		}))
	})

	It("should not modify the source sequence", func() {
		words := []string{"a", "b", "c", "d"}

		_, err := cursor.Slice(words, &paging.PageArgs{Last: intPtr(2)})
		Expect(err).ToNot(HaveOccurred())
		_, err = cursor.Slice(words, &paging.PageArgs{First: intPtr(1), After: strPtr(paging.EncodeCursor(2))})
		Expect(err).ToNot(HaveOccurred())

		Expect(words).To(Equal([]string{"a", "b", "c", "d"}))
	})

	It("should agree with the Relay algorithm for every small argument combination", func() {
		const n = 6

		for _, after := range optional(n + 1) {
			for _, before := range optional(n + 1) {
				if after.Valid && after.Int == 0 || before.Valid && before.Int == 0 {
					continue
				}
				if after.Valid && before.Valid && after.Int > before.Int {
					continue
				}
				for _, first := range optional(n + 1) {
					for _, last := range optional(n + 1) {
						w, err := cursor.Calculate(cursor.Input{
							AfterIndex:  after,
							BeforeIndex: before,
							First:       first,
							Last:        last,
						})
						Expect(err).ToNot(HaveOccurred())

						page := cursor.SliceWindow(sequence(n), w, true)
						expected := relaySlice(n, after, before, first, last)

						Expect(page.Nodes()).To(Equal(expected),
							"after=%v before=%v first=%v last=%v window=%v", after, before, first, last, w)

						if page.HasNextPage && len(expected) > 0 {
							Expect(expected[len(expected)-1]).To(BeNumerically("<", n))
						}
						if page.HasPreviousPage {
							Expect(expected[0]).To(BeNumerically(">", 1))
						}
					}
				}
			}
		}
	})
})

var _ = Describe("Index", func() {
	It("should number items from one", func() {
		indexed := cursor.Index([]string{"a", "b"})

		Expect(indexed).To(Equal([]paging.IndexedResult[string]{
			{Index: 1, Node: "a"},
			{Index: 2, Node: "b"},
		}))
	})
})
