package designrules

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/partwright/param"
)

var _ = Describe("Store", func() {
	var (
		ctx   context.Context
		store *Store
	)

	BeforeEach(func() {
		ctx = context.Background()

		db, err := sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		db.SetMaxOpenConns(1)

		store = NewWithDB(db)
		Expect(store.CreateSchema(ctx)).To(Succeed())
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	It("should look up a stored rule", func() {
		Expect(store.Insert(ctx, param.Constraint{
			ID: 1, Name: "Wall thickness", Symbol: "t", Min: 0.8, Max: 10, Default: 1.2,
		})).To(Succeed())

		c, err := store.LookupConstraint(ctx, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(param.Constraint{
			ID: 1, Name: "Wall thickness", Symbol: "t", Min: 0.8, Max: 10, Default: 1.2,
		}))
	})

	It("should read INFINITY as an unbounded maximum", func() {
		Expect(store.Insert(ctx, param.Constraint{
			ID: 2, Name: "Length", Symbol: "l", Min: 0, Max: math.Inf(1), Default: 10,
		})).To(Succeed())

		c, err := store.LookupConstraint(ctx, 2)

		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsInf(c.Max, 1)).To(BeTrue())
	})

	It("should report unknown identifiers", func() {
		_, err := store.LookupConstraint(ctx, 42)

		Expect(err).To(MatchError(param.ErrUnknownConstraintIdentity))
		Expect(err.Error()).To(ContainSubstring("42"))
	})

	It("should report a closed store as unavailable", func() {
		Expect(store.Close()).To(Succeed())

		_, err := store.LookupConstraint(ctx, 1)

		Expect(err).To(MatchError(param.ErrConstraintSourceUnavailable))
	})

	It("should list rules in order", func() {
		Expect(store.Insert(ctx, param.Constraint{ID: 3, Name: "c", Symbol: "c", Min: 0, Max: 1})).To(Succeed())
		Expect(store.Insert(ctx, param.Constraint{ID: 1, Name: "a", Symbol: "a", Min: 0, Max: 1})).To(Succeed())

		rules, err := store.List(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(rules).To(HaveLen(2))
		Expect(rules[0].ID).To(Equal(param.ConstraintID(1)))
		Expect(rules[1].ID).To(Equal(param.ConstraintID(3)))
	})

	It("should serve as a constraint source for parameters", func() {
		Expect(store.Insert(ctx, param.Constraint{
			ID: 5, Name: "Hole diameter", Symbol: "d", Min: 1, Max: 20, Default: 3,
		})).To(Succeed())

		p, err := param.FromConstraint(ctx, store, 5, param.Millimetre)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name()).To(Equal("Hole diameter"))
		Expect(p.Value()).To(Equal(param.Q(3, param.Millimetre)))
	})
})

var _ = Describe("Open", func() {
	It("should fail for a missing file", func() {
		_, err := Open(filepath.Join(GinkgoT().TempDir(), DefaultFileName))

		Expect(err).To(MatchError(param.ErrConstraintSourceUnavailable))
	})

	It("should open a created database", func() {
		ctx := context.Background()
		path := filepath.Join(GinkgoT().TempDir(), DefaultFileName)

		created, err := Create(ctx, path)
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Insert(ctx, param.Constraint{ID: 1, Name: "a", Symbol: "a", Min: 0, Max: 1})).To(Succeed())
		Expect(created.Close()).To(Succeed())

		store, err := Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer store.Close()

		c, err := store.LookupConstraint(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Name).To(Equal("a"))
		Expect(store.Path()).To(Equal(path))
	})

	It("should refuse to overwrite an existing file", func() {
		ctx := context.Background()
		path := filepath.Join(GinkgoT().TempDir(), DefaultFileName)

		s, err := Create(ctx, path)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Close()).To(Succeed())

		_, err = Create(ctx, path)
		Expect(err).To(HaveOccurred())
	})
})
