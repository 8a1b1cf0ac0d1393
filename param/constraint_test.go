package param

import (
	"context"
	"fmt"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("FromConstraint", func() {
	var (
		mockCtrl *gomock.Controller
		source   *MockConstraintSource
		ctx      context.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = NewMockConstraintSource(mockCtrl)
		ctx = context.Background()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should load identity, limits and default", func() {
		source.EXPECT().
			LookupConstraint(ctx, ConstraintID(7)).
			Return(Constraint{
				ID:      7,
				Name:    "Wall thickness",
				Symbol:  "t",
				Min:     0.8,
				Max:     math.Inf(1),
				Default: 1.2,
			}, nil)

		p, err := FromConstraint(ctx, source, 7, Millimetre)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Identity()).To(Equal(Identity{Name: "Wall thickness", Symbol: "t"}))
		Expect(p.Value()).To(Equal(Q(1.2, Millimetre)))
		Expect(p.Default()).To(Equal(Q(1.2, Millimetre)))

		min, max := p.Limits()
		Expect(min.Value).To(Equal(0.8))
		Expect(math.IsInf(max.Value, 1)).To(BeTrue())
		Expect(p.AssignValue(1e9)).To(Succeed())
	})

	It("should fail without a source", func() {
		_, err := FromConstraint(ctx, nil, 7, Millimetre)

		Expect(err).To(MatchError(ErrConstraintSourceUnavailable))
	})

	It("should propagate an unavailable source", func() {
		source.EXPECT().
			LookupConstraint(ctx, ConstraintID(1)).
			Return(Constraint{}, fmt.Errorf("closed: %w", ErrConstraintSourceUnavailable))

		_, err := FromConstraint(ctx, source, 1, Millimetre)

		Expect(err).To(MatchError(ErrConstraintSourceUnavailable))
	})

	It("should propagate an unknown identity", func() {
		source.EXPECT().
			LookupConstraint(ctx, ConstraintID(99)).
			Return(Constraint{}, fmt.Errorf("row 99: %w", ErrUnknownConstraintIdentity))

		_, err := FromConstraint(ctx, source, 99, Millimetre)

		Expect(err).To(MatchError(ErrUnknownConstraintIdentity))
	})

	It("should reject a rule with equal limits", func() {
		source.EXPECT().
			LookupConstraint(ctx, ConstraintID(2)).
			Return(Constraint{Name: "x", Symbol: "x", Min: 1, Max: 1, Default: 1}, nil)

		_, err := FromConstraint(ctx, source, 2, Millimetre)

		Expect(err).To(MatchError(ErrRangeInvalid))
	})
})
