package component

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/partwright/param"
	"github.com/sarchlab/partwright/scheduling"
)

var _ = Describe("Stages", func() {
	var (
		mockCtrl *gomock.Controller
		pool     *scheduling.Pool
		model    *MockModel
		modifier *MockModifier
		params   *param.Container
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pool = scheduling.MakeBuilder().WithNumWorkers(4).Build("Pool")
		model = NewMockModel(mockCtrl)
		modifier = NewMockModifier(mockCtrl)
		params = param.NewContainer()
	})

	AfterEach(func() {
		pool.Terminate()
		mockCtrl.Finish()
	})

	It("should construct the base model", func() {
		model.EXPECT().ConstructArtifact(params).Return("A", nil)

		stage := NewBaseStage(pool, model)
		a, err := stage.ConstructModel(params).Wait()

		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal("A"))
	})

	It("should report a failing model", func() {
		model.EXPECT().ConstructArtifact(params).Return(nil, errors.New("bad"))

		stage := NewBaseStage(pool, model)
		_, err := stage.ConstructModel(params).Wait()

		Expect(err).To(MatchError(ErrArtifactConstructionFailed))
		Expect(err.Error()).To(ContainSubstring("bad"))
	})

	It("should report a panicking model", func() {
		model.EXPECT().ConstructArtifact(params).DoAndReturn(
			func(*param.Container) (Artifact, error) {
				panic("broken kernel")
			})

		stage := NewBaseStage(pool, model)
		_, err := stage.ConstructModel(params).Wait()

		Expect(err).To(MatchError(ErrArtifactConstructionFailed))
		Expect(err).To(MatchError(scheduling.ErrTaskPanicked))
	})

	It("should combine exactly the base and the modifier artifacts", func() {
		model.EXPECT().ConstructArtifact(params).Return("A", nil)
		modifier.EXPECT().ConstructModifier(params).Return("B", nil)
		modifier.EXPECT().Apply("A", "B").Return("A+B", nil)

		stage := NewModifierStage(pool, NewBaseStage(pool, model), modifier)
		a, err := stage.ConstructModel(params).Wait()

		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal("A+B"))
	})

	It("should not combine when the base fails", func() {
		model.EXPECT().ConstructArtifact(params).Return(nil, errors.New("bad"))
		modifier.EXPECT().ConstructModifier(params).Return("B", nil).MaxTimes(1)

		stage := NewModifierStage(pool, NewBaseStage(pool, model), modifier)
		_, err := stage.ConstructModel(params).Wait()

		Expect(err).To(MatchError(ErrArtifactConstructionFailed))
		pool.Drain()
	})

	It("should not combine when the modifier fails", func() {
		model.EXPECT().ConstructArtifact(params).Return("A", nil)
		modifier.EXPECT().ConstructModifier(params).Return(nil, errors.New("bad"))

		stage := NewModifierStage(pool, NewBaseStage(pool, model), modifier)
		_, err := stage.ConstructModel(params).Wait()

		Expect(err).To(MatchError(ErrArtifactConstructionFailed))
	})

	It("should report a failing combination", func() {
		model.EXPECT().ConstructArtifact(params).Return("A", nil)
		modifier.EXPECT().ConstructModifier(params).Return("B", nil)
		modifier.EXPECT().Apply("A", "B").Return(nil, errors.New("no overlap"))

		stage := NewModifierStage(pool, NewBaseStage(pool, model), modifier)
		_, err := stage.ConstructModel(params).Wait()

		Expect(err).To(MatchError(ErrArtifactConstructionFailed))
		Expect(err.Error()).To(ContainSubstring("no overlap"))
	})
})

var _ = Describe("ChainBuilder", func() {
	var (
		mockCtrl *gomock.Controller
		pool     *scheduling.Pool
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pool = scheduling.MakeBuilder().WithNumWorkers(4).Build("Pool")
	})

	AfterEach(func() {
		pool.Terminate()
		mockCtrl.Finish()
	})

	It("should require a scheduler", func() {
		_, err := MakeChainBuilder().WithModel(NewMockModel(mockCtrl)).Build()

		Expect(err).To(MatchError(ErrInvalidChain))
	})

	It("should require a model", func() {
		_, err := MakeChainBuilder().WithScheduler(pool).Build()

		Expect(err).To(MatchError(ErrInvalidChain))
	})

	It("should apply modifiers innermost first", func() {
		params := param.NewContainer()
		model := NewMockModel(mockCtrl)
		inner := NewMockModifier(mockCtrl)
		outer := NewMockModifier(mockCtrl)

		model.EXPECT().ConstructArtifact(params).Return("A", nil)
		inner.EXPECT().ConstructModifier(params).Return("B", nil)
		inner.EXPECT().Apply("A", "B").Return("AB", nil)
		outer.EXPECT().ConstructModifier(params).Return("C", nil)
		outer.EXPECT().Apply("AB", "C").Return("ABC", nil)

		stage, err := MakeChainBuilder().
			WithScheduler(pool).
			WithModel(model).
			WithModifier(inner).
			WithModifier(outer).
			Build()
		Expect(err).NotTo(HaveOccurred())

		a, err := stage.ConstructModel(params).Wait()

		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal("ABC"))
	})
})
