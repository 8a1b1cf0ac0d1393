package plugins

import (
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/equation"
	"github.com/sarchlab/partwright/param"
	"github.com/sarchlab/partwright/scheduling"
)

func nopConstructor(marker string) component.Constructor {
	return func(
		env component.Environment,
		name, category string,
		spec *param.Container,
	) (component.Component, error) {
		return component.MakePartBuilder().
			WithEnvironment(env).
			WithCategory(category).
			WithSpecification(spec).
			WithChain(func(env component.Environment, _ *param.Container) (component.Stage, error) {
				return component.MakeChainBuilder().
					WithScheduler(env.Scheduler).
					WithModel(markerModel(marker)).
					Build()
			}).
			Build(name), nil
	}
}

type markerModel string

func (m markerModel) ConstructArtifact(*param.Container) (component.Artifact, error) {
	return string(m), nil
}

type equationAPI struct {
	API
	equations *equation.Registry
}

func (a equationAPI) Equations() *equation.Registry {
	return a.equations
}

var _ = Describe("Registry", func() {
	var (
		mockCtrl *gomock.Controller
		logger   *slog.Logger
		pool     *scheduling.Pool
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		logger = slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		pool = scheduling.MakeBuilder().WithNumWorkers(4).Build("Pool")
	})

	AfterEach(func() {
		pool.Terminate()
		mockCtrl.Finish()
	})

	newAPI := func(name string, designers ...component.Designer) *MockAPI {
		api := NewMockAPI(mockCtrl)
		api.EXPECT().PluginName().Return(name).AnyTimes()
		api.EXPECT().PluginVersion().Return("1.0").AnyTimes()
		api.EXPECT().Designers().Return(designers).AnyTimes()

		return api
	}

	It("should aggregate the designers of all modules", func() {
		m1 := StaticModule("a.so", func() API {
			return newAPI("A", component.NewDesigner("Box", "Primitive", nopConstructor("a")))
		})
		m2 := StaticModule("b.so", func() API {
			return newAPI("B", component.NewDesigner("Cylinder", "Primitive", nopConstructor("b")))
		})

		r := BuildRegistry(logger, m1, m2)

		Expect(r.Designers()).To(HaveLen(2))
		Expect(r.Designers()[0].Name()).To(Equal("Box"))
		Expect(r.Designers()[1].Name()).To(Equal("Cylinder"))
		Expect(r.Modules()).To(Equal([]*Module{m1, m2}))
	})

	It("should let the later module win on a name collision", func() {
		first := StaticModule("first.so", func() API {
			return newAPI("First", component.NewDesigner("Box", "Primitive", nopConstructor("first")))
		})
		second := StaticModule("second.so", func() API {
			return newAPI("Second", component.NewDesigner("Box", "Primitive", nopConstructor("second")))
		})

		r := BuildRegistry(logger, first, second)

		Expect(r.Designers()).To(HaveLen(1))
		provider, ok := r.Provider("Box")
		Expect(ok).To(BeTrue())
		Expect(provider).To(BeIdenticalTo(second))

		c, err := r.ConstructComponent(component.Environment{Scheduler: pool}, "Box", param.NewContainer())
		Expect(err).NotTo(HaveOccurred())
		Eventually(func() bool {
			_, ok := c.Artifact()
			return ok
		}).Should(BeTrue())

		a, _ := c.Artifact()
		Expect(a).To(Equal("second"))
	})

	It("should report unknown designers by name", func() {
		r := BuildRegistry(logger)

		_, err := r.ConstructComponent(component.Environment{Scheduler: pool}, "Gear", param.NewContainer())

		Expect(err).To(MatchError(ErrDesignerNotFound))
		Expect(err.Error()).To(ContainSubstring("Gear"))
	})

	It("should merge the equations of the modules", func() {
		volume := param.Identity{Name: "Volume", Symbol: "V"}
		m := StaticModule("eq.so", func() API {
			return equationAPI{
				API: newAPI("Eq"),
				equations: equation.MakeBuilder().
					With("Box", volume, func(*param.Container) (param.Quantity, error) {
						return param.Q(1, param.Dimensionless), nil
					}).
					Build(),
			}
		})

		r := BuildRegistry(logger, m)

		Expect(r.Equations().Len()).To(Equal(1))
	})
})

var _ = Describe("Discover", func() {
	It("should fail for a missing directory", func() {
		_, err := Discover(filepath.Join(GinkgoT().TempDir(), "missing"), nil)

		Expect(err).To(MatchError(ErrPluginLoadingFailed))
	})

	It("should skip files that are not plugins", func() {
		dir := GinkgoT().TempDir()
		junk := filepath.Join(dir, "readme.txt")
		Expect(os.WriteFile(junk, []byte("not a plugin"), 0o644)).To(Succeed())
		Expect(os.Mkdir(filepath.Join(dir, "nested"), 0o755)).To(Succeed())
		Expect(os.Symlink(junk, filepath.Join(dir, "link.so"))).To(Succeed())

		modules, err := Discover(dir, slog.New(slog.NewTextHandler(GinkgoWriter, nil)))

		Expect(err).NotTo(HaveOccurred())
		Expect(modules).To(BeEmpty())
	})

	It("should report a file without the loader symbol", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "broken.so")
		Expect(os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F'}, 0o644)).To(Succeed())

		_, err := Open(path)

		Expect(err).To(MatchError(ErrPluginLoadingFailed))
	})
})

var _ = Describe("DefaultPluginDir", func() {
	It("should be under the working directory", func() {
		cwd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		dir, err := DefaultPluginDir()

		Expect(err).NotTo(HaveOccurred())
		Expect(dir).To(Equal(filepath.Join(cwd, DefaultDirName)))
	})
})
