package component

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/partwright/param"
	"github.com/sarchlab/partwright/scheduling"
)

var _ = Describe("Assembly", func() {
	var pool *scheduling.Pool

	BeforeEach(func() {
		pool = scheduling.MakeBuilder().WithNumWorkers(8).Build("Pool")
	})

	AfterEach(func() {
		pool.Terminate()
	})

	newPart := func(name string, w float64) *Part {
		spec := param.NewContainer()
		spec.Set("w", param.MakeBuilder().
			WithName("Width").WithSymbol("w").
			WithValue(w).
			MustBuild())

		return MakePartBuilder().
			WithEnvironment(Environment{Scheduler: pool}).
			WithSpecification(spec).
			WithChain(widthChain).
			Build(name)
	}

	It("should keep children in order", func() {
		a := NewAssembly("Frame", "Assembly")
		p1, p2 := newPart("Left", 1), newPart("Right", 2)

		a.Add(p1, p2)

		Expect(a.Children()).To(Equal([]Node{p1, p2}))
		Expect(a.Name()).To(Equal("Frame"))
		Expect(a.Category()).To(Equal("Assembly"))
	})

	It("should share children between assemblies", func() {
		shared := newPart("Bolt", 1)
		a, b := NewAssembly("A", ""), NewAssembly("B", "")

		a.Add(shared)
		b.Add(shared)

		Expect(a.Children()[0]).To(BeIdenticalTo(b.Children()[0]))
	})

	It("should walk nested assemblies depth first", func() {
		root := NewAssembly("Root", "")
		sub := NewAssembly("Sub", "")
		p1, p2 := newPart("P1", 1), newPart("P2", 2)
		sub.Add(p2)
		root.Add(p1, sub)

		var names []string
		var depths []int
		root.Walk(func(n Node, depth int) bool {
			names = append(names, n.Name())
			depths = append(depths, depth)
			return true
		})

		Expect(names).To(Equal([]string{"P1", "Sub", "P2"}))
		Expect(depths).To(Equal([]int{1, 1, 2}))
	})

	It("should forward update requests to every component", func() {
		root := NewAssembly("Root", "")
		sub := NewAssembly("Sub", "")
		p1, p2 := newPart("P1", 1), newPart("P2", 2)
		sub.Add(p2)
		root.Add(p1, sub)

		handles := root.RequestUpdate()
		Expect(handles).To(HaveLen(2))

		for _, h := range handles {
			_, err := h.Wait()
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(p1.Revision()).To(Equal(uint64(1)))
		Expect(p2.Revision()).To(Equal(uint64(1)))
	})

	It("should refuse to contain itself", func() {
		a := NewAssembly("A", "")

		Expect(func() { a.Add(a) }).To(Panic())
	})

	It("should refuse to contain itself through other assemblies", func() {
		a, b, c := NewAssembly("A", ""), NewAssembly("B", ""), NewAssembly("C", "")
		a.Add(b)
		b.Add(c)

		Expect(func() { c.Add(a) }).To(Panic())
		Expect(func() { b.Add(a) }).To(Panic())
		Expect(c.Children()).To(BeEmpty())
		Expect(b.Children()).To(Equal([]Node{c}))

		var visited int
		a.Walk(func(Node, int) bool {
			visited++
			return true
		})
		Expect(visited).To(Equal(2))
	})

	It("should accept the same assembly twice without a cycle", func() {
		root, shared := NewAssembly("Root", ""), NewAssembly("Shared", "")

		root.Add(shared, shared)

		Expect(root.Children()).To(HaveLen(2))
	})
})
