package cmd

import (
	"bytes"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag back to its default, since rootCmd outlives a
// single run.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}

		f.Changed = false
	}

	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(args ...string) (string, error) {
	var out bytes.Buffer

	resetFlags(rootCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(GinkgoWriter)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

var _ = Describe("Commands", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should split assignments", func() {
		k, v, err := splitAssignment(" Width = 5 ")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal("Width"))
		Expect(v).To(Equal("5"))

		_, _, err = splitAssignment("Width")
		Expect(err).To(HaveOccurred())
	})

	It("should manage design rules and build from them", func() {
		rules := filepath.Join(dir, "rules.db")

		out, err := run("rules", "init", rules)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("created"))

		_, err = run("rules", "add", "--design-rules", rules,
			"--id", "7", "--name", "Width", "--symbol", "w",
			"--min", "2", "--default", "4")
		Expect(err).NotTo(HaveOccurred())

		out, err = run("rules", "list", "--design-rules", rules)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Width"))
		Expect(out).To(ContainSubstring("+Inf"))

		out, err = run("build", "Box", "--design-rules", rules,
			"--workers", "4", "--no-color",
			"--plugin-dir", dir,
			"--rule", "Width=7", "--set", "Length=30")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Box (Primitive)"))
		Expect(out).To(ContainSubstring("box(height=5 length=30 width=4)"))
		Expect(out).To(ContainSubstring("Volume"))
	})

	It("should trace the recomputes of a recorded build", func() {
		recording := filepath.Join(dir, "run.sqlite3")

		_, err := run("build", "Box", "--workers", "4", "--no-color",
			"--plugin-dir", dir, "--record", recording, "--set", "Width=3")
		Expect(err).NotTo(HaveOccurred())

		out, err := run("trace", recording, "--component", "Box")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Designer: Box"))
		Expect(out).To(ContainSubstring("Box.Recompute1"))
		Expect(out).To(ContainSubstring("1 of 1 recompute(s) shown"))

		out, err = run("trace", recording, "--failed")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("0 of 0 recompute(s) shown"))
	})

	It("should refuse to trace a missing recording", func() {
		_, err := run("trace", filepath.Join(dir, "missing.sqlite3"))

		Expect(err).To(HaveOccurred())
	})
})
