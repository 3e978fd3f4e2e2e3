package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestLineRenderer(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	r := NewLine(&buf)

	g.Expect(r.Render("8 * ")).To(Succeed())
	g.Expect(r.Render("8 * 4 = 32\n")).To(Succeed())
	g.Expect(r.Close()).To(Succeed())

	g.Expect(buf.String()).To(Equal("8 * \n8 * 4 = 32\n"))
}

func TestLiveRendererRedraws(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	r := NewLive(&buf)

	g.Expect(r.Render("12")).To(Succeed())
	first := buf.Len()
	g.Expect(buf.String()).To(ContainSubstring("12\n"))

	g.Expect(r.Render("12 + ")).To(Succeed())
	g.Expect(r.Close()).To(Succeed())

	// The second render is preceded by the escape codes that erase the first
	g.Expect(buf.String()[first:]).To(ContainSubstring("\x1b["))
	g.Expect(strings.HasSuffix(buf.String(), "12 + \n")).To(BeTrue())
}

func TestNewPicksLineRendererForFiles(t *testing.T) {
	g := NewWithT(t)

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	g.Expect(err).NotTo(HaveOccurred())
	defer f.Close()

	g.Expect(IsTerminal(f)).To(BeFalse())
	g.Expect(New(f)).To(BeAssignableToTypeOf(&LineRenderer{}))
}
