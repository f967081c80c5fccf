package pdf

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	calls  []string
	argv   [][]string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, name)
	m.argv = append(m.argv, args)
	return m.output, m.err
}

func TestExtensions(t *testing.T) {
	d := New(zap.NewNop())
	assert.Equal(t, []string{"pdf"}, d.Extensions())
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
	assert.Contains(t, instructions, "tesseract")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestDecode_WithMockRunner(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not in PATH, skipping mock runner test")
	}

	runner := &mockRunner{output: []byte("CV Title\n\nExperience and skills.\n")}
	d := NewWithRunner(runner, zap.NewNop())

	text, err := d.Decode(context.Background(), []byte("%PDF-1.4 fake pdf content"))
	require.NoError(t, err)
	assert.Equal(t, "CV Title\n\nExperience and skills.\n", text)
	assert.Equal(t, []string{"pdftotext"}, runner.calls)
}

func TestDecode_RunnerError(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not in PATH, skipping mock runner test")
	}

	runner := &mockRunner{err: errors.New("exit status 1")}
	d := NewWithRunner(runner, zap.NewNop())

	_, err := d.Decode(context.Background(), []byte("%PDF-1.4 broken"))
	assert.Error(t, err)
}

func TestRecover_FailSoft(t *testing.T) {
	// With a failing runner, Recover must yield "" rather than an error,
	// regardless of which tool fails first.
	runner := &mockRunner{err: errors.New("boom")}
	d := NewWithRunner(runner, zap.NewNop())

	text := d.Recover(context.Background(), []byte("%PDF-1.4 image only"))
	assert.Empty(t, text)
}

func TestRecover_RasterisesUpToPageCap(t *testing.T) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not in PATH, skipping")
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not in PATH, skipping")
	}

	runner := &mockRunner{err: errors.New("boom")}
	d := NewWithRunner(runner, zap.NewNop())
	d.Recover(context.Background(), []byte("%PDF-1.4 image only"))

	require.Equal(t, []string{"pdftoppm"}, runner.calls)
	args := runner.argv[0]
	i := slices.Index(args, "-l")
	require.GreaterOrEqual(t, i, 0, "pdftoppm must be given a last-page bound")
	assert.Equal(t, strconv.Itoa(maxOCRPages), args[i+1])
}

// Integration test - only runs if the full toolchain is available.
func TestDecode_Integration(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not available, skipping integration test")
	}

	// This test would require a real PDF file.
	// For CI, we rely on the mock tests above.
	t.Skip("integration test requires sample PDF file")
}
