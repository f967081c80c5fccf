// Package pdf decodes PDF CV uploads via the poppler command-line tools,
// with a best-effort OCR recovery path for image-only documents.
package pdf

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// maxOCRPages caps how many pages the recovery path rasterises.
const maxOCRPages = 5

// CommandRunner executes an external command and returns its stdout.
// Injectable for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Decoder extracts the text layer of a PDF with pdftotext. When the text
// layer is empty, Recover rasterises the first pages with pdftoppm and runs
// tesseract over each image.
type Decoder struct {
	runner CommandRunner
	logger *zap.Logger
}

// New creates a PDF decoder using the system toolchain.
func New(logger *zap.Logger) *Decoder {
	return NewWithRunner(execRunner{}, logger)
}

// NewWithRunner creates a PDF decoder with an injected command runner.
func NewWithRunner(runner CommandRunner, logger *zap.Logger) *Decoder {
	return &Decoder{runner: runner, logger: logger}
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing the toolchain.
func InstallInstructions() string {
	return "pdftotext is required for PDF extraction.\n" +
		"  macOS:  brew install poppler\n" +
		"  Debian: apt install poppler-utils\n" +
		"OCR recovery additionally uses tesseract (optional):\n" +
		"  macOS:  brew install tesseract\n" +
		"  Debian: apt install tesseract-ocr\n"
}

// Extensions returns the extensions this decoder handles.
func (d *Decoder) Extensions() []string {
	return []string{"pdf"}
}

// Decode returns the text layer of the PDF.
func (d *Decoder) Decode(ctx context.Context, content []byte) (string, error) {
	if err := CheckAvailable(); err != nil {
		return "", err
	}

	path, cleanup, err := writeTempPDF(content)
	if err != nil {
		return "", err
	}
	defer cleanup()

	// "-" sends the extracted text to stdout.
	out, err := d.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Recover rasterises the first pages and OCRs each one, concatenating
// non-empty page results with newlines. It is fail-soft: any failure,
// missing tools, rasterisation or OCR errors, yields an empty string,
// leaving the caller's empty-text failure in place.
func (d *Decoder) Recover(ctx context.Context, content []byte) string {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		d.logger.Debug("ocr recovery unavailable", zap.String("missing", "pdftoppm"))
		return ""
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		d.logger.Debug("ocr recovery unavailable", zap.String("missing", "tesseract"))
		return ""
	}

	path, cleanup, err := writeTempPDF(content)
	if err != nil {
		return ""
	}
	defer cleanup()

	dir, err := os.MkdirTemp("", "talentia-ocr-*")
	if err != nil {
		return ""
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	if _, err := d.runner.Run(ctx, "pdftoppm",
		"-png", "-r", "200", "-f", "1", "-l", strconv.Itoa(maxOCRPages),
		path, prefix); err != nil {
		d.logger.Debug("ocr rasterisation failed", zap.Error(err))
		return ""
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil || len(images) == 0 {
		return ""
	}
	sort.Strings(images)
	if len(images) > maxOCRPages {
		images = images[:maxOCRPages]
	}

	var parts []string
	for _, img := range images {
		out, err := d.runner.Run(ctx, "tesseract", img, "stdout")
		if err != nil {
			d.logger.Debug("ocr page failed", zap.String("image", img), zap.Error(err))
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n")
}

// writeTempPDF writes content to a temp file for the external tools.
func writeTempPDF(content []byte) (path string, cleanup func(), err error) {
	file, err := os.CreateTemp("", "talentia-*.pdf")
	if err != nil {
		return "", nil, err
	}

	if _, err := file.Write(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", nil, err
	}
	file.Close()

	return file.Name(), func() { os.Remove(file.Name()) }, nil
}
