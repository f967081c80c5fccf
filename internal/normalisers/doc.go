// Package normalisers turns raw CV bytes into plain text.
//
// The registry dispatches on the declared file extension to a
// format-specific decoder (PDF text layer, DOCX paragraph extraction)
// and enforces the minimum-content rule: extracted text that trims to
// fewer than MinContentLength characters is a failure, not a short result.
//
// PDF decoding additionally carries a best-effort OCR recovery path for
// image-only documents; see the pdf subpackage.
package normalisers
