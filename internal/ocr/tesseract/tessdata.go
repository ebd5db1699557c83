// Package tesseract provides the Tesseract OCR engine through gosseract.
//
// The engine needs cgo and the tesseract development libraries, so it is only
// compiled with the "ocr" build tag:
//
//	go build -tags ocr ./cmd/markscan
//
// Without the tag New always fails with ocr.ErrEngineUnavailable.
package tesseract

import (
	"os"
	"path/filepath"
)

// EnvTessdataPrefix overrides the tessdata directory.
const EnvTessdataPrefix = "MARKSCAN_TESSDATA_PREFIX"

// tessdataDirs are the usual install locations, most specific first.
var tessdataDirs = []string{
	"/usr/share/tesseract-ocr/5/tessdata",
	"/usr/share/tesseract-ocr/4.00/tessdata",
	"/usr/share/tessdata",
	"/usr/local/share/tessdata",
	"/opt/homebrew/share/tessdata",
}

// ResolveTessdataPrefix returns the directory holding lang's trained data.
// Priority: 1. explicit prefix, 2. MARKSCAN_TESSDATA_PREFIX, 3. TESSDATA_PREFIX,
// 4. the first standard location that contains the language. An empty result
// leaves the choice to the tesseract library.
func ResolveTessdataPrefix(prefix, lang string) string {
	if prefix != "" {
		return prefix
	}
	for _, env := range []string{EnvTessdataPrefix, "TESSDATA_PREFIX"} {
		if dir := os.Getenv(env); dir != "" {
			return dir
		}
	}
	for _, dir := range tessdataDirs {
		if TrainedDataExists(dir, lang) {
			return dir
		}
	}
	return ""
}

// TrainedDataPath is the trained data file for lang under dir.
func TrainedDataPath(dir, lang string) string {
	return filepath.Join(dir, lang+".traineddata")
}

// TrainedDataExists reports whether dir holds trained data for lang.
func TrainedDataExists(dir, lang string) bool {
	info, err := os.Stat(TrainedDataPath(dir, lang))
	return err == nil && !info.IsDir()
}
