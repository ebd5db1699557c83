package pipeline

import (
	"fmt"
	"strings"

	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr/azure"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr/tesseract"
)

// Engine names accepted by NewEngine.
const (
	EngineTesseract = "tesseract"
	EngineAzure     = "azure"
)

// NewEngine constructs the OCR engine named in cfg.
func NewEngine(cfg ocr.Config) (ocr.Engine, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case EngineTesseract, "":
		e, err := tesseract.New(cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	case EngineAzure:
		e, err := azure.New(cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown ocr engine %q (must be tesseract or azure)", cfg.Engine)
	}
}
