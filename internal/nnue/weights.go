package nnue

import (
	"encoding/json"
	"fmt"
	"os"
)

// weightFileJSON mirrors the four-key weight file format: nested arrays of
// doubles that get quantized on load.
type weightFileJSON struct {
	FTWeight  [][]float64 `json:"ft.weight"`  // [Input][Hidden]
	FTBias    []float64   `json:"ft.bias"`    // [Hidden]
	OutWeight [][]float64 `json:"out.weight"` // [Output][2*Hidden]
	OutBias   []float64   `json:"out.bias"`   // [Output]
}

// LoadWeights reads a JSON weight file and quantizes it into net.
func (n *Network) LoadWeights(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("nnue: failed to read weight file %q: %w", path, err)
	}

	var w weightFileJSON
	if err := json.Unmarshal(raw, &w); err != nil {
		return fmt.Errorf("nnue: failed to parse weight file %q: %w", path, err)
	}

	if len(w.FTWeight) != Input {
		return fmt.Errorf("nnue: weight file %q: ft.weight has %d rows, want %d", path, len(w.FTWeight), Input)
	}
	if len(w.FTBias) != Hidden {
		return fmt.Errorf("nnue: weight file %q: ft.bias has %d entries, want %d", path, len(w.FTBias), Hidden)
	}
	if len(w.OutWeight) != Output {
		return fmt.Errorf("nnue: weight file %q: out.weight has %d rows, want %d", path, len(w.OutWeight), Output)
	}
	if len(w.OutBias) != Output {
		return fmt.Errorf("nnue: weight file %q: out.bias has %d entries, want %d", path, len(w.OutBias), Output)
	}

	for i, row := range w.FTWeight {
		if len(row) != Hidden {
			return fmt.Errorf("nnue: weight file %q: ft.weight row %d has %d entries, want %d", path, i, len(row), Hidden)
		}
		for j, v := range row {
			q := quantize(v, QA)
			n.FeatureWeight[i*Hidden+j] = q
			n.FlippedFeatureWeight[i*Hidden+j] = q
		}
	}

	for i, v := range w.FTBias {
		n.FeatureBias[i] = quantize(v, QA)
	}

	outRow := w.OutWeight[0]
	if len(outRow) != 2*Hidden {
		return fmt.Errorf("nnue: weight file %q: out.weight row has %d entries, want %d", path, len(outRow), 2*Hidden)
	}
	for i, v := range outRow {
		n.OutWeight[i] = quantize(v, QB)
	}

	n.OutBias = int32(w.OutBias[0] * QAB)

	return nil
}

// quantize scales and truncates toward zero into a signed 16-bit weight.
func quantize(v float64, scale int) int16 {
	return int16(v * float64(scale))
}
