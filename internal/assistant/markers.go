package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lingua-tutor/internal/domain"
)

const (
	correctionsMarker = "[CORRECTIONS:"
	progressMarker    = "[PROGRESS:"
)

// SideChannel is the structured data the model appends after its visible reply.
type SideChannel struct {
	Corrections []domain.Correction
	Progress    domain.ProgressUpdate
}

// ExtractSideChannel splits a raw completion into display content and side-channel
// data. Content is everything before the first marker of either kind. Each block
// is decoded on its own; a malformed block leaves its part empty and is reported
// in the returned error while the rest of the result stays usable.
func ExtractSideChannel(raw string) (string, SideChannel, error) {
	side := SideChannel{Corrections: []domain.Correction{}, Progress: domain.ProgressUpdate{Learned: []string{}, Difficult: []string{}}}

	ci := strings.Index(raw, correctionsMarker)
	pi := strings.Index(raw, progressMarker)
	cut := len(raw)
	for _, i := range []int{ci, pi} {
		if i >= 0 && i < cut {
			cut = i
		}
	}
	content := strings.TrimSpace(raw[:cut])

	var errs []error
	if ci >= 0 {
		var block struct {
			Items []domain.Correction `json:"items"`
		}
		if err := decodeBlock(raw[ci+len(correctionsMarker):], &block); err != nil {
			errs = append(errs, fmt.Errorf("corrections block: %w", err))
		} else if block.Items != nil {
			side.Corrections = block.Items
		}
	}
	if pi >= 0 {
		var block domain.ProgressUpdate
		if err := decodeBlock(raw[pi+len(progressMarker):], &block); err != nil {
			errs = append(errs, fmt.Errorf("progress block: %w", err))
		} else {
			if block.Learned != nil {
				side.Progress.Learned = block.Learned
			}
			if block.Difficult != nil {
				side.Progress.Difficult = block.Difficult
			}
		}
	}
	return content, side, errors.Join(errs...)
}

// decodeBlock reads one JSON value from s and requires the closing bracket after it.
func decodeBlock(s string, v any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	if err := dec.Decode(v); err != nil {
		return err
	}
	rest := strings.TrimLeft(s[dec.InputOffset():], " \t\r\n")
	if !strings.HasPrefix(rest, "]") {
		return errors.New("missing closing bracket")
	}
	return nil
}
