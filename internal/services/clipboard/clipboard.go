// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/temirov/treeprint/internal/output"
)

const errorClipboardWriteFormat = "writing to clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard. Terminal escape
// sequences are removed before the text reaches the clipboard.
type Service struct {
	write func(text string) error
}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{write: clipboard.WriteAll}
}

// Copy writes the plain form of text to the system clipboard.
func (service *Service) Copy(text string) error {
	write := service.write
	if write == nil {
		write = clipboard.WriteAll
	}
	if writeError := write(output.StripANSI(text)); writeError != nil {
		return fmt.Errorf(errorClipboardWriteFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
