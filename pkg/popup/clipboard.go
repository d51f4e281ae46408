package popup

import "github.com/atotto/clipboard"

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

// WriteText copies text to the OS clipboard. It fails when no clipboard
// utility is available (for example xclip/xsel on a headless Linux box).
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
