package ui

import (
	"fmt"
	"os"

	"github.com/eiannone/keyboard"
)

// Confirm asks a single-key y/n question on the terminal. Anything
// other than y/Y declines. Falls back to declining when no terminal is
// available.
func Confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	char, key, err := keyboard.GetSingleKey()
	if err != nil {
		fmt.Fprintln(os.Stderr)
		return false
	}
	fmt.Fprintf(os.Stderr, "%c\n", char)
	if key == keyboard.KeyCtrlC || key == keyboard.KeyEsc {
		return false
	}
	return char == 'y' || char == 'Y'
}
