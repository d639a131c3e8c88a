package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a theme or template set name is safe to use
// as a file name. Dots are rejected along with separators so a name can
// never change the extension or climb out of its directory.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
