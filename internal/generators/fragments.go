package generators

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xerolinux/xfprintd-gui/internal/patch"
	"github.com/xerolinux/xfprintd-gui/internal/services"
)

// WriteFragments writes the builtin configuration of every known service as a patch fragment
// under patchesDir, in the layout read back by the fragment resolver.
// It returns the written fragment paths.
func WriteFragments(patchesDir string) (fragments []string, err error) {
	for _, s := range services.All() {
		p, err := patch.FragmentPath(patchesDir, s.Path())
		if err != nil {
			return nil, err
		}
		if err := CreateDirectory(filepath.Dir(p), 0755); err != nil {
			return nil, err
		}
		// #nosec G306: fragments are world readable package assets.
		if err := os.WriteFile(p, []byte(s.Patch()+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("couldn't write fragment for %s: %w", s, err)
		}
		fragments = append(fragments, p)
	}
	return fragments, nil
}
