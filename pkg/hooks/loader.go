package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/kitctl/pkg/errors"
)

// HookFileExtensions lists the supported hook file extensions.
var HookFileExtensions = map[string]bool{
	".tengo": true,
}

// LoadHooksFromDir loads <dir>/<hook-type>.tengo files into manager.
// A missing directory means no hooks. Unknown hook names are skipped.
func LoadHooksFromDir(manager HookManager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(errors.ErrHookLoad, "failed to read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if !HookFileExtensions[ext] {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), ext))
		if !hookType.IsValid() {
			continue
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "error reading hook file %s: %v", hookPath, err)
		}

		if err := manager.AddHook(Hook{Type: hookType, Content: string(content), Path: hookPath}); err != nil {
			return errors.Wrapf(err, "error adding hook %s", hookType)
		}
	}

	return nil
}

// HookTemplate generates a template for a hook script.
func HookTemplate(hookType HookType) string {
	header := `// Available variables:
// - packageName: string - name of the plugin package
// - packageVersion: string - requested version, may be empty
// - projectDir: string - root of the prototype project
// - mode: string - install, update or uninstall
`
	switch hookType {
	case PreInstall, PreUpdate, PreRemove:
		return "// " + string(hookType) + " hook\n" +
			"// Runs before the package manager is started. Setting err cancels the request.\n" +
			header + `
err := ""

// Example: refuse pre-release versions
/*
text := import("text")
if text.contains(packageVersion, "-") {
    err = "pre-release versions are not allowed: " + packageVersion
}
*/
`
	case PostInstall, PostUpdate, PostRemove:
		return "// " + string(hookType) + " hook\n" +
			"// Runs once, the first time the operation is seen as completed.\n" +
			header + `
// Example: print a message to the console log
/*
fmt := import("fmt")
fmt.println("finished ", mode, " of ", packageName)
*/
`
	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
