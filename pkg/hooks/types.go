// Package hooks runs the project's lifecycle hook scripts, written in Tengo,
// around plugin installs, updates and removals.
package hooks

import "github.com/glorpus-work/kitctl/pkg/model"

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	PreInstall  HookType = "pre-install"
	PostInstall HookType = "post-install"
	PreRemove   HookType = "pre-remove"
	PostRemove  HookType = "post-remove"
	PreUpdate   HookType = "pre-update"
	PostUpdate  HookType = "post-update"
)

// AllHookTypes lists every supported hook type.
func AllHookTypes() []HookType {
	return []HookType{PreInstall, PostInstall, PreRemove, PostRemove, PreUpdate, PostUpdate}
}

// IsValid reports whether t is a supported hook type.
func (t HookType) IsValid() bool {
	for _, known := range AllHookTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ForMode returns the hook that runs before (post=false) or after (post=true)
// an operation of mode. ok is false for modes without hooks.
func ForMode(mode model.Mode, post bool) (HookType, bool) {
	var pre, after HookType
	switch mode {
	case model.ModeInstall:
		pre, after = PreInstall, PostInstall
	case model.ModeUninstall:
		pre, after = PreRemove, PostRemove
	case model.ModeUpdate:
		pre, after = PreUpdate, PostUpdate
	default:
		return "", false
	}
	if post {
		return after, true
	}
	return pre, true
}

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
	Path    string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	PackageName    string
	PackageVersion string
	ProjectDir     string
	Mode           model.Mode
	Vars           map[string]interface{}
}
