//go:generate mockgen -destination=mocks/hooks.go . HookManager
package hooks

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the specified hook type with the given context.
	// A missing hook is not an error.
	Execute(hookType HookType, ctx HookContext) error

	// AddHook adds or replaces a hook.
	AddHook(hook Hook) error

	// RemoveHook removes a hook of the specified type.
	RemoveHook(hookType HookType) error

	// HasHook checks if a hook of the specified type exists.
	HasHook(hookType HookType) bool
}
