package hooks

import (
	"fmt"

	"github.com/glorpus-work/kitctl/internal/logger"
)

// ErrHookTypeEmpty is returned when a hook has no type.
var ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")

// DefaultHookManager keeps hooks in a TengoExecutor.
type DefaultHookManager struct {
	executor *TengoExecutor
}

// NewHookManager creates an empty hook manager.
func NewHookManager() *DefaultHookManager {
	return &DefaultHookManager{executor: NewTengoExecutor()}
}

// Executor exposes the underlying executor, e.g. to change its timeout.
func (m *DefaultHookManager) Executor() *TengoExecutor {
	return m.executor
}

// Execute implements HookManager.
func (m *DefaultHookManager) Execute(hookType HookType, ctx HookContext) error {
	if !m.executor.HasScript(hookType) {
		return nil
	}
	logger.Debug("Running hook", logger.Fields{
		"hook":    string(hookType),
		"package": ctx.PackageName,
		"version": ctx.PackageVersion,
	})
	return m.executor.Execute(hookType, ctx)
}

// AddHook implements HookManager.
func (m *DefaultHookManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook implements HookManager.
func (m *DefaultHookManager) RemoveHook(hookType HookType) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}
	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook implements HookManager.
func (m *DefaultHookManager) HasHook(hookType HookType) bool {
	return m.executor.HasScript(hookType)
}
