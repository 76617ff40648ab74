package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutable(t *testing.T) {
	tests := []struct {
		name     string
		manager  string
		goos     string
		expected string
	}{
		{name: "npm on linux", manager: "npm", goos: OSLinux, expected: "npm"},
		{name: "npm on windows", manager: "npm", goos: OSWindows, expected: "npm.cmd"},
		{name: "default manager", manager: "", goos: OSDarwin, expected: "npm"},
		{name: "yarn on windows", manager: "yarn", goos: OSWindows, expected: "yarn.cmd"},
		{name: "explicit path untouched", manager: "/usr/local/bin/pnpm", goos: OSLinux, expected: "/usr/local/bin/pnpm"},
		{name: "explicit extension untouched", manager: "npm.exe", goos: OSWindows, expected: "npm.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Executable(tt.manager, tt.goos))
		})
	}
}

func TestIsValidPackageManager(t *testing.T) {
	assert.True(t, IsValidPackageManager("npm"))
	assert.True(t, IsValidPackageManager("/opt/node/bin/pnpm"))
	assert.True(t, IsValidPackageManager("yarn.cmd"))
	assert.False(t, IsValidPackageManager("bun"))
}

func TestName(t *testing.T) {
	assert.Equal(t, "npm", Name(""))
	assert.Equal(t, "pnpm", Name("/opt/node/bin/pnpm"))
	assert.Equal(t, "yarn", Name("yarn.cmd"))
}
