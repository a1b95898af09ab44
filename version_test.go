package striad

import "testing"

func TestVersion(t *testing.T) {
	// Test binaries carry build info for the main module only when built
	// from a module checkout; either way Version must not panic and a sum
	// is never reported without a version.
	version, sum := Version()
	if version == "" && sum != "" {
		t.Errorf("Version() = (%q, %q): sum without version", version, sum)
	}
	t.Logf("version %q sum %q", version, sum)
}
