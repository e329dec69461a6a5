package version

import "testing"

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version == "" {
		t.Error("version must not be empty")
	}
	if info.GoVersion == "" {
		t.Error("go version must be populated from runtime")
	}
	if info.Version == "dev" && info.IsRelease {
		t.Error("dev builds are not releases")
	}
}
