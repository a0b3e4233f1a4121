package env

import "os"

func IsGithubAction() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

func IsGithubDebugMode() bool {
	return os.Getenv("RUNNER_DEBUG") == "true"
}

// Returns the TEXTMERGE_CONFIG_DIR environment variable value, which overrides
// the default ~/.textmerge config directory.
func ConfigDir() string {
	return os.Getenv("TEXTMERGE_CONFIG_DIR")
}
