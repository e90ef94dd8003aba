package version

import "fmt"

var (
	Version             string = "0.1.0" // must follow SemVer (https://semver.org)
	GitCommit, GitState string           // overwritten by the build system
	BuildDate           string           // overwritten by the build system
)

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s build=%s", Version, GitCommit, BuildDate)
}

type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GitState  string `json:"git_state"`
	BuildDate string `json:"build_date"`
}

func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitState:  GitState,
		BuildDate: BuildDate,
	}
}
