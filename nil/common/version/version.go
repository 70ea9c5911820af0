package version

import (
	"errors"
	"regexp"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/NilFoundation/l1oracle/nil/common"
)

type versionInfo struct {
	GitTag      string
	GitRevCount string
	GitCommit   string
}

var (
	// Patched into the binary at package-build time, so the commit hash
	// is not stamped on every build.
	versionMagic          = "qm5h7IEa3ahXUgsPknK8bwWulPEmpgMWSaQSaOUa"
	versionInfoCache      versionInfo
	versionInfoCacheMutex sync.Mutex
)

var versionRe = regexp.MustCompile(`(\d+\.\d+\.\d+)-(\d+)-([a-f0-9]+)`)

const (
	unknownRevision = "0"
	unknownVersion  = "<unknown>"
	defaultTag      = "0.1.0"
)

func GetVersionInfo() versionInfo {
	versionInfoCacheMutex.Lock()
	defer versionInfoCacheMutex.Unlock()

	if versionInfoCache.GitRevCount == "" {
		versionInfoCache = parseVersionInfo(versionMagic)
	}
	return versionInfoCache
}

func parseVersionInfo(magic string) versionInfo {
	if matches := versionRe.FindStringSubmatch(magic); len(matches) != 0 {
		return versionInfo{GitTag: matches[1], GitRevCount: matches[2], GitCommit: matches[3]}
	}

	commit := unknownVersion
	if gitCommit, err := buildCommit(); err == nil && gitCommit != "" {
		commit = gitCommit
	}
	return versionInfo{GitTag: defaultTag, GitRevCount: "1", GitCommit: commit}
}

func buildCommit() (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", errors.New("failed to read build info")
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value, nil
		}
	}
	return "", nil
}

// displayVersion strips a "<title>-" prefix from tags like "l1oracle-2025.04.10".
func displayVersion(tag string) string {
	if tag == "" {
		return unknownVersion
	}
	parts := strings.Split(tag, "-")
	if len(parts) > 1 && strings.HasPrefix(parts[0], "l1oracle") {
		return parts[1]
	}
	return parts[0]
}

func buildVersionString(tmpl, appTitle string, info versionInfo) string {
	revision := info.GitRevCount
	if revision == "" {
		revision = unknownRevision
	}

	versionMsg, err := common.ParseTemplate(tmpl, map[string]any{
		"Title":    appTitle,
		"Version":  displayVersion(info.GitTag),
		"OS":       runtime.GOOS,
		"Arch":     runtime.GOARCH,
		"Commit":   info.GitCommit,
		"Revision": revision,
	})
	if err != nil {
		panic(err)
	}
	return versionMsg
}

func BuildVersionString(appTitle string) string {
	return buildVersionString(versionTmpl, appTitle, GetVersionInfo())
}

const versionTmpl = `{{ .Title }}
 Version:	{{ .Version }}
 OS/Arch:	{{ .OS }}/{{ .Arch }}
 Git commit:	{{ .Commit }}
 Revision:	{{ .Revision }}`
