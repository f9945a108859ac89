package faq

import "strings"

// Platform is the kind of social page being processed.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformX         Platform = "x"
	PlatformDefault   Platform = "default"
)

// platformAliases maps every accepted spelling to its platform.
var platformAliases = map[string]Platform{
	"fb":        PlatformFacebook,
	"facebook":  PlatformFacebook,
	"ig":        PlatformInstagram,
	"instagram": PlatformInstagram,
	"x":         PlatformX,
	"twitter":   PlatformX,
	"df":        PlatformDefault,
	"default":   PlatformDefault,
}

// platformPaths lists the sub-pages captured for each platform. The
// empty path is the page itself.
var platformPaths = map[Platform][]string{
	PlatformFacebook: {"", "/about", "/about_profile_transparency", "/about_details"},
}

// ParsePlatform resolves a short code or full name.
func ParsePlatform(s string) (Platform, error) {
	if p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", faqErrors.New(ErrInvalidPlatform).WithDetail("platform", s)
}

func (p Platform) String() string { return string(p) }

// SubPaths returns the sub-pages that must all be captured.
func (p Platform) SubPaths() []string {
	if paths, ok := platformPaths[p]; ok {
		return append([]string(nil), paths...)
	}
	return []string{""}
}

// ArtifactName is the file stem used for a captured sub-path: "main" for
// the page itself, otherwise the path with slashes turned into
// underscores.
func ArtifactName(subPath string) string {
	name := strings.ReplaceAll(strings.Trim(subPath, "/"), "/", "_")
	if name == "" {
		return "main"
	}
	return name
}

// PageURL joins a base URL and a sub-path.
func PageURL(base, subPath string) string {
	return strings.TrimRight(base, "/") + subPath
}
