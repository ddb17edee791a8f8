// Package resources embeds the default session manager manifests.
package resources

import (
	"embed"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ManifestDir is the directory of ManifestFiles holding manifests.
const ManifestDir = "manifests"

//go:embed manifests/*.yaml
var ManifestFiles embed.FS

// GetAppIcon returns the window icon.
func GetAppIcon() fyne.Resource {
	return theme.GridIcon()
}
