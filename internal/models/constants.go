package models

// Defaults for the markers written into exports.
const (
	// DefaultNoKeySentinel names the archive folder of documents without a key.
	DefaultNoKeySentinel = "_NO_KEY"
	// DefaultPlaceholder is shown in the table for an absent key or an empty category list.
	DefaultPlaceholder = "-"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
