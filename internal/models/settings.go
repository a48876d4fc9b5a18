package models

// Settings is the snapshot returned by getSettings. Timestamps are
// milliseconds since epoch; ReenableAt is 0 unless a temporary disable is
// pending.
type Settings struct {
	ExtensionEnabled bool  `json:"extension_enabled"`
	FirstInstall     bool  `json:"first_install"`
	InstallDate      int64 `json:"install_date"`
	ReenableAt       int64 `json:"reenable_at,omitempty"`
}

type Intention struct {
	Intention string `json:"intention" validate:"required|in:work,learn,connect,rest"`
	Time      int64  `json:"time"`
}
