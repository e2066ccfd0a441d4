package order

// Result holds the artifacts produced by a pipeline run. Each field starts
// unset and is written at most once per run; a retry run overwrites fields
// with the new run's values.
type Result struct {
	DesignPath       string `json:"design_path,omitempty"`
	PackagePath      string `json:"package_path,omitempty"`
	StorageLink      string `json:"storage_link,omitempty"`
	NotificationID   string `json:"notification_id,omitempty"`
	NotificationSent bool   `json:"notification_sent"`
}
