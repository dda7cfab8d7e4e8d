// Package platform sends desktop notifications through the host's native
// notification service.
package platform

import "time"

// DefaultAppName is reported to the notification service when Options
// leaves AppName empty.
const DefaultAppName = "targeteditor"

// Options configures how a notification is displayed.
type Options struct {
	AppName string
	// IconPath, when set, is an image file shown with the notification where
	// the platform supports it.
	IconPath string
	// Timeout is how long the notification stays visible; zero lets the
	// service decide.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
