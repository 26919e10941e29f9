package app

import "gitlab.com/tinyland/lab/weatherday/pkg/location"

// permissionAction is what the screen does after a permission call.
type permissionAction int

const (
	actionNone     permissionAction = iota
	actionLocate                    // read the position and fetch weather
	actionAskAgain                  // show the denied dialog
	actionRetry                     // request the permission once more
	actionFail                      // set an inline error
)

const (
	msgNotGranted = "Location permission error: Permission status is not granted."
	msgDenied     = "Location permission error: Permission status is denied."
)

// nextPermissionStep maps a (stage, status) pair to the screen's next
// action. Only StageRecheck can lead to another request, and only once,
// because StageRetry never does.
func nextPermissionStep(stage PermissionStage, status location.Status) (permissionAction, string) {
	switch stage {
	case StageRequest:
		switch status {
		case location.StatusGranted:
			return actionLocate, ""
		case location.StatusDenied:
			return actionAskAgain, ""
		default:
			return actionFail, msgNotGranted
		}
	case StageRecheck:
		switch status {
		case location.StatusGranted:
			return actionLocate, ""
		case location.StatusDenied:
			return actionRetry, ""
		default:
			return actionNone, ""
		}
	case StageRetry:
		if status == location.StatusGranted {
			return actionLocate, ""
		}
		return actionFail, msgDenied
	}
	return actionNone, ""
}

// permissionErrorPrefix is prepended to a failed permission call's error.
func permissionErrorPrefix(stage PermissionStage) string {
	if stage == StageRequest {
		return "Error getting location permission: "
	}
	return "Error requesting location permission again: "
}

func permissionDeniedDialog() Dialog {
	return Dialog{
		Kind:    DialogPermissionDenied,
		Title:   "Location Permission Denied",
		Message: "Please enable location.",
	}
}
