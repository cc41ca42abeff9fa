// Package gateway defines the boundary the stores talk through: one Backend
// per platform, the settings persistence and the filesystem probe.
package gateway

import (
	"context"
	"errors"

	"github.com/shamanec/GADS-emulator-manager/models"
)

var (
	ErrHostUnsupported = errors.New("platform tooling is not available on this host")
	ErrDeviceNotFound  = errors.New("device not found")
)

// Backend drives the simulators/emulators of a single platform
type Backend interface {
	List(ctx context.Context) ([]models.EmulatorRecord, error)
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	// Screenshot returns the path of the written image
	Screenshot(ctx context.Context, id string) (string, error)
}

// Eraser is implemented by backends that can delete and wipe devices
type Eraser interface {
	Delete(ctx context.Context, id string) error
	Wipe(ctx context.Context, id string) error
}

type SettingsGateway interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error
}

type PathProber interface {
	CheckPathExists(ctx context.Context, path string) (bool, error)
}

type Operation string

const (
	OpRefresh    Operation = "refresh"
	OpStart      Operation = "start"
	OpStop       Operation = "stop"
	OpScreenshot Operation = "screenshot"
	OpDelete     Operation = "delete"
	OpWipe       Operation = "wipe"
)

// Capabilities reports which operations a backend supports
func Capabilities(backend Backend) map[Operation]bool {
	_, erases := backend.(Eraser)
	return map[Operation]bool{
		OpRefresh:    true,
		OpStart:      true,
		OpStop:       true,
		OpScreenshot: true,
		OpDelete:     erases,
		OpWipe:       erases,
	}
}
