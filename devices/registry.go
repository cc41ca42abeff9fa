package devices

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shamanec/GADS-emulator-manager/events"
	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
)

var (
	ErrUnknownPlatform = errors.New("no backend registered for platform")
	ErrStaleRefresh    = errors.New("refresh result discarded, a newer refresh was issued")
)

const eventSource = "devices"

// UsageLedger keeps the last time each emulator was started
type UsageLedger interface {
	TouchUsage(ctx context.Context, platform models.Platform, id string, at time.Time) error
	LastUsed(ctx context.Context, platform models.Platform) (map[string]time.Time, error)
}

// Registry holds the emulators of the active platform and routes every
// lifecycle call to that platform's backend
type Registry struct {
	mu             sync.Mutex
	backends       map[models.Platform]gateway.Backend
	devices        []models.VirtualDevice
	activePlatform models.Platform
	inFlight       int
	latestToken    uint64

	usage  UsageLedger
	events *events.Broadcaster
	logger *logger.CustomLogger
	now    func() time.Time
}

type Option func(*Registry)

func WithUsageLedger(usage UsageLedger) Option {
	return func(r *Registry) { r.usage = usage }
}

func WithBroadcaster(b *events.Broadcaster) Option {
	return func(r *Registry) { r.events = b }
}

func NewRegistry(backends map[models.Platform]gateway.Backend, log *logger.CustomLogger, opts ...Option) *Registry {
	registry := &Registry{
		backends:       backends,
		devices:        []models.VirtualDevice{},
		activePlatform: models.PlatformAndroid,
		logger:         log,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(registry)
	}
	return registry
}

// Snapshot is a consistent copy of the registry state
type Snapshot struct {
	Devices        []models.VirtualDevice `json:"devices"`
	Loading        bool                   `json:"loading"`
	ActivePlatform models.Platform        `json:"activePlatform"`
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		Devices:        r.copyDevices(),
		Loading:        r.inFlight > 0,
		ActivePlatform: r.activePlatform,
	}
}

func (r *Registry) Devices() []models.VirtualDevice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyDevices()
}

func (r *Registry) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight > 0
}

func (r *Registry) ActivePlatform() models.Platform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activePlatform
}

// Capabilities returns the operations supported on platform
func (r *Registry) Capabilities(platform models.Platform) (map[gateway.Operation]bool, error) {
	backend, ok := r.backends[platform]
	if !ok {
		return nil, fmt.Errorf("%w `%s`", ErrUnknownPlatform, platform)
	}
	return gateway.Capabilities(backend), nil
}

// Refresh makes platform the active platform and replaces the device list
// with what its backend reports. Each call takes a fencing token, only the
// latest issued refresh may write the list.
func (r *Registry) Refresh(ctx context.Context, platform models.Platform) error {
	backend, ok := r.backends[platform]
	if !ok {
		return fmt.Errorf("%w `%s`", ErrUnknownPlatform, platform)
	}

	r.mu.Lock()
	r.latestToken++
	token := r.latestToken
	r.inFlight++
	r.activePlatform = platform
	r.mu.Unlock()
	r.publish("loading", string(platform))

	r.logger.LogDebug("emulator_registry", fmt.Sprintf("Refreshing `%s` emulators, token %d", platform, token))
	records, err := backend.List(ctx)

	var lastUsed map[string]time.Time
	if err == nil && r.usage != nil {
		var usageErr error
		lastUsed, usageErr = r.usage.LastUsed(ctx, platform)
		if usageErr != nil {
			r.logger.LogWarn("emulator_registry", fmt.Sprintf("Could not read `%s` emulator usage - %s", platform, usageErr))
		}
	}

	r.mu.Lock()
	r.inFlight--
	stale := token != r.latestToken
	if err == nil && !stale {
		r.devices = toVirtualDevices(records, platform, lastUsed)
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.LogError("emulator_registry", fmt.Sprintf("Could not list `%s` emulators - %s", platform, err))
		r.publish("refresh_failed", string(platform))
		return fmt.Errorf("could not list %s emulators: %w", platform, err)
	}
	if stale {
		r.logger.LogInfo("emulator_registry", fmt.Sprintf("Discarding `%s` emulators list with stale token %d", platform, token))
		r.publish("refresh_discarded", string(platform))
		return ErrStaleRefresh
	}

	r.publish("refreshed", string(platform))
	return nil
}

func (r *Registry) Start(ctx context.Context, id string) error {
	platform, backend, err := r.activeBackend()
	if err != nil {
		return err
	}

	r.logger.LogInfo("emulator_registry", fmt.Sprintf("Starting `%s` emulator `%s`", platform, id))
	if err := backend.Start(ctx, id); err != nil {
		return fmt.Errorf("could not start %s emulator `%s`: %w", platform, id, err)
	}

	if r.usage != nil {
		if err := r.usage.TouchUsage(ctx, platform, id, r.now()); err != nil {
			r.logger.LogWarn("emulator_registry", fmt.Sprintf("Could not record usage of `%s` emulator `%s` - %s", platform, id, err))
		}
	}
	return nil
}

func (r *Registry) Stop(ctx context.Context, id string) error {
	platform, backend, err := r.activeBackend()
	if err != nil {
		return err
	}

	r.logger.LogInfo("emulator_registry", fmt.Sprintf("Stopping `%s` emulator `%s`", platform, id))
	if err := backend.Stop(ctx, id); err != nil {
		return fmt.Errorf("could not stop %s emulator `%s`: %w", platform, id, err)
	}
	return nil
}

// Screenshot returns the path of the captured image
func (r *Registry) Screenshot(ctx context.Context, id string) (string, error) {
	platform, backend, err := r.activeBackend()
	if err != nil {
		return "", err
	}

	path, err := backend.Screenshot(ctx, id)
	if err != nil {
		return "", fmt.Errorf("could not take screenshot of %s emulator `%s`: %w", platform, id, err)
	}
	r.logger.LogInfo("emulator_registry", fmt.Sprintf("Saved screenshot of `%s` emulator `%s` to `%s`", platform, id, path))
	return path, nil
}

// Delete is a no-op for backends without the Eraser capability
func (r *Registry) Delete(ctx context.Context, id string) error {
	platform, eraser, err := r.activeEraser(gateway.OpDelete)
	if err != nil || eraser == nil {
		return err
	}

	r.logger.LogInfo("emulator_registry", fmt.Sprintf("Deleting `%s` emulator `%s`", platform, id))
	if err := eraser.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete %s emulator `%s`: %w", platform, id, err)
	}
	return nil
}

// Wipe is a no-op for backends without the Eraser capability
func (r *Registry) Wipe(ctx context.Context, id string) error {
	platform, eraser, err := r.activeEraser(gateway.OpWipe)
	if err != nil || eraser == nil {
		return err
	}

	r.logger.LogInfo("emulator_registry", fmt.Sprintf("Wiping data of `%s` emulator `%s`", platform, id))
	if err := eraser.Wipe(ctx, id); err != nil {
		return fmt.Errorf("could not wipe %s emulator `%s`: %w", platform, id, err)
	}
	return nil
}

func (r *Registry) activeBackend() (models.Platform, gateway.Backend, error) {
	r.mu.Lock()
	platform := r.activePlatform
	r.mu.Unlock()

	backend, ok := r.backends[platform]
	if !ok {
		return platform, nil, fmt.Errorf("%w `%s`", ErrUnknownPlatform, platform)
	}
	return platform, backend, nil
}

func (r *Registry) activeEraser(op gateway.Operation) (models.Platform, gateway.Eraser, error) {
	platform, backend, err := r.activeBackend()
	if err != nil {
		return platform, nil, err
	}

	eraser, ok := backend.(gateway.Eraser)
	if !ok {
		r.logger.LogDebug("emulator_registry", fmt.Sprintf("`%s` is not supported on `%s`, skipping", op, platform))
		return platform, nil, nil
	}
	return platform, eraser, nil
}

func (r *Registry) publish(kind, detail string) {
	if r.events != nil {
		r.events.Publish(eventSource, kind, detail)
	}
}

func (r *Registry) copyDevices() []models.VirtualDevice {
	devices := make([]models.VirtualDevice, len(r.devices))
	copy(devices, r.devices)
	return devices
}

func toVirtualDevices(records []models.EmulatorRecord, platform models.Platform, lastUsed map[string]time.Time) []models.VirtualDevice {
	devices := make([]models.VirtualDevice, 0, len(records))
	for _, record := range records {
		device := record.ToVirtualDevice(platform)
		if at, ok := lastUsed[record.ID]; ok {
			at := at
			device.LastUsedAt = &at
		}
		devices = append(devices, device)
	}
	return devices
}
