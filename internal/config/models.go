package config

// Default serial parameters for Pelco D installations
const (
	DefaultBaudRate = 2400
	DefaultAddress  = 1
)

// Registry represents the entire user configuration file.
// Cameras are keyed by a user-chosen name.
type Registry struct {
	Version     int                `yaml:"version"`
	Cameras     map[string]*Camera `yaml:"cameras,omitempty"`
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Camera holds the connection parameters and metadata for one camera.
type Camera struct {
	Device   string         `yaml:"device"`             // Serial device path (e.g. /dev/ttyUSB0)
	Address  uint8          `yaml:"address"`            // Pelco D device address, 0-255
	BaudRate int            `yaml:"baud_rate"`          // Line speed, commonly 2400/4800/9600
	Nickname string         `yaml:"nickname,omitempty"` // User-friendly name for display
	Presets  map[int]string `yaml:"presets,omitempty"`  // Preset id -> user label
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultCamera string  `yaml:"default_camera,omitempty"` // Camera used when --camera is omitted
	PanSpeed      float64 `yaml:"pan_speed"`                // Default pan speed fraction [0,1]
	TiltSpeed     float64 `yaml:"tilt_speed"`               // Default tilt speed fraction [0,1]
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Cameras: make(map[string]*Camera),
		Preferences: &Preferences{
			PanSpeed:  0.5,
			TiltSpeed: 0.5,
		},
	}
}

// GetCamera retrieves a camera entry by name.
// Returns nil if the camera doesn't exist in the registry.
func (r *Registry) GetCamera(name string) *Camera {
	return r.Cameras[name]
}

// EnsureCamera ensures a camera entry exists, creating one with default
// serial parameters if needed, and returns it.
func (r *Registry) EnsureCamera(name string) *Camera {
	if r.Cameras == nil {
		r.Cameras = make(map[string]*Camera)
	}
	if cam, exists := r.Cameras[name]; exists {
		return cam
	}
	cam := &Camera{
		Address:  DefaultAddress,
		BaudRate: DefaultBaudRate,
		Presets:  make(map[int]string),
	}
	r.Cameras[name] = cam
	return cam
}

// SetPresetLabel records a user label for a preset id on a camera.
func (r *Registry) SetPresetLabel(name string, presetID int, label string) {
	cam := r.EnsureCamera(name)
	if cam.Presets == nil {
		cam.Presets = make(map[int]string)
	}
	cam.Presets[presetID] = label
}

// DefaultCamera resolves the preferred camera entry, or nil if none is
// configured.
func (r *Registry) DefaultCamera() *Camera {
	if r.Preferences == nil || r.Preferences.DefaultCamera == "" {
		return nil
	}
	return r.GetCamera(r.Preferences.DefaultCamera)
}
