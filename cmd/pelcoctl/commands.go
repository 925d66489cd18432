package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/pelcoctl/internal/bridge"
	"github.com/muurk/pelcoctl/internal/config"
	"github.com/muurk/pelcoctl/internal/logging"
	"github.com/muurk/pelcoctl/internal/protocol"
	"github.com/muurk/pelcoctl/internal/transport"
	"github.com/muurk/pelcoctl/internal/ui"
)

// Connection and behavior flags
var (
	flagDevice   string
	flagBaud     int
	flagAddress  int
	flagCamera   string
	flagLogLevel string
	flagSpeed    float64
	flagTurbo    bool
	flagLabel    string

	serveHost string
	servePort int
)

func init() {
	// Common flags for camera commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&flagDevice, "serial", "", "Serial device path (e.g. /dev/ttyUSB0) or bridge URL (ws://host:port/control)")
	rootCmd.PersistentFlags().IntVar(&flagBaud, "baud", 0, "Serial baud rate (default 2400)")
	rootCmd.PersistentFlags().IntVar(&flagAddress, "address", -1, "Pelco D device address, 0-255 (default 1)")
	rootCmd.PersistentFlags().StringVar(&flagCamera, "camera", "", "Named camera from the config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(flagLogLevel)
	}

	// Add subcommands directly to root
	rootCmd.AddCommand(jogCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(zoomCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(irisCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(autoscanCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(flipCmd)
	rootCmd.AddCommand(zeroCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(auxCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(camerasCmd)
}

// target is a resolved camera connection: flags merged over the named
// registry entry merged over defaults.
type target struct {
	name    string
	device  string
	baud    int
	address byte
	speed   float64
	presets map[int]string
}

// resolveTarget merges command-line flags with the configuration file.
// Flags win over the registry entry, which wins over defaults.
func resolveTarget() (*target, error) {
	t := &target{
		name:    "camera",
		baud:    config.DefaultBaudRate,
		address: config.DefaultAddress,
		speed:   0.5,
	}

	reg, err := config.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if reg.Preferences != nil && reg.Preferences.PanSpeed > 0 {
		t.speed = reg.Preferences.PanSpeed
	}

	cam := reg.DefaultCamera()
	if flagCamera != "" {
		cam = reg.GetCamera(flagCamera)
		if cam == nil {
			return nil, fmt.Errorf("camera %q not found in config (use 'pelcoctl cameras add')", flagCamera)
		}
		t.name = flagCamera
	} else if cam != nil && reg.Preferences != nil {
		t.name = reg.Preferences.DefaultCamera
	}

	if cam != nil {
		t.device = cam.Device
		t.address = cam.Address
		if cam.BaudRate != 0 {
			t.baud = cam.BaudRate
		}
		t.presets = cam.Presets
	}

	if flagDevice != "" {
		t.device = flagDevice
	}
	if flagBaud != 0 {
		t.baud = flagBaud
	}
	if flagAddress >= 0 {
		if flagAddress > 255 {
			return nil, fmt.Errorf("address %d out of range (0-255)", flagAddress)
		}
		t.address = byte(flagAddress)
	}

	if t.device == "" {
		return nil, fmt.Errorf("no serial device specified. Use --serial, or configure a camera with 'pelcoctl cameras add'")
	}

	return t, nil
}

// openPort opens the link to the resolved camera: a local serial
// device, or a remote bridge when the device is a ws:// URL.
func openPort(t *target) (*protocol.Port, io.Closer, error) {
	if strings.HasPrefix(t.device, "ws://") || strings.HasPrefix(t.device, "wss://") {
		client, err := bridge.Dial(t.device)
		if err != nil {
			return nil, nil, err
		}
		return protocol.NewPort(client), client, nil
	}

	sp, err := transport.OpenSerial(transport.SerialOptions{
		Device:   t.device,
		BaudRate: t.baud,
	})
	if err != nil {
		return nil, nil, err
	}
	return protocol.NewPort(sp), sp, nil
}

// sendOne opens the link, sends a single frame, and closes the link.
func sendOne(t *target, msg protocol.Message) error {
	port, closer, err := openPort(t)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	if err := port.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send frame: %w", err)
	}
	logging.LogFrame("sent", msg.Address(), msg.Bytes())
	fmt.Printf("Sent: %s\n", hex.EncodeToString(msg.Bytes()))
	return nil
}

// motionSpeed resolves the speed for a motion command.
func motionSpeed(t *target) (protocol.Speed, error) {
	if flagTurbo {
		return protocol.TurboSpeed(), nil
	}
	v := t.speed
	if flagSpeed > 0 {
		v = flagSpeed
	}
	return protocol.SpeedFromRange(v)
}

// jogCmd launches the interactive jog console
var jogCmd = &cobra.Command{
	Use:   "jog",
	Short: "Launch the interactive jog console",
	Long: `Launch a full-screen console for driving the camera by hand.

Arrow keys pan and tilt, z/x zoom, f/n focus, o/c run the iris,
digits 1-9 recall presets, +/- adjust the motion speed, space stops
all motion, and q quits (sending a stop frame first).`,
	Example: `  # Jog the default camera
  pelcoctl jog

  # Jog a specific serial device and address
  pelcoctl jog --serial /dev/ttyUSB0 --address 2`,
	RunE: runJog,
}

func runJog(cmd *cobra.Command, args []string) error {
	t, err := resolveTarget()
	if err != nil {
		return err
	}

	port, closer, err := openPort(t)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	return ui.RunJog(port, t.address, t.name, t.speed, t.presets)
}

// moveCmd sends a single pan/tilt motion command
var moveCmd = &cobra.Command{
	Use:   "move <up|down|left|right|stop>",
	Short: "Pan or tilt the camera",
	Long: `Send a single pan/tilt motion command.

The camera keeps moving until it receives a stop frame, so a motion
command should normally be followed by 'pelcoctl move stop'. Diagonals
are expressed as two words, e.g. 'move up left'.`,
	Example: `  # Pan right at 80% speed
  pelcoctl move right --speed 0.8

  # Diagonal motion
  pelcoctl move up left

  # Turbo pan (pan axis only)
  pelcoctl move left --turbo

  # Stop all motion
  pelcoctl move stop`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMove,
}

func init() {
	moveCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Motion speed fraction 0-1 (default from config)")
	moveCmd.Flags().BoolVar(&flagTurbo, "turbo", false, "Turbo pan speed (pan axis only)")
}

func runMove(cmd *cobra.Command, args []string) error {
	t, err := resolveTarget()
	if err != nil {
		return err
	}

	b := protocol.NewBuilder(t.address)

	if len(args) == 1 && args[0] == "stop" {
		msg, err := b.Stop().Finalize()
		if err != nil {
			return err
		}
		return sendOne(t, msg)
	}

	speed, err := motionSpeed(t)
	if err != nil {
		return err
	}

	for _, dir := range args {
		switch dir {
		case "up":
			b.Up().Tilt(speed)
		case "down":
			b.Down().Tilt(speed)
		case "left":
			b.Left().Pan(speed)
		case "right":
			b.Right().Pan(speed)
		case "stop":
			return fmt.Errorf("'stop' cannot be combined with a direction")
		default:
			return fmt.Errorf("unknown direction %q (use up, down, left, right or stop)", dir)
		}
	}

	msg, err := b.Finalize()
	if err != nil {
		return err
	}
	return sendOne(t, msg)
}

// zoomCmd runs the zoom motor
var zoomCmd = &cobra.Command{
	Use:   "zoom <in|out|stop>",
	Short: "Run the zoom motor",
	Long: `Start or stop the zoom motor.

'in' moves toward telephoto, 'out' toward wide angle. The motor runs
until a stop frame arrives.`,
	Example: `  pelcoctl zoom in
  pelcoctl zoom out
  pelcoctl zoom stop`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLens(args[0], map[string]func(*protocol.Builder) *protocol.Builder{
			"in":  (*protocol.Builder).ZoomTele,
			"out": (*protocol.Builder).ZoomWide,
		})
	},
}

// focusCmd runs the focus motor
var focusCmd = &cobra.Command{
	Use:   "focus <near|far|stop>",
	Short: "Run the focus motor",
	Example: `  pelcoctl focus near
  pelcoctl focus far
  pelcoctl focus stop`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLens(args[0], map[string]func(*protocol.Builder) *protocol.Builder{
			"near": (*protocol.Builder).FocusNear,
			"far":  (*protocol.Builder).FocusFar,
		})
	},
}

// irisCmd runs the iris
var irisCmd = &cobra.Command{
	Use:   "iris <open|close|stop>",
	Short: "Open or close the iris",
	Example: `  pelcoctl iris open
  pelcoctl iris close
  pelcoctl iris stop`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLens(args[0], map[string]func(*protocol.Builder) *protocol.Builder{
			"open":  (*protocol.Builder).IrisOpen,
			"close": (*protocol.Builder).IrisClose,
		})
	},
}

// runLens handles the shared shape of zoom/focus/iris commands.
func runLens(verb string, actions map[string]func(*protocol.Builder) *protocol.Builder) error {
	t, err := resolveTarget()
	if err != nil {
		return err
	}

	b := protocol.NewBuilder(t.address)
	if verb == "stop" {
		b.Stop()
	} else {
		action, ok := actions[verb]
		if !ok {
			valid := make([]string, 0, len(actions)+1)
			for k := range actions {
				valid = append(valid, k)
			}
			sort.Strings(valid)
			valid = append(valid, "stop")
			return fmt.Errorf("unknown action %q (use %s)", verb, strings.Join(valid, ", "))
		}
		action(b)
	}

	msg, err := b.Finalize()
	if err != nil {
		return err
	}
	return sendOne(t, msg)
}

// powerCmd switches the camera on or off
var powerCmd = &cobra.Command{
	Use:   "power <on|off>",
	Short: "Switch the camera on or off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}
		b := protocol.NewBuilder(t.address)
		switch args[0] {
		case "on":
			b.CameraOn()
		case "off":
			b.CameraOff()
		default:
			return fmt.Errorf("unknown state %q (use on or off)", args[0])
		}
		msg, err := b.Finalize()
		if err != nil {
			return err
		}
		return sendOne(t, msg)
	},
}

// autoscanCmd switches between automatic and manual scan
var autoscanCmd = &cobra.Command{
	Use:   "autoscan <on|off>",
	Short: "Start automatic scan or return to manual control",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}
		b := protocol.NewBuilder(t.address)
		switch args[0] {
		case "on":
			b.AutoScanOn()
		case "off":
			b.AutoScanOff()
		default:
			return fmt.Errorf("unknown state %q (use on or off)", args[0])
		}
		msg, err := b.Finalize()
		if err != nil {
			return err
		}
		return sendOne(t, msg)
	},
}

// presetCmd manages camera position presets
var presetCmd = &cobra.Command{
	Use:   "preset <set|clear|goto> <id>",
	Short: "Store, delete or recall position presets",
	Long: `Manage the camera's stored position presets.

'set' stores the current position under the given id, 'clear' deletes
a stored preset, and 'goto' drives the camera to one. Preset ids run
from 1 to 255; id 0 is reserved by the protocol. Labels given with
--label are stored in the local config file, not on the camera.`,
	Example: `  # Store the current position as preset 1, labeled
  pelcoctl preset set 1 --label "front door"

  # Recall it
  pelcoctl preset goto 1

  # Delete it
  pelcoctl preset clear 1`,
	Args: cobra.ExactArgs(2),
	RunE: runPreset,
}

func init() {
	presetCmd.Flags().StringVar(&flagLabel, "label", "", "Label to store for this preset in the config file")
}

func runPreset(cmd *cobra.Command, args []string) error {
	t, err := resolveTarget()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[1])
	if err != nil || id < 0 || id > 255 {
		return fmt.Errorf("invalid preset id %q (use 1-255)", args[1])
	}

	var msg protocol.Message
	switch args[0] {
	case "set":
		msg, err = protocol.SetPreset(t.address, byte(id))
	case "clear":
		msg, err = protocol.ClearPreset(t.address, byte(id))
	case "goto":
		msg, err = protocol.GoToPreset(t.address, byte(id))
	default:
		return fmt.Errorf("unknown action %q (use set, clear or goto)", args[0])
	}
	if err != nil {
		return err
	}

	if err := sendOne(t, msg); err != nil {
		return err
	}

	// Record the label locally
	if args[0] == "set" && flagLabel != "" && flagCamera != "" {
		reg, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("sent, but failed to load config for label: %w", err)
		}
		reg.SetPresetLabel(flagCamera, id, flagLabel)
		if err := reg.Save(); err != nil {
			return fmt.Errorf("sent, but failed to save label: %w", err)
		}
		fmt.Printf("Labeled preset %d as %q\n", id, flagLabel)
	}

	return nil
}

// flipCmd rotates the camera 180 degrees
var flipCmd = &cobra.Command{
	Use:   "flip",
	Short: "Rotate the camera 180 degrees",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}
		return sendOne(t, protocol.Flip180(t.address))
	},
}

// zeroCmd moves the camera to the zero pan position
var zeroCmd = &cobra.Command{
	Use:   "zero",
	Short: "Move to the zero pan position",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}
		return sendOne(t, protocol.GoToZeroPan(t.address))
	},
}

// patternCmd records and replays movement patterns
var patternCmd = &cobra.Command{
	Use:   "pattern <record|end|run> <id>",
	Short: "Record or replay a movement pattern",
	Long: `Record and replay camera movement patterns.

'record' begins recording the given pattern id, 'end' finishes the
recording, and 'run' replays it.`,
	Example: `  pelcoctl pattern record 1
  # ... drive the camera ...
  pelcoctl pattern end 1
  pelcoctl pattern run 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[1])
		if err != nil || id < 0 || id > 255 {
			return fmt.Errorf("invalid pattern id %q (use 0-255)", args[1])
		}

		var msg protocol.Message
		switch args[0] {
		case "record":
			msg = protocol.SetPatternStart(t.address, byte(id))
		case "end":
			msg = protocol.SetPatternStop(t.address, byte(id))
		case "run":
			msg = protocol.RunPattern(t.address, byte(id))
		default:
			return fmt.Errorf("unknown action %q (use record, end or run)", args[0])
		}
		return sendOne(t, msg)
	},
}

// auxCmd switches auxiliary outputs
var auxCmd = &cobra.Command{
	Use:   "aux <on|off> <id>",
	Short: "Switch an auxiliary output",
	Long: `Switch one of the camera's auxiliary outputs (wipers, washers,
lamps) on or off. Output numbering is device-specific.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[1])
		if err != nil || id < 0 || id > 255 {
			return fmt.Errorf("invalid auxiliary id %q (use 0-255)", args[1])
		}

		var msg protocol.Message
		switch args[0] {
		case "on":
			msg = protocol.SetAuxiliary(t.address, 0, byte(id))
		case "off":
			msg = protocol.ClearAuxiliary(t.address, 0, byte(id))
		default:
			return fmt.Errorf("unknown state %q (use on or off)", args[0])
		}
		return sendOne(t, msg)
	},
}

// resetCmd restarts the camera
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restart the camera",
	Long: `Send a remote reset, restarting the camera without changing
stored settings. With --factory, restore factory defaults instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}
		factory, _ := cmd.Flags().GetBool("factory")
		if factory {
			return sendOne(t, protocol.ResetCameraToDefaults(t.address))
		}
		return sendOne(t, protocol.RemoteReset(t.address))
	},
}

func init() {
	resetCmd.Flags().Bool("factory", false, "Restore factory defaults instead of restarting")
}

// queryCmd asks the bus who is there
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the device on the bus",
	Long: `Broadcast a query frame and wait for the 18-byte query response.

Useful for checking that the wiring, baud rate and device address are
correct before driving the camera.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}

		port, closer, err := openPort(t)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()

		msg := protocol.Query()
		if err := port.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to send query: %w", err)
		}
		fmt.Printf("Sent:     %s\n", hex.EncodeToString(msg.Bytes()))

		resp, err := port.ReceiveResponse(protocol.ResponseQuery)
		if err != nil {
			return fmt.Errorf("no query response: %w", err)
		}

		fmt.Printf("Received: %s\n", hex.EncodeToString(resp.Bytes()))
		if resp.VerifyChecksum(msg.Checksum()) {
			fmt.Println("Checksum: ok")
		} else {
			fmt.Println("Checksum: MISMATCH")
		}
		return nil
	},
}

// rawCmd sends an arbitrary frame
var rawCmd = &cobra.Command{
	Use:   "raw <cmd1> <cmd2> <data1> <data2>",
	Short: "Send a raw command frame",
	Long: `Build and send a frame from its four payload bytes, given in hex.
The sync byte and checksum are filled in automatically. This is the
escape hatch for vendor-specific commands.`,
	Example: `  # Equivalent of 'move right' at speed 0x20
  pelcoctl raw 00 02 20 00

  # Vendor-specific extended command
  pelcoctl raw 00 9B 00 01`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTarget()
		if err != nil {
			return err
		}

		var words [4]byte
		for i, arg := range args {
			v, err := strconv.ParseUint(strings.TrimPrefix(arg, "0x"), 16, 8)
			if err != nil {
				return fmt.Errorf("invalid hex byte %q: %w", arg, err)
			}
			words[i] = byte(v)
		}

		return sendOne(t, protocol.FromWords(t.address, words))
	},
}

// serveCmd runs the WebSocket bridge
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the camera link over WebSocket",
	Long: `Run a WebSocket bridge on this machine's serial link.

Remote clients connect to ws://host:port/control and exchange raw
frames as binary messages. Frames are checksum-validated before they
reach the serial bus, and only one client may control the link at a
time.`,
	Example: `  # Serve the default camera on port 8457
  pelcoctl serve

  # Custom bind address
  pelcoctl serve --host 0.0.0.0 --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Address to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 8457, "Port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	t, err := resolveTarget()
	if err != nil {
		return err
	}
	if strings.HasPrefix(t.device, "ws://") || strings.HasPrefix(t.device, "wss://") {
		return fmt.Errorf("serve needs a local serial device, not a bridge URL")
	}

	sp, err := transport.OpenSerial(transport.SerialOptions{
		Device:   t.device,
		BaudRate: t.baud,
	})
	if err != nil {
		return err
	}
	defer func() { _ = sp.Close() }()

	fmt.Printf("Bridging %s (%d baud) on ws://%s:%d/control\n",
		t.device, t.baud, serveHost, servePort)

	srv := bridge.New(&bridge.Config{Host: serveHost, Port: servePort}, sp)
	return srv.Start()
}

// devicesCmd lists serial devices
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List serial devices on this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := transport.ListDevices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No serial devices found.")
			return nil
		}
		for _, d := range devices {
			fmt.Println(d)
		}
		return nil
	},
}

// camerasCmd manages the camera registry
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Manage configured cameras",
	Long: `Manage the named camera entries in the configuration file.

A camera entry bundles a serial device, protocol address and baud rate
under a name, so they do not have to be repeated on every invocation.`,
}

var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured cameras",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if len(reg.Cameras) == 0 {
			fmt.Println("No cameras configured. Use 'pelcoctl cameras add <name>' to add one.")
			return nil
		}

		names := make([]string, 0, len(reg.Cameras))
		for name := range reg.Cameras {
			names = append(names, name)
		}
		sort.Strings(names)

		defaultName := ""
		if reg.Preferences != nil {
			defaultName = reg.Preferences.DefaultCamera
		}

		for _, name := range names {
			cam := reg.Cameras[name]
			marker := " "
			if name == defaultName {
				marker = "*"
			}
			fmt.Printf("%s %-15s %s @ %d baud, address %d",
				marker, name, cam.Device, cam.BaudRate, cam.Address)
			if len(cam.Presets) > 0 {
				fmt.Printf(", %d preset label(s)", len(cam.Presets))
			}
			fmt.Println()
		}
		return nil
	},
}

var camerasAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a camera entry",
	Example: `  pelcoctl cameras add lobby --serial /dev/ttyUSB0 --address 1
  pelcoctl cameras add roof --serial /dev/ttyUSB1 --address 2 --baud 9600`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagDevice == "" {
			return fmt.Errorf("--serial is required when adding a camera")
		}

		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		cam := reg.EnsureCamera(args[0])
		cam.Device = flagDevice
		if flagBaud != 0 {
			cam.BaudRate = flagBaud
		}
		if flagAddress >= 0 {
			if flagAddress > 255 {
				return fmt.Errorf("address %d out of range (0-255)", flagAddress)
			}
			cam.Address = byte(flagAddress)
		}

		// First camera becomes the default
		if reg.Preferences.DefaultCamera == "" {
			reg.Preferences.DefaultCamera = args[0]
		}

		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Printf("Saved camera %q: %s @ %d baud, address %d\n",
			args[0], cam.Device, cam.BaudRate, cam.Address)
		return nil
	},
}

var camerasRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a camera entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if reg.GetCamera(args[0]) == nil {
			return fmt.Errorf("camera %q not found", args[0])
		}
		delete(reg.Cameras, args[0])
		if reg.Preferences != nil && reg.Preferences.DefaultCamera == args[0] {
			reg.Preferences.DefaultCamera = ""
		}
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Printf("Removed camera %q\n", args[0])
		return nil
	},
}

var camerasDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Set the default camera",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if reg.GetCamera(args[0]) == nil {
			return fmt.Errorf("camera %q not found", args[0])
		}
		reg.Preferences.DefaultCamera = args[0]
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Printf("Default camera is now %q\n", args[0])
		return nil
	},
}

func init() {
	camerasCmd.AddCommand(camerasListCmd)
	camerasCmd.AddCommand(camerasAddCmd)
	camerasCmd.AddCommand(camerasRemoveCmd)
	camerasCmd.AddCommand(camerasDefaultCmd)
}
