package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/pelcoctl/internal/logging"
	"github.com/muurk/pelcoctl/internal/protocol"
)

// Speed adjustment step per +/- keypress
const speedStep = 0.1

// Sender writes finalized frames to the camera link. protocol.Port
// satisfies it; tests substitute a recorder.
type Sender interface {
	SendMessage(protocol.Message) error
}

// jogKeyMap defines key bindings for the jog console
type jogKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Stop      key.Binding
	SpeedUp   key.Binding
	SpeedDown key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	FocusFar  key.Binding
	FocusNear key.Binding
	IrisOpen  key.Binding
	IrisClose key.Binding
	Preset    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k jogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Stop, k.SpeedUp, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k jogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Stop},
		{k.SpeedUp, k.SpeedDown, k.ZoomIn, k.ZoomOut},
		{k.FocusFar, k.FocusNear, k.IrisOpen, k.IrisClose},
		{k.Preset, k.Help, k.Quit},
	}
}

func newJogKeyMap() jogKeyMap {
	return jogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "tilt up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "tilt down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "pan left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "pan right"),
		),
		Stop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "stop"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "zoom out"),
		),
		FocusFar: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus far"),
		),
		FocusNear: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "focus near"),
		),
		IrisOpen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "iris open"),
		),
		IrisClose: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "iris close"),
		),
		Preset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to preset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JogModel is the Bubble Tea model for the jog console
type JogModel struct {
	sender     Sender
	address    byte
	cameraName string
	presets    map[int]string

	speed  float64
	motion string // human-readable description of the running motion
	last   []byte // last frame put on the wire
	err    error

	keys jogKeyMap
	help help.Model

	width  int
	height int
}

// NewJogModel creates a jog console for the camera at the given
// address. speed is the initial motion speed fraction; presets maps
// preset ids to user labels for display (may be nil).
func NewJogModel(sender Sender, address byte, cameraName string, speed float64, presets map[int]string) JogModel {
	if speed <= 0 || speed > 1 {
		speed = 0.5
	}
	width, height := GetTerminalSize()
	return JogModel{
		sender:     sender,
		address:    address,
		cameraName: cameraName,
		presets:    presets,
		speed:      speed,
		motion:     "stopped",
		keys:       newJogKeyMap(),
		help:       help.New(),
		width:      width,
		height:     height,
	}
}

// Init implements tea.Model
func (m JogModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m JogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// Leave the camera stationary on exit
			m = m.sendStop()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.SpeedUp):
			m.speed = clampSpeed(m.speed + speedStep)
			return m, nil

		case key.Matches(msg, m.keys.SpeedDown):
			m.speed = clampSpeed(m.speed - speedStep)
			return m, nil

		case key.Matches(msg, m.keys.Stop):
			return m.sendStop(), nil

		case key.Matches(msg, m.keys.Up):
			return m.sendMotion("tilt up", func(b *protocol.Builder, s protocol.Speed) {
				b.Up().Tilt(s)
			}), nil

		case key.Matches(msg, m.keys.Down):
			return m.sendMotion("tilt down", func(b *protocol.Builder, s protocol.Speed) {
				b.Down().Tilt(s)
			}), nil

		case key.Matches(msg, m.keys.Left):
			return m.sendMotion("pan left", func(b *protocol.Builder, s protocol.Speed) {
				b.Left().Pan(s)
			}), nil

		case key.Matches(msg, m.keys.Right):
			return m.sendMotion("pan right", func(b *protocol.Builder, s protocol.Speed) {
				b.Right().Pan(s)
			}), nil

		case key.Matches(msg, m.keys.ZoomIn):
			return m.sendLens("zoom in", (*protocol.Builder).ZoomTele), nil

		case key.Matches(msg, m.keys.ZoomOut):
			return m.sendLens("zoom out", (*protocol.Builder).ZoomWide), nil

		case key.Matches(msg, m.keys.FocusFar):
			return m.sendLens("focus far", (*protocol.Builder).FocusFar), nil

		case key.Matches(msg, m.keys.FocusNear):
			return m.sendLens("focus near", (*protocol.Builder).FocusNear), nil

		case key.Matches(msg, m.keys.IrisOpen):
			return m.sendLens("iris open", (*protocol.Builder).IrisOpen), nil

		case key.Matches(msg, m.keys.IrisClose):
			return m.sendLens("iris close", (*protocol.Builder).IrisClose), nil

		case key.Matches(msg, m.keys.Preset):
			id := int(msg.String()[0] - '0')
			return m.sendPreset(id), nil
		}
	}

	return m, nil
}

func clampSpeed(v float64) float64 {
	if v < speedStep {
		return speedStep
	}
	if v > 1 {
		return 1
	}
	return v
}

// deliver finalizes the builder, sends the frame and records the
// outcome for the status display.
func (m JogModel) deliver(label string, b *protocol.Builder) JogModel {
	msg, err := b.Finalize()
	if err != nil {
		m.err = err
		return m
	}
	if err := m.sender.SendMessage(msg); err != nil {
		m.err = err
		return m
	}
	logging.LogFrame("sent", msg.Address(), msg.Bytes())
	m.err = nil
	m.motion = label
	m.last = msg.Bytes()
	return m
}

func (m JogModel) sendStop() JogModel {
	return m.deliver("stopped", protocol.NewBuilder(m.address).Stop())
}

func (m JogModel) sendMotion(label string, set func(*protocol.Builder, protocol.Speed)) JogModel {
	speed, err := protocol.SpeedFromRange(m.speed)
	if err != nil {
		m.err = err
		return m
	}
	b := protocol.NewBuilder(m.address)
	set(b, speed)
	return m.deliver(label, b)
}

func (m JogModel) sendLens(label string, set func(*protocol.Builder) *protocol.Builder) JogModel {
	return m.deliver(label, set(protocol.NewBuilder(m.address)))
}

func (m JogModel) sendPreset(id int) JogModel {
	label := fmt.Sprintf("go to preset %d", id)
	if name, ok := m.presets[id]; ok {
		label = fmt.Sprintf("go to preset %d (%s)", id, name)
	}
	return m.deliver(label, protocol.NewBuilder(m.address).GoToPreset(byte(id)))
}

// View implements tea.Model
func (m JogModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Jog Console"))
	b.WriteString("\n")
	b.WriteString(CameraInfoStyle.Render(
		fmt.Sprintf("%s  (address %d)", m.cameraName, m.address)))
	b.WriteString("\n\n")

	b.WriteString(StatusLabelStyle.Render("Speed:"))
	b.WriteString(StatusValueStyle.Render(fmt.Sprintf("%3.0f%%", m.speed*100)))
	b.WriteString("\n")

	b.WriteString(StatusLabelStyle.Render("Motion:"))
	if m.motion == "stopped" {
		b.WriteString(MotionIdleStyle.Render(m.motion))
	} else {
		b.WriteString(MotionActiveStyle.Render(m.motion))
	}
	b.WriteString("\n")

	b.WriteString(StatusLabelStyle.Render("Frame:"))
	if len(m.last) > 0 {
		b.WriteString(FrameStyle.Render(logging.HexDump(m.last)))
	} else {
		b.WriteString(MotionIdleStyle.Render("none sent yet"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	content := ConsoleBorderStyle(m.width).Render(b.String())
	helpView := m.help.View(m.keys)

	return content + "\n" + helpView + "\n"
}

// RunJog starts the jog console and blocks until the user quits.
func RunJog(sender Sender, address byte, cameraName string, speed float64, presets map[int]string) error {
	model := NewJogModel(sender, address, cameraName, speed, presets)
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}
