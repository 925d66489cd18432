package protocol

// extendedOp is a pending extended command. Extended commands repurpose
// the data bytes, so at most one may be present and it cannot mix with
// motion or optical flags.
type extendedOp struct {
	name  string
	cmd1  byte
	cmd2  byte
	data1 byte
	data2 byte
	err   error
}

// Builder accumulates command flags and data bytes for one Message.
// Setters chain and may run in any order; validation happens once at
// Finalize. A Builder is single-use: Finalize consumes it.
//
// Builders are not safe for concurrent use.
type Builder struct {
	address   byte
	finalized bool

	up, down    bool
	left, right bool

	zoomWide, zoomTele   bool
	focusNear, focusFar  bool
	irisOpen, irisClose  bool

	// On/off intents are tracked separately so that requesting both on
	// one builder is caught as a conflict instead of resolving
	// last-write-wins. The bits alone cannot express the clash: both
	// states set CAMERA_ON_OFF and differ only in the sense bit.
	powerOn, powerOff    bool
	scanAuto, scanManual bool

	panSpeed  *Speed
	tiltSpeed *Speed

	ext []extendedOp
}

// NewBuilder starts a command frame for the device at the given address.
// Address 0 is the conventional broadcast address; the protocol core
// does not treat it specially.
func NewBuilder(address byte) *Builder {
	return &Builder{address: address}
}

// Up tilts the camera up
func (b *Builder) Up() *Builder {
	b.up = true
	return b
}

// Down tilts the camera down
func (b *Builder) Down() *Builder {
	b.down = true
	return b
}

// Left pans the camera left
func (b *Builder) Left() *Builder {
	b.left = true
	return b
}

// Right pans the camera right
func (b *Builder) Right() *Builder {
	b.right = true
	return b
}

// Stop clears every accumulated flag and speed, producing the all-stop
// frame when finalized immediately afterwards.
func (b *Builder) Stop() *Builder {
	b.up, b.down, b.left, b.right = false, false, false, false
	b.zoomWide, b.zoomTele = false, false
	b.focusNear, b.focusFar = false, false
	b.irisOpen, b.irisClose = false, false
	b.powerOn, b.powerOff = false, false
	b.scanAuto, b.scanManual = false, false
	b.panSpeed, b.tiltSpeed = nil, nil
	b.ext = nil
	return b
}

// Pan sets the pan speed (Data1). Turbo is allowed here.
func (b *Builder) Pan(speed Speed) *Builder {
	b.panSpeed = &speed
	return b
}

// Tilt sets the tilt speed (Data2). Turbo is rejected at finalize since
// the protocol defines no tilt turbo byte.
func (b *Builder) Tilt(speed Speed) *Builder {
	b.tiltSpeed = &speed
	return b
}

// ZoomTele zooms in (telephoto)
func (b *Builder) ZoomTele() *Builder {
	b.zoomTele = true
	return b
}

// ZoomWide zooms out (wide angle)
func (b *Builder) ZoomWide() *Builder {
	b.zoomWide = true
	return b
}

// FocusNear moves focus closer
func (b *Builder) FocusNear() *Builder {
	b.focusNear = true
	return b
}

// FocusFar moves focus farther
func (b *Builder) FocusFar() *Builder {
	b.focusFar = true
	return b
}

// IrisOpen opens the iris
func (b *Builder) IrisOpen() *Builder {
	b.irisOpen = true
	return b
}

// IrisClose closes the iris
func (b *Builder) IrisClose() *Builder {
	b.irisClose = true
	return b
}

// CameraOn powers the camera on (sense bit set)
func (b *Builder) CameraOn() *Builder {
	b.powerOn = true
	return b
}

// CameraOff powers the camera off
func (b *Builder) CameraOff() *Builder {
	b.powerOff = true
	return b
}

// AutoScanOn starts automatic scan (sense bit set)
func (b *Builder) AutoScanOn() *Builder {
	b.scanAuto = true
	return b
}

// AutoScanOff selects manual scan
func (b *Builder) AutoScanOff() *Builder {
	b.scanManual = true
	return b
}

// SetPreset stores the current position as preset id (1-255)
func (b *Builder) SetPreset(id byte) *Builder {
	return b.extended("set preset", opcodeSetPreset, 0x00, id, validatePresetID(id))
}

// ClearPreset deletes preset id (1-255)
func (b *Builder) ClearPreset(id byte) *Builder {
	return b.extended("clear preset", opcodeClearPreset, 0x00, id, validatePresetID(id))
}

// GoToPreset moves to preset id (1-255)
func (b *Builder) GoToPreset(id byte) *Builder {
	return b.extended("go to preset", opcodeGoToPreset, 0x00, id, validatePresetID(id))
}

// Flip180 rotates the camera 180 degrees (special preset 0x21)
func (b *Builder) Flip180() *Builder {
	return b.extended("flip 180", opcodeGoToPreset, 0x00, presetFlip180, nil)
}

// GoToZeroPan moves to the zero pan position (special preset 0x22)
func (b *Builder) GoToZeroPan() *Builder {
	return b.extended("go to zero pan", opcodeGoToPreset, 0x00, presetZeroPan, nil)
}

// SetZoneStart marks the start of zone id
func (b *Builder) SetZoneStart(id byte) *Builder {
	return b.extended("set zone start", opcodeSetZoneStart, 0x00, id, nil)
}

// SetZoneEnd marks the end of zone id
func (b *Builder) SetZoneEnd(id byte) *Builder {
	return b.extended("set zone end", opcodeSetZoneEnd, 0x00, id, nil)
}

func (b *Builder) extended(name string, opcode, data1, data2 byte, err error) *Builder {
	b.ext = append(b.ext, extendedOp{
		name:  name,
		cmd2:  opcode,
		data1: data1,
		data2: data2,
		err:   err,
	})
	return b
}

// hasStandard reports whether any plain motion, optical, power or speed
// state has been composed.
func (b *Builder) hasStandard() bool {
	return b.up || b.down || b.left || b.right ||
		b.zoomWide || b.zoomTele ||
		b.focusNear || b.focusFar ||
		b.irisOpen || b.irisClose ||
		b.powerOn || b.powerOff || b.scanAuto || b.scanManual ||
		b.panSpeed != nil || b.tiltSpeed != nil
}

// validate applies the conflict rules once, after composition is done,
// so setter order never affects the result.
func (b *Builder) validate() error {
	type pair struct {
		a, b bool
		what string
	}
	exclusive := []pair{
		{b.up, b.down, "up and down"},
		{b.left, b.right, "left and right"},
		{b.zoomWide, b.zoomTele, "zoom wide and zoom tele"},
		{b.focusNear, b.focusFar, "focus near and focus far"},
		{b.irisOpen, b.irisClose, "iris open and iris close"},
		{b.powerOn, b.powerOff, "camera on and camera off"},
		{b.scanAuto, b.scanManual, "auto scan and manual scan"},
	}
	for _, p := range exclusive {
		if p.a && p.b {
			return newError(ErrKindConflictingCommand, "%s cannot be combined", p.what)
		}
	}

	if len(b.ext) > 1 {
		return newError(ErrKindConflictingCommand,
			"%s and %s cannot share one message", b.ext[0].name, b.ext[1].name)
	}
	if len(b.ext) == 1 {
		if b.hasStandard() {
			return newError(ErrKindConflictingCommand,
				"%s repurposes the data bytes and cannot mix with motion or optical flags", b.ext[0].name)
		}
		if b.ext[0].err != nil {
			return b.ext[0].err
		}
	}
	return nil
}

// Finalize validates the accumulated state and produces the Message.
// It fails with ConflictingCommand for mutually exclusive flags, with
// InvalidSpeed for a turbo tilt, and consumes the builder: further
// Finalize calls error.
func (b *Builder) Finalize() (Message, error) {
	if b.finalized {
		return Message{}, newError(ErrKindInvalidArgument, "builder already finalized")
	}
	if err := b.validate(); err != nil {
		return Message{}, err
	}

	b.finalized = true

	if len(b.ext) == 1 {
		op := b.ext[0]
		return NewMessage(b.address, op.cmd1, op.cmd2, op.data1, op.data2), nil
	}

	var cmd1, cmd2, data1, data2 byte

	if b.powerOn {
		cmd1 |= Command1Sense | Command1CameraOnOff
	} else if b.powerOff {
		cmd1 |= Command1CameraOnOff
	}
	if b.scanAuto {
		cmd1 |= Command1Sense | Command1AutoManualScan
	} else if b.scanManual {
		cmd1 |= Command1AutoManualScan
	}
	if b.irisClose {
		cmd1 |= Command1IrisClose
	}
	if b.irisOpen {
		cmd1 |= Command1IrisOpen
	}
	if b.focusNear {
		cmd1 |= Command1FocusNear
	}

	if b.focusFar {
		cmd2 |= Command2FocusFar
	}
	if b.zoomWide {
		cmd2 |= Command2ZoomWide
	}
	if b.zoomTele {
		cmd2 |= Command2ZoomTele
	}
	if b.down {
		cmd2 |= Command2Down
	}
	if b.up {
		cmd2 |= Command2Up
	}
	if b.left {
		cmd2 |= Command2Left
	}
	if b.right {
		cmd2 |= Command2Right
	}

	if b.panSpeed != nil {
		v, err := b.panSpeed.Byte(AxisPan)
		if err != nil {
			return Message{}, err
		}
		data1 = v
	}
	if b.tiltSpeed != nil {
		v, err := b.tiltSpeed.Byte(AxisTilt)
		if err != nil {
			return Message{}, err
		}
		data2 = v
	}

	return NewMessage(b.address, cmd1, cmd2, data1, data2), nil
}
