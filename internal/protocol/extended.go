package protocol

import "encoding/binary"

// Extended command opcodes (Command2 values). Extended commands carry
// their parameters in the data bytes instead of speeds.
const (
	opcodeSetPreset       = 0x03
	opcodeClearPreset     = 0x05
	opcodeGoToPreset      = 0x07
	opcodeSetAuxiliary    = 0x09
	opcodeClearAuxiliary  = 0x0B
	opcodeRemoteReset     = 0x0F
	opcodeSetZoneStart    = 0x11
	opcodeSetZoneEnd      = 0x13
	opcodeWriteChar       = 0x15
	opcodeClearScreen     = 0x17
	opcodeAlarmAck        = 0x19
	opcodeZoneScanOn      = 0x1B
	opcodeZoneScanOff     = 0x1D
	opcodePatternStart    = 0x1F
	opcodePatternStop     = 0x21
	opcodeRunPattern      = 0x23
	opcodeSetZoomSpeed    = 0x25
	opcodeSetFocusSpeed   = 0x27
	opcodeResetDefaults   = 0x29
	opcodeAutoFocus       = 0x2B
	opcodeAutoIris        = 0x2D
	opcodeAGC             = 0x2F
	opcodeBacklightComp   = 0x31
	opcodeAutoWhiteBal    = 0x33
	opcodePhaseDelayMode  = 0x35
	opcodeSetShutterSpeed = 0x37
	opcodeAdjustPhase     = 0x39
	opcodeAdjustWhiteRB   = 0x3B
	opcodeAdjustWhiteMG   = 0x3D
	opcodeAdjustGain      = 0x3F
	opcodeAdjustIrisLevel = 0x41
	opcodeAdjustIrisPeak  = 0x43
	opcodeQuery           = 0x45
)

// Special preset ids with device-defined behavior
const (
	presetFlip180 = 0x21
	presetZeroPan = 0x22
)

// ZoomSpeed selects one of the four discrete zoom motor speeds.
type ZoomSpeed byte

const (
	ZoomSpeedSlow ZoomSpeed = iota
	ZoomSpeedMedium
	ZoomSpeedHigh
	ZoomSpeedHighest
)

// FocusSpeed selects one of the four discrete focus motor speeds.
type FocusSpeed byte

const (
	FocusSpeedSlow FocusSpeed = iota
	FocusSpeedMedium
	FocusSpeedHigh
	FocusSpeedHighest
)

// AutoCtrl selects automatic or disabled for a lens function.
type AutoCtrl byte

const (
	AutoCtrlAuto AutoCtrl = 0
	AutoCtrlOff  AutoCtrl = 1
)

func validatePresetID(id byte) error {
	if id == 0 {
		return newError(ErrKindInvalidArgument, "preset id 0 is reserved")
	}
	return nil
}

// SetPreset stores the current position as preset id (1-255)
func SetPreset(address, id byte) (Message, error) {
	if err := validatePresetID(id); err != nil {
		return Message{}, err
	}
	return FromWords(address, [4]byte{0x00, opcodeSetPreset, 0x00, id}), nil
}

// ClearPreset deletes preset id (1-255)
func ClearPreset(address, id byte) (Message, error) {
	if err := validatePresetID(id); err != nil {
		return Message{}, err
	}
	return FromWords(address, [4]byte{0x00, opcodeClearPreset, 0x00, id}), nil
}

// GoToPreset moves to preset id (1-255). Special ids like 0x21 (flip)
// are passed through unchecked.
func GoToPreset(address, id byte) (Message, error) {
	if err := validatePresetID(id); err != nil {
		return Message{}, err
	}
	return FromWords(address, [4]byte{0x00, opcodeGoToPreset, 0x00, id}), nil
}

// Flip180 rotates the camera 180 degrees
func Flip180(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeGoToPreset, 0x00, presetFlip180})
}

// GoToZeroPan moves to the zero pan position
func GoToZeroPan(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeGoToPreset, 0x00, presetZeroPan})
}

// SetAuxiliary switches auxiliary output auxID on. The sub-opcode is
// device-specific and not validated.
func SetAuxiliary(address, subOpcode, auxID byte) Message {
	return FromWords(address, [4]byte{subOpcode, opcodeSetAuxiliary, 0x00, auxID})
}

// ClearAuxiliary switches auxiliary output auxID off
func ClearAuxiliary(address, subOpcode, auxID byte) Message {
	return FromWords(address, [4]byte{subOpcode, opcodeClearAuxiliary, 0x00, auxID})
}

// RemoteReset restarts the device
func RemoteReset(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeRemoteReset, 0x00, 0x00})
}

// SetZoneStart marks the start of zone id
func SetZoneStart(address, zoneID byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeSetZoneStart, 0x00, zoneID})
}

// SetZoneEnd marks the end of zone id
func SetZoneEnd(address, zoneID byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeSetZoneEnd, 0x00, zoneID})
}

// WriteCharToScreen writes an ASCII character at the given column of the
// on-screen display. Non-ASCII characters are rejected.
func WriteCharToScreen(address, column byte, character rune) (Message, error) {
	if character < 0 || character > 127 {
		return Message{}, newError(ErrKindInvalidArgument, "character %q is not ASCII", character)
	}
	return FromWords(address, [4]byte{0x00, opcodeWriteChar, column, byte(character)}), nil
}

// ClearScreen clears the on-screen display
func ClearScreen(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeClearScreen, 0x00, 0x00})
}

// AlarmAcknowledge acknowledges alarm alarmNo
func AlarmAcknowledge(address, alarmNo byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeAlarmAck, 0x00, alarmNo})
}

// ZoneScanOn starts zone scanning
func ZoneScanOn(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeZoneScanOn, 0x00, 0x00})
}

// ZoneScanOff stops zone scanning
func ZoneScanOff(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeZoneScanOff, 0x00, 0x00})
}

// SetPatternStart begins recording movement pattern patternID
func SetPatternStart(address, patternID byte) Message {
	return FromWords(address, [4]byte{0x00, opcodePatternStart, 0x00, patternID})
}

// SetPatternStop ends recording movement pattern patternID
func SetPatternStop(address, patternID byte) Message {
	return FromWords(address, [4]byte{0x00, opcodePatternStop, 0x00, patternID})
}

// RunPattern replays movement pattern patternID
func RunPattern(address, patternID byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeRunPattern, 0x00, patternID})
}

// SetZoomSpeed selects the zoom motor speed
func SetZoomSpeed(address byte, speed ZoomSpeed) Message {
	return FromWords(address, [4]byte{0x00, opcodeSetZoomSpeed, 0x00, byte(speed)})
}

// SetFocusSpeed selects the focus motor speed
func SetFocusSpeed(address byte, speed FocusSpeed) Message {
	return FromWords(address, [4]byte{0x00, opcodeSetFocusSpeed, 0x00, byte(speed)})
}

// ResetCameraToDefaults restores factory settings
func ResetCameraToDefaults(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodeResetDefaults, 0x00, 0x00})
}

// AutoFocus selects automatic or disabled focus control
func AutoFocus(address byte, ctrl AutoCtrl) Message {
	return FromWords(address, [4]byte{0x00, opcodeAutoFocus, 0x00, byte(ctrl)})
}

// AutoIris selects automatic or disabled iris control
func AutoIris(address byte, ctrl AutoCtrl) Message {
	return FromWords(address, [4]byte{0x00, opcodeAutoIris, 0x00, byte(ctrl)})
}

// AGC selects automatic or disabled gain control
func AGC(address byte, ctrl AutoCtrl) Message {
	return FromWords(address, [4]byte{0x00, opcodeAGC, 0x00, byte(ctrl)})
}

// BacklightCompensation switches backlight compensation on or off
func BacklightCompensation(address byte, on bool) Message {
	v := byte(1) // off
	if on {
		v = 2
	}
	return FromWords(address, [4]byte{0x00, opcodeBacklightComp, 0x00, v})
}

// AutoWhiteBalance switches automatic white balance on or off
func AutoWhiteBalance(address byte, on bool) Message {
	v := byte(2) // off
	if on {
		v = 1
	}
	return FromWords(address, [4]byte{0x00, opcodeAutoWhiteBal, 0x00, v})
}

// EnableDevicePhaseDelayMode enables line lock phase delay mode
func EnableDevicePhaseDelayMode(address byte) Message {
	return FromWords(address, [4]byte{0x00, opcodePhaseDelayMode, 0x00, 0x00})
}

// ShutterSetting is a pair of shutter speed data bytes. The convenience
// constructors cover the documented values; Bytes gives full control for
// device-specific tables.
type ShutterSetting struct {
	data1, data2 byte
}

// ShutterBytes sets the two shutter data bytes directly
func ShutterBytes(data1, data2 byte) ShutterSetting { return ShutterSetting{data1, data2} }

// ShutterDefault restores the default shutter speed
func ShutterDefault() ShutterSetting { return ShutterSetting{0, 0} }

// ShutterIncrement steps the shutter speed up
func ShutterIncrement() ShutterSetting { return ShutterSetting{0, 1} }

// ShutterDecrement steps the shutter speed down
func ShutterDecrement() ShutterSetting { return ShutterSetting{0, 2} }

// ShutterPAL selects the PAL field rate (1/50s)
func ShutterPAL() ShutterSetting { return ShutterSetting{0, 50} }

// ShutterNTSC selects the NTSC field rate (1/60s)
func ShutterNTSC() ShutterSetting { return ShutterSetting{0, 60} }

// ShutterValue selects 1/value seconds, big-endian
func ShutterValue(value uint16) ShutterSetting {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	return ShutterSetting{buf[0], buf[1]}
}

// ShutterIndex selects an entry of the device's shutter table
func ShutterIndex(idx byte) ShutterSetting { return ShutterSetting{0, idx} }

// SetShutterSpeed applies a shutter setting
func SetShutterSpeed(address byte, setting ShutterSetting) Message {
	return FromWords(address, [4]byte{0x00, opcodeSetShutterSpeed, setting.data1, setting.data2})
}

// Adjustment is a value-adjust parameter: either a new absolute value or
// a signed delta from the current one.
type Adjustment struct {
	delta bool
	value uint16
}

// AdjustTo sets an absolute value
func AdjustTo(value uint16) Adjustment { return Adjustment{value: value} }

// AdjustBy applies a signed delta
func AdjustBy(delta int16) Adjustment { return Adjustment{delta: true, value: uint16(delta)} }

func adjust(address, opcode byte, a Adjustment) Message {
	cmd1 := byte(0)
	if a.delta {
		cmd1 = 1
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], a.value)
	return FromWords(address, [4]byte{cmd1, opcode, buf[0], buf[1]})
}

// AdjustLineLockPhaseDelay adjusts the line lock phase delay
func AdjustLineLockPhaseDelay(address byte, a Adjustment) Message {
	return adjust(address, opcodeAdjustPhase, a)
}

// AdjustWhiteBalanceRB adjusts white balance on the red-blue axis
func AdjustWhiteBalanceRB(address byte, a Adjustment) Message {
	return adjust(address, opcodeAdjustWhiteRB, a)
}

// AdjustWhiteBalanceMG adjusts white balance on the magenta-green axis
func AdjustWhiteBalanceMG(address byte, a Adjustment) Message {
	return adjust(address, opcodeAdjustWhiteMG, a)
}

// AdjustGain adjusts the gain
func AdjustGain(address byte, a Adjustment) Message {
	return adjust(address, opcodeAdjustGain, a)
}

// AdjustAutoIrisLevel adjusts the auto-iris target level
func AdjustAutoIrisLevel(address byte, a Adjustment) Message {
	return adjust(address, opcodeAdjustIrisLevel, a)
}

// AdjustAutoIrisPeak adjusts the auto-iris peak value
func AdjustAutoIrisPeak(address byte, a Adjustment) Message {
	return adjust(address, opcodeAdjustIrisPeak, a)
}

// Query requests the device identity. Queries are always broadcast to
// address 0 and answered with an 18-byte query response.
func Query() Message {
	return FromWords(0, [4]byte{0x00, opcodeQuery, 0x00, 0x00})
}
