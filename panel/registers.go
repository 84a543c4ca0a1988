// Package panel implements the DGUS touch-panel wire protocol: frame
// construction, inbound frame parsing with bounded resync, and the
// register map the console writes to and receives key events from.
package panel

// Frame syntax
const (
	Sync1 = 0x5A
	Sync2 = 0xA5

	CmdWrite = 0x82 // register write
	CmdRead  = 0x83 // read request / read reply

	// PayloadMax bounds a single inbound frame body (command + address +
	// payload). Larger frames are discarded and the parser resyncs.
	PayloadMax = 64

	// SyncWaitMS bounds how long the parser waits for the second sync
	// byte after seeing the first.
	SyncWaitMS = 500
)

// Control registers
const (
	RegLCDReady  = 0x0014 // panel boot handshake
	RegAudio     = 0x0080 // system audio on/off
	RegPowerLoss = 0x0082 // power-loss notification
	RegPage      = 0x0084 // page change
)

// Key events arrive as read replies in a reserved address range,
// recognized by the high nibble.
const (
	KeyAddress = 0x1000
	KeyMask    = 0xF000
)

// Text display registers. The main rows sit at 0x2000 + n*0x30; the file
// list long-name rows mirror at 0x5000 + n*0x30.
const (
	TxtMainBed     = 0x2000 + 0*0x30
	TxtMainHotend  = 0x2000 + 1*0x30
	TxtMainMessage = 0x2000 + 2*0x30

	TxtFileRow0 = 0x2000 + 3*0x30
	TxtFileRow1 = 0x2000 + 4*0x30
	TxtFileRow2 = 0x2000 + 5*0x30
	TxtFileRow3 = 0x2000 + 6*0x30
	TxtFileRow4 = 0x2000 + 7*0x30

	TxtDescribe0 = 0x5000 + 0*0x30
	TxtDescribe1 = 0x5000 + 1*0x30
	TxtDescribe2 = 0x5000 + 2*0x30
	TxtDescribe3 = 0x5000 + 3*0x30
	TxtDescribe4 = 0x5000 + 4*0x30

	TxtPrintName     = 0x2000 + 8*0x30
	TxtPrintSpeed    = 0x2000 + 9*0x30
	TxtPrintTime     = 0x2000 + 10*0x30
	TxtPrintProgress = 0x2000 + 11*0x30

	TxtAdjustHotend = 0x2000 + 14*0x30
	TxtAdjustBed    = 0x2000 + 15*0x30
	TxtAdjustSpeed  = 0x2000 + 16*0x30

	TxtBedNow       = 0x2000 + 17*0x30
	TxtBedTarget    = 0x2000 + 18*0x30
	TxtHotendNow    = 0x2000 + 19*0x30
	TxtHotendTarget = 0x2000 + 20*0x30

	TxtFanSpeedNow     = 0x2000 + 21*0x30
	TxtFanSpeedTarget  = 0x2000 + 22*0x30
	TxtPrintSpeedNow   = 0x2000 + 23*0x30
	TxtPrintSpeedTgt   = 0x2000 + 24*0x30
	TxtAbout           = 0x2000 + 25*0x30
	TxtLevelOffset     = 0x2000 + 32*0x30
	TxtFilamentTemp    = 0x2000 + 33*0x30
	TxtFinishTime      = 0x2000 + 34*0x30
	TxtVersion         = 0x2000 + 35*0x30
	TxtPreheatHotend   = 0x2000 + 36*0x30
	TxtPreheatBed      = 0x2000 + 37*0x30
	TxtPreheatHotendIn = 0x3000
	TxtPreheatBedIn    = 0x3002

	TxtOutageRecoveryFile     = 0x2180
	TxtOutageRecoveryProgress = 0x2210

	TxtAboutDeviceName = 0x2750
	TxtAboutFWVersion  = 0x2690
	TxtAboutVolume     = 0x2770
	TxtAboutSupport    = 0x2790
)

// Numeric control registers
const (
	RegMoveDistance  = 0x4300 // move/jog distance echo
	RegSystemLED     = 0x4500 // system page LED status
	RegPrintLED      = 0x4550 // print settings page LED status
)

// Display colors (RGB565)
const (
	ColorRed  = 0xF800
	ColorBlue = 0x0210
)

// IsKeyAddress reports whether a reply address is in the key-event range.
func IsKeyAddress(addr uint16) bool {
	return addr&KeyMask == KeyAddress
}
