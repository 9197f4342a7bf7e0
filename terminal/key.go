// @focus: #sys { io } #input { keys }
package terminal

// Key represents a parsed named key
type Key uint16

const (
	KeyNone Key = iota

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter (Ctrl+A = 0x01, Ctrl+Z = 0x1A); H, I, J, M arrive as Backspace/Tab/Enter
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// keyToName maps Key constants to the names carried in key events
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",

	KeyCtrlA: "ctrl_a",
	KeyCtrlB: "ctrl_b",
	KeyCtrlC: "ctrl_c",
	KeyCtrlD: "ctrl_d",
	KeyCtrlE: "ctrl_e",
	KeyCtrlF: "ctrl_f",
	KeyCtrlG: "ctrl_g",
	KeyCtrlK: "ctrl_k",
	KeyCtrlL: "ctrl_l",
	KeyCtrlN: "ctrl_n",
	KeyCtrlO: "ctrl_o",
	KeyCtrlP: "ctrl_p",
	KeyCtrlQ: "ctrl_q",
	KeyCtrlR: "ctrl_r",
	KeyCtrlS: "ctrl_s",
	KeyCtrlT: "ctrl_t",
	KeyCtrlU: "ctrl_u",
	KeyCtrlV: "ctrl_v",
	KeyCtrlW: "ctrl_w",
	KeyCtrlX: "ctrl_x",
	KeyCtrlY: "ctrl_y",
	KeyCtrlZ: "ctrl_z",

	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(keyToName)+1)
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	nameToKey["shift_tab"] = KeyBacktab
}

// String returns the canonical key name, empty for KeyNone
func (k Key) String() string {
	return keyToName[k]
}

// KeyByName resolves a canonical name to a Key constant
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// controlKeys maps C0 bytes to keys
var controlKeys = [0x20]Key{
	0x00: KeyCtrlSpace,
	0x01: KeyCtrlA,
	0x02: KeyCtrlB,
	0x03: KeyCtrlC,
	0x04: KeyCtrlD,
	0x05: KeyCtrlE,
	0x06: KeyCtrlF,
	0x07: KeyCtrlG,
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0a: KeyEnter,
	0x0b: KeyCtrlK,
	0x0c: KeyCtrlL,
	0x0d: KeyEnter,
	0x0e: KeyCtrlN,
	0x0f: KeyCtrlO,
	0x10: KeyCtrlP,
	0x11: KeyCtrlQ,
	0x12: KeyCtrlR,
	0x13: KeyCtrlS,
	0x14: KeyCtrlT,
	0x15: KeyCtrlU,
	0x16: KeyCtrlV,
	0x17: KeyCtrlW,
	0x18: KeyCtrlX,
	0x19: KeyCtrlY,
	0x1a: KeyCtrlZ,
	0x1b: KeyEscape,
	0x1c: KeyCtrlBackslash,
	0x1d: KeyCtrlBracketRight,
	0x1e: KeyCtrlCaret,
	0x1f: KeyCtrlUnderscore,
}

// controlKey maps a C0 control byte or DEL to its key
func controlKey(b byte) Key {
	if b < 0x20 {
		return controlKeys[b]
	}
	if b == 0x7f {
		return KeyBackspace
	}
	return KeyNone
}

// CSI final letters (ESC [ X, or ESC [ 1 ; mod X)
var csiLetterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'Z': KeyBacktab,
}

// CSI numeric keys (ESC [ N ~, or ESC [ N ; mod ~)
var csiTildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// SS3 sequences (ESC O X)
var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'M': KeyEnter,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// xtermModifier decodes the xterm modifier parameter (1 + bitmask of shift=1, alt=2, ctrl=4)
func xtermModifier(p int) Modifier {
	if p < 2 {
		return ModNone
	}
	m := p - 1
	var mod Modifier
	if m&1 != 0 {
		mod |= ModShift
	}
	if m&2 != 0 {
		mod |= ModAlt
	}
	if m&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// lookupCSI resolves CSI parameter bytes and final byte to a key
// params holds the bytes between "ESC [" and the final byte
func lookupCSI(params []byte, final byte) (Key, Modifier, bool) {
	nums, ok := parseParams(params)
	if !ok {
		return KeyNone, ModNone, false
	}

	switch {
	case final == '~':
		if len(nums) == 0 || len(nums) > 2 {
			return KeyNone, ModNone, false
		}
		k, found := csiTildeKeys[nums[0]]
		if !found {
			return KeyNone, ModNone, false
		}
		var mod Modifier
		if len(nums) == 2 {
			mod = xtermModifier(nums[1])
		}
		return k, mod, true

	default:
		k, found := csiLetterKeys[final]
		if !found {
			return KeyNone, ModNone, false
		}
		var mod Modifier
		switch len(nums) {
		case 0:
		case 2:
			if nums[0] != 1 {
				return KeyNone, ModNone, false
			}
			mod = xtermModifier(nums[1])
		default:
			return KeyNone, ModNone, false
		}
		if k == KeyBacktab {
			mod |= ModShift
		}
		return k, mod, true
	}
}

// parseParams splits "N;N;N" into integers; empty input yields no params
func parseParams(data []byte) ([]int, bool) {
	if len(data) == 0 {
		return nil, true
	}
	nums := make([]int, 0, 3)
	val := 0
	digits := 0
	for _, b := range data {
		switch {
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			digits++
			if val > 9999 { // Sanity limit
				return nil, false
			}
		case b == ';':
			nums = append(nums, val)
			val = 0
			digits = 0
		default:
			return nil, false
		}
	}
	if digits == 0 && len(nums) > 0 {
		return nil, false
	}
	return append(nums, val), true
}
