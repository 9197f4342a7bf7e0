package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// String returns the button name carried in mouse events
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "left"
	case MouseBtnMiddle:
		return "middle"
	case MouseBtnRight:
		return "right"
	case MouseBtnWheelUp:
		return "wheel_up"
	case MouseBtnWheelDown:
		return "wheel_down"
	default:
		return "none"
	}
}

// String returns the action name carried in mouse events
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "press"
	case MouseActionRelease:
		return "release"
	case MouseActionMove:
		return "move"
	case MouseActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// decodeMouseButton splits the SGR button byte into button, action and modifiers
// Bits 0-1: button (0=left, 1=middle, 2=right, 3=release), 2: shift, 3: alt, 4: ctrl, 5: motion, 6: scroll
func decodeMouseButton(btn int, release bool) (MouseButton, MouseAction, Modifier) {
	var (
		button MouseButton
		action MouseAction
		mod    Modifier
	)

	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	if isScroll {
		if buttonID == 0 {
			button = MouseBtnWheelUp
		} else {
			button = MouseBtnWheelDown
		}
		action = MouseActionPress
	} else {
		switch buttonID {
		case 0:
			button = MouseBtnLeft
		case 1:
			button = MouseBtnMiddle
		case 2:
			button = MouseBtnRight
		case 3:
			button = MouseBtnNone
		}

		switch {
		case release:
			action = MouseActionRelease
		case isMotion && button != MouseBtnNone:
			action = MouseActionDrag
		case isMotion:
			action = MouseActionMove
		default:
			action = MouseActionPress
		}
	}

	if btn&4 != 0 {
		mod |= ModShift
	}
	if btn&8 != 0 {
		mod |= ModAlt
	}
	if btn&16 != 0 {
		mod |= ModCtrl
	}
	return button, action, mod
}
