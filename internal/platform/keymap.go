package platform

// US ANSI virtual key codes for text synthesis. Typing is expressed as
// keyDown/keyUp pairs with a modifier mask, so uppercase and shifted
// punctuation carry ModShift.

// Key codes for non-printing keys.
const (
	KeyReturn = 36
	KeyTab    = 48
	KeySpace  = 49
	KeyDelete = 51
	KeyEscape = 53
)

type keyStroke struct {
	code  int
	shift bool
}

var usKeyMap = map[rune]keyStroke{
	'a': {0, false}, 's': {1, false}, 'd': {2, false}, 'f': {3, false},
	'h': {4, false}, 'g': {5, false}, 'z': {6, false}, 'x': {7, false},
	'c': {8, false}, 'v': {9, false}, 'b': {11, false}, 'q': {12, false},
	'w': {13, false}, 'e': {14, false}, 'r': {15, false}, 'y': {16, false},
	't': {17, false}, '1': {18, false}, '2': {19, false}, '3': {20, false},
	'4': {21, false}, '6': {22, false}, '5': {23, false}, '=': {24, false},
	'9': {25, false}, '7': {26, false}, '-': {27, false}, '8': {28, false},
	'0': {29, false}, ']': {30, false}, 'o': {31, false}, 'u': {32, false},
	'[': {33, false}, 'i': {34, false}, 'p': {35, false}, 'l': {37, false},
	'j': {38, false}, '\'': {39, false}, 'k': {40, false}, ';': {41, false},
	'\\': {42, false}, ',': {43, false}, '/': {44, false}, 'n': {45, false},
	'm': {46, false}, '.': {47, false}, '`': {50, false},
	' ': {KeySpace, false}, '\n': {KeyReturn, false}, '\t': {KeyTab, false},

	'!': {18, true}, '@': {19, true}, '#': {20, true}, '$': {21, true},
	'%': {23, true}, '^': {22, true}, '&': {26, true}, '*': {28, true},
	'(': {25, true}, ')': {29, true}, '_': {27, true}, '+': {24, true},
	'{': {33, true}, '}': {30, true}, '|': {42, true}, ':': {41, true},
	'"': {39, true}, '<': {43, true}, '>': {47, true}, '?': {44, true},
	'~': {50, true},
}

// TypeText synthesizes keyDown/keyUp pairs for each rune of text.
// Uppercase letters and shifted punctuation are posted with ModShift.
// Runes without a key mapping are skipped.
func TypeText(in Inputter, text string) error {
	for _, r := range text {
		stroke, ok := usKeyMap[r]
		if !ok {
			lower := r
			if r >= 'A' && r <= 'Z' {
				lower = r + ('a' - 'A')
				if s, found := usKeyMap[lower]; found {
					stroke = keyStroke{code: s.code, shift: true}
					ok = true
				}
			}
			if !ok {
				continue
			}
		}
		var mods ModifierMask
		if stroke.shift {
			mods = ModShift
		}
		if err := in.KeyDown(stroke.code, mods); err != nil {
			return err
		}
		if err := in.KeyUp(stroke.code, mods); err != nil {
			return err
		}
	}
	return nil
}
