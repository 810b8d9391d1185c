package windows

// ChildInfo describes a child control of a window
type ChildInfo struct {
	Hwnd      uintptr     `yaml:"hwnd"`
	ClassName string      `yaml:"class"`
	Text      string      `yaml:"text,omitempty"`
	Children  []ChildInfo `yaml:"children,omitempty"`
}

// WindowInfo describes a visible top-level window
type WindowInfo struct {
	Hwnd    uintptr `yaml:"hwnd"`
	Title   string  `yaml:"title"`
	Class   string  `yaml:"class"`
	Pid     uint32  `yaml:"pid"`
	Process string  `yaml:"process,omitempty"`
}

// Rect is a screen rectangle laid out like the Win32 RECT structure
type Rect struct {
	Left   int32 `yaml:"left"`
	Top    int32 `yaml:"top"`
	Right  int32 `yaml:"right"`
	Bottom int32 `yaml:"bottom"`
}

// Width returns the horizontal extent of the rectangle
func (r Rect) Width() int32 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle
func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}

// Point is a screen coordinate laid out like the Win32 POINT structure
type Point struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}
