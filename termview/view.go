// Package termview previews a tilemap.Map in a terminal, one character per
// tile, looking straight down with north at the top.
package termview

import (
	"fmt"

	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/gdamore/tcell/v2"
)

var (
	styleFloor    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHospital = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDoor     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleObject   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBlocked  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// Glyph picks the character for a node. Objects win over doors, doors over
// walls, walls over floor.
func Glyph(node *tilemap.Node) (rune, tcell.Style) {
	switch {
	case node.ObjectType.IsDoor():
		return '+', styleDoor
	case node.ObjectType != tilemap.NoObject:
		return 'o', styleObject
	case node.HasAny(tilemap.DoorNorth | tilemap.DoorWest):
		return '+', styleDoor
	case !node.Blocks[tilemap.LayerNorthWall].Empty() && !node.Blocks[tilemap.LayerWestWall].Empty():
		return '#', styleWall
	case !node.Blocks[tilemap.LayerNorthWall].Empty():
		return '-', styleWall
	case !node.Blocks[tilemap.LayerWestWall].Empty():
		return '|', styleWall
	case node.Blueprinted():
		return 'x', styleBlocked
	case node.Passable() && node.Has(tilemap.Hospital):
		return '.', styleHospital
	case node.Passable():
		return '.', styleFloor
	case !node.Blocks[tilemap.LayerFloor].Empty():
		return ':', styleFloor
	}
	return ' ', tcell.StyleDefault
}

// View is a scrollable preview with a cursor; the last screen row is a
// status line describing the tile under the cursor.
type View struct {
	m      *tilemap.Map
	screen tcell.Screen

	// Tile shown in the top-left cell.
	originX, originY int
	cursorX, cursorY int
}

func New(screen tcell.Screen, m *tilemap.Map) *View {
	return &View{m: m, screen: screen}
}

func (v *View) Cursor() (x, y int) {
	return v.cursorX, v.cursorY
}

// Render draws the visible part of the map and the status line.
func (v *View) Render() {
	v.screen.Clear()
	w, h := v.screen.Size()
	rows := h - 1
	for row := 0; row < rows; row++ {
		for col := 0; col < w; col++ {
			node, ok := v.m.Node(v.originX+col, v.originY+row)
			if !ok {
				continue
			}
			r, style := Glyph(node)
			if v.originX+col == v.cursorX && v.originY+row == v.cursorY {
				style = style.Reverse(true)
			}
			v.screen.SetContent(col, row, r, nil, style)
		}
	}
	if h > 0 {
		for col, r := range []rune(v.Status()) {
			if col >= w {
				break
			}
			v.screen.SetContent(col, h-1, r, nil, styleStatus)
		}
	}
	v.screen.Show()
}

// Status describes the tile under the cursor.
func (v *View) Status() string {
	node, ok := v.m.Node(v.cursorX, v.cursorY)
	if !ok {
		return fmt.Sprintf("(%d, %d) off map", v.cursorX, v.cursorY)
	}
	travel := []byte("----")
	for i, dir := range []tilemap.Flags{tilemap.CanTravelN, tilemap.CanTravelE, tilemap.CanTravelS, tilemap.CanTravelW} {
		if node.Has(dir) {
			travel[i] = "NESW"[i]
		}
	}
	s := fmt.Sprintf("(%d, %d) parcel %d room %d travel %s", v.cursorX, v.cursorY, node.ParcelID, node.RoomID, travel)
	if node.ObjectType != tilemap.NoObject {
		s += " " + node.ObjectType.String()
	}
	return s
}

// MoveCursor moves the cursor by (dx, dy), clamped to the map, and scrolls
// so it stays visible.
func (v *View) MoveCursor(dx, dy int) {
	v.cursorX = clamp(v.cursorX+dx, 0, v.m.Width()-1)
	v.cursorY = clamp(v.cursorY+dy, 0, v.m.Height()-1)

	w, h := v.screen.Size()
	rows := h - 1
	if v.cursorX < v.originX {
		v.originX = v.cursorX
	} else if w > 0 && v.cursorX >= v.originX+w {
		v.originX = v.cursorX - w + 1
	}
	if v.cursorY < v.originY {
		v.originY = v.cursorY
	} else if rows > 0 && v.cursorY >= v.originY+rows {
		v.originY = v.cursorY - rows + 1
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// HandleEvent applies one event and reports whether the view should keep
// running.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.MoveCursor(0, -1)
		case tcell.KeyDown:
			v.MoveCursor(0, 1)
		case tcell.KeyLeft:
			v.MoveCursor(-1, 0)
		case tcell.KeyRight:
			v.MoveCursor(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'k':
				v.MoveCursor(0, -1)
			case 'j':
				v.MoveCursor(0, 1)
			case 'h':
				v.MoveCursor(-1, 0)
			case 'l':
				v.MoveCursor(1, 0)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Run renders and handles events until the user quits. The screen must
// already be initialised.
func (v *View) Run() {
	v.Render()
	for {
		ev := v.screen.PollEvent()
		if ev == nil || !v.HandleEvent(ev) {
			return
		}
		v.Render()
	}
}

// Show opens the terminal, runs a View over m and restores the terminal.
func Show(m *tilemap.Map) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	New(screen, m).Run()
	return nil
}
