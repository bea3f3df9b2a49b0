package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/s-hammon/memsig"
	"github.com/s-hammon/p"
)

// Update is a snapshot of the image being viewed.
type Update struct {
	Online bool
	Name   string
	Data   []byte
	Error  string
}

// MatchCells returns the offsets covered by the first match of sig in data.
func MatchCells(data []byte, sig memsig.Signature) map[int]struct{} {
	hits := make(map[int]struct{})
	off := sig.Index(data)
	if off < 0 {
		return hits
	}

	for i := range sig.Len() {
		hits[off+i] = struct{}{}
	}

	return hits
}

// TopRow picks the first visible row so that the byte at off is on screen,
// a couple of rows below the top when possible.
func TopRow(off, total, rows, cols int) int {
	const lead = 2
	if off < 0 || cols <= 0 {
		return 0
	}

	lastRow := max((total+cols-1)/cols-rows, 0)
	return min(max(off/cols-lead, 0), lastRow)
}

type viewer struct {
	cols    int
	input   string
	sig     memsig.Signature
	sigErr  string
	last    Update
	match   int
	matches map[int]struct{}
	top     int
	rows    int
}

func newViewer(cols int) *viewer {
	return &viewer{cols: cols, match: -1, matches: map[int]struct{}{}, rows: 1}
}

func (v *viewer) apply(u Update) {
	v.last = u
	v.rematch()
}

func (v *viewer) rematch() {
	v.match = -1
	v.matches = map[int]struct{}{}
	if !v.last.Online || v.sig.Len() == 0 {
		return
	}

	v.match = v.sig.Index(v.last.Data)
	v.matches = MatchCells(v.last.Data, v.sig)
	if v.match >= 0 {
		v.top = TopRow(v.match, len(v.last.Data), v.rows, v.cols)
	}
}

// handleKey applies a key press and reports whether the viewer should quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	default:
		if ev.Rune() != 0 {
			v.input += string(ev.Rune())
		}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		sig, err := memsig.Parse(v.input)
		if err != nil {
			v.sigErr = err.Error()
			return false
		}
		v.sig, v.sigErr = sig, ""
		v.rematch()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(v.input) > 0 {
			v.input = v.input[:len(v.input)-1]
		}
	case tcell.KeyUp:
		v.top = max(v.top-1, 0)
	case tcell.KeyDown:
		v.top = min(v.top+1, max((len(v.last.Data)+v.cols-1)/v.cols-1, 0))
	case tcell.KeyPgUp:
		v.top = max(v.top-v.rows, 0)
	case tcell.KeyPgDn:
		v.top = min(v.top+v.rows, max((len(v.last.Data)+v.cols-1)/v.cols-1, 0))
	}

	return false
}

func (v *viewer) status() (string, tcell.Style) {
	switch {
	case !v.last.Online:
		msg := "OFFLINE"
		if v.last.Error != "" {
			msg += ": " + strings.ToUpper(v.last.Error)
		}
		return msg, StyleFail
	case v.sigErr != "":
		return v.sigErr, StyleFail
	case v.sig.Len() == 0:
		return "ENTER A SIGNATURE", StyleDim
	case v.match < 0:
		return "NOT FOUND", StyleFail
	default:
		return p.Format("MATCH @ 0x%X", v.match), StyleOK
	}
}

func (v *viewer) draw(s tcell.Screen) {
	s.Clear()

	scrW, scrH := s.Size()
	layout := ComputeLayout(scrW, scrH, v.cols)
	v.rows = layout.Rows
	startX := max((scrW-layout.BoxWidth)/2, 0)

	// Search box
	DrawBox(s, startX, 0, layout.BoxWidth, 3, StyleBox, "SIGNATURE")
	DrawText(s, startX+layout.PaddingX, 1, StyleCyan, v.input)

	// Hex grid
	DrawBox(s, startX, 3, layout.BoxWidth, layout.Rows+2, StyleBox, v.last.Name)
	data := v.last.Data
	for r := range layout.Rows {
		base := (v.top + r) * v.cols
		if base >= len(data) {
			break
		}

		y := 4 + r
		x := startX + layout.PaddingX
		DrawText(s, x, y, StyleOffset, p.Format("%08X", base))
		x += offsetWidth

		for c := range v.cols {
			idx := base + c
			if idx >= len(data) {
				break
			}

			style := StyleText
			if _, ok := v.matches[idx]; ok {
				style = StyleMatch
			}
			DrawText(s, x+c*layout.CellWidth, y, style, p.Format("%02X", data[idx]))
		}
	}

	// Status box
	DrawBox(s, startX, layout.StatusY, layout.BoxWidth, 3, StyleBox, "")
	text, style := v.status()
	DrawTextCentered(s, startX+layout.BoxWidth/2, layout.StatusY+1, style, text)

	// Help line
	help := "Esc/Ctrl+C: quit  |  Enter: apply signature  |  Up/Down/PgUp/PgDn: scroll"
	DrawTextCentered(s, scrW/2, layout.HelpY, StyleDim, help)
	s.Show()
}

// Run shows a hex view of the latest Update from updates and highlights the
// first match of the signature typed by the user.
func Run(updates <-chan Update, cols int) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell.NewScreen: %v", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen.Init: %v", err)
	}
	defer s.Fini()

	return loop(s, updates, newViewer(cols))
}

func loop(s tcell.Screen, updates <-chan Update, v *viewer) error {
	go func() {
		for u := range updates {
			_ = s.PostEvent(tcell.NewEventInterrupt(u))
		}
	}()

	v.draw(s)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if u, ok := ev.Data().(Update); ok {
				v.apply(u)
			}
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		}

		v.draw(s)
	}
}
