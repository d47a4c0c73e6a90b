// Package main is a minimal terminal host for the editcore engine: a
// single-buffer editor exercising intents, multi-cursor, and undo over
// a tcell screen.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/editcore/config"
	"github.com/dshills/editcore/engine"
	"github.com/dshills/editcore/internal/logger"
	"github.com/dshills/editcore/stats"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		readOnly    bool
		debug       bool
		language    string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to TOML configuration file")
	flag.BoolVar(&readOnly, "readonly", false, "Open in read-only mode")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&language, "lang", "", "Language identifier for the buffer")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "editcore-demo - editor engine demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: editcore-demo [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Ctrl+Z undo, Ctrl+Y redo, Ctrl+S save, Ctrl+Q quit\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("editcore-demo %s\n", version)
		return 0
	}

	if err := logger.Init(debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if readOnly {
		cfg.ReadOnly = true
	}

	var content string
	path := flag.Arg(0)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		content = string(data)
	}

	state := engine.New(content,
		engine.WithConfig(cfg),
		engine.WithLanguage(language),
		engine.WithChangeListener(func(v uint64) {
			logger.Debug("state changed", "version", v)
		}),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	logger.Info("demo started", "file", path, "readonly", cfg.ReadOnly)

	h := &host{screen: screen, state: state, path: path}
	return h.loop()
}

type host struct {
	screen tcell.Screen
	state  *engine.EditorState
	path   string
	status string
}

func (h *host) loop() int {
	for {
		h.draw()
		ev := h.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			h.screen.Sync()
		case *tcell.EventKey:
			if done := h.handleKey(ev); done {
				return 0
			}
		}
	}
}

func (h *host) handleKey(ev *tcell.EventKey) bool {
	var err error
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlS:
		err = h.save()
	case tcell.KeyCtrlZ:
		var ok bool
		if ok, err = h.state.Undo(); err == nil && !ok {
			h.status = "nothing to undo"
		}
	case tcell.KeyCtrlY:
		var ok bool
		if ok, err = h.state.Redo(); err == nil && !ok {
			h.status = "nothing to redo"
		}
	case tcell.KeyEnter:
		_, err = h.state.ApplyEdit(engine.Insert("\n"))
	case tcell.KeyTab:
		_, err = h.state.ApplyEdit(engine.Insert(h.state.Config().IndentString()))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		_, err = h.state.ApplyEdit(engine.DeleteBackward())
	case tcell.KeyDelete:
		_, err = h.state.ApplyEdit(engine.DeleteForward())
	case tcell.KeyLeft:
		h.state.MoveHorizontal(-1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyRight:
		h.state.MoveHorizontal(1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyUp:
		h.state.MoveVertical(-1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyDown:
		h.state.MoveVertical(1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyEscape:
		h.state.ClearSecondaryCursors()
	case tcell.KeyRune:
		_, err = h.state.ApplyEdit(engine.Insert(string(ev.Rune())))
	}
	if err != nil {
		h.status = err.Error()
		logger.Warn("edit rejected", "err", err)
	}
	return false
}

func (h *host) save() error {
	if h.path == "" {
		h.status = "no file"
		return nil
	}
	if err := os.WriteFile(h.path, []byte(h.state.Text()), 0o644); err != nil {
		return err
	}
	h.state.MarkSaved()
	h.status = "saved " + h.path
	logger.Info("saved", "path", h.path, "version", h.state.Version())
	return nil
}

func (h *host) draw() {
	h.screen.Clear()
	width, height := h.screen.Size()
	if height < 2 {
		return
	}
	cfg := h.state.Config()

	gutter := 0
	if cfg.ShowLineNumbers {
		gutter = len(fmt.Sprintf("%d", h.state.LineCount())) + 1
	}

	style := tcell.StyleDefault
	lineStyle := style
	cursorLine := h.state.PrimaryCursor().Head.Line

	for row := 0; row < height-1 && uint32(row) < h.state.LineCount(); row++ {
		line, err := h.state.LineText(uint32(row))
		if err != nil {
			break
		}
		rowStyle := lineStyle
		if cfg.HighlightCurrentLine && uint32(row) == cursorLine {
			rowStyle = rowStyle.Background(tcell.ColorDarkSlateGray)
		}
		col := 0
		if gutter > 0 {
			num := fmt.Sprintf("%*d ", gutter-1, row+1)
			for _, r := range num {
				h.screen.SetContent(col, row, r, nil, style.Foreground(tcell.ColorGray))
				col++
			}
		}
		for _, r := range line {
			if col >= width {
				break
			}
			h.screen.SetContent(col, row, r, nil, rowStyle)
			col++
		}
	}

	for _, c := range h.state.Cursors() {
		x := gutter + int(c.Head.Column)
		y := int(c.Head.Line)
		if y < height-1 && x < width {
			h.screen.ShowCursor(x, y)
		}
	}

	h.drawStatus(width, height-1)
	h.screen.Show()
}

func (h *host) drawStatus(width, row int) {
	st := stats.Compute(h.state.Text())
	mod := ""
	if h.state.Modified() {
		mod = " [+]"
	}
	ro := ""
	if h.state.Config().ReadOnly {
		ro = " [RO]"
	}
	prim := h.state.PrimaryCursor().Head
	left := fmt.Sprintf(" %s%s%s  %d:%d", h.path, mod, ro, prim.Line+1, prim.Column+1)
	if h.state.CursorCount() > 1 {
		left += fmt.Sprintf("  %d cursors", h.state.CursorCount())
	}
	right := fmt.Sprintf("%dW %dL v%d %s ", st.Words, st.Lines, h.state.Version(), h.status)

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range left {
		if col >= width {
			break
		}
		h.screen.SetContent(col, row, r, nil, style)
		col++
	}
	pad := width - col - len([]rune(right))
	for i := 0; i < pad; i++ {
		h.screen.SetContent(col, row, ' ', nil, style)
		col++
	}
	for _, r := range right {
		if col >= width {
			break
		}
		h.screen.SetContent(col, row, r, nil, style)
		col++
	}
}
