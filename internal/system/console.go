package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphics puts the console in graphics mode and hides the cursor, logging
// each step. The returned func undoes both and is safe to call once.
func EnterGraphics(l logger) (restore func()) {
	report(l, "KD_GRAPHICS set", "KD_GRAPHICS failed", SetGraphicsMode())
	report(l, "cursor hidden", "hide cursor failed", HideCursor())
	return func() {
		report(l, "cursor shown", "show cursor failed", ShowCursor())
		report(l, "KD_TEXT set", "KD_TEXT failed", RestoreTextMode())
	}
}

func report(l logger, ok, failed string, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
		return
	}
	l.Infof("tty", "%s", ok)
}
