package log

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/Sirupsen/logrus.v0"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logrus.StandardLogger().Out
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		modDebugMask = 0
		disabled = false
	})
	return &buf
}

func TestModuleByName(t *testing.T) {
	for _, name := range ModuleNames() {
		mod, ok := ModuleByName(name)
		if !ok {
			t.Fatalf("ModuleByName(%q) not found", name)
		}
		if mod.String() != name {
			t.Errorf("ModuleByName(%q).String() = %q", name, mod.String())
		}
	}
	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("ModuleByName accepted the placeholder name")
	}
}

func TestDebugNeedsModule(t *testing.T) {
	buf := capture(t)

	ModPoll.WithField("port", "p1").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug of a disabled module was printed: %q", buf)
	}

	EnableDebugModules(ModPoll.Mask())
	ModPoll.WithField("port", "p1").Debug("shown")
	ModSim.Debug("other module")
	out := buf.String()
	if !strings.Contains(out, "shown") || !strings.Contains(out, "port=p1") {
		t.Errorf("missing enabled debug line in %q", out)
	}
	if strings.Contains(out, "other module") {
		t.Errorf("debug of ModSim printed with only ModPoll enabled")
	}

	DisableDebugModules(ModPoll.Mask())
	if ModPoll.Enabled(DebugLevel) {
		t.Errorf("ModPoll still enabled after DisableDebugModules")
	}
}

func TestWarningsAlwaysShown(t *testing.T) {
	buf := capture(t)

	ModCfg.WithField("key", "timing.foo").Warn("unknown configuration key")
	if !strings.Contains(buf.String(), "timing.foo") {
		t.Errorf("warning not printed: %q", buf)
	}

	buf.Reset()
	Disable()
	ModCfg.Warn("silenced")
	if buf.Len() != 0 {
		t.Errorf("warning printed after Disable: %q", buf)
	}
}

func TestWithFieldsCopies(t *testing.T) {
	base := ModSim.WithField("a", 1)
	derived := base.WithField("b", 2)
	if _, ok := base.fields["b"]; ok {
		t.Errorf("WithField modified its receiver")
	}
	if len(derived.fields) != 2 {
		t.Errorf("derived fields = %v", derived.fields)
	}
}

func TestConfigure(t *testing.T) {
	capture(t)

	if err := Configure("sim,cfg"); err != nil {
		t.Fatal(err)
	}
	if !ModSim.Enabled(DebugLevel) || !ModCfg.Enabled(DebugLevel) || ModPoll.Enabled(DebugLevel) {
		t.Errorf("mask after sim,cfg = %#x", modDebugMask)
	}

	if err := Configure("all"); err != nil {
		t.Fatal(err)
	}
	if !ModPoll.Enabled(DebugLevel) {
		t.Errorf("all did not enable poll")
	}

	for _, bad := range []string{"gpu", "all,sim", "no,cfg", "sim,no"} {
		if err := Configure(bad); err == nil {
			t.Errorf("Configure(%q) succeeded", bad)
		}
	}

	if err := Configure("no"); err != nil {
		t.Fatal(err)
	}
	if ModCfg.Enabled(ErrorLevel) {
		t.Errorf("errors still enabled after no")
	}
}
