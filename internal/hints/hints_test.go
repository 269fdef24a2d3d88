package hints

// Notes:
// - ForRendererNotInstalled tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func TestForRendererNotInstalled_SuggestsOverride(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("HTML2PDF_RENDERER", "")

	hint := ForRendererNotInstalled("linux")

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint %q missing prefix", hint)
	}
	if !strings.Contains(hint, "HTML2PDF_RENDERER") {
		t.Error("expected HTML2PDF_RENDERER suggestion")
	}
	if !strings.Contains(hint, "apt install") {
		t.Error("expected package manager suggestion on linux")
	}
}

func TestForRendererNotInstalled_OverrideAlreadySet(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("HTML2PDF_RENDERER", "/opt/wk")

	hint := ForRendererNotInstalled("darwin")

	if strings.Contains(hint, "HTML2PDF_RENDERER") {
		t.Error("should not suggest HTML2PDF_RENDERER when already set")
	}
	if !strings.Contains(hint, "brew") {
		t.Error("expected brew suggestion on darwin")
	}
}

func TestForRendererNotInstalled_Container(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("HTML2PDF_RENDERER", "")

	if hint := ForRendererNotInstalled("linux"); !strings.Contains(hint, "image") {
		t.Errorf("expected container hint, got %q", hint)
	}
}

func TestForRendererNotInstalled_Windows(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("HTML2PDF_RENDERER", "")

	if hint := ForRendererNotInstalled("windows"); !strings.Contains(hint, "ProgramFiles") {
		t.Errorf("expected ProgramFiles hint, got %q", hint)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"timeout", ForTimeout(), "--timeout"},
		{"renderer failed", ForRendererFailed(), "--debug"},
		{"output directory", ForOutputDirectory(), "writable"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("%s hint = %q, want substring %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"prod.yaml", "/home/u/.config/go-html2pdf/prod.yaml"})
	if !strings.Contains(hint, "create /home/u/.config/go-html2pdf/prod.yaml") {
		t.Errorf("hint = %q, want user config suggestion", hint)
	}

	if hint := ForConfigNotFound(nil); !strings.Contains(hint, "--config") {
		t.Errorf("hint = %q, want --config suggestion", hint)
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}
