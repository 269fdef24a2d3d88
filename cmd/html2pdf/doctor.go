package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// versionTimeout bounds the renderer's --version call.
const versionTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Renderer rendererInfo `json:"renderer"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// rendererInfo holds wkhtmltopdf detection results.
type rendererInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path"`
	Source  string `json:"source"` // "HTML2PDF_RENDERER" or "probe"
	Version string `json:"version,omitempty"`
	Command string `json:"command"` // sample invocation for a stdin document
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GOMAXPROCS int    `json:"gomaxprocs"`
	Workers    int    `json:"workers"` // auto pool size
	Container  bool   `json:"container"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GOMAXPROCS: runtime.GOMAXPROCS(0),
			Workers:    html2pdf.ResolvePoolSize(0),
			Container:  hints.IsInContainer(),
		},
	}

	renderEnv := html2pdf.DefaultEnvironment()
	if tempDir := env.Getenv("HTML2PDF_TEMP_DIR"); tempDir != "" {
		renderEnv.TempDir = tempDir
	}

	checkRenderer(result, renderEnv, env.Getenv("HTML2PDF_RENDERER"))
	checkSystem(result, renderEnv.TempDir)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkRenderer locates wkhtmltopdf and asks it for its version.
func checkRenderer(result *doctorResult, renderEnv html2pdf.Environment, override string) {
	result.Renderer.Path = renderEnv.ExecutablePath
	result.Renderer.Source = "probe"
	if override != "" {
		result.Renderer.Path = override
		result.Renderer.Source = "HTML2PDF_RENDERER"
	}

	sample := html2pdf.BuildArguments(html2pdf.NewHTMLDocument("<html></html>"), fileutil.TempPDFPath(renderEnv.TempDir))
	result.Renderer.Command = result.Renderer.Path + " " + html2pdf.FormatCommandLine(sample)

	if !fileutil.FileExists(result.Renderer.Path) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("wkhtmltopdf not found at %s. Install it or set HTML2PDF_RENDERER", result.Renderer.Path))
		return
	}
	result.Renderer.Found = true

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, result.Renderer.Path, "--version").Output() // #nosec G204 -- operator-configured renderer
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get renderer version: %v", err))
		return
	}
	result.Renderer.Version = strings.TrimSpace(string(out))
}

// checkSystem verifies the temp directory accepts new files.
func checkSystem(result *doctorResult, tempDir string) {
	result.System.TempDir = tempDir

	f, err := os.CreateTemp(tempDir, "html2pdf-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tempDir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = fileutil.RemoveIfExists(name)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "html2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Renderer")
	if r.Renderer.Found {
		fmt.Fprintf(w, "  [OK] Found at %s (%s)\n", r.Renderer.Path, r.Renderer.Source)
		if r.Renderer.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Renderer.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] Not found (tried %s)\n", r.Renderer.Path)
	}
	fmt.Fprintf(w, "  Command: %s\n", r.Renderer.Command)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d (auto workers: %d)\n", r.Env.GOMAXPROCS, r.Env.Workers)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  [OK] Temp directory: %s (writable)\n", r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Temp directory: %s (not writable)\n", r.System.TempDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
