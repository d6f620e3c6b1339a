package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the host environment for scaffolding",
	Long: `Diagnose your host environment and check that the tools the setup
pipeline shells out to are installed in sufficient versions:

- docker >= 20.10 and a reachable daemon
- docker-compose >= 1.28
- git >= 2.31
- openssl (informational; certificates are generated natively)
- a writable working directory

Examples:
  laraforge doctor                  # Full environment diagnosis
  laraforge doctor --format json    # Output as JSON for tooling`,
	RunE: runDoctor,
}

var (
	doctorVerbose bool
	doctorFormat  string
)

// Minimum tool versions required by the pipeline.
var (
	requiredDockerVersion        = []int{20, 10}
	requiredDockerComposeVersion = []int{1, 28}
	requiredGitVersion           = []int{2, 31}
)

// DiagnosticResult represents the result of a diagnostic check
type DiagnosticResult struct {
	Name       string `json:"name" yaml:"name"`
	Category   string `json:"category" yaml:"category"`
	Status     string `json:"status" yaml:"status"` // "ok", "warning", "error", "info"
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// DoctorReport represents the complete diagnostic report
type DoctorReport struct {
	Timestamp   time.Time          `json:"timestamp" yaml:"timestamp"`
	Environment map[string]string  `json:"environment" yaml:"environment"`
	Results     []DiagnosticResult `json:"results" yaml:"results"`
	Summary     ReportSummary      `json:"summary" yaml:"summary"`
}

// ReportSummary provides an overview of diagnostic results
type ReportSummary struct {
	Total    int `json:"total" yaml:"total"`
	OK       int `json:"ok" yaml:"ok"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Errors   int `json:"errors" yaml:"errors"`
	Info     int `json:"info" yaml:"info"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "Show verbose diagnostic information")
	doctorCmd.Flags().StringVarP(&doctorFormat, "format", "f", "table", "Output format (table|json|yaml)")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	report := &DoctorReport{
		Timestamp: time.Now(),
		Environment: map[string]string{
			"os":   runtime.GOOS,
			"arch": runtime.GOARCH,
			"go":   runtime.Version(),
		},
	}

	checks := []func(context.Context) DiagnosticResult{
		checkDockerVersion,
		checkDockerDaemon,
		checkDockerComposeVersion,
		checkGitVersion,
		checkOpenSSL,
		checkWorkingDirectory,
	}

	for _, check := range checks {
		result := check(ctx)
		report.Results = append(report.Results, result)

		report.Summary.Total++
		switch result.Status {
		case "ok":
			report.Summary.OK++
		case "warning":
			report.Summary.Warnings++
		case "error":
			report.Summary.Errors++
		default:
			report.Summary.Info++
		}
	}

	return emitDoctorReport(os.Stdout, report)
}

// emitDoctorReport writes the report in the selected format. The error-count
// exit applies to every format, so json/yaml consumers get the same exit
// code a table user sees.
func emitDoctorReport(w io.Writer, report *DoctorReport) error {
	switch doctorFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	case "yaml":
		if err := yaml.NewEncoder(w).Encode(report); err != nil {
			return err
		}
	case "table":
		printDoctorTable(w, report)
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", doctorFormat)
	}

	if report.Summary.Errors > 0 {
		return fmt.Errorf("%d environment check(s) failed", report.Summary.Errors)
	}

	return nil
}

func printDoctorTable(w io.Writer, report *DoctorReport) {
	fmt.Fprintln(w, "Laraforge Environment Doctor")
	fmt.Fprintln(w, "============================")
	fmt.Fprintln(w)

	for _, result := range report.Results {
		marker := "✓"
		switch result.Status {
		case "warning":
			marker = "⚠"
		case "error":
			marker = "✗"
		case "info":
			marker = "·"
		}

		fmt.Fprintf(w, "%s %-24s %s\n", marker, result.Name, result.Message)
		if result.Suggestion != "" && (doctorVerbose || result.Status != "ok") {
			fmt.Fprintf(w, "    → %s\n", result.Suggestion)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Checks: %d total, %d ok, %d warnings, %d errors\n",
		report.Summary.Total, report.Summary.OK, report.Summary.Warnings, report.Summary.Errors)
}

func checkDockerVersion(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{Name: "Docker", Category: "Tools", Status: "ok"}

	out, err := exec.CommandContext(ctx, "docker", "version", "--format", "{{.Server.Version}}").Output()
	if err != nil {
		result.Status = "error"
		result.Message = "docker not found"
		result.Suggestion = "Install Docker: https://docs.docker.com/engine/install/"
		return result
	}

	version := strings.TrimSpace(string(out))
	result.Message = fmt.Sprintf("docker %s", version)

	if !versionAtLeast(version, requiredDockerVersion) {
		result.Status = "error"
		result.Suggestion = fmt.Sprintf("Docker >= %s is required", joinVersion(requiredDockerVersion))
	}

	return result
}

func checkDockerDaemon(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{Name: "Docker daemon", Category: "Tools", Status: "ok", Message: "daemon reachable"}

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		result.Status = "error"
		result.Message = "daemon not reachable"
		result.Suggestion = "Start the Docker daemon and check your permissions on the docker socket"
	}

	return result
}

func checkDockerComposeVersion(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{Name: "Docker Compose", Category: "Tools", Status: "ok"}

	out, err := exec.CommandContext(ctx, "docker-compose", "version", "--short").Output()
	if err != nil {
		result.Status = "error"
		result.Message = "docker-compose not found"
		result.Suggestion = "Install docker-compose: https://docs.docker.com/compose/install/"
		return result
	}

	version := strings.TrimSpace(string(out))
	result.Message = fmt.Sprintf("docker-compose %s", version)

	if !versionAtLeast(version, requiredDockerComposeVersion) {
		result.Status = "error"
		result.Suggestion = fmt.Sprintf("docker-compose >= %s is required", joinVersion(requiredDockerComposeVersion))
	}

	return result
}

func checkGitVersion(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{Name: "Git", Category: "Tools", Status: "ok"}

	out, err := exec.CommandContext(ctx, "git", "version").Output()
	if err != nil {
		result.Status = "error"
		result.Message = "git not found"
		result.Suggestion = "Install git: https://git-scm.com/downloads"
		return result
	}

	// "git version 2.31.0"
	fields := strings.Fields(strings.TrimSpace(string(out)))
	version := fields[len(fields)-1]
	result.Message = fmt.Sprintf("git %s", version)

	if !versionAtLeast(version, requiredGitVersion) {
		result.Status = "error"
		result.Suggestion = fmt.Sprintf("git >= %s is required", joinVersion(requiredGitVersion))
	}

	return result
}

func checkOpenSSL(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{Name: "OpenSSL", Category: "Tools", Status: "info"}

	out, err := exec.CommandContext(ctx, "openssl", "version").Output()
	if err != nil {
		result.Message = "openssl not found (not required; certificates are generated natively)"
		return result
	}

	result.Message = strings.TrimSpace(string(out))
	result.Suggestion = "Useful for inspecting the generated certificates"
	return result
}

func checkWorkingDirectory(ctx context.Context) DiagnosticResult {
	result := DiagnosticResult{Name: "Working directory", Category: "Filesystem", Status: "ok"}

	cwd, err := os.Getwd()
	if err != nil {
		result.Status = "error"
		result.Message = "cannot determine working directory"
		return result
	}

	probe, err := os.CreateTemp(cwd, ".laraforge-doctor-*")
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("%s is not writable", cwd)
		result.Suggestion = "Run laraforge from a directory you can write to"
		return result
	}
	probe.Close()
	os.Remove(probe.Name())

	result.Message = fmt.Sprintf("%s is writable", cwd)
	return result
}

var versionDigitsRegex = regexp.MustCompile(`\d+`)

// versionAtLeast compares the leading numeric components of version against
// required. Non-numeric suffixes ("1.1.1k") are ignored per component.
func versionAtLeast(version string, required []int) bool {
	parts := strings.Split(version, ".")

	for i, req := range required {
		if i >= len(parts) {
			return false
		}

		digits := versionDigitsRegex.FindString(parts[i])
		if digits == "" {
			return false
		}

		current, err := strconv.Atoi(digits)
		if err != nil {
			return false
		}

		if current > req {
			return true
		}
		if current < req {
			return false
		}
	}

	return true
}

func joinVersion(version []int) string {
	parts := make([]string, len(version))
	for i, v := range version {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}
