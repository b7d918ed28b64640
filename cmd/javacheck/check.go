package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sessionforge/javacheck/checker"
	"github.com/sessionforge/javacheck/service"
	"github.com/sessionforge/javacheck/session"
)

var (
	checkProject   string
	checkCompiler  string
	checkRecommend bool
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	fileColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen)
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Compile-check all Java sources under a directory",
	Long: `Creates an ephemeral session, copies every .java file under the given
directory into its workspace, runs a full compilation check, and prints the
diagnostics. The session is deleted afterward.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkProject, "project", "", "project name for the session")
	checkCmd.Flags().StringVar(&checkCompiler, "compiler", "", "compiler binary (overrides config)")
	checkCmd.Flags().BoolVar(&checkRecommend, "recommend", false, "print fix suggestions per diagnostic")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := service.LoadConfig(configFile)
	if err != nil {
		return err
	}
	// One-shot run: keep the registry in memory regardless of config.
	cfg.Session.Store = session.StoreMemory
	if checkCompiler != "" {
		cfg.Checker.Compiler = checkCompiler
	}

	svc, err := service.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	created, err := svc.CreateSession(ctx, checkProject)
	if err != nil {
		return err
	}
	defer svc.DeleteSession(ctx, created.SessionID)

	entries, err := collectSources(args[0])
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no .java files under %s", args[0])
	}

	batch, err := svc.WriteFiles(ctx, created.SessionID, entries)
	if err != nil {
		return err
	}
	for _, failure := range batch.Failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", failure.Path, failure.Reason)
	}

	result, err := svc.CheckErrors(ctx, created.SessionID)
	if err != nil {
		return err
	}
	if result.Status == service.StatusTimeout {
		return fmt.Errorf("check timed out: %s", result.Message)
	}

	if len(result.Diagnostics) == 0 {
		okColor.Printf("✓ %d file(s) compiled cleanly\n", batch.Written)
		return nil
	}

	errorCount := printDiagnostics(ctx, svc, created.SessionID, result.Diagnostics)
	if errorCount > 0 {
		return fmt.Errorf("%d error(s) found", errorCount)
	}
	return nil
}

func printDiagnostics(ctx context.Context, svc *service.Service, sessionID string, diags []checker.Diagnostic) int {
	errorCount := 0
	for _, d := range diags {
		severity := warningColor.Sprint(d.Severity)
		if d.Severity == checker.SeverityError {
			severity = errorColor.Sprint(d.Severity)
			errorCount++
		}

		location := fmt.Sprintf("%s:%d", d.File, d.Line)
		if d.Column > 0 {
			location = fmt.Sprintf("%s:%d", location, d.Column)
		}
		fmt.Printf("%s: %s: %s\n", fileColor.Sprint(location), severity, d.Message)
		if d.Code != "" {
			fmt.Printf("    %s\n", d.Code)
		}

		if checkRecommend {
			recs, err := svc.GetRecommendations(ctx, sessionID, d)
			if err == nil {
				for _, r := range recs.Recommendations {
					fmt.Printf("    → %s\n", r)
				}
			}
		}
	}
	return errorCount
}

// collectSources walks dir and maps every .java file to a workspace-relative
// logical path, preserving an existing src/ layout and rooting everything
// else under the main source tree.
func collectSources(dir string) ([]session.FileEntry, error) {
	var entries []session.FileEntry

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		entries = append(entries, session.FileEntry{
			Path:    filepath.ToSlash(rel),
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
