package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/templui/goaltrack/cmd/do/cmd"

	"github.com/spf13/cobra"
)

func main() {
	maybeRebuild()

	rootCmd := &cobra.Command{
		Use:   "do",
		Short: "Development and operations tools for goaltrack",
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.UserCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rebuildRoots holds the sources compiled into bin/do. The migrate and user
// commands embed internal/, including its SQL migrations.
var rebuildRoots = []string{"cmd/do", "internal"}

// maybeRebuild recompiles bin/do when its sources changed since the binary
// was built, then re-execs the fresh binary with the same arguments.
func maybeRebuild() {
	exe, err := os.Executable()
	if err != nil || !strings.HasSuffix(exe, "bin/do") {
		return
	}

	info, err := os.Stat(exe)
	if err != nil {
		return
	}

	changed, ok := changedSince(info.ModTime(), rebuildRoots...)
	if !ok {
		return
	}

	fmt.Printf("Rebuilding bin/do (%s changed)...\n", changed)
	build := exec.Command("go", "build", "-o", exe, "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Println("Rebuild failed:", err)
		return
	}

	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		fmt.Println("Re-exec failed:", err)
	}
}

// changedSince returns the first .go or .sql file under roots modified after
// built. Test files and unreadable entries are ignored.
func changedSince(built time.Time, roots ...string) (string, bool) {
	var changed string
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || !isBuildSource(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().After(built) {
				changed = path
				return filepath.SkipAll
			}
			return nil
		})
		if changed != "" {
			return changed, true
		}
	}
	return "", false
}

func isBuildSource(path string) bool {
	if strings.HasSuffix(path, "_test.go") {
		return false
	}
	return strings.HasSuffix(path, ".go") || strings.HasSuffix(path, ".sql")
}
