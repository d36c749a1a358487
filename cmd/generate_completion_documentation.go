//go:build tools
// +build tools

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/xerolinux/xfprintd-gui/cmd/xfprintd-gui-helper/commands"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/generators"
)

const usage = `Usage of %s:

   completion DIRECTORY
     Create completions files in a structured hierarchy in DIRECTORY.
   man DIRECTORY
     Create man pages files in a structured hierarchy in DIRECTORY.
   patches DIRECTORY
     Create the patch fragments of the known services in a structured hierarchy in DIRECTORY.
`

func main() {
	if len(os.Args) < 3 {
		log.Fatalf(usage, os.Args[0])
	}

	cmd := commands.New().RootCmd()
	dir := generators.DestDirectory(os.Args[2])

	switch os.Args[1] {
	case "completion":
		genCompletions(cmd, filepath.Join(dir, "usr", "share"))
	case "man":
		genManPages(cmd, filepath.Join(dir, "usr", "share"))
	case "patches":
		genPatches(filepath.Join(dir, strings.TrimPrefix(consts.DefaultPatchesDir, "/")))
	default:
		log.Fatalf(usage, os.Args[0])
	}
}

// genCompletions for bash and zsh directories
func genCompletions(cmd cobra.Command, dir string) {
	bashCompDir := filepath.Join(dir, "bash-completion", "completions")
	zshCompDir := filepath.Join(dir, "zsh", "site-functions")
	for _, d := range []string{bashCompDir, zshCompDir} {
		if err := generators.CleanDirectory(filepath.Dir(d)); err != nil {
			log.Fatalln(err)
		}
		if err := generators.CreateDirectory(d, 0755); err != nil {
			log.Fatalf("Couldn't create completion directory: %v", err)
		}
	}

	if err := cmd.GenBashCompletionFileV2(filepath.Join(bashCompDir, cmd.Name()), true); err != nil {
		log.Fatalf("Couldn't create bash completion for %s: %v", cmd.Name(), err)
	}
	if err := cmd.GenZshCompletionFile(filepath.Join(zshCompDir, "_"+cmd.Name())); err != nil {
		log.Fatalf("Couldn't create zsh completion for %s: %v", cmd.Name(), err)
	}
}

func genManPages(cmd cobra.Command, dir string) {
	manBaseDir := filepath.Join(dir, "man")
	if err := generators.CleanDirectory(manBaseDir); err != nil {
		log.Fatalln(err)
	}

	out := filepath.Join(manBaseDir, "man1")
	if err := generators.CreateDirectory(out, 0755); err != nil {
		log.Fatalf("Couldn't create man pages directory: %v", err)
	}

	// Run ExecuteC to install completion and help commands
	_, _ = cmd.ExecuteC()
	opts := doc.GenManTreeOptions{
		Header: &doc.GenManHeader{
			Title:   fmt.Sprintf("xfprintd-gui: %s", cmd.Name()),
			Section: "1",
		},
		Path:             out,
		CommandSeparator: "-",
	}
	if err := doc.GenManTreeFromOpts(&cmd, opts); err != nil {
		log.Fatalf("Couldn't generate man pages for %s: %v", cmd.Name(), err)
	}
}

func genPatches(dir string) {
	if err := generators.CleanDirectory(dir); err != nil {
		log.Fatalln(err)
	}

	fragments, err := generators.WriteFragments(dir)
	if err != nil {
		log.Fatalf("Couldn't generate patch fragments: %v", err)
	}
	for _, f := range fragments {
		fmt.Println(f)
	}
}
