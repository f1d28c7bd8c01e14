// Quickcode CLI - applies cheat codes to game save images.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/quickcode/library"
	"github.com/chazu/quickcode/manifest"
	"github.com/chazu/quickcode/patch"
	"github.com/chazu/quickcode/storage"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	codeText := flag.String("code", "", "Code text to apply (lines separated by ';' or newlines)")
	codesFile := flag.String("codes-file", "", "File containing code text to apply")
	entryName := flag.String("entry", "", "Library entry to apply (requires -library)")
	libraryPath := flag.String("library", "", "Code library file")
	saveName := flag.String("save", "", "Save resource name")
	backend := flag.String("backend", "", "Storage backend: file, leveldb or sqlite")
	root := flag.String("root", "", "Storage root directory or database path")
	dryRun := flag.Bool("n", false, "Decode and execute but do not persist the result")
	verbose := flag.Bool("v", false, "Verbose output")
	listEntries := flag.Bool("list", false, "List library entries and exit (requires -library)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qc [options]\n\n")
		fmt.Fprintf(os.Stderr, "Applies cheat codes to a stored game save image.\n\n")
		fmt.Fprintf(os.Stderr, "Codes come from -code, -codes-file, or a library entry (-library + -entry).\n")
		fmt.Fprintf(os.Stderr, "Missing options are read from the nearest quickcode.toml.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qc -save game.sav -code '20000000 000003E7'   # Write 999 at offset 0\n")
		fmt.Fprintf(os.Stderr, "  qc -save game.sav -codes-file gold.txt -n     # Dry run from a file\n")
		fmt.Fprintf(os.Stderr, "  qc -library codes.cbor -list                  # Show library entries\n")
		fmt.Fprintf(os.Stderr, "  qc -library codes.cbor -entry 'Max Gold' -save game.sav\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	// Fill unset options from the project manifest, if any
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m != nil {
		if *saveName == "" {
			*saveName = m.Save.Resource
		}
		if *backend == "" {
			*backend = m.Save.Backend
		}
		if *root == "" {
			*root = m.StorePath()
		}
		if *libraryPath == "" {
			*libraryPath = m.LibraryPath()
		}
		if m.Log.Verbose && !*verbose {
			commonlog.Configure(2, nil)
		}
	}
	if *backend == "" {
		*backend = "file"
	}
	if *root == "" {
		*root = "."
	}

	if *listEntries {
		if err := listLibrary(*libraryPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	codes, err := resolveCodes(*codeText, *codesFile, *libraryPath, *entryName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *saveName == "" {
		fmt.Fprintln(os.Stderr, "Error: no save resource given (use -save or a quickcode.toml)")
		os.Exit(1)
	}

	store, err := openStore(*backend, *root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if closer, ok := store.(io.Closer); ok {
			closer.Close()
		}
	}()

	patcher := &patch.Patcher{Store: store, DryRun: *dryRun}
	if err := patcher.Apply(*saveName, codes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("Codes OK against %s (not persisted)\n", *saveName)
	} else {
		fmt.Printf("Patched %s\n", *saveName)
	}
}

// resolveCodes gathers code text from exactly one of the three sources.
func resolveCodes(codeText, codesFile, libraryPath, entryName string) (string, error) {
	sources := 0
	if codeText != "" {
		sources++
	}
	if codesFile != "" {
		sources++
	}
	if entryName != "" {
		sources++
	}
	if sources == 0 {
		return "", fmt.Errorf("no codes given (use -code, -codes-file or -entry)")
	}
	if sources > 1 {
		return "", fmt.Errorf("use only one of -code, -codes-file and -entry")
	}

	switch {
	case codeText != "":
		// Allow ';' as a line separator for single-argument shells
		return strings.ReplaceAll(codeText, ";", "\n"), nil
	case codesFile != "":
		data, err := os.ReadFile(codesFile)
		if err != nil {
			return "", fmt.Errorf("cannot read %q: %w", codesFile, err)
		}
		return string(data), nil
	default:
		if libraryPath == "" {
			return "", fmt.Errorf("-entry requires a library (use -library or a quickcode.toml)")
		}
		lib, err := library.ReadFile(libraryPath)
		if err != nil {
			return "", err
		}
		entry, err := lib.Find(entryName)
		if err != nil {
			return "", err
		}
		return entry.Code, nil
	}
}

// listLibrary prints the entries of a code library.
func listLibrary(path string) error {
	if path == "" {
		return fmt.Errorf("-list requires a library (use -library or a quickcode.toml)")
	}
	lib, err := library.ReadFile(path)
	if err != nil {
		return err
	}
	if lib.Game != "" {
		fmt.Printf("%s\n\n", lib.Game)
	}
	for _, entry := range lib.Entries {
		if entry.Description != "" {
			fmt.Printf("  %-24s %s\n", entry.Name, entry.Description)
		} else {
			fmt.Printf("  %s\n", entry.Name)
		}
	}
	return nil
}

// openStore builds the storage backend named by the configuration.
func openStore(backend, root string) (storage.Store, error) {
	switch backend {
	case "file":
		return storage.NewFileStore(root), nil
	case "leveldb":
		return storage.OpenLevelStore(root)
	case "sqlite":
		return storage.OpenSQLStore(root)
	default:
		return nil, fmt.Errorf("unknown backend %q (use file, leveldb or sqlite)", backend)
	}
}
