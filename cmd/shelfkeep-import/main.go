package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/justyntemme/shelfkeep/internal/models"
	"github.com/justyntemme/shelfkeep/internal/storage"
	"github.com/justyntemme/shelfkeep/internal/transfer"
)

// shelfkeep-import loads a CSV or JSON catalog export into a user's catalog
// without going through the HTTP API. Useful for seeding a fresh install
// from another tool's export.
func main() {
	dbPath := flag.String("db", "./data/shelfkeep.db", "Path to the shelfkeep database")
	username := flag.String("user", "", "Username whose catalog receives the books")
	flag.Parse()

	if flag.NArg() != 1 || *username == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -user <username> [-db path] <file.csv|file.json>\n", os.Args[0])
		os.Exit(1)
	}
	path := flag.Arg(0)

	db, err := storage.NewDatabase(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	user, err := db.GetUserByUsername(*username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: user %q not found (register through the server first)\n", *username)
		os.Exit(1)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	var books []models.Book
	var skipped int
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".csv"):
		books, skipped, err = transfer.ImportCSV(f)
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		books, skipped, err = transfer.ImportJSON(f)
	default:
		fmt.Fprintln(os.Stderr, "Error: file must end in .csv or .json")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	cat, err := db.LoadCatalog(user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	for _, b := range books {
		cat.Add(b)
	}
	if err := db.SaveCatalog(user.ID, cat); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d books for %s (%d skipped), catalog now has %d\n",
		len(books), user.Username, skipped, cat.Len())
}
