// Package registry keeps JSON asset-definition files in sync with the
// sprite files on disk.
//
// Asset trees follow the generator convention
// spritesheets/<category>/<item>/<gender>.png with gender one of male,
// female or universal. Each category has a matching
// sheet_definitions/<category>.json holding an array of entries; entries
// are keyed by their file path. Sync scans the tree, diffs it against the
// definitions and appends entries for unregistered files, backing up every
// JSON file it touches.
package registry

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// DefaultBackupDir is where JSON files are copied before modification.
const DefaultBackupDir = "backups/json_definitions"

// genders are the recognized sprite file stems within an item folder.
var genders = map[string]bool{
	"male":      true,
	"female":    true,
	"universal": true,
}

// Entry is one asset definition record. Existing files may carry extra
// fields; those are preserved untouched, this struct only describes what
// Sync appends.
type Entry struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Layer  string `json:"layer"`
	Gender string `json:"gender"`
}

// Options configures a sync run.
type Options struct {
	// SpritesheetDir is the root of the asset tree.
	SpritesheetDir string

	// DefinitionsDir holds the per-category JSON files.
	DefinitionsDir string

	// BackupDir receives timestamped copies of modified JSON files.
	// Empty means DefaultBackupDir.
	BackupDir string

	// DryRun reports missing entries without touching any file.
	DryRun bool

	Logger *log.Logger
}

// Report summarizes a sync run.
type Report struct {
	// Items is the number of item folders found in the asset tree.
	Items int

	// Missing maps category to the entries that were (or would be)
	// appended, sorted by file path.
	Missing map[string][]Entry

	// Updated lists the JSON files written. Empty in dry-run mode.
	Updated []string

	// Backups lists the backup copies created. Empty in dry-run mode.
	Backups []string
}

// MissingCount returns the total number of missing entries across
// categories.
func (r *Report) MissingCount() int {
	n := 0
	for _, entries := range r.Missing {
		n += len(entries)
	}
	return n
}

// Sync diffs the asset tree against the definitions and appends missing
// entries. With DryRun set it only reports.
func Sync(opts Options) (*Report, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.BackupDir == "" {
		opts.BackupDir = DefaultBackupDir
	}

	inventory, err := ScanSpritesheets(opts.SpritesheetDir)
	if err != nil {
		return nil, err
	}
	registered, err := ScanDefinitions(opts.DefinitionsDir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Items:   len(inventory),
		Missing: make(map[string][]Entry),
	}

	keys := make([]string, 0, len(inventory))
	for key := range inventory {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		category, item, _ := strings.Cut(key, "/")
		for _, file := range sortedValues(inventory[key]) {
			if registered[category][file.path] {
				continue
			}
			report.Missing[category] = append(report.Missing[category], Entry{
				Name:   DisplayName(item),
				File:   file.path,
				Layer:  category,
				Gender: file.gender,
			})
		}
	}

	if report.MissingCount() == 0 {
		opts.Logger.Info("definitions are up to date", "items", report.Items)
		return report, nil
	}
	for category, entries := range report.Missing {
		opts.Logger.Info("missing entries", "category", category, "count", len(entries))
	}
	if opts.DryRun {
		return report, nil
	}

	categories := make([]string, 0, len(report.Missing))
	for category := range report.Missing {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		jsonPath := filepath.Join(opts.DefinitionsDir, category+".json")

		var existing []map[string]any
		if _, err := os.Stat(jsonPath); err == nil {
			backupPath, err := backup(jsonPath, opts.BackupDir)
			if err != nil {
				return nil, err
			}
			report.Backups = append(report.Backups, backupPath)

			existing, err = loadDefinitions(jsonPath)
			if err != nil {
				opts.Logger.Warn("skipping category", "category", category, "error", err)
				continue
			}
		}

		for _, entry := range report.Missing[category] {
			existing = append(existing, map[string]any{
				"name":   entry.Name,
				"file":   entry.File,
				"layer":  entry.Layer,
				"gender": entry.Gender,
			})
		}

		if err := saveDefinitions(jsonPath, existing); err != nil {
			return nil, err
		}
		report.Updated = append(report.Updated, jsonPath)
		opts.Logger.Info("updated definitions",
			"file", jsonPath,
			"added", len(report.Missing[category]))
	}

	return report, nil
}

// spriteFile pairs a gender stem with its registry path.
type spriteFile struct {
	gender string
	path   string
}

// ScanSpritesheets builds the asset inventory: "category/item" mapped to
// gender-stem files. Paths are slash-separated and relative to the parent
// of the spritesheet dir, matching how definition files reference them.
func ScanSpritesheets(dir string) (map[string]map[string]string, error) {
	categories, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "spritesheet directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "read %s", dir)
	}

	base := filepath.Base(dir)
	inventory := make(map[string]map[string]string)

	for _, category := range categories {
		name := category.Name()
		if !category.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		items, err := os.ReadDir(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIORead, err, "read %s", filepath.Join(dir, name))
		}
		for _, item := range items {
			if !item.IsDir() {
				continue
			}

			files, err := os.ReadDir(filepath.Join(dir, name, item.Name()))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeIORead, err,
					"read %s", filepath.Join(dir, name, item.Name()))
			}
			for _, f := range files {
				stem := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
				stem = strings.ToLower(stem)
				if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".png") || !genders[stem] {
					continue
				}
				key := name + "/" + item.Name()
				if inventory[key] == nil {
					inventory[key] = make(map[string]string)
				}
				inventory[key][stem] = strings.Join([]string{base, name, item.Name(), f.Name()}, "/")
			}
		}
	}
	return inventory, nil
}

// ScanDefinitions returns the registered file paths per category. A
// malformed JSON file is skipped rather than failing the whole run.
func ScanDefinitions(dir string) (map[string]map[string]bool, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definitions directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "read %s", dir)
	}

	registered := make(map[string]map[string]bool)
	for _, f := range files {
		if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".json") {
			continue
		}
		category := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		registered[category] = make(map[string]bool)

		entries, err := loadDefinitions(filepath.Join(dir, f.Name()))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name, hasName := entry["name"].(string)
			file, hasFile := entry["file"].(string)
			if hasName && hasFile && name != "" {
				registered[category][file] = true
			}
		}
	}
	return registered, nil
}

// DisplayName converts an item folder name to a human-readable name,
// e.g. "chainmail_green" becomes "Chainmail Green".
func DisplayName(folder string) string {
	words := strings.Split(strings.ReplaceAll(folder, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// backup copies src into backupDir with a timestamp in the name and
// returns the backup path.
func backup(src, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIOWrite, err, "create backup directory %s", backupDir)
	}

	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	timestamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(backupDir, stem+"_"+timestamp+".json")

	data, err := os.ReadFile(src)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIORead, err, "read %s", src)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIOWrite, err, "write backup %s", dst)
	}
	return dst, nil
}

func loadDefinitions(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "read %s", path)
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "parse %s", path)
	}
	return entries, nil
}

func saveDefinitions(path string, entries []map[string]any) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "write %s", path)
	}
	return nil
}

// sortedValues returns an inventory item's files ordered by path for
// deterministic output.
func sortedValues(m map[string]string) []spriteFile {
	out := make([]spriteFile, 0, len(m))
	for gender, path := range m {
		out = append(out, spriteFile{gender: gender, path: path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}
