package boards

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// toolDir is the directory holding this tool's own sources; its MAINTAINERS
// file describes the tool, not a board, and is skipped during the merge walk.
const toolDir = "tools/boarddb"

// insertMaintainersInfo attaches status and maintainer information to each
// parameter record by parsing every MAINTAINERS file under the source root.
//
// A target with no maintainers keeps the "-" status sentinel regardless of
// any status its record carried. Returns the sorted merge warnings.
func insertMaintainersInfo(srcDir string, paramsList []Params) ([]string, error) {
	db := NewMaintainersDatabase()
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "MAINTAINERS" {
			return nil
		}
		if strings.Contains(filepath.ToSlash(filepath.Dir(path)), toolDir) {
			return nil
		}
		return db.ParseFile(srcDir, path)
	})
	if err != nil {
		return nil, fmt.Errorf("merge maintainers: %w", err)
	}

	for i := range paramsList {
		maintainers := db.GetMaintainers(paramsList[i].Target)
		paramsList[i].Maintainers = maintainers
		if maintainers != "" {
			paramsList[i].Status = db.GetStatus(paramsList[i].Target)
		} else {
			paramsList[i].Status = Sentinel
		}
	}

	warnings := append([]string(nil), db.Warnings()...)
	sort.Strings(warnings)
	return warnings, nil
}

// BuildBoardList produces the full parameter list for the tree: a parallel
// scan of every fragment followed by the maintainers merge. The returned
// warnings are the scan warnings followed by the merge warnings.
func (g *Generator) BuildBoardList() ([]Params, []string, error) {
	paramsList, warnings, err := g.ScanAll()
	if err != nil {
		return nil, nil, err
	}
	mergeWarnings, err := insertMaintainersInfo(g.SrcDir, paramsList)
	if err != nil {
		return nil, nil, err
	}
	return paramsList, append(warnings, mergeWarnings...), nil
}

// EnsureBoardList regenerates the board database artifact if needed.
//
// When force is false and the existing artifact is still up to date, nothing
// is written and upToDate is returned true. Otherwise the database is rebuilt
// from scratch and written; the artifact is written even when warnings
// occurred, leaving the caller to decide how loudly to report them.
func (g *Generator) EnsureBoardList(output string, force bool) (upToDate bool, warnings []string, err error) {
	if !force {
		fresh, err := IsUpToDate(output, g.ConfigDir, g.SrcDir)
		if err != nil {
			return false, nil, err
		}
		if fresh {
			return true, nil, nil
		}
	}

	paramsList, warnings, err := g.BuildBoardList()
	if err != nil {
		return false, nil, err
	}
	if err := WriteBoards(paramsList, output); err != nil {
		return false, warnings, err
	}
	return false, warnings, nil
}
