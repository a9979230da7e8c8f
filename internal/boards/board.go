package boards

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	// ConfigSuffix is the filename suffix identifying a configuration fragment.
	ConfigSuffix = "_defconfig"

	// ConfigDirName is the directory under the source root that holds fragments.
	ConfigDirName = "configs"

	// Sentinel is written for a scalar field with no value.
	Sentinel = "-"

	// boardFieldCount is the number of positional fields a read-back line carries.
	boardFieldCount = 8
)

// Board is one target record read back from the board database artifact.
//
// The maintainers column is not carried on read-back; only the eight
// positional fields up to the config name are retained.
type Board struct {
	Status string
	Arch   string
	CPU    string
	SoC    string
	Vendor string
	Name   string // board name
	Target string
	Config string
}

// Props returns the property list used for term matching.
func (b *Board) Props() []string {
	return []string{b.Target, b.Arch, b.CPU, b.Name, b.Vendor, b.SoC, b.Config}
}

// Boards manages a list of board records.
type Boards struct {
	boards []*Board
}

// Add appends a board to the list. The board's target is expected to be
// unique across the collection; no duplicate check is performed here.
func (b *Boards) Add(brd *Board) {
	b.boards = append(b.boards, brd)
}

// List returns all boards in insertion order.
func (b *Boards) List() []*Board {
	return b.boards
}

// Dict returns a map from target name to board.
func (b *Boards) Dict() map[string]*Board {
	dict := make(map[string]*Board, len(b.boards))
	for _, brd := range b.boards {
		dict[brd.Target] = brd
	}
	return dict
}

// ReadBoards reads a board database artifact into a Boards collection.
//
// Comment lines and blank lines are skipped. Sentinel fields are restored to
// the empty string. Lines are padded to eight fields with empty strings, or
// truncated past eight, so hand-edited or partially written artifacts still
// load.
func ReadBoards(fname string) (*Boards, error) {
	inf, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("read boards: %w", err)
	}
	defer inf.Close()

	brds := &Boards{}
	scanner := bufio.NewScanner(inf)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		for i, field := range fields {
			if field == Sentinel {
				fields[i] = ""
			}
		}
		for len(fields) < boardFieldCount {
			fields = append(fields, "")
		}
		fields = fields[:boardFieldCount]

		brds.Add(&Board{
			Status: fields[0],
			Arch:   fields[1],
			CPU:    fields[2],
			SoC:    fields[3],
			Vendor: fields[4],
			Name:   fields[5],
			Target: fields[6],
			Config: fields[7],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read boards: %w", err)
	}
	return brds, nil
}
