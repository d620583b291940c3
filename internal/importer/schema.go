package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/sitedesk/internal/wbs"
)

// ScheduleFile is the top-level JSON structure of a schedule import. The
// schedule array uses the site backend's nested group/items/tasks/
// task_wbs_ids shape.
type ScheduleFile struct {
	Project  *ProjectImport  `json:"project,omitempty"`
	Schedule json.RawMessage `json:"schedule"`
}

// ProjectImport defines the project-level fields in the import file. It may
// be omitted when importing into an existing project.
type ProjectImport struct {
	ShortID    string  `json:"short_id"`
	Name       string  `json:"name"`
	Client     string  `json:"client,omitempty"`
	Location   string  `json:"location,omitempty"`
	StartDate  string  `json:"start_date"`
	TargetDate *string `json:"target_date,omitempty"`
}

// ScheduleImport is a parsed import file with the tree already decoded.
type ScheduleImport struct {
	Project *ProjectImport
	Tree    []wbs.Node
}

// ParseSchedule parses an import file's bytes.
func ParseSchedule(data []byte) (*ScheduleImport, error) {
	var f ScheduleFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	tree, err := wbs.DecodeTree(f.Schedule)
	if err != nil {
		return nil, err
	}
	return &ScheduleImport{Project: f.Project, Tree: tree}, nil
}

// LoadSchedule reads and parses a schedule import JSON file.
func LoadSchedule(path string) (*ScheduleImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchedule(data)
}
