package models

// FileKind classifies a planned output file
type FileKind string

const (
	FileKindPage   FileKind = "page"
	FileKindScript FileKind = "script"
	FileKindAsset  FileKind = "asset"
	FileKindStyle  FileKind = "style"
	FileKindData   FileKind = "data"
)

// PlannedFile is one entry in an architecture plan
type PlannedFile struct {
	FileName string   `json:"fileName"`
	Purpose  string   `json:"purpose"`
	Kind     FileKind `json:"kind"`
}

// ArchitecturePlan is the ordered list of output files the architecture step
// decided to produce for a job.
//
// Invariant: a finalized plan always contains exactly one "index.html" entry
// and exactly one "app.js" entry. The planner enforces this unconditionally,
// including on every fallback path.
type ArchitecturePlan struct {
	Files []PlannedFile `json:"files"`
}

// Contains reports whether the plan includes the given file name.
func (p *ArchitecturePlan) Contains(fileName string) bool {
	for _, f := range p.Files {
		if f.FileName == fileName {
			return true
		}
	}
	return false
}

// FileNames returns the plan's file names in order.
func (p *ArchitecturePlan) FileNames() []string {
	names := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		names = append(names, f.FileName)
	}
	return names
}

// PageNames returns only the HTML page file names, in plan order.
func (p *ArchitecturePlan) PageNames() []string {
	names := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		if f.Kind == FileKindPage {
			names = append(names, f.FileName)
		}
	}
	return names
}
