package models

// GameEntry is one game's title and page URL from the category index.
// Immutable once produced by the lister.
type GameEntry struct {
	Title string
	URL   string
}

// EntryStatus is the terminal state of one entry within a run.
type EntryStatus string

const (
	StatusSaved   EntryStatus = "saved"
	StatusSkipped EntryStatus = "skipped"
	StatusFailed  EntryStatus = "failed"
)

// EntryResult records the outcome of processing one entry.
type EntryResult struct {
	Entry    GameEntry
	Status   EntryStatus
	FilePath string
	Err      error
}

// MarkdownDocument is the converted content of one game page together
// with its destination inside the output tree.
type MarkdownDocument struct {
	// Title is the page heading as found on the fetched page; may
	// differ from the index title that names the file.
	Title    string
	Markdown string
	Path     string
}
