package mail

// Defaults for caps and truncation. Callers can lower the per-call limits
// but the hard caps are not configurable.
const (
	DefaultContentLimit = 300
	DefaultListLimit    = 10
	MaxBulkMoves        = 10
	MaxBulkUpdates      = 10
	MaxSearchResults    = 50
	MaxThreadMessages   = 20
)

// systemMailboxes are skipped when a search spans all mailboxes, so results
// reflect live mail rather than trash, spam and drafts.
var systemMailboxes = []string{
	"Trash",
	"Deleted Messages",
	"Junk",
	"Junk Email",
	"Spam",
	"Sent",
	"Sent Messages",
	"Drafts",
	"Archive",
}

// NoContentLimit as an Options.ContentLimit disables body truncation.
const NoContentLimit = -1

// Options tunes a Client. The zero value is usable; NewClient fills in
// defaults.
type Options struct {
	// ContentLimit truncates message bodies in previews and content
	// reports. 0 means DefaultContentLimit; NoContentLimit disables
	// truncation.
	ContentLimit int
	// SkipMailboxes overrides the system folders excluded from
	// all-mailbox searches. nil means the built-in list.
	SkipMailboxes []string
}

func (o Options) withDefaults() Options {
	if o.ContentLimit == 0 {
		o.ContentLimit = DefaultContentLimit
	}
	if o.SkipMailboxes == nil {
		o.SkipMailboxes = systemMailboxes
	}
	return o
}

// clampLimit bounds a caller-supplied result limit to [1, max], substituting
// def when n is zero or negative.
func clampLimit(n, def, max int) int {
	if n <= 0 {
		n = def
	}
	if n > max {
		n = max
	}
	return n
}
