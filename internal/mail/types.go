package mail

import "strings"

// FindPolicy documents how keyword-addressed operations pick their target:
// the first message whose subject contains the keyword, in the order Mail
// reports messages for the mailbox. Every generator uses AppleScript's
// default "contains", so matching follows its comparison semantics
// uniformly; no generator lowercases either side.
const FindPolicy = "first subject match in mailbox order"

// Message is one parsed message record.
type Message struct {
	Subject string
	Sender  string
	Date    string
	Mailbox string
	Preview string
	Read    bool
}

// UnreadCount pairs an account name with its inbox unread total. Count is -1
// when the account could not be queried.
type UnreadCount struct {
	Account string
	Count   int
}

// SearchCriteria narrows a mailbox search. Zero-value fields are ignored.
type SearchCriteria struct {
	SubjectContains string
	SenderContains  string
	// ReadStatus is "read", "unread" or "" for both.
	ReadStatus string
	// HasAttachments filters on attachment presence when non-nil.
	HasAttachments *bool
	// DaysBack keeps only messages received strictly within the last N
	// days. 0 disables the cutoff.
	DaysBack int
}

// StatusAction selects a read-flag or flag mutation.
type StatusAction string

const (
	StatusMarkRead   StatusAction = "mark_read"
	StatusMarkUnread StatusAction = "mark_unread"
	StatusFlag       StatusAction = "flag"
	StatusUnflag     StatusAction = "unflag"
)

// ValidStatusAction reports whether s names a supported status action.
func ValidStatusAction(s string) bool {
	switch StatusAction(s) {
	case StatusMarkRead, StatusMarkUnread, StatusFlag, StatusUnflag:
		return true
	}
	return false
}

// TrashAction selects a trash operation.
type TrashAction string

const (
	TrashMove      TrashAction = "move_to_trash"
	TrashPermanent TrashAction = "delete_permanent"
	TrashEmpty     TrashAction = "empty_trash"
)

// ValidTrashAction reports whether s names a supported trash action.
func ValidTrashAction(s string) bool {
	switch TrashAction(s) {
	case TrashMove, TrashPermanent, TrashEmpty:
		return true
	}
	return false
}

// DraftAction selects a draft operation.
type DraftAction string

const (
	DraftList   DraftAction = "list"
	DraftCreate DraftAction = "create"
	DraftSend   DraftAction = "send"
	DraftDelete DraftAction = "delete"
)

// ValidDraftAction reports whether s names a supported draft action.
func ValidDraftAction(s string) bool {
	switch DraftAction(s) {
	case DraftList, DraftCreate, DraftSend, DraftDelete:
		return true
	}
	return false
}

// ExportFormat selects the on-disk format for exported messages.
type ExportFormat string

const (
	ExportTXT  ExportFormat = "txt"
	ExportHTML ExportFormat = "html"
)

// ValidExportFormat reports whether s names a supported export format.
func ValidExportFormat(s string) bool {
	switch ExportFormat(s) {
	case ExportTXT, ExportHTML:
		return true
	}
	return false
}

// ExportScope selects whether one message or a whole mailbox is exported.
type ExportScope string

const (
	ExportSingle  ExportScope = "single_email"
	ExportMailbox ExportScope = "entire_mailbox"
)

// ValidExportScope reports whether s names a supported export scope.
func ValidExportScope(s string) bool {
	switch ExportScope(s) {
	case ExportSingle, ExportMailbox:
		return true
	}
	return false
}

// StatScope selects what the statistics report aggregates over.
type StatScope string

const (
	ScopeAccountOverview  StatScope = "account_overview"
	ScopeSenderStats      StatScope = "sender_stats"
	ScopeMailboxBreakdown StatScope = "mailbox_breakdown"
)

// ValidStatScope reports whether s names a supported statistics scope.
func ValidStatScope(s string) bool {
	switch StatScope(s) {
	case ScopeAccountOverview, ScopeSenderStats, ScopeMailboxBreakdown:
		return true
	}
	return false
}

// IsErrorOutput reports whether raw is a script-level failure line produced
// by the on-error trap.
func IsErrorOutput(raw string) bool {
	return strings.HasPrefix(raw, "Error: ")
}

// ScriptFault is a failure reported by the in-script error trap, as opposed
// to osascript itself failing. The message is Mail's own error text.
type ScriptFault struct {
	Message string
}

func (e *ScriptFault) Error() string {
	return e.Message
}

// faultFromOutput converts trap output into a ScriptFault.
func faultFromOutput(raw string) *ScriptFault {
	return &ScriptFault{Message: strings.TrimPrefix(raw, "Error: ")}
}
