package events

const (
	JobImportedTopic = "JobImportedEvent"
	JobDroppedTopic  = "JobDroppedEvent"
)

type DropReason string

const (
	DropMissingLink       DropReason = "missing_link"
	DropIrrelevant        DropReason = "irrelevant"
	DropStale             DropReason = "stale"
	DropDescriptionFailed DropReason = "description_failed"
	DropDuplicate         DropReason = "duplicate"
	DropNotCategorized    DropReason = "not_categorized"
	DropPersistFailed     DropReason = "persist_failed"
)

type JobImported struct {
	ID       uint
	Link     string
	Title    string
	Source   string
	Language string
}

type JobDropped struct {
	Link   string
	Source string
	Reason DropReason
}
