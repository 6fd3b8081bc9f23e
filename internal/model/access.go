package model

// AccessTier is the resolved access level for a (viewer, lesson) pair.
type AccessTier string

const (
	TierFree    AccessTier = "free"
	TierPreview AccessTier = "preview"
	TierPaid    AccessTier = "paid"
	TierLocked  AccessTier = "locked"
)
