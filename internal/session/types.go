package session

// CandidateItem is one reorderable catalog entry, trimmed down from the raw
// tracker record to what the modal needs.
type CandidateItem struct {
	ID          string `dynamodbav:"id" json:"id"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`
	Workspace   string `dynamodbav:"workspace,omitempty" json:"workspace,omitempty"`
}

// snapshotRecord is the shape persisted in the session state DynamoDB table.
// One record per live view id; writes are full replacements.
type snapshotRecord struct {
	ViewID    string          `dynamodbav:"view_id"` // PK
	Items     []CandidateItem `dynamodbav:"items"`
	ExpiresAt int64           `dynamodbav:"expires_at"` // TTL epoch seconds
}
