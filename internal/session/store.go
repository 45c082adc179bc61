package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/workshop-ops/reorderflow/internal/aws"
)

// DefaultTTL is how long a snapshot stays readable after it is written.
const DefaultTTL = time.Hour

// ErrNotFound is returned when a snapshot is absent or expired. Callers must
// not distinguish the two cases.
var ErrNotFound = errors.New("session snapshot not found")

// Store encapsulates snapshot operations against the session state table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	ttl       time.Duration
	nowFunc   func() time.Time
}

// NewStore returns a configured Store.
func NewStore(client aws.DynamoDBAPI, tableName string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client:    client,
		tableName: tableName,
		ttl:       ttl,
		nowFunc:   time.Now,
	}
}

// Put writes the full snapshot for a view id, replacing any previous one.
func (s *Store) Put(ctx context.Context, viewID string, items []CandidateItem) error {
	rec := snapshotRecord{
		ViewID:    viewID,
		Items:     items,
		ExpiresAt: s.nowFunc().Add(s.ttl).Unix(),
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// Get returns the snapshot items for a view id. An absent key and an expired
// record (DynamoDB TTL collection lags the expiry time) both return
// ErrNotFound.
func (s *Store) Get(ctx context.Context, viewID string) ([]CandidateItem, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"view_id": &types.AttributeValueMemberS{Value: viewID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var rec snapshotRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if rec.ExpiresAt <= s.nowFunc().Unix() {
		return nil, ErrNotFound
	}
	return rec.Items, nil
}
