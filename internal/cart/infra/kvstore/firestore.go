package kvstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultCollection = "cartStores"

// Firestore keeps each storage key as one document holding the raw blob,
// mirroring the get/set/remove contract of device key-value storage.
type Firestore struct {
	client     *firestore.Client
	collection string
}

func NewFirestore(client *firestore.Client, collection string) *Firestore {
	if collection == "" {
		collection = defaultCollection
	}
	return &Firestore{client: client, collection: collection}
}

func (f *Firestore) Get(ctx context.Context, key string) (string, bool, error) {
	doc, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore get %q: %w", key, err)
	}

	v, err := doc.DataAt("value")
	if err != nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, nil
	}
	return s, true, nil
}

func (f *Firestore) Set(ctx context.Context, key, value string) error {
	_, err := f.client.Collection(f.collection).Doc(key).Set(ctx, map[string]any{
		"value":     value,
		"updatedAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("kvstore set %q: %w", key, err)
	}
	return nil
}

func (f *Firestore) MultiRemove(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if _, err := f.client.Collection(f.collection).Doc(key).Delete(ctx); err != nil {
			return fmt.Errorf("kvstore remove %q: %w", key, err)
		}
	}
	return nil
}
