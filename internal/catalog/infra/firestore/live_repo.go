package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/arkanhakim/livecart/internal/catalog/domain"
)

const livesCollection = "lives"

type LiveRepo struct {
	client *firestore.Client
}

func NewLiveRepo(client *firestore.Client) *LiveRepo {
	return &LiveRepo{client: client}
}

func docToLive(doc *firestore.DocumentSnapshot) domain.Live {
	data := doc.Data()
	return domain.Live{
		ID:         doc.Ref.ID,
		VendorID:   getStr(data, "vendorId"),
		Title:      getStr(data, "title"),
		VideoURL:   getStr(data, "videoUrl"),
		ProductIDs: getStrSlice(data, "productIds"),
		CreatedAt:  getTime(doc, data, "createdAt"),
	}
}

func (r *LiveRepo) Get(ctx context.Context, id string) (domain.Live, error) {
	doc, err := r.client.Collection(livesCollection).Doc(id).Get(ctx)
	if err != nil {
		return domain.Live{}, fmt.Errorf("get live %s: %w", id, err)
	}
	return docToLive(doc), nil
}

func (r *LiveRepo) ListRecent(ctx context.Context, limit int) ([]domain.Live, error) {
	q := r.client.Collection(livesCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.list(ctx, q)
}

func (r *LiveRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Live, error) {
	q := r.client.Collection(livesCollection).
		Where("vendorId", "==", vendorID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, q)
}

func (r *LiveRepo) list(ctx context.Context, q firestore.Query) ([]domain.Live, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []domain.Live
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list lives: %w", err)
		}
		out = append(out, docToLive(doc))
	}
	return out, nil
}
