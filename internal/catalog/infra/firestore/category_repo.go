package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/arkanhakim/livecart/internal/catalog/domain"
)

const categoriesCollection = "categories"

type CategoryRepo struct {
	client *firestore.Client
}

func NewCategoryRepo(client *firestore.Client) *CategoryRepo {
	return &CategoryRepo{client: client}
}

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	it := r.client.Collection(categoriesCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	var out []domain.Category
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		data := doc.Data()
		out = append(out, domain.Category{
			ID:    doc.Ref.ID,
			Name:  getStr(data, "name"),
			Image: getStr(data, "image"),
		})
	}
	return out, nil
}
