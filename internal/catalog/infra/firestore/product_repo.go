package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/arkanhakim/livecart/internal/catalog/domain"
	"github.com/google/uuid"
)

const productsCollection = "products"

type ProductRepo struct {
	client *firestore.Client
}

func NewProductRepo(client *firestore.Client) *ProductRepo {
	return &ProductRepo{client: client}
}

func docToProduct(doc *firestore.DocumentSnapshot) domain.Product {
	data := doc.Data()
	return domain.Product{
		ID:          doc.Ref.ID,
		VendorID:    getStr(data, "vendorId"),
		CategoryID:  getStr(data, "categoryId"),
		Title:       getStr(data, "title"),
		Description: getStr(data, "description"),
		Image:       getStr(data, "image"),
		Price:       getAmount(data, "price"),
		CreatedAt:   getTime(doc, data, "createdAt"),
	}
}

func productToDoc(p domain.Product) map[string]any {
	return map[string]any{
		"vendorId":    p.VendorID,
		"categoryId":  p.CategoryID,
		"title":       p.Title,
		"description": p.Description,
		"image":       p.Image,
		"price":       p.Price.String(),
		"createdAt":   firestore.ServerTimestamp,
	}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	ref := r.client.Collection(productsCollection).Doc(p.ID)
	if _, err := ref.Set(ctx, productToDoc(p)); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("read back product %s: %w", p.ID, err)
	}
	return docToProduct(doc), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return docToProduct(doc), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (r *ProductRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	q := r.client.Collection(productsCollection).
		Where("vendorId", "==", vendorID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, q)
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	q := r.client.Collection(productsCollection).
		Where("categoryId", "==", categoryID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, q)
}

func (r *ProductRepo) list(ctx context.Context, q firestore.Query) ([]domain.Product, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []domain.Product
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		out = append(out, docToProduct(doc))
	}
	return out, nil
}
