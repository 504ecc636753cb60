package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

const collectionGallery = "galleries"

var gallerySortFields = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"title":     "title",
	"category":  "category",
}

type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionGallery)}
}

type galleryDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Category    string              `bson:"category"`
	Image       string              `bson:"image"`
	IsActive    bool                `bson:"isActive"`
	CreatedBy   *primitive.ObjectID `bson:"createdBy,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func (d galleryDoc) toDomain() *domain.GalleryItem {
	return &domain.GalleryItem{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Image:       d.Image,
		IsActive:    d.IsActive,
		CreatedBy:   hexOrEmpty(d.CreatedBy),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *GalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, galleryDoc{
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Image:       item.Image,
		IsActive:    item.IsActive,
		CreatedBy:   optionalObjectID(item.CreatedBy),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert gallery item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*domain.GalleryItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc galleryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGalleryItemNotFound
		}
		return nil, fmt.Errorf("find gallery item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GalleryRepository) List(ctx context.Context, filter ports.GalleryFilter) ([]*domain.GalleryItem, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f := bson.M{}
	if filter.Category != "" {
		f["category"] = filter.Category
	}
	if filter.Active != nil {
		f["isActive"] = *filter.Active
	}

	total, err := r.col.CountDocuments(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("count gallery items: %w", err)
	}

	cur, err := r.col.Find(ctx, f, pageOptions(filter.PageQuery, sortSpec(filter.PageQuery, gallerySortFields, "createdAt")))
	if err != nil {
		return nil, 0, fmt.Errorf("find gallery items: %w", err)
	}
	defer cur.Close(ctx)

	var docs []galleryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode gallery items: %w", err)
	}

	items := make([]*domain.GalleryItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, total, nil
}

func (r *GalleryRepository) Update(ctx context.Context, id string, patch ports.GalleryPatch) (*domain.GalleryItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc galleryDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGalleryItemNotFound
		}
		return nil, fmt.Errorf("update gallery item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGalleryItemNotFound
	}
	return nil
}

func (r *GalleryRepository) CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := countBy(ctx, r.col, bson.M{"isActive": true}, "category")
	if err != nil {
		return nil, err
	}
	out := make([]domain.CategoryCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CategoryCount{Category: row.Key, Count: row.Count})
	}
	return out, nil
}

func (r *GalleryRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clear gallery: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes backing the public listing and the
// category menu.
func (r *GalleryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create gallery indexes: %w", err)
	}
	return nil
}
