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

const collectionProjects = "projects"

var projectSortFields = map[string]string{
	"submittedAt": "submittedAt",
	"updatedAt":   "updatedAt",
	"status":      "status",
	"projectType": "projectType",
}

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

// projectDoc keeps the submitter's name and email next to the owner
// reference. Legacy documents may have no owner at all.
type projectDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	User        *primitive.ObjectID `bson:"user,omitempty"`
	Name        string              `bson:"name"`
	Email       string              `bson:"email"`
	UserName    string              `bson:"userName,omitempty"`
	ProjectType string              `bson:"projectType"`
	Budget      string              `bson:"budget"`
	Timeline    string              `bson:"timeline"`
	Description string              `bson:"description"`
	Status      string              `bson:"status"`
	SubmittedAt time.Time           `bson:"submittedAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:             d.ID.Hex(),
		UserID:         hexOrEmpty(d.User),
		SubmitterName:  d.Name,
		SubmitterEmail: d.Email,
		ProjectType:    d.ProjectType,
		Budget:         d.Budget,
		Timeline:       d.Timeline,
		Description:    d.Description,
		Status:         domain.ProjectStatus(d.Status),
		SubmittedAt:    d.SubmittedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Create inserts a new project document.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectDoc{
		User:        optionalObjectID(p.UserID),
		Name:        p.SubmitterName,
		Email:       p.SubmitterEmail,
		UserName:    p.SubmitterName,
		ProjectType: p.ProjectType,
		Budget:      p.Budget,
		Timeline:    p.Timeline,
		Description: p.Description,
		Status:      string(p.Status),
		SubmittedAt: p.SubmittedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns a page of projects matching filter and the total count.
func (r *ProjectRepository) List(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, int64, error) {
	f := bson.M{}
	if filter.UserID != "" {
		oid, err := objectID(filter.UserID)
		if err != nil {
			return nil, 0, err
		}
		f["user"] = oid
	}
	if filter.Status != "" {
		f["status"] = filter.Status
	}
	if filter.ProjectType != "" {
		f["projectType"] = filter.ProjectType
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	items, err := r.find(ctx, f, pageOptions(filter.PageQuery, sortSpec(filter.PageQuery, projectSortFields, "submittedAt")))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ProjectRepository) find(ctx context.Context, f bson.M, opts *options.FindOptions) ([]*domain.Project, error) {
	cur, err := r.col.Find(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	out := make([]*domain.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus, at time.Time) (*domain.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project status: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error) {
	rows, err := countBy(ctx, r.col, nil, "status")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ProjectStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.ProjectStatus(row.Key)] = row.Count
	}
	return out, nil
}

func (r *ProjectRepository) CountByType(ctx context.Context) ([]domain.TypeCount, error) {
	rows, err := countBy(ctx, r.col, nil, "projectType")
	if err != nil {
		return nil, err
	}
	out := make([]domain.TypeCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TypeCount{ProjectType: row.Key, Count: row.Count})
	}
	return out, nil
}

func (r *ProjectRepository) FindUnowned(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f := bson.M{"$or": bson.A{
		bson.M{"user": bson.M{"$exists": false}},
		bson.M{"user": nil},
	}}
	return r.find(ctx, f, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
}

func (r *ProjectRepository) AssignOwner(ctx context.Context, id, userID, name string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	owner, err := objectID(userID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"user": owner, "userName": name}})
	if err != nil {
		return fmt.Errorf("assign project owner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing "my projects" and the admin
// status filter.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "submittedAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submittedAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create project indexes: %w", err)
	}
	return nil
}
