package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// photoDoc — форма документа фотографии в MongoDB.
// Конвертация в доменную модель — на границе пакета (ObjectID <-> string).
type photoDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	URL        string             `bson:"url"`
	OwnerID    uuid.UUID          `bson:"owner_id"`
	OwnerEmail string             `bson:"owner_email"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d photoDoc) toModel() models.Photo {
	return models.Photo{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		URL:        d.URL,
		OwnerID:    d.OwnerID,
		OwnerEmail: d.OwnerEmail,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

// toMS округляет до миллисекунд: MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

// CreatePhoto создаёт документ фотографии. CreatedAt/UpdatedAt проставляются здесь.
func (m *Mongo) CreatePhoto(ctx context.Context, photo models.Photo) (*models.Photo, error) {
	const op = "storage/mongo/CreatePhoto"

	now := toMS(time.Now())

	doc := photoDoc{
		Title:      photo.Title,
		URL:        photo.URL,
		OwnerID:    photo.OwnerID,
		OwnerEmail: photo.OwnerEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res, err := m.photos.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// Mongo всегда возвращает ObjectID.
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()
	return &out, nil
}

// PhotoByID возвращает фотографию по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) PhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	const op = "storage/mongo/PhotoByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc photoDoc
	if err := m.photos.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// ListPhotos возвращает все фотографии ленты, created_at DESC, _id DESC.
func (m *Mongo) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	const op = "storage/mongo/ListPhotos"

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := m.photos.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	return decodePhotos(ctx, cur, op)
}

// ListPhotosByOwner возвращает фотографии владельца одиночным фильтром по owner_id.
// Серверной сортировки нет — составной индекс сознательно не заводится,
// упорядочивает вызывающий слой.
func (m *Mongo) ListPhotosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Photo, error) {
	const op = "storage/mongo/ListPhotosByOwner"

	cur, err := m.photos.Find(ctx, bson.D{{Key: "owner_id", Value: ownerID}})
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	return decodePhotos(ctx, cur, op)
}

// UpdatePhotoTitle меняет заголовок фотографии.
// При отсутствии записи — storage.ErrNotFound.
func (m *Mongo) UpdatePhotoTitle(ctx context.Context, id string, title string) error {
	const op = "storage/mongo/UpdatePhotoTitle"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.photos.UpdateByID(ctx, oid, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "title", Value: title},
			{Key: "updated_at", Value: toMS(time.Now())},
		}},
	})

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeletePhoto удаляет документ фотографии.
// При отсутствии записи — storage.ErrNotFound.
func (m *Mongo) DeletePhoto(ctx context.Context, id string) error {
	const op = "storage/mongo/DeletePhoto"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.photos.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// decodePhotos вычитывает курсор в срез доменных моделей.
func decodePhotos(ctx context.Context, cur *mongodriver.Cursor, op string) ([]models.Photo, error) {
	var items []models.Photo
	for cur.Next(ctx) {
		var doc photoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}
