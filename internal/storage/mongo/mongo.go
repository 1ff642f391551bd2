package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-photo-feed/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	photosCollection    = "photos"
	likesCollection     = "likes"
	commentsCollection  = "comments"
	bookmarksCollection = "bookmarks"

	defaultDBName = "photofeed"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg       *config.Config
	client    *mongodriver.Client
	db        *mongodriver.Database
	photos    *mongodriver.Collection
	likes     *mongodriver.Collection
	comments  *mongodriver.Collection
	bookmarks *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:       cfg,
		client:    cli,
		db:        db,
		photos:    db.Collection(photosCollection),
		likes:     db.Collection(likesCollection),
		comments:  db.Collection(commentsCollection),
		bookmarks: db.Collection(bookmarksCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индексы, необходимые photo-feed сервису:
//   - лента: photos.created_at(desc);
//   - лайки и счётчик лайков: likes.photo_id;
//   - комментарии фотографии: comments.photo_id + created_at(asc);
//   - закладки пользователя: bookmarks.user_id (одиночный — сортировка клиентская).
//
// Уникальность лайка обеспечивает сам _id вида "<userID>_<photoID>".
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	if _, err := m.photos.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_desc"),
	}); err != nil {
		return fmt.Errorf("mongo ensure indexes: photos: %w", err)
	}

	if _, err := m.likes.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "photo_id", Value: 1}},
		Options: options.Index().SetName("photo"),
	}); err != nil {
		return fmt.Errorf("mongo ensure indexes: likes: %w", err)
	}

	if _, err := m.comments.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "photo_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("photo_created_asc"),
	}); err != nil {
		return fmt.Errorf("mongo ensure indexes: comments: %w", err)
	}

	if _, err := m.bookmarks.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("user"),
	}); err != nil {
		return fmt.Errorf("mongo ensure indexes: bookmarks: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся расшифровке, возвращает разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
