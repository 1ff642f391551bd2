package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/pribylovaa/go-photo-feed/pkg/log"

	"github.com/pribylovaa/go-photo-feed/internal/models"
)

// LoadFeed — полная выборка ленты, created_at DESC.
// Ошибка уходит вызывающему как есть (для ручного retry на краю);
// автоматических повторов нет.
func (s *Service) LoadFeed(ctx context.Context) ([]models.Photo, error) {
	const op = "service/feed/LoadFeed"

	lg := log.From(ctx).With("op", op)

	items, err := s.storage.ListPhotos(ctx)
	if err != nil {
		lg.Error("storage error on ListPhotos", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Refresh — идемпотентная пересборка ленты с взаимодействиями:
// полный LoadFeed плюс LoadInteractions для КАЖДОЙ фотографии.
//
// Загрузки взаимодействий независимы и выполняются конкурентно под
// семафором cfg.Feed.MaxConcurrent; порядок элементов ленты сохраняется.
// Отказ подвыборок одного элемента деградирует только этот элемент
// (Interactions.Defaulted), не всю ленту. Батчевого эндпойнта нет
// сознательно — O(items) параллельных выборок.
func (s *Service) Refresh(ctx context.Context, viewer *models.Viewer) ([]models.FeedItem, error) {
	const op = "service/feed/Refresh"

	lg := log.From(ctx).With("op", op)

	photos, err := s.LoadFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	items := make([]models.FeedItem, len(photos))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxConcurrent())

	for i := range photos {
		items[i].Photo = photos[i]

		wg.Add(1)
		sem <- struct{}{}

		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()

			inter, ierr := s.LoadInteractions(ctx, viewer, photos[i].ID)
			if ierr != nil {
				// LoadInteractions падает только на пустом id; лента это переживает.
				lg.Warn("interactions load failed", "photo_id", photos[i].ID, "err", ierr.Error())
				items[i].Interactions = models.Interactions{Comments: []models.Comment{}, Defaulted: true}
				return
			}

			items[i].Interactions = *inter
		}(i)
	}

	wg.Wait()

	return items, nil
}

func (s *Service) maxConcurrent() int {
	if n := s.cfg.Feed.MaxConcurrent; n > 0 {
		return n
	}

	return 1
}
