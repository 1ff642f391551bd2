// search реализует клиент внешнего поискового API изображений.
// Одна операция — поиск по свободному запросу; при пустой выдаче
// выполняется fallback-запрос «популярного» листинга без запроса.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/go-photo-feed/internal/config"
	"github.com/pribylovaa/go-photo-feed/pkg/log"
)

// Result — элемент поисковой выдачи в доменной форме.
type Result struct {
	ID         string `json:"id"`
	RawURL     string `json:"raw_url"`
	SmallURL   string `json:"small_url"`
	AuthorName string `json:"author_name"`
}

// Searcher — контракт поискового клиента для внедрения зависимости.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Client — REST-клиент поискового API. Ретраев нет: ошибка уходит
// вызывающему, повтор — ручное действие пользователя.
type Client struct {
	client *http.Client
	cfg    config.SearchConfig
}

// New создаёт поисковый клиент. HTTP-клиент настраивается извне
// (таймауты, прокси и т.д.).
func New(client *http.Client, cfg config.SearchConfig) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{client: client, cfg: cfg}
}

var _ Searcher = (*Client)(nil)

// photoPayload — форма одного фото в ответе API.
type photoPayload struct {
	ID   string `json:"id"`
	URLs struct {
		Raw   string `json:"raw"`
		Small string `json:"small"`
	} `json:"urls"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

// searchPayload — форма ответа поискового эндпойнта.
type searchPayload struct {
	Results []photoPayload `json:"results"`
}

// errorPayload — форма ответа об ошибке (человекочитаемые сообщения).
type errorPayload struct {
	Errors []string `json:"errors"`
}

// Search выполняет поиск изображений по свободному запросу.
// При пустой выдаче — fallback на «популярный» листинг без запроса.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	const op = "search/Search"

	lg := log.From(ctx).With("op", op)

	query = strings.TrimSpace(query)
	if query == "" {
		return c.popular(ctx)
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(c.cfg.PageSize))
	q.Set("content_filter", "high")

	var payload searchPayload
	if err := c.getJSON(ctx, "/search/photos", q, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(payload.Results) == 0 {
		lg.Info("empty_results_fallback_popular", slog.String("query", query))
		return c.popular(ctx)
	}

	return toResults(payload.Results), nil
}

// popular возвращает «популярный» листинг без поискового запроса.
func (c *Client) popular(ctx context.Context) ([]Result, error) {
	const op = "search/popular"

	q := url.Values{}
	q.Set("per_page", strconv.Itoa(c.cfg.PageSize))
	q.Set("order_by", "popular")

	var items []photoPayload
	if err := c.getJSON(ctx, "/photos", q, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toResults(items), nil
}

// getJSON — один GET с авторизацией и разбором JSON-ответа.
// Не-200 превращается в ошибку с сообщением апстрима, если оно декодируемо.
func (c *Client) getJSON(ctx context.Context, p string, q url.Values, out any) error {
	const op = "search/getJSON"

	u := strings.TrimRight(c.cfg.BaseURL, "/") + p + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: new_request: %w", op, err)
	}

	req.Header.Set("Authorization", "Client-ID "+c.cfg.AccessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ep errorPayload
		if decErr := json.NewDecoder(resp.Body).Decode(&ep); decErr == nil && len(ep.Errors) > 0 {
			return fmt.Errorf("%s: status=%d: %s", op, resp.StatusCode, strings.Join(ep.Errors, "; "))
		}

		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}

	return nil
}

func toResults(items []photoPayload) []Result {
	output := make([]Result, 0, len(items))
	for _, item := range items {
		output = append(output, Result{
			ID:         item.ID,
			RawURL:     item.URLs.Raw,
			SmallURL:   item.URLs.Small,
			AuthorName: item.User.Name,
		})
	}

	return output
}
