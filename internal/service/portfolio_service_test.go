package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mixaura/agency-backend/internal/models"
	"github.com/mixaura/agency-backend/internal/repository"
)

// mockPortfolioRepository реализует PortfolioRepository для тестов.
type mockPortfolioRepository struct {
	items     map[uuid.UUID]*models.PortfolioItem
	createErr error
	updateErr error
}

func newMockPortfolioRepository() *mockPortfolioRepository {
	return &mockPortfolioRepository{items: make(map[uuid.UUID]*models.PortfolioItem)}
}

func (m *mockPortfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	clone := *item
	m.items[item.ID] = &clone
	return nil
}

func (m *mockPortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	if item, ok := m.items[id]; ok {
		clone := *item
		return &clone, nil
	}
	return nil, repository.ErrPortfolioItemNotFound
}

func (m *mockPortfolioRepository) List(ctx context.Context) ([]models.PortfolioItem, error) {
	out := make([]models.PortfolioItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *mockPortfolioRepository) Update(ctx context.Context, item *models.PortfolioItem) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.items[item.ID]; !ok {
		return repository.ErrPortfolioItemNotFound
	}
	clone := *item
	m.items[item.ID] = &clone
	return nil
}

func (m *mockPortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrPortfolioItemNotFound
	}
	delete(m.items, id)
	return nil
}

// mockBlobStorage реализует BlobStorage в памяти.
type mockBlobStorage struct {
	files   map[string][]byte
	deleted []string
	counter int
}

func newMockBlobStorage() *mockBlobStorage {
	return &mockBlobStorage{files: make(map[string][]byte)}
}

func (m *mockBlobStorage) Save(ctx context.Context, originalName string, r io.Reader) (string, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	m.counter++
	rel := "portfolio/" + originalName
	if m.counter > 1 {
		rel = rel + "-v2"
	}
	m.files[rel] = data
	return rel, int64(len(data)), nil
}

func (m *mockBlobStorage) Delete(ctx context.Context, relativePath string) error {
	delete(m.files, relativePath)
	m.deleted = append(m.deleted, relativePath)
	return nil
}

func (m *mockBlobStorage) PublicURL(relativePath string) string {
	return "http://localhost:8080/media/" + relativePath
}

func TestPortfolioService_CreateItemWithImage(t *testing.T) {
	repo := newMockPortfolioRepository()
	blobs := newMockBlobStorage()
	svc := NewPortfolioService(repo, blobs)

	item, err := svc.CreateItem(context.Background(), uuid.New(), PortfolioItemInput{
		Title:       "Ребрендинг сети кофеен",
		Description: "Полный цикл: стратегия, айдентика, запуск",
		ImageHint:   "coffee shop branding",
	}, "cover.png", bytes.NewBufferString("png-bytes"))
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if item.ID == uuid.Nil {
		t.Fatalf("ID должен быть установлен")
	}
	if item.ImagePath == nil || *item.ImagePath == "" {
		t.Fatalf("путь к изображению должен быть сохранён")
	}
	if !strings.HasPrefix(item.ImageURL, "http://localhost:8080/media/") {
		t.Fatalf("ожидался публичный URL, получили %s", item.ImageURL)
	}
	if len(blobs.files) != 1 {
		t.Fatalf("файл должен быть сохранён в хранилище")
	}
}

func TestPortfolioService_CreateItemWithoutImage(t *testing.T) {
	repo := newMockPortfolioRepository()
	svc := NewPortfolioService(repo, newMockBlobStorage())

	item, err := svc.CreateItem(context.Background(), uuid.New(), PortfolioItemInput{
		Title:       "Листовки",
		Description: "Полиграфия для локальной сети",
	}, "", nil)
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if item.ImagePath != nil {
		t.Fatalf("без файла путь должен оставаться пустым")
	}
}

func TestPortfolioService_CreateItemValidation(t *testing.T) {
	svc := NewPortfolioService(newMockPortfolioRepository(), newMockBlobStorage())

	_, err := svc.CreateItem(context.Background(), uuid.New(), PortfolioItemInput{
		Title:       "",
		Description: "описание",
	}, "", nil)
	if err == nil {
		t.Fatalf("пустой заголовок должен отклоняться")
	}
}

func TestPortfolioService_CreateItemCleansUpBlobOnRepoError(t *testing.T) {
	repo := newMockPortfolioRepository()
	repo.createErr = repository.ErrPortfolioItemNotFound
	blobs := newMockBlobStorage()
	svc := NewPortfolioService(repo, blobs)

	_, err := svc.CreateItem(context.Background(), uuid.New(), PortfolioItemInput{
		Title:       "Кампания",
		Description: "описание",
	}, "cover.png", bytes.NewBufferString("data"))
	if err == nil {
		t.Fatalf("ожидалась ошибка репозитория")
	}

	if len(blobs.deleted) != 1 {
		t.Fatalf("файл должен быть удалён после неудачной записи")
	}
}

func TestPortfolioService_UpdateItemReplacesImage(t *testing.T) {
	repo := newMockPortfolioRepository()
	blobs := newMockBlobStorage()
	svc := NewPortfolioService(repo, blobs)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, uuid.New(), PortfolioItemInput{
		Title:       "Кампания",
		Description: "описание",
	}, "old.png", bytes.NewBufferString("old-bytes"))
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}
	oldPath := *item.ImagePath

	updated, err := svc.UpdateItem(ctx, item.ID, PortfolioItemInput{
		Title:       "Кампания v2",
		Description: "обновлённое описание",
	}, "new.png", bytes.NewBufferString("new-bytes"))
	if err != nil {
		t.Fatalf("update вернул ошибку: %v", err)
	}

	if updated.Title != "Кампания v2" {
		t.Fatalf("заголовок не обновился")
	}
	if *updated.ImagePath == oldPath {
		t.Fatalf("путь изображения должен смениться")
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != oldPath {
		t.Fatalf("старый файл должен быть удалён, deleted=%v", blobs.deleted)
	}
}

func TestPortfolioService_UpdateItemKeepsImageWithoutNewFile(t *testing.T) {
	repo := newMockPortfolioRepository()
	blobs := newMockBlobStorage()
	svc := NewPortfolioService(repo, blobs)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, uuid.New(), PortfolioItemInput{
		Title:       "Кампания",
		Description: "описание",
	}, "cover.png", bytes.NewBufferString("bytes"))
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	updated, err := svc.UpdateItem(ctx, item.ID, PortfolioItemInput{
		Title:       "Кампания v2",
		Description: "обновлённое описание",
	}, "", nil)
	if err != nil {
		t.Fatalf("update вернул ошибку: %v", err)
	}

	if updated.ImagePath == nil || *updated.ImagePath != *item.ImagePath {
		t.Fatalf("без нового файла изображение должно сохраниться")
	}
	if len(blobs.deleted) != 0 {
		t.Fatalf("файлы не должны удаляться")
	}
}

func TestPortfolioService_DeleteItemRemovesBlob(t *testing.T) {
	repo := newMockPortfolioRepository()
	blobs := newMockBlobStorage()
	svc := NewPortfolioService(repo, blobs)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, uuid.New(), PortfolioItemInput{
		Title:       "Кампания",
		Description: "описание",
	}, "cover.png", bytes.NewBufferString("bytes"))
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if err := svc.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("delete вернул ошибку: %v", err)
	}

	if len(repo.items) != 0 {
		t.Fatalf("запись должна быть удалена")
	}
	if len(blobs.files) != 0 {
		t.Fatalf("файл должен быть удалён вместе с записью")
	}
}

func TestPortfolioService_DeleteMissingItem(t *testing.T) {
	svc := NewPortfolioService(newMockPortfolioRepository(), newMockBlobStorage())

	if err := svc.DeleteItem(context.Background(), uuid.New()); err == nil {
		t.Fatalf("удаление несуществующего элемента должно вернуть ошибку")
	}
}
