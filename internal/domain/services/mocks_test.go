package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
)

type MockDeckParser struct {
	mock.Mock
}

func (m *MockDeckParser) Parse(ctx context.Context, content []byte) (*ports.ParsedDeck, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ParsedDeck), args.Error(1)
}

func (m *MockDeckParser) Split(markdown string) []entities.Slide {
	args := m.Called(markdown)
	return args.Get(0).([]entities.Slide)
}

func (m *MockDeckParser) Join(slides []entities.Slide) string {
	args := m.Called(slides)
	return args.String(0)
}

func (m *MockDeckParser) ReplaceSlide(markdown string, index int, text string) (string, error) {
	args := m.Called(markdown, index, text)
	return args.String(0), args.Error(1)
}

type MockDeckRenderer struct {
	mock.Mock
}

func (m *MockDeckRenderer) Render(ctx context.Context, opts entities.RenderOptions) (string, error) {
	args := m.Called(ctx, opts)
	return args.String(0), args.Error(1)
}

type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) LoadMarkdown(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDeckRepository) SaveHTML(ctx context.Context, path string, html string) error {
	args := m.Called(ctx, path, html)
	return args.Error(0)
}

func (m *MockDeckRepository) SaveMetadata(ctx context.Context, htmlPath string, deck *entities.Deck) error {
	args := m.Called(ctx, htmlPath, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) LoadMetadata(ctx context.Context, htmlPath string) (*entities.Deck, error) {
	args := m.Called(ctx, htmlPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Deck), args.Error(1)
}

type MockFileWatcher struct {
	mock.Mock
}

func (m *MockFileWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan ports.FileChangeEvent), args.Error(1)
}

func (m *MockFileWatcher) Stop() error {
	args := m.Called()
	return args.Error(0)
}

type MockConfigLoader struct {
	mock.Mock
}

func (m *MockConfigLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Config), args.Error(1)
}

func (m *MockConfigLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Config), args.Error(1)
}

func (m *MockConfigLoader) CreateDefaults(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockConfigLoader) GetGlobalPath() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfigLoader) GetLocalPath(dir string) string {
	args := m.Called(dir)
	return args.String(0)
}

type MockConfigMerger struct {
	mock.Mock
}

func (m *MockConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	args := m.Called(configs)
	return args.Get(0).(*entities.Config)
}

func (m *MockConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	args := m.Called(config, flags)
	return args.Get(0).(*entities.Config)
}

func (m *MockConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	args := m.Called(config)
	return args.Get(0).(*entities.Config)
}
