package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

func testConfig(color, mode string) *entities.Config {
	return &entities.Config{
		Render:  entities.RenderConfig{BaseColor: color, Mode: mode},
		Watcher: entities.WatcherConfig{IntervalMs: 200, DebounceMs: 500},
		Logging: entities.LoggingConfig{Level: "warn"},
	}
}

func newConfigFixture() (*MockConfigLoader, *MockConfigMerger, *ConfigService) {
	loader := &MockConfigLoader{}
	merger := &MockConfigMerger{}
	return loader, merger, NewConfigService(loader, merger)
}

func TestConfigService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("layers every source in order", func(t *testing.T) {
		loader, merger, service := newConfigFixture()

		defaults := testConfig("#3b82f6", "dark")
		global := testConfig("#ef4444", "")
		local := testConfig("", "light")
		merged := testConfig("#ef4444", "light")
		withEnv := testConfig("#ef4444", "light")
		withEnv.Render.Language = "en"
		final := testConfig("#ef4444", "light")
		final.Highlight.Engine = entities.HighlightChroma

		flags := map[string]interface{}{"highlight": "chroma"}

		merger.On("Merge", []*entities.Config(nil)).Return(defaults).Once()
		loader.On("LoadGlobal", mock.Anything).Return(global, nil)
		loader.On("GetGlobalPath").Return("/home/ada/.config/prez/config.toml")
		loader.On("LoadLocal", mock.Anything, "/decks").Return(local, nil)
		loader.On("GetLocalPath", "/decks").Return("/decks/prez.toml")
		merger.On("Merge", []*entities.Config{defaults, global, local}).Return(merged)
		merger.On("ApplyEnvVars", merged).Return(withEnv)
		merger.On("ApplyFlags", withEnv, flags).Return(final)

		resolved, err := service.Resolve(ctx, "/decks", flags)
		require.NoError(t, err)

		assert.Equal(t, final, resolved.Config)
		assert.Equal(t, []string{
			SourceDefaults,
			"/home/ada/.config/prez/config.toml",
			"/decks/prez.toml",
			SourceEnv,
			SourceFlags,
		}, resolved.Sources)
		loader.AssertExpectations(t)
		merger.AssertExpectations(t)
	})

	t.Run("without config files or flags", func(t *testing.T) {
		loader, merger, service := newConfigFixture()

		defaults := testConfig("#3b82f6", "dark")

		merger.On("Merge", []*entities.Config(nil)).Return(defaults).Once()
		loader.On("LoadGlobal", mock.Anything).Return(nil, nil)
		loader.On("LoadLocal", mock.Anything, ".").Return(nil, nil)
		merger.On("Merge", []*entities.Config{defaults}).Return(defaults)
		merger.On("ApplyEnvVars", defaults).Return(defaults)

		resolved, err := service.Resolve(ctx, "", nil)
		require.NoError(t, err)

		assert.Equal(t, []string{SourceDefaults, SourceEnv}, resolved.Sources)
		merger.AssertNotCalled(t, "ApplyFlags", mock.Anything, mock.Anything)
	})

	t.Run("global config error", func(t *testing.T) {
		loader, merger, service := newConfigFixture()

		merger.On("Merge", mock.Anything).Return(&entities.Config{})
		loader.On("LoadGlobal", mock.Anything).Return(nil, errors.New("toml: line 3: expected '='"))

		_, err := service.Resolve(ctx, "/decks", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading global config")
	})

	t.Run("local config error", func(t *testing.T) {
		loader, merger, service := newConfigFixture()

		merger.On("Merge", mock.Anything).Return(&entities.Config{})
		loader.On("LoadGlobal", mock.Anything).Return(nil, nil)
		loader.On("LoadLocal", mock.Anything, "/decks").Return(nil, errors.New("permission denied"))

		_, err := service.Resolve(ctx, "/decks", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading local config")
	})

	t.Run("invalid result", func(t *testing.T) {
		loader, merger, service := newConfigFixture()

		valid := testConfig("#3b82f6", "dark")

		loader.On("LoadGlobal", mock.Anything).Return(nil, nil)
		loader.On("LoadLocal", mock.Anything, "/decks").Return(nil, nil)
		merger.On("Merge", mock.Anything).Return(valid)
		merger.On("ApplyEnvVars", mock.Anything).Return(valid)
		merger.On("ApplyFlags", mock.Anything, mock.Anything).Return(testConfig("#3b82f6", "sepia"))

		_, err := service.Resolve(ctx, "/decks", map[string]interface{}{"mode": "sepia"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "final config validation")
		assert.ErrorIs(t, err, entities.ErrInvalidMode)
	})
}

func TestConfigService_LoadConfig(t *testing.T) {
	loader, merger, service := newConfigFixture()

	defaults := testConfig("#3b82f6", "dark")
	loader.On("LoadGlobal", mock.Anything).Return(nil, nil)
	loader.On("LoadLocal", mock.Anything, "/decks").Return(nil, nil)
	merger.On("Merge", mock.Anything).Return(defaults)
	merger.On("ApplyEnvVars", defaults).Return(defaults)

	cfg, err := service.LoadConfig(context.Background(), "/decks", nil)
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}

func TestConfigService_GetDefaultConfig(t *testing.T) {
	_, merger, service := newConfigFixture()

	expectedConfig := testConfig("#3b82f6", "dark")
	merger.On("Merge", mock.Anything).Return(expectedConfig)

	assert.Equal(t, expectedConfig, service.GetDefaultConfig())
	merger.AssertExpectations(t)
}

func TestConfigService_ValidateConfig(t *testing.T) {
	service := NewConfigService(&MockConfigLoader{}, &MockConfigMerger{})

	t.Run("validates valid config", func(t *testing.T) {
		assert.NoError(t, service.ValidateConfig(testConfig("#3b82f6", "dark")))
	})

	t.Run("rejects nil config", func(t *testing.T) {
		err := service.ValidateConfig(nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "config cannot be nil")
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		var colorErr *entities.ColorError
		require.ErrorAs(t, service.ValidateConfig(testConfig("blue", "dark")), &colorErr)
	})
}

func TestConfigService_CreateGlobalConfig(t *testing.T) {
	t.Run("creates global config successfully", func(t *testing.T) {
		loader := &MockConfigLoader{}
		merger := &MockConfigMerger{}

		globalPath := "/home/user/.config/prez/config.toml"

		loader.On("GetGlobalPath").Return(globalPath)
		loader.On("CreateDefaults", mock.Anything, globalPath).Return(nil)

		service := NewConfigService(loader, merger)

		assert.NoError(t, service.CreateGlobalConfig(context.Background()))
		loader.AssertExpectations(t)
	})

	t.Run("handles creation error", func(t *testing.T) {
		loader := &MockConfigLoader{}
		merger := &MockConfigMerger{}

		globalPath := "/invalid/path/config.toml"
		creationError := errors.New("permission denied")

		loader.On("GetGlobalPath").Return(globalPath)
		loader.On("CreateDefaults", mock.Anything, globalPath).Return(creationError)

		service := NewConfigService(loader, merger)

		err := service.CreateGlobalConfig(context.Background())

		assert.ErrorIs(t, err, creationError)
	})
}
