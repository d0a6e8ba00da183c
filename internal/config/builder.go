package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithPlayers sets who controls each side.
func (b *ConfigBuilder) WithPlayers(white, black PlayerKind) *ConfigBuilder {
	b.cfg.Game.White = white
	b.cfg.Game.Black = black
	return b
}

// WithDepth sets the computer's search depth.
func (b *ConfigBuilder) WithDepth(depth int) *ConfigBuilder {
	b.cfg.Game.Depth = depth
	return b
}

// WithSeed fixes the computer's move order.
func (b *ConfigBuilder) WithSeed(seed int64) *ConfigBuilder {
	b.cfg.Game.Seed = seed
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Game.StartFEN = fen
	return b
}

// WithTUI enables the full-screen board.
func (b *ConfigBuilder) WithTUI(enabled bool) *ConfigBuilder {
	b.cfg.Game.TUI = enabled
	return b
}

// WithLogLevel sets the log level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithStorageDir enables the game database in dir.
func (b *ConfigBuilder) WithStorageDir(dir string) *ConfigBuilder {
	b.cfg.Storage.Dir = dir
	return b
}

// WithSelfPlay configures a self-play batch.
func (b *ConfigBuilder) WithSelfPlay(games, workers, maxPlies int) *ConfigBuilder {
	b.cfg.SelfPlay.Games = games
	b.cfg.SelfPlay.Workers = workers
	b.cfg.SelfPlay.MaxPlies = maxPlies
	return b
}

// WithExport configures stored game export.
func (b *ConfigBuilder) WithExport(format ExportFormat, includeFENs bool) *ConfigBuilder {
	b.cfg.Export.Format = format
	b.cfg.Export.IncludeFENs = includeFENs
	return b
}

// WithInput sets the reader for player commands.
func (b *ConfigBuilder) WithInput(r io.Reader) *ConfigBuilder {
	b.cfg.Input = r
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.Output = w
	return b
}

// WithLogFile sets the log destination.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}
