package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска сервера и описание уровня
type Config struct {
	// Seed - мастер-зерно матча. 0 - взять случайное при старте.
	Seed     int64        `yaml:"seed"`
	HandSize int          `yaml:"hand_size"`
	Log      LogConfig    `yaml:"log"`
	Server   ServerConfig `yaml:"server"`
	Level    LevelConfig  `yaml:"level"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	ReplayDir string `yaml:"replay_dir"`
}

// LevelConfig - доска, кубики и стартовая колода
type LevelConfig struct {
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	Anchor  Anchor       `yaml:"anchor"`
	Player  DieConfig    `yaml:"player"`
	Enemies []DieConfig  `yaml:"enemies"`
	Walls   []Point      `yaml:"walls"`
	Deck    []CardConfig `yaml:"deck"`

	// Scatter - случайные стены и враги поверх описанных выше
	Scatter *ScatterConfig `yaml:"scatter,omitempty"`
}

// ScatterConfig - сколько стен и врагов раскидать при сборке уровня
type ScatterConfig struct {
	Walls   int    `yaml:"walls"`
	Enemies int    `yaml:"enemies"`
	Die     string `yaml:"die"`
	PipsMin int    `yaml:"pips_min"`
	PipsMax int    `yaml:"pips_max"`
}

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type Anchor struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// DieConfig - кубик на поле. Если Pips == 0, пипы выбрасываются из [PipsMin, PipsMax].
type DieConfig struct {
	Die     string `yaml:"die"`
	Pips    int    `yaml:"pips"`
	PipsMin int    `yaml:"pips_min"`
	PipsMax int    `yaml:"pips_max"`
	At      Point  `yaml:"at"`
}

// CardConfig - описание карты в колоде
type CardConfig struct {
	Action    string `yaml:"action"`    // move, attack, heal, heal_self, reroll_self, junk
	Reach     string `yaml:"reach"`     // exact | range
	Distance  int    `yaml:"distance"`  // n
	Direction string `yaml:"direction"` // area | orthogonal | diagonal
	Cost      int    `yaml:"cost"`
	Amount    int    `yaml:"amount"` // сила атаки или лечения
	Poison    bool   `yaml:"poison"`
	Copies    int    `yaml:"copies"`
	// Условие на пипы актора (0/0 - без условия)
	MinPips int `yaml:"min_pips"`
	MaxPips int `yaml:"max_pips"`
}

// Default - стартовый уровень: поле 9x9, игрок в центре, три врага и шесть карт
func Default() Config {
	return Config{
		HandSize: 3,
		Log:      LogConfig{Level: "info", Format: "text"},
		Server:   ServerConfig{Port: "8080", ReplayDir: "replays"},
		Level: LevelConfig{
			Width:  9,
			Height: 9,
			Player: DieConfig{Die: "d6", Pips: 5, At: Point{X: 4, Y: 4}},
			Enemies: []DieConfig{
				{Die: "d6", PipsMin: 1, PipsMax: 3, At: Point{X: 6, Y: 1}},
				{Die: "d6", PipsMin: 1, PipsMax: 3, At: Point{X: 5, Y: 3}},
				{Die: "d6", PipsMin: 1, PipsMax: 3, At: Point{X: 1, Y: 1}},
			},
			Deck: []CardConfig{
				{Action: "move", Reach: "exact", Distance: 1, Direction: "orthogonal", Cost: 1},
				{Action: "move", Reach: "exact", Distance: 2, Direction: "orthogonal", Cost: 1},
				{Action: "attack", Reach: "range", Distance: 2, Direction: "orthogonal", Cost: 2, Amount: 2},
				{Action: "reroll_self"},
				{Action: "heal", Reach: "exact", Distance: 3, Direction: "area", Amount: 1},
				{Action: "heal_self", Amount: 2},
			},
		},
	}
}

// Load читает YAML поверх значений по умолчанию.
// Пустой путь - только дефолты и окружение.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if port := os.Getenv("DD_PORT"); port != "" {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ловит ошибки, после которых уровень не собрать
func (c Config) Validate() error {
	var errs []error
	if c.Level.Width <= 0 || c.Level.Height <= 0 {
		errs = append(errs, fmt.Errorf("level size %dx%d: no dimension can be 0", c.Level.Width, c.Level.Height))
	}
	if c.HandSize <= 0 {
		errs = append(errs, fmt.Errorf("hand_size must be positive, got %d", c.HandSize))
	}
	if len(c.Level.Deck) == 0 {
		errs = append(errs, errors.New("deck is empty"))
	}
	for i, e := range c.Level.Enemies {
		if e.Pips == 0 && (e.PipsMin <= 0 || e.PipsMax < e.PipsMin) {
			errs = append(errs, fmt.Errorf("enemy %d: invalid pip range [%d, %d]", i, e.PipsMin, e.PipsMax))
		}
	}
	if sc := c.Level.Scatter; sc != nil {
		if sc.Walls < 0 || sc.Enemies < 0 {
			errs = append(errs, fmt.Errorf("scatter: negative counts (walls %d, enemies %d)", sc.Walls, sc.Enemies))
		}
		if sc.Enemies > 0 && (sc.PipsMin <= 0 || sc.PipsMax < sc.PipsMin) {
			errs = append(errs, fmt.Errorf("scatter: invalid pip range [%d, %d]", sc.PipsMin, sc.PipsMax))
		}
	}
	return errors.Join(errs...)
}
