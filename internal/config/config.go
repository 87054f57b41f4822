package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tomz197/balloonpop/internal/level"
	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvConfig          = "BALLOONPOP_CONFIG"
	EnvFPS             = "BALLOONPOP_FPS"
	EnvSeed            = "BALLOONPOP_SEED"
	EnvHighScoreFile   = "BALLOONPOP_HIGHSCORE_FILE"
	EnvSound           = "BALLOONPOP_SOUND"
	EnvFrontend        = "BALLOONPOP_FRONTEND"
	EnvSSHHost         = "BALLOONPOP_SSH_HOST"
	EnvSSHPort         = "BALLOONPOP_SSH_PORT"
	EnvHostKey         = "BALLOONPOP_HOST_KEY"
	EnvWebHost         = "BALLOONPOP_WEB_HOST"
	EnvWebPort         = "BALLOONPOP_WEB_PORT"
	EnvDisplayHost     = "BALLOONPOP_DISPLAY_HOST"
	EnvIdleWarn        = "BALLOONPOP_IDLE_WARN"
	EnvIdleDisconnect  = "BALLOONPOP_IDLE_DISCONNECT"
	EnvShutdownTimeout = "BALLOONPOP_SHUTDOWN_TIMEOUT"
	EnvLogLevel        = "BALLOONPOP_LOG_LEVEL"
	EnvLogFile         = "BALLOONPOP_LOG_FILE"
)

// Frontends.
const (
	FrontendTcell = "tcell"
	FrontendANSI  = "ansi"
)

// Settings holds every runtime setting of the game and its hosts.
type Settings struct {
	FPS             int           `yaml:"fps"`
	Seed            uint64        `yaml:"seed"` // 0 = time based
	HighScoreFile   string        `yaml:"highscore_file"`
	Sound           bool          `yaml:"sound"`
	Frontend        string        `yaml:"frontend"`
	SSHHost         string        `yaml:"ssh_host"`
	SSHPort         string        `yaml:"ssh_port"`
	HostKeyPath     string        `yaml:"host_key"`
	WebHost         string        `yaml:"web_host"`
	WebPort         string        `yaml:"web_port"`
	DisplayHost     string        `yaml:"display_host"` // Host shown in the connect hint
	IdleWarn        time.Duration `yaml:"idle_warn"`
	IdleDisconnect  time.Duration `yaml:"idle_disconnect"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`

	Levels level.Table `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		FPS:             60,
		HighScoreFile:   defaultHighScoreFile(),
		Sound:           true,
		Frontend:        FrontendTcell,
		SSHHost:         "0.0.0.0",
		SSHPort:         "2222",
		HostKeyPath:     ".ssh/id_ed25519",
		WebHost:         "0.0.0.0",
		WebPort:         "8080",
		DisplayHost:     "localhost",
		IdleWarn:        90 * time.Second,
		IdleDisconnect:  120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		Levels:          level.Default,
	}
}

func defaultHighScoreFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "balloonpop.yaml"
	}
	return dir + string(os.PathSeparator) + "balloonpop" + string(os.PathSeparator) + "scores.yaml"
}

// file is the on-disk layout of the optional YAML config.
type file struct {
	FPS             *int         `yaml:"fps"`
	Seed            *uint64      `yaml:"seed"`
	HighScoreFile   *string      `yaml:"highscore_file"`
	Sound           *bool        `yaml:"sound"`
	Frontend        *string      `yaml:"frontend"`
	SSHHost         *string      `yaml:"ssh_host"`
	SSHPort         *string      `yaml:"ssh_port"`
	HostKeyPath     *string      `yaml:"host_key"`
	WebHost         *string      `yaml:"web_host"`
	WebPort         *string      `yaml:"web_port"`
	DisplayHost     *string      `yaml:"display_host"`
	IdleWarn        *string      `yaml:"idle_warn"`
	IdleDisconnect  *string      `yaml:"idle_disconnect"`
	ShutdownTimeout *string      `yaml:"shutdown_timeout"`
	LogLevel        *string      `yaml:"log_level"`
	LogFile         *string      `yaml:"log_file"`
	Levels          []level.Spec `yaml:"levels"`
}

// Load builds the settings: defaults, then .env files, then the YAML file
// named by path (or BALLOONPOP_CONFIG when path is empty), then the environment.
func Load(path string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}

	s := Default()
	if path == "" {
		path = GetEnv(EnvConfig, "")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
		if err := s.apply(raw); err != nil {
			return Settings{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	s.applyEnv()

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) apply(raw []byte) error {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return err
	}

	setInt(&s.FPS, f.FPS)
	if f.Seed != nil {
		s.Seed = *f.Seed
	}
	if f.Sound != nil {
		s.Sound = *f.Sound
	}
	setString(&s.HighScoreFile, f.HighScoreFile)
	setString(&s.Frontend, f.Frontend)
	setString(&s.SSHHost, f.SSHHost)
	setString(&s.SSHPort, f.SSHPort)
	setString(&s.HostKeyPath, f.HostKeyPath)
	setString(&s.WebHost, f.WebHost)
	setString(&s.WebPort, f.WebPort)
	setString(&s.DisplayHost, f.DisplayHost)
	setString(&s.LogLevel, f.LogLevel)
	setString(&s.LogFile, f.LogFile)
	setDuration(&s.IdleWarn, f.IdleWarn)
	setDuration(&s.IdleDisconnect, f.IdleDisconnect)
	setDuration(&s.ShutdownTimeout, f.ShutdownTimeout)

	if len(f.Levels) > 0 {
		levels, err := level.FromSpecs(f.Levels)
		if err != nil {
			return err
		}
		s.Levels = levels
	}
	return nil
}

func (s *Settings) applyEnv() {
	s.FPS = GetEnvInt(EnvFPS, s.FPS)
	if seed := GetEnvInt(EnvSeed, -1); seed >= 0 {
		s.Seed = uint64(seed)
	}
	s.HighScoreFile = GetEnv(EnvHighScoreFile, s.HighScoreFile)
	s.Sound = GetEnvBool(EnvSound, s.Sound)
	s.Frontend = GetEnv(EnvFrontend, s.Frontend)
	s.SSHHost = GetEnv(EnvSSHHost, s.SSHHost)
	s.SSHPort = GetEnv(EnvSSHPort, s.SSHPort)
	s.HostKeyPath = GetEnv(EnvHostKey, s.HostKeyPath)
	s.WebHost = GetEnv(EnvWebHost, s.WebHost)
	s.WebPort = GetEnv(EnvWebPort, s.WebPort)
	s.DisplayHost = GetEnv(EnvDisplayHost, s.DisplayHost)
	s.IdleWarn = GetEnvDuration(EnvIdleWarn, s.IdleWarn)
	s.IdleDisconnect = GetEnvDuration(EnvIdleDisconnect, s.IdleDisconnect)
	s.ShutdownTimeout = GetEnvDuration(EnvShutdownTimeout, s.ShutdownTimeout)
	s.LogLevel = GetEnv(EnvLogLevel, s.LogLevel)
	s.LogFile = GetEnv(EnvLogFile, s.LogFile)
}

// Validate reports settings the hosts cannot run with.
func (s Settings) Validate() error {
	if s.FPS < 1 || s.FPS > 240 {
		return fmt.Errorf("fps %d out of range [1, 240]", s.FPS)
	}
	if s.Frontend != FrontendTcell && s.Frontend != FrontendANSI {
		return fmt.Errorf("unknown frontend %q", s.Frontend)
	}
	if s.IdleWarn > 0 && s.IdleDisconnect > 0 && s.IdleDisconnect <= s.IdleWarn {
		return fmt.Errorf("idle disconnect (%s) must come after idle warning (%s)", s.IdleDisconnect, s.IdleWarn)
	}
	return s.Levels.Validate()
}

// FrameTime returns the duration of one frame.
func (s Settings) FrameTime() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) {
	if v != nil {
		*dst = parseDuration(*v, *dst)
	}
}
