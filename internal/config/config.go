package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// Config конфигурация сервиса, загружаемая из config.toml
// Секреты (пароль БД, ключ менеджера) можно переопределить через
// переменные окружения / .env файл
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Auth            AuthConfig            `toml:"auth"`
	Scheduling      SchedulingConfig      `toml:"scheduling"`
	Organizer       OrganizerConfig       `toml:"organizer"`
	CalendarService CalendarServiceConfig `toml:"calendar_service"`
	MailService     MailServiceConfig     `toml:"mail_service"`
	Invitations     InvitationsConfig     `toml:"invitations"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки аутентификации менеджерских эндпоинтов
type AuthConfig struct {
	ManagerKey string `toml:"manager_key"`
}

// SchedulingConfig настройки расписания консультаций
type SchedulingConfig struct {
	Timezone                string `toml:"timezone"`
	SlotStepMinutes         int    `toml:"slot_step_minutes"`
	MeetingDurationMinutes  int    `toml:"meeting_duration_minutes"`
	MaxConcurrentMeetings   int    `toml:"max_concurrent_meetings"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
	DefaultStartTime        string `toml:"default_start_time"`
	MorningFirstSlot        string `toml:"morning_first_slot"`
	MorningLastSlot         string `toml:"morning_last_slot"`
	AfternoonFirstSlot      string `toml:"afternoon_first_slot"`
	AfternoonLastSlot       string `toml:"afternoon_last_slot"`
}

// OrganizerConfig данные организатора встреч
type OrganizerConfig struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Location string `toml:"location"`
}

// CalendarServiceConfig настройки клиента календарного провайдера
type CalendarServiceConfig struct {
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"` // секунды
	CalendarID string `toml:"calendar_id"`
}

// MailServiceConfig настройки клиента почтового релея
type MailServiceConfig struct {
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

// InvitationsConfig настройки воркера рассылки приглашений
type InvitationsConfig struct {
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	BatchSize           int `toml:"batch_size"`
	MaxAttempts         int `toml:"max_attempts"`
}

// Load загружает конфигурацию из TOML файла
// Перед чтением подхватывает .env (если есть); переменные окружения
// NCV_DB_PASSWORD и NCV_MANAGER_KEY имеют приоритет над файлом
func Load(path string) (*Config, error) {
	// .env может отсутствовать - это не ошибка
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if v := os.Getenv("NCV_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("NCV_MANAGER_KEY"); v != "" {
		cfg.Auth.ManagerKey = v
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults заполняет незаданные поля дефолтными значениями
func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8084
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "ncv-consultation-service"
	}

	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "UTC"
	}
	if c.Scheduling.SlotStepMinutes == 0 {
		c.Scheduling.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if c.Scheduling.MeetingDurationMinutes == 0 {
		c.Scheduling.MeetingDurationMinutes = domain.DefaultMeetingDurationMinutes
	}
	if c.Scheduling.MaxConcurrentMeetings == 0 {
		c.Scheduling.MaxConcurrentMeetings = domain.DefaultMaxConcurrentMeetings
	}
	if c.Scheduling.AdvanceBookingDays == 0 {
		c.Scheduling.AdvanceBookingDays = domain.DefaultAdvanceBookingDays
	}
	if c.Scheduling.MinBookingNoticeMinutes == 0 {
		c.Scheduling.MinBookingNoticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}
	if c.Scheduling.DefaultStartTime == "" {
		c.Scheduling.DefaultStartTime = domain.DefaultStartTime
	}
	if c.Scheduling.MorningFirstSlot == "" {
		c.Scheduling.MorningFirstSlot = domain.DefaultMorningFirstSlot
	}
	if c.Scheduling.MorningLastSlot == "" {
		c.Scheduling.MorningLastSlot = domain.DefaultMorningLastSlot
	}
	if c.Scheduling.AfternoonFirstSlot == "" {
		c.Scheduling.AfternoonFirstSlot = domain.DefaultAfternoonFirstSlot
	}
	if c.Scheduling.AfternoonLastSlot == "" {
		c.Scheduling.AfternoonLastSlot = domain.DefaultAfternoonLastSlot
	}

	if c.CalendarService.Timeout == 0 {
		c.CalendarService.Timeout = 5
	}
	if c.MailService.Timeout == 0 {
		c.MailService.Timeout = 10
	}

	if c.Invitations.PollIntervalSeconds == 0 {
		c.Invitations.PollIntervalSeconds = 30
	}
	if c.Invitations.BatchSize == 0 {
		c.Invitations.BatchSize = 20
	}
	if c.Invitations.MaxAttempts == 0 {
		c.Invitations.MaxAttempts = 5
	}
}

// validate проверяет обязательные поля конфигурации
func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Auth.ManagerKey == "" {
		return fmt.Errorf("config: auth.manager_key is required (or set NCV_MANAGER_KEY)")
	}
	if c.Organizer.Email == "" {
		return fmt.Errorf("config: organizer.email is required")
	}
	if _, err := time.LoadLocation(c.Scheduling.Timezone); err != nil {
		return fmt.Errorf("config: invalid scheduling.timezone %q: %w", c.Scheduling.Timezone, err)
	}
	return nil
}

// SchedulePolicy собирает доменную политику расписания из конфигурации
func (c *Config) SchedulePolicy() (domain.SchedulePolicy, error) {
	loc, err := time.LoadLocation(c.Scheduling.Timezone)
	if err != nil {
		return domain.SchedulePolicy{}, fmt.Errorf("config: load timezone: %w", err)
	}

	parse := func(name, value string) (types.TimeString, error) {
		ts, err := types.NewTimeStringFromString(value)
		if err != nil {
			return "", fmt.Errorf("config: invalid scheduling.%s %q: %w", name, value, err)
		}
		return ts, nil
	}

	morningFirst, err := parse("morning_first_slot", c.Scheduling.MorningFirstSlot)
	if err != nil {
		return domain.SchedulePolicy{}, err
	}
	morningLast, err := parse("morning_last_slot", c.Scheduling.MorningLastSlot)
	if err != nil {
		return domain.SchedulePolicy{}, err
	}
	afternoonFirst, err := parse("afternoon_first_slot", c.Scheduling.AfternoonFirstSlot)
	if err != nil {
		return domain.SchedulePolicy{}, err
	}
	afternoonLast, err := parse("afternoon_last_slot", c.Scheduling.AfternoonLastSlot)
	if err != nil {
		return domain.SchedulePolicy{}, err
	}
	defaultStart, err := parse("default_start_time", c.Scheduling.DefaultStartTime)
	if err != nil {
		return domain.SchedulePolicy{}, err
	}

	return domain.SchedulePolicy{
		Windows: []domain.SlotWindow{
			{FirstSlot: morningFirst, LastSlot: morningLast},
			{FirstSlot: afternoonFirst, LastSlot: afternoonLast},
		},
		SlotStepMinutes:         c.Scheduling.SlotStepMinutes,
		MeetingDurationMinutes:  c.Scheduling.MeetingDurationMinutes,
		MaxConcurrentMeetings:   c.Scheduling.MaxConcurrentMeetings,
		AdvanceBookingDays:      c.Scheduling.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.Scheduling.MinBookingNoticeMinutes,
		DefaultStartTime:        defaultStart,
		Location:                loc,
	}, nil
}

// EventOrganizer собирает доменного организатора встреч из конфигурации
func (c *Config) EventOrganizer() domain.EventOrganizer {
	return domain.EventOrganizer{
		Name:     c.Organizer.Name,
		Email:    c.Organizer.Email,
		Location: c.Organizer.Location,
	}
}
