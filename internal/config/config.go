package config

import (
	"os"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token          string
		PollTimeoutSec int `mapstructure:"poll_timeout_sec"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr    string
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"http"`

	Admin struct {
		Addr         string
		Username     string
		Password     string
		PasswordHash string `mapstructure:"password_hash"`
		ViewsDir     string `mapstructure:"views_dir"`
	} `mapstructure:"admin"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Redis struct {
		Addr     string
		Password string
		DB       int
	} `mapstructure:"redis"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Limits struct {
		FreeDaysVisible     int `mapstructure:"free_days_visible"`
		FreeQuestionsPerDay int `mapstructure:"free_questions_per_day"`
		TrialDays           int `mapstructure:"trial_days"`
	} `mapstructure:"limits"`

	Plans map[string]Plan `mapstructure:"plans"`
}

// Plan Цена и длительность тарифа; фичи описаны в текстах бота.
type Plan struct {
	Price int
	Days  int
}

func Load(path string) (Config, error) {
	// .env подхватываем до чтения конфига, чтобы секреты были в окружении
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("telegram.poll_timeout_sec", 30)
	v.SetDefault("admin.addr", ":8081")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.views_dir", "internal/admin/views")
	v.SetDefault("limits.free_days_visible", 7)
	v.SetDefault("limits.free_questions_per_day", 5)
	v.SetDefault("limits.trial_days", 3)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	// Секреты из окружения имеют приоритет над yaml
	if s := os.Getenv("TELEGRAM_TOKEN"); s != "" {
		c.Telegram.Token = s
	}
	if s := os.Getenv("DATABASE_URL"); s != "" {
		c.Postgres.DSN = s
	}
	if s := os.Getenv("ADMIN_PASSWORD_HASH"); s != "" {
		c.Admin.PasswordHash = s
	}
	if s := os.Getenv("ADMIN_PASSWORD"); s != "" {
		c.Admin.Password = s
	}

	return c, nil
}
