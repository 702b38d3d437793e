// Initializing common application configuration
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	OneSignal OneSignalConfig `mapstructure:"onesignal"`
	SendGrid  SendGridConfig  `mapstructure:"sendgrid"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	App       AppConfig       `mapstructure:"app"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	AppVersion  string        `mapstructure:"app_version"`
	Host        string        `mapstructure:"host"`
	Port        string        `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	Env         string        `mapstructure:"environment"`
	Mode        string        `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	Enabled      bool          `mapstructure:"enabled"`
	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

type RabbitMQConfig struct {
	URL       string `mapstructure:"url"`
	QueueName string `mapstructure:"queue_name"`
	Enabled   bool   `mapstructure:"enabled"`
}

type OneSignalConfig struct {
	AppID      string        `mapstructure:"app_id"`
	RestAPIKey string        `mapstructure:"rest_api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type SendGridConfig struct {
	APIKey      string `mapstructure:"api_key"`
	SenderEmail string `mapstructure:"sender_email"`
	SenderName  string `mapstructure:"sender_name"`
	OfficeEmail string `mapstructure:"office_email"`
	Enabled     bool   `mapstructure:"enabled"`
}

type SheetsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type AppConfig struct {
	AdminAPIKey string        `mapstructure:"admin_api_key"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type WorkerConfig struct {
	BookingSweepInterval time.Duration `mapstructure:"booking_sweep_interval"`
	CacheWarmInterval    time.Duration `mapstructure:"cache_warm_interval"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	if err := viperInstance.ReadInConfig(); err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	// Secrets come from the environment, never from the yaml file.
	c.Database.Password = GetEnv("DB_PASSWORD", c.Database.Password)
	c.Redis.Password = GetEnv("REDIS_PASSWORD", c.Redis.Password)
	c.OneSignal.AppID = GetEnv("ONESIGNAL_APP_ID", c.OneSignal.AppID)
	c.OneSignal.RestAPIKey = GetEnv("ONESIGNAL_REST_API_KEY", c.OneSignal.RestAPIKey)
	c.SendGrid.APIKey = GetEnv("SENDGRID_API_KEY", c.SendGrid.APIKey)
	c.Sheets.APIKey = GetEnv("SHEETS_API_KEY", c.Sheets.APIKey)
	c.App.AdminAPIKey = GetEnv("ADMIN_API_KEY", c.App.AdminAPIKey)

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "djschool_user")
	v.SetDefault("database.dbname", "djschool")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("rabbitmq.queue_name", "registration_emails")

	v.SetDefault("onesignal.timeout", 10*time.Second)

	v.SetDefault("sendgrid.sender_email", "info@museinc.com.vn")
	v.SetDefault("sendgrid.sender_name", "MUSE INC")
	v.SetDefault("sendgrid.office_email", "museincproperty@gmail.com")

	v.SetDefault("app.cache_ttl", 15*time.Minute)

	v.SetDefault("worker.booking_sweep_interval", time.Minute)
	v.SetDefault("worker.cache_warm_interval", 30*time.Minute)
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
