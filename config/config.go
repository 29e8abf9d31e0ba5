package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name     string
		Port     string
		Mode     string
		SSL      bool
		LogLevel string
	}
	Database struct {
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
	Jwt struct {
		Secret       string
		ExpiresHours int
	}
	Cors struct {
		AllowOrigins []string
	}
}

var AppConfig *Config

// InitConfig 读取 ./config/config.yml，环境变量覆盖同名配置（如 DATABASE_DSN）
func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Fatalf("Error reading config file: %v", err)
	}

	AppConfig = &Config{}

	if err := viper.Unmarshal(AppConfig); err != nil {
		logrus.Fatalf("Unable to decode into struct: %v", err)
	}

	InitLogger(AppConfig.App.LogLevel)

	initDB()
	initRedis()
	initRabbit()
}

func setDefaults() {
	viper.SetDefault("app.name", "blogapp")
	viper.SetDefault("app.port", ":3000")
	viper.SetDefault("app.mode", "debug")
	viper.SetDefault("app.loglevel", "info")
	viper.SetDefault("database.maxidleconns", 10)
	viper.SetDefault("database.maxopenconns", 100)
	viper.SetDefault("rabbitmq.queue", "like.queue")
	viper.SetDefault("jwt.expireshours", 24)
	viper.SetDefault("cors.alloworigins", []string{"http://localhost:5173"})
}
