package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Geo       GeoConfig       `mapstructure:"geo"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// RedisConfig configures the optional wishlist cache. An empty address
// disables caching entirely.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig configures the optional event publisher. An empty URL disables
// event publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// GeoConfig bounds the outbound HTTP call made while resolving shortened map
// links. The call sits on the request path, so it must not hang on client
// defaults.
type GeoConfig struct {
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MetricsConfig struct {
	Port string `mapstructure:"port"`
}

// BootstrapConfig controls first-run seeding and the registration cap.
// MaxUsers <= 0 means unlimited.
type BootstrapConfig struct {
	DefaultUserName     string `mapstructure:"default_user_name"`
	DefaultUserEmail    string `mapstructure:"default_user_email"`
	DefaultUserPassword string `mapstructure:"default_user_password"`
	DefaultUserRole     string `mapstructure:"default_user_role"`
	MaxUsers            int64  `mapstructure:"max_users"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetDefault("http.port", "8000")
	viper.SetDefault("http.read_timeout", "15s")
	viper.SetDefault("http.write_timeout", "15s")
	viper.SetDefault("http.shutdown_timeout", "10s")

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "travel_app")
	viper.SetDefault("mongo.connect_timeout", "10s")
	viper.SetDefault("mongo.min_pool_size", 0)
	viper.SetDefault("mongo.max_pool_size", 100)

	viper.SetDefault("redis.address", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("nats.url", "")
	viper.SetDefault("nats.connect_timeout", "5s")

	viper.SetDefault("jwt.secret", "change-me")
	viper.SetDefault("jwt.token_ttl", "30m")

	viper.SetDefault("geo.http_timeout", "5s")

	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("metrics.port", "")

	viper.SetDefault("bootstrap.default_user_role", "admin")
	viper.SetDefault("bootstrap.max_users", 3)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if fi, _ := os.Stat(path); !fi.IsDir() {
			viper.SetConfigFile(path)
		} else {
			viper.AddConfigPath(path)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("WISHLIST") // e.g. WISHLIST_MONGO_URI

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found; using defaults and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
