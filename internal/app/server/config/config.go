package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env     string
	DB      db
	Server  server
	Objects objects
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

// objects configures where uploaded evidence photos land. With a bucket
// set they go to S3, otherwise to LocalDir served under BaseURL.
type objects struct {
	Bucket   string `env:"OBJECTS_BUCKET"`
	Region   string `env:"OBJECTS_REGION"`
	BaseURL  string `env:"OBJECTS_BASE_URL"`
	LocalDir string `env:"OBJECTS_LOCAL_DIR"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", "localhost:8080")
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("objects_local_dir", "uploads")
	viper.SetDefault("objects_base_url", "http://localhost:8080/static")

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Objects: objects{
			Bucket:   viper.GetString("objects_bucket"),
			Region:   viper.GetString("objects_region"),
			BaseURL:  viper.GetString("objects_base_url"),
			LocalDir: viper.GetString("objects_local_dir"),
		},
	}

	return &config
}
