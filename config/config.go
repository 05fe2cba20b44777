package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Quiz     Quiz
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Quiz holds the attempt engine tunables.
type Quiz struct {
	AttemptQuestionCount int
	AttemptDurationHours int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("ATTEMPT_QUESTION_COUNT", 10)
	viper.SetDefault("ATTEMPT_DURATION_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Quiz.AttemptQuestionCount = viper.GetInt("ATTEMPT_QUESTION_COUNT")
	config.Quiz.AttemptDurationHours = viper.GetInt("ATTEMPT_DURATION_HOURS")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
