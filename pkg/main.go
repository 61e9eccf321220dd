package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "tipshare/pkg/internal"
	"tipshare/pkg/internal/database"
	"tipshare/pkg/internal/http"
	"tipshare/pkg/internal/security"
	"tipshare/pkg/internal/services"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" _____ _      ____  _\n|_   _(_)_ __/ ___|| |__   __ _ _ __ ___\n  | | | | '_ \\___ \\| '_ \\ / _` | '__/ _ \\\n  | | | | |_) |__) | | | | (_| | | |  __/\n  |_| |_| .__/____/|_| |_|\\__,_|_|  \\___|\n        |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("TipShare"), pkg.AppVersion)
	fmt.Printf("The life-tips sharing platform\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Load signing key
	authority := security.NewTokenAuthority(
		viper.GetString("security.jwt_secret"),
		viper.GetDuration("security.access_token_duration"),
	)

	// Connect to database
	db, err := database.NewGorm()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer(db, authority).Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
