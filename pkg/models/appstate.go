package models

import (
	"github.com/notaspie/notaspie/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	Config  *config.Config
	Checker Checker
	Storage DocumentStorage
}
